package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/ppiankov/landwatch/internal/llm"
	"github.com/ppiankov/landwatch/internal/model"
	"github.com/ppiankov/landwatch/internal/schema"
	"go.uber.org/zap"
)

// StructuredExtractor turns notice text into a PublicNotice using a
// schema-constrained provider call.
type StructuredExtractor struct {
	provider llm.Provider
	logger   *zap.Logger
}

// NewStructuredExtractor creates an extractor. provider may be nil.
func NewStructuredExtractor(provider llm.Provider, logger *zap.Logger) *StructuredExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StructuredExtractor{provider: provider, logger: logger}
}

// Extract parses text into a record. Any provider error, malformed JSON,
// schema violation or empty record is an error wrapping
// ErrCapabilityFailure; a missing provider wraps ErrCapabilityUnavailable.
func (e *StructuredExtractor) Extract(ctx context.Context, text string) (*model.PublicNotice, error) {
	if e.provider == nil {
		return nil, fmt.Errorf("extract: %w", model.ErrCapabilityUnavailable)
	}

	zero := float32(0)
	resp, err := e.provider.Generate(ctx, llm.GenerateRequest{
		System:      extractionSystem,
		Prompt:      extractionPrompt(text),
		Schema:      schema.Notice(schema.Generation),
		SchemaName:  "public_notice",
		Temperature: &zero,
	})
	if err != nil {
		e.logger.Warn("extract.structured.failed", zap.Error(err))
		return nil, fmt.Errorf("extract: %w: %v", model.ErrCapabilityFailure, err)
	}

	notice, err := e.decode([]byte(llm.StripCodeFence(resp.Text)))
	if err != nil {
		e.logger.Warn("extract.structured.invalid", zap.Error(err))
		return nil, fmt.Errorf("extract: %w: %v", model.ErrCapabilityFailure, err)
	}

	e.logger.Debug("extract.structured.ok", zap.Int("tokens", resp.TokensUsed))
	return notice, nil
}

// decode validates raw against the generation schema, repairing common
// deviations once before giving up, and returns the normalized record.
func (e *StructuredExtractor) decode(raw []byte) (*model.PublicNotice, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("malformed JSON: %w", err)
	}
	if _, ok := doc.(map[string]any); !ok {
		return nil, fmt.Errorf("expected a JSON object")
	}

	v, err := schema.For(schema.Generation)
	if err != nil {
		return nil, err
	}

	if verr := v.ValidateValue(doc); verr != nil {
		repaired := sanitize(doc, schema.Notice(schema.Generation))
		if len(repaired) == 0 {
			return nil, verr
		}
		if err := v.ValidateValue(doc); err != nil {
			return nil, err
		}
		e.logger.Warn("extract.structured.sanitized", zap.Strings("changed", repaired))
	}

	b, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var notice model.PublicNotice
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&notice); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	if notice.IsEmpty() || notice.IsBlank() {
		return nil, fmt.Errorf("empty record")
	}

	addr := &notice.PropertyDetails.Address
	addr.PinCode = model.NormalizePinCode(addr.PinCode)
	return &notice, nil
}

// sanitize repairs doc in place against an object schema:
// unknown keys are dropped, missing string fields become "n/a", enum
// strings are matched case-insensitively with fallback, and numeric
// strings are coerced for integer fields. Returns the paths it changed.
func sanitize(doc any, s map[string]any) []string {
	var changed []string
	sanitizeObject(doc, s, "", &changed)
	return changed
}

func sanitizeObject(doc any, s map[string]any, path string, changed *[]string) {
	obj, ok := doc.(map[string]any)
	if !ok {
		return
	}
	props, _ := s["properties"].(map[string]any)

	for k := range obj {
		if _, known := props[k]; !known {
			delete(obj, k)
			*changed = append(*changed, path+k+"(unknown)")
		}
	}

	for name, p := range props {
		ps := p.(map[string]any)
		val, present := obj[name]
		switch ps["type"] {
		case "object":
			if !present {
				val = map[string]any{}
				obj[name] = val
				*changed = append(*changed, path+name+"(missing)")
			}
			sanitizeObject(val, ps, path+name+".", changed)
		case "integer":
			switch t := val.(type) {
			case float64:
			case string:
				n, err := strconv.Atoi(strings.TrimSpace(t))
				if err != nil {
					n = 0
				}
				obj[name] = n
				*changed = append(*changed, path+name+"(int)")
			default:
				obj[name] = 0
				*changed = append(*changed, path+name+"(int)")
			}
		case "string":
			str, isStr := val.(string)
			if !isStr {
				str = model.NA
				*changed = append(*changed, path+name+"(missing)")
			}
			if enum, ok := ps["enum"].([]string); ok {
				if fixed := matchEnum(str, enum); fixed != str {
					str = fixed
					*changed = append(*changed, path+name+"(enum)")
				}
			}
			obj[name] = str
		}
	}
}

// matchEnum returns the member equal to raw ignoring case, else "n/a"
// when it is a member, else the last member.
func matchEnum(raw string, members []string) string {
	for _, m := range members {
		if strings.EqualFold(m, raw) {
			return m
		}
	}
	for _, m := range members {
		if m == model.NA {
			return m
		}
	}
	return members[len(members)-1]
}
