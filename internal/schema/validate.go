package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Validator checks documents against a compiled schema.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles schemaMap.
func NewValidator(schemaMap map[string]any) (*Validator, error) {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	s, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Validator{schema: s}, nil
}

// Validate parses data and validates it.
func (v *Validator) Validate(data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	return v.ValidateValue(doc)
}

// ValidateValue validates an already decoded document.
func (v *Validator) ValidateValue(doc any) error {
	if err := v.schema.Validate(doc); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}

var (
	compileOnce sync.Once
	validators  map[Mode]*Validator
	compileErr  error
)

// For returns the shared validator for mode.
func For(mode Mode) (*Validator, error) {
	compileOnce.Do(func() {
		validators = make(map[Mode]*Validator, 2)
		for _, m := range []Mode{Generation, Snapshot} {
			v, err := NewValidator(Notice(m))
			if err != nil {
				compileErr = err
				return
			}
			validators[m] = v
		}
	})
	if compileErr != nil {
		return nil, compileErr
	}
	return validators[mode], nil
}
