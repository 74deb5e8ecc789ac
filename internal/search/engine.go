// Package search answers free-text and field queries over the corpus
// with a provider call and keeps only keys that really exist.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/ppiankov/landwatch/internal/llm"
	"github.com/ppiankov/landwatch/internal/model"
	"go.uber.org/zap"
)

// DefaultTopN is the result limit when none is given.
const DefaultTopN = 3

// Corpus is the read side of the record store a search runs against.
type Corpus interface {
	Len() int
	Keys() []string
	Export() ([]byte, error)
}

// Engine runs searches through a provider.
type Engine struct {
	provider llm.Provider
	logger   *zap.Logger
}

// NewEngine creates a search engine. provider may be nil.
func NewEngine(provider llm.Provider, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{provider: provider, logger: logger}
}

// FreeText returns up to topN corpus keys matching query.
func (e *Engine) FreeText(ctx context.Context, query string, corpus Corpus, topN int) ([]string, error) {
	if corpus.Len() == 0 || strings.TrimSpace(query) == "" {
		return []string{}, nil
	}
	topN = limit(topN)
	return e.run(ctx, corpus, topN, func(data string) string {
		return fmt.Sprintf(`Using the provided JSON dictionary of addresses below and the query below, return only the top %d matching addresses
(keys only) in JSON format without any additional code.

JSON dictionary of addresses: %s.

query: %q
`, topN, data, query)
	})
}

// ByCriteria returns up to topN corpus keys matching the non-empty criteria.
func (e *Engine) ByCriteria(ctx context.Context, criteria Criteria, corpus Corpus, topN int) ([]string, error) {
	if corpus.Len() == 0 || len(criteria.Filtered()) == 0 {
		return []string{}, nil
	}
	topN = limit(topN)
	return e.run(ctx, corpus, topN, func(data string) string {
		return fmt.Sprintf(`Using the provided JSON dictionary of addresses below and the search criteria below,
return only the top %d matching addresses (keys only) in JSON format without any additional code.

JSON dictionary of addresses: %s.

Search criteria: %s

Find properties that best match these criteria, giving higher weight to exact matches.
`, topN, data, criteria.String())
	})
}

func (e *Engine) run(ctx context.Context, corpus Corpus, topN int, prompt func(string) string) ([]string, error) {
	if e.provider == nil {
		return nil, fmt.Errorf("search: %w", model.ErrCapabilityUnavailable)
	}

	snapshot, err := corpus.Export()
	if err != nil {
		return nil, fmt.Errorf("search: export corpus: %w", err)
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, snapshot); err != nil {
		return nil, fmt.Errorf("search: compact corpus: %w", err)
	}

	resp, err := e.provider.Generate(ctx, llm.GenerateRequest{Prompt: prompt(compact.String())})
	if err != nil {
		e.logger.Warn("search.failed", zap.Error(err))
		return nil, fmt.Errorf("search: %w: %v", model.ErrCapabilityFailure, err)
	}

	keys := MatchKeys(resp.Text, corpus.Keys(), topN)
	e.logger.Debug("search.ok", zap.Int("matches", len(keys)), zap.Int("tokens", resp.TokensUsed))
	return keys, nil
}

// MatchKeys keeps the keys that occur verbatim in text, ordered by
// where they first appear, ties broken by their position in keys, and
// truncated to topN.
func MatchKeys(text string, keys []string, topN int) []string {
	type hit struct {
		key   string
		at    int
		order int
	}
	var hits []hit
	for i, k := range keys {
		if k == "" {
			continue
		}
		if at := strings.Index(text, k); at >= 0 {
			hits = append(hits, hit{key: k, at: at, order: i})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].at != hits[j].at {
			return hits[i].at < hits[j].at
		}
		return hits[i].order < hits[j].order
	})

	out := make([]string, 0, min(len(hits), topN))
	for _, h := range hits {
		if len(out) == topN {
			break
		}
		out = append(out, h.key)
	}
	return out
}

func limit(topN int) int {
	if topN <= 0 {
		return DefaultTopN
	}
	return topN
}
