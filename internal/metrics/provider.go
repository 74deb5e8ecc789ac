package metrics

import (
	"context"

	"github.com/ppiankov/landwatch/internal/llm"
)

// observed counts provider calls for one capability.
type observed struct {
	llm.Provider
	metrics    *Metrics
	capability string
}

// Instrument wraps p so that every Generate call is counted under
// capability_calls_total{capability}. A nil provider stays nil.
func Instrument(p llm.Provider, m *Metrics, capability string) llm.Provider {
	if p == nil {
		return nil
	}
	return &observed{Provider: p, metrics: m, capability: capability}
}

func (o *observed) Generate(ctx context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	resp, err := o.Provider.Generate(ctx, req)
	o.metrics.Capability(o.capability, err)
	return resp, err
}
