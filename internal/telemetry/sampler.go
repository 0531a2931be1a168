package telemetry

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	sdkTrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// NewSampler samples spans started with ForceTraceKey=true unconditionally
// and applies a parent-based ratio to everything else.
func NewSampler(rate float64) sdkTrace.Sampler {
	return &forcedSampler{
		fallback: sdkTrace.ParentBased(sdkTrace.TraceIDRatioBased(rate)),
	}
}

type forcedSampler struct {
	fallback sdkTrace.Sampler
}

func (s *forcedSampler) ShouldSample(p sdkTrace.SamplingParameters) sdkTrace.SamplingResult {
	if !forced(p.Attributes) {
		return s.fallback.ShouldSample(p)
	}

	return sdkTrace.SamplingResult{
		Decision:   sdkTrace.RecordAndSample,
		Tracestate: trace.SpanContextFromContext(p.ParentContext).TraceState(),
	}
}

func (s *forcedSampler) Description() string {
	return fmt.Sprintf("ForcedSampler{%s}", s.fallback.Description())
}

func forced(attrs []attribute.KeyValue) bool {
	for _, kv := range attrs {
		if kv.Key == ForceTraceKey {
			return kv.Value.AsBool()
		}
	}
	return false
}
