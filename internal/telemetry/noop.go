package telemetry

import (
	"context"

	"github.com/alexanderramin/moodlog/internal/domain"
	"github.com/alexanderramin/moodlog/internal/llm"
)

// NoOpRecorder drops every measurement. Used when export is disabled.
type NoOpRecorder struct{}

// NewNoOpRecorder creates a recorder for graceful degradation.
func NewNoOpRecorder() *NoOpRecorder {
	return &NoOpRecorder{}
}

func (NoOpRecorder) OnCallComplete(llm.LLMCallEvent) {}

func (NoOpRecorder) RecordReflection(context.Context, domain.ViewGranularity, domain.ResourceBucketKey, domain.NarrativeSource) {
}

func (NoOpRecorder) RecordLogged(context.Context, int) {}

func (NoOpRecorder) Close(context.Context) error { return nil }
