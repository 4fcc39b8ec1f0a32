package service

import (
	"context"

	"github.com/alexanderramin/moodlog/internal/domain"
)

// ResourceCatalog supplies the curated resources for a bucket.
type ResourceCatalog interface {
	Resources(key domain.ResourceBucketKey) []domain.Resource
}

// Metrics receives reflection and logging measurements.
type Metrics interface {
	RecordReflection(ctx context.Context, view domain.ViewGranularity, bucket domain.ResourceBucketKey, source domain.NarrativeSource)
	RecordLogged(ctx context.Context, emotions int)
}

type noopMetrics struct{}

func (noopMetrics) RecordReflection(context.Context, domain.ViewGranularity, domain.ResourceBucketKey, domain.NarrativeSource) {
}

func (noopMetrics) RecordLogged(context.Context, int) {}
