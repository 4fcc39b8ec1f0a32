package app

import (
	"context"

	"github.com/alexanderramin/moodlog/internal/domain"
)

type ReflectUseCase interface {
	Reflect(ctx context.Context, req ReflectRequest) (*ReflectResponse, error)
	// ReflectStream returns the rule-based reflection at once and delivers an
	// augmented narrative, if any, on the channel before it closes.
	ReflectStream(ctx context.Context, req ReflectRequest) (*ReflectResponse, <-chan domain.NarrativeResult, error)
	Overview(ctx context.Context, req OverviewRequest) (*OverviewResponse, error)
	AugmentationAvailable(ctx context.Context) bool
}

type TaskLogUseCase interface {
	LogTask(ctx context.Context, req LogTaskRequest) (*domain.TaskEmotionRecord, error)
	ListRecords(ctx context.Context, req ListRecordsRequest) (*RecordsResponse, error)
	// RecentRecords returns up to limit records, newest first, regardless of view.
	RecentRecords(ctx context.Context, limit int) ([]domain.TaskEmotionRecord, error)
	GetRecord(ctx context.Context, id string) (*domain.TaskEmotionRecord, error)
	DeleteRecord(ctx context.Context, id string) error
}
