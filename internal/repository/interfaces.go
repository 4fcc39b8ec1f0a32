package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/moodlog/internal/domain"
)

// ErrNotFound is returned when a lookup or delete matches no row.
var ErrNotFound = errors.New("not found")

// TaskRecordRepo persists TaskEmotionRecords. Records are immutable once
// created; they can only be read or deleted.
type TaskRecordRepo interface {
	Create(ctx context.Context, r *domain.TaskEmotionRecord) error
	GetByID(ctx context.Context, id string) (*domain.TaskEmotionRecord, error)
	// ListBetween returns records with start <= logged_at < end, oldest first.
	ListBetween(ctx context.Context, start, end time.Time) ([]domain.TaskEmotionRecord, error)
	// ListRecent returns up to limit records, newest first.
	ListRecent(ctx context.Context, limit int) ([]domain.TaskEmotionRecord, error)
	// EmotionCounts counts tag usage for records logged in [start, end).
	EmotionCounts(ctx context.Context, start, end time.Time) (map[domain.Emotion]int, error)
	Delete(ctx context.Context, id string) error
}
