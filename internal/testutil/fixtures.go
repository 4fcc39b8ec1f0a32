package testutil

import (
	"time"

	"github.com/alexanderramin/moodlog/internal/domain"
	"github.com/google/uuid"
)

// RecordOption customizes a fixture record.
type RecordOption func(*domain.TaskEmotionRecord)

// WithLoggedAt sets when the task was logged.
func WithLoggedAt(t time.Time) RecordOption {
	return func(r *domain.TaskEmotionRecord) {
		r.LoggedAt = t
	}
}

// WithEmotions replaces the record's tags.
func WithEmotions(emotions ...domain.Emotion) RecordOption {
	return func(r *domain.TaskEmotionRecord) {
		r.Emotions = emotions
	}
}

// NewTestRecord builds a valid record tagged "calm", logged now.
func NewTestRecord(description string, opts ...RecordOption) *domain.TaskEmotionRecord {
	now := time.Now().UTC().Truncate(time.Millisecond)
	r := &domain.TaskEmotionRecord{
		ID:          uuid.New().String(),
		Description: description,
		LoggedAt:    now,
		Emotions:    []domain.Emotion{domain.EmotionCalm},
		CreatedAt:   now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
