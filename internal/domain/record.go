package domain

import (
	"strings"
	"time"
)

// TaskEmotionRecord is one logged work task and the emotions it was tagged with.
type TaskEmotionRecord struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	LoggedAt    time.Time `json:"logged_at"`
	Emotions    []Emotion `json:"emotions"`
	CreatedAt   time.Time `json:"created_at"`
}

// Validate checks the record is storable.
func (r *TaskEmotionRecord) Validate() error {
	if strings.TrimSpace(r.Description) == "" {
		return newInputError("description", "must not be empty")
	}
	if len(r.Emotions) == 0 {
		return newInputError("emotions", "at least one emotion is required")
	}
	for _, e := range r.Emotions {
		if !e.Valid() {
			return newInputError("emotions", "unknown emotion %q", e)
		}
	}
	return nil
}

// Buckets returns the distinct coarse buckets covered by the record, in
// canonical order. Unknown tags are skipped.
func (r *TaskEmotionRecord) Buckets() []EmotionBucket {
	seen := make(map[EmotionBucket]bool, len(Buckets))
	for _, e := range r.Emotions {
		if b, ok := e.Bucket(); ok {
			seen[b] = true
		}
	}
	out := make([]EmotionBucket, 0, len(seen))
	for _, b := range Buckets {
		if seen[b] {
			out = append(out, b)
		}
	}
	return out
}
