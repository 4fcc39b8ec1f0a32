package app

import (
	"time"

	"github.com/alexanderramin/moodlog/internal/domain"
)

type LogTaskRequest struct {
	Description string
	Emotions    []domain.Emotion
	// LoggedAt defaults to now.
	LoggedAt *time.Time
}

type ListRecordsRequest struct {
	View domain.ViewGranularity
	Now  *time.Time
}

type RecordsResponse struct {
	View          domain.ViewGranularity     `json:"view"`
	Window        Window                     `json:"window"`
	Records       []domain.TaskEmotionRecord `json:"records"`
	EmotionCounts map[domain.Emotion]int     `json:"emotion_counts"`
}
