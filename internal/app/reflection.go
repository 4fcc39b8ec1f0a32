package app

import (
	"time"

	"github.com/alexanderramin/moodlog/internal/domain"
)

// Window is the half-open time range [Start, End) a view covers.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type ReflectRequest struct {
	View domain.ViewGranularity
	// Now anchors the window; nil means the current time.
	Now *time.Time
	// Augment asks the gateway for a narrative when one is configured.
	Augment bool
	// Radius of the radar chart; zero uses the default.
	Radius float64
}

type ReflectResponse struct {
	View      domain.ViewGranularity   `json:"view"`
	Window    Window                   `json:"window"`
	TaskCount int                      `json:"task_count"`
	Breakdown domain.EmotionBreakdown  `json:"breakdown"`
	Radar     domain.RadarChart        `json:"radar"`
	Narrative domain.NarrativeResult   `json:"narrative"`
	Bucket    domain.ResourceBucketKey `json:"bucket"`
	Scores    domain.ResourceScores    `json:"scores"`
	Resources []domain.Resource        `json:"resources"`
}

type OverviewRequest struct {
	Now     *time.Time
	Augment bool
}

// OverviewResponse holds one reflection per view, in today/weekly/monthly order.
type OverviewResponse struct {
	Views []ReflectResponse `json:"views"`
}
