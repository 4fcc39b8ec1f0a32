package domain

// RadarPoint is one axis of the emotion radar chart.
type RadarPoint struct {
	Emotion     EmotionBucket `json:"emotion"`
	Value       float64       `json:"value"`
	VisualValue float64       `json:"visual_value"`
	Angle       float64       `json:"angle"`
	X           float64       `json:"x"`
	Y           float64       `json:"y"`
}

// RadarChart is the chart-ready geometry for a breakdown.
type RadarChart struct {
	View        ViewGranularity `json:"view"`
	TaskCount   int             `json:"task_count"`
	ScaleFactor float64         `json:"scale_factor"`
	Radius      float64         `json:"radius"`
	Points      []RadarPoint    `json:"points"`
}

// NarrativeResult is the reflective sentence shown to the user.
type NarrativeResult struct {
	Text     string          `json:"text"`
	Source   NarrativeSource `json:"source"`
	Keywords []string        `json:"keywords,omitempty"`
}

// ResourceScores are the derived scores the resource selector branches on.
type ResourceScores struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Energy   float64 `json:"energy"`
	Stress   float64 `json:"stress"`
}

// Resource is a curated recommendation.
type Resource struct {
	Category    ResourceCategory `json:"category" yaml:"category"`
	Title       string           `json:"title" yaml:"title"`
	Description string           `json:"description" yaml:"description"`
	URL         string           `json:"url,omitempty" yaml:"url,omitempty"`
}
