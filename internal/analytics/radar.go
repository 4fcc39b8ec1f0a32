package analytics

import (
	"math"

	"github.com/alexanderramin/moodlog/internal/domain"
)

const (
	// VisualFloor keeps a zero-valued axis visible on the chart.
	VisualFloor = 0.08

	// DefaultRadius is the chart radius used when the caller has no preference.
	DefaultRadius = 100.0

	maxScale   = 1.2
	lowScale   = 1.15
	midScale   = 1.05
	denseScale = 1.0
)

// ScaleFactor inflates sparse samples so the chart never looks collapsed.
// It falls from 1.2 at zero tasks to 1.0 once the count passes the view's
// high threshold, piecewise linear and continuous at each breakpoint.
func ScaleFactor(taskCount int, view domain.ViewGranularity) (float64, error) {
	if err := domain.ValidateTaskCount(taskCount); err != nil {
		return 0, err
	}
	th, err := view.Thresholds()
	if err != nil {
		return 0, err
	}

	n := float64(taskCount)
	low, mid, high := float64(th.Low), float64(th.Medium), float64(th.High)

	switch {
	case n <= low:
		return maxScale - (maxScale-lowScale)*(n/low), nil
	case n <= mid:
		return lowScale - (lowScale-midScale)*((n-low)/(mid-low)), nil
	case n <= high:
		return midScale - (midScale-denseScale)*((n-mid)/(high-mid)), nil
	default:
		return denseScale, nil
	}
}

// VisualValue lifts raw to the visual floor, applies the scale factor and
// clamps to the chart radius.
func VisualValue(raw, scale float64) float64 {
	return math.Min(math.Max(raw, VisualFloor)*scale, 1.0)
}

// Radar converts a breakdown into chart geometry. Axes follow the canonical
// bucket order, evenly spaced and starting at the top of the chart.
func Radar(b domain.EmotionBreakdown, taskCount int, view domain.ViewGranularity, radius float64) (domain.RadarChart, error) {
	if err := b.Validate(); err != nil {
		return domain.RadarChart{}, err
	}
	if math.IsNaN(radius) || radius <= 0 {
		return domain.RadarChart{}, &domain.InputError{Field: "radius", Reason: "must be positive"}
	}
	scale, err := ScaleFactor(taskCount, view)
	if err != nil {
		return domain.RadarChart{}, err
	}

	step := 2 * math.Pi / float64(len(domain.Buckets))
	points := make([]domain.RadarPoint, len(domain.Buckets))
	for i, bucket := range domain.Buckets {
		raw := b.Value(bucket)
		visual := VisualValue(raw, scale)
		angle := -math.Pi/2 + float64(i)*step
		points[i] = domain.RadarPoint{
			Emotion:     bucket,
			Value:       raw,
			VisualValue: visual,
			Angle:       angle,
			X:           math.Cos(angle) * visual * radius,
			Y:           math.Sin(angle) * visual * radius,
		}
	}

	return domain.RadarChart{
		View:        view,
		TaskCount:   taskCount,
		ScaleFactor: scale,
		Radius:      radius,
		Points:      points,
	}, nil
}
