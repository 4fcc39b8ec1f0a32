package domain

import (
	"math"
	"sort"
)

// EmotionBreakdown holds the fraction of tasks in a window that touched each
// bucket. Fields are independent coverage fractions: a task tagged both happy
// and anxious counts toward both, so the fields need not sum to 1.
type EmotionBreakdown struct {
	Calm       float64 `json:"calm"`
	Happy      float64 `json:"happy"`
	Excited    float64 `json:"excited"`
	Frustrated float64 `json:"frustrated"`
	Anxious    float64 `json:"anxious"`
}

// BucketValue pairs a bucket with its breakdown fraction.
type BucketValue struct {
	Bucket EmotionBucket
	Value  float64
}

// Value returns the fraction for bucket b, or 0 for an unknown bucket.
func (b EmotionBreakdown) Value(bucket EmotionBucket) float64 {
	switch bucket {
	case BucketCalm:
		return b.Calm
	case BucketHappy:
		return b.Happy
	case BucketExcited:
		return b.Excited
	case BucketFrustrated:
		return b.Frustrated
	case BucketAnxious:
		return b.Anxious
	default:
		return 0
	}
}

// Validate rejects fields outside [0,1]. Values are never clamped here.
func (b EmotionBreakdown) Validate() error {
	for _, bucket := range Buckets {
		v := b.Value(bucket)
		if math.IsNaN(v) || v < 0 || v > 1 {
			return newInputError("breakdown."+string(bucket), "must be within [0,1], got %v", v)
		}
	}
	return nil
}

// Ranked returns all buckets ordered by descending value. Ties keep the
// canonical bucket order.
func (b EmotionBreakdown) Ranked() []BucketValue {
	out := make([]BucketValue, len(Buckets))
	for i, bucket := range Buckets {
		out[i] = BucketValue{Bucket: bucket, Value: b.Value(bucket)}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value > out[j].Value
	})
	return out
}

// Dominant returns the highest-valued bucket.
func (b EmotionBreakdown) Dominant() BucketValue {
	return b.Ranked()[0]
}

// PositiveScore is calm + happy + excited.
func (b EmotionBreakdown) PositiveScore() float64 {
	return b.Calm + b.Happy + b.Excited
}

// NegativeScore is frustrated + anxious.
func (b EmotionBreakdown) NegativeScore() float64 {
	return b.Frustrated + b.Anxious
}

// IsPositive reports whether the overall tone leans positive.
func (b EmotionBreakdown) IsPositive() bool {
	return b.PositiveScore() > b.NegativeScore()
}

// IsZero reports whether every field is zero, the "no data" breakdown.
func (b EmotionBreakdown) IsZero() bool {
	return b == EmotionBreakdown{}
}
