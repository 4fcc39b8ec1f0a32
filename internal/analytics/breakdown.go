package analytics

import "github.com/alexanderramin/moodlog/internal/domain"

// Aggregate reduces a window of records to per-bucket coverage fractions and
// returns the number of tasks in the window. An empty window yields the zero
// breakdown and a zero count; callers branch on the count before anything
// that divides by it.
func Aggregate(records []domain.TaskEmotionRecord) (domain.EmotionBreakdown, int) {
	n := len(records)
	if n == 0 {
		return domain.EmotionBreakdown{}, 0
	}

	counts := make(map[domain.EmotionBucket]int, len(domain.Buckets))
	for i := range records {
		for _, b := range records[i].Buckets() {
			counts[b]++
		}
	}

	total := float64(n)
	return domain.EmotionBreakdown{
		Calm:       float64(counts[domain.BucketCalm]) / total,
		Happy:      float64(counts[domain.BucketHappy]) / total,
		Excited:    float64(counts[domain.BucketExcited]) / total,
		Frustrated: float64(counts[domain.BucketFrustrated]) / total,
		Anxious:    float64(counts[domain.BucketAnxious]) / total,
	}, n
}
