package analytics

import "github.com/alexanderramin/moodlog/internal/domain"

const (
	stressCutoff     = 0.5
	highEnergyCutoff = 0.7
	lowEnergyCutoff  = 0.3
	minEnergizedRun  = 3
	maxTiredRun      = 1
)

// Scores derives the energy and stress levels the selector branches on.
func Scores(b domain.EmotionBreakdown) domain.ResourceScores {
	return domain.ResourceScores{
		Positive: b.PositiveScore(),
		Negative: b.NegativeScore(),
		Energy:   b.Excited*1.5 + b.Happy*1.2 + b.Calm*0.8,
		Stress:   b.Frustrated*1.5 + b.Anxious*1.3,
	}
}

// SelectBucket picks the resource bucket for a breakdown and its task count.
func SelectBucket(b domain.EmotionBreakdown, taskCount int) (domain.ResourceBucketKey, error) {
	if err := domain.ValidateTaskCount(taskCount); err != nil {
		return "", err
	}
	return selectBucket(b, taskCount, true)
}

// SelectBucketWithoutCount picks the bucket when no task count is known.
// Energized needs a run of tasks, so it never matches; tired falls back to
// its energy clause alone.
func SelectBucketWithoutCount(b domain.EmotionBreakdown) (domain.ResourceBucketKey, error) {
	return selectBucket(b, 0, false)
}

// selectBucket evaluates the rules in order; earlier rules pre-empt later
// ones even when both would match.
func selectBucket(b domain.EmotionBreakdown, taskCount int, countKnown bool) (domain.ResourceBucketKey, error) {
	if err := b.Validate(); err != nil {
		return "", err
	}
	s := Scores(b)

	if s.Stress > stressCutoff {
		return domain.ResourceStruggling, nil
	}
	if s.Energy > highEnergyCutoff && countKnown && taskCount >= minEnergizedRun {
		return domain.ResourceEnergized, nil
	}
	if s.Energy < lowEnergyCutoff || (countKnown && taskCount <= maxTiredRun) {
		return domain.ResourceTired, nil
	}
	if s.Positive > s.Negative {
		return domain.ResourceBalanced, nil
	}
	return domain.ResourceDefault, nil
}
