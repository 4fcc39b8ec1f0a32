package analytics

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/moodlog/internal/domain"
)

const (
	// significantShare is the value an emotion must exceed to be named in a
	// mixed-emotions sentence.
	significantShare = 0.2

	// strongShare is the value the dominant emotion needs before a
	// volume-specific branch speaks about it directly.
	strongShare = 0.4
)

// TaskVolume buckets the number of tasks in a window.
type TaskVolume string

const (
	VolumeNone     TaskVolume = "none"
	VolumeVeryLow  TaskVolume = "very_low"
	VolumeModerate TaskVolume = "moderate"
	VolumeHigh     TaskVolume = "high"
)

// VolumeOf maps a task count to its volume bucket.
func VolumeOf(taskCount int) TaskVolume {
	switch {
	case taskCount <= 0:
		return VolumeNone
	case taskCount <= 2:
		return VolumeVeryLow
	case taskCount <= 5:
		return VolumeModerate
	default:
		return VolumeHigh
	}
}

// narrativeInput is the precomputed view of a breakdown every rule sees.
type narrativeInput struct {
	count     int
	volume    TaskVolume
	period    string
	dominant  domain.BucketValue
	secondary domain.BucketValue
	positive  bool
	ranked    []domain.BucketValue
}

func (in narrativeInput) strong(b domain.EmotionBucket) bool {
	return in.dominant.Bucket == b && in.dominant.Value >= strongShare
}

func (in narrativeInput) strongAny(bs ...domain.EmotionBucket) bool {
	for _, b := range bs {
		if in.strong(b) {
			return true
		}
	}
	return false
}

func (in narrativeInput) secondaryIs(b domain.EmotionBucket) bool {
	return in.secondary.Bucket == b && in.secondary.Value > 0
}

// narrativeRule is one guard of the cascade. Rules are evaluated in slice
// order and the first whose predicate holds renders the sentence.
type narrativeRule struct {
	name   string
	when   func(narrativeInput) bool
	render func(narrativeInput) string
}

var narrativeRules = []narrativeRule{
	{
		name: "no_tasks",
		when: func(in narrativeInput) bool { return in.volume == VolumeNone },
		render: func(in narrativeInput) string {
			return fmt.Sprintf("You haven't logged any tasks yet %s. How are you feeling?", in.period)
		},
	},

	// Very low volume: one or two tasks.
	{
		name: "very_low_energized_start",
		when: func(in narrativeInput) bool {
			return in.volume == VolumeVeryLow && in.positive && in.strongAny(domain.BucketExcited, domain.BucketHappy)
		},
		render: func(in narrativeInput) string {
			return fmt.Sprintf("A great start! You're feeling %s about your first %s. Keep that momentum going.",
				in.dominant.Bucket, taskNoun(in.count))
		},
	},
	{
		name: "very_low_calm_start",
		when: func(in narrativeInput) bool {
			return in.volume == VolumeVeryLow && in.positive && in.strong(domain.BucketCalm)
		},
		render: func(in narrativeInput) string {
			return fmt.Sprintf("A calm start %s. %s done with a steady mind.", in.period, countTasks(in.count))
		},
	},
	{
		name: "very_low_frustrated",
		when: func(in narrativeInput) bool {
			return in.volume == VolumeVeryLow && in.strong(domain.BucketFrustrated)
		},
		render: func(in narrativeInput) string {
			return "Getting started can be tough. Be gentle with yourself, small steps still count."
		},
	},
	{
		name: "very_low_anxious",
		when: func(in narrativeInput) bool {
			return in.volume == VolumeVeryLow && in.strong(domain.BucketAnxious)
		},
		render: func(in narrativeInput) string {
			return "Feeling a little anxious early on is normal. Take a breath, you've already made progress."
		},
	},

	// Moderate volume: three to five tasks.
	{
		name: "moderate_excited",
		when: func(in narrativeInput) bool {
			return in.volume == VolumeModerate && in.positive && in.strong(domain.BucketExcited)
		},
		render: func(in narrativeInput) string {
			return fmt.Sprintf("You're building real momentum with %s %s, and your energy shows it!", countTasks(in.count), in.period)
		},
	},
	{
		name: "moderate_happy_and_calm",
		when: func(in narrativeInput) bool {
			return in.volume == VolumeModerate && in.positive && in.strong(domain.BucketHappy) && in.secondaryIs(domain.BucketCalm)
		},
		render: func(in narrativeInput) string {
			return fmt.Sprintf("%s done with a happy, balanced mood. That's a great rhythm.", countTasks(in.count))
		},
	},
	{
		name: "moderate_happy",
		when: func(in narrativeInput) bool {
			return in.volume == VolumeModerate && in.positive && in.strong(domain.BucketHappy)
		},
		render: func(in narrativeInput) string {
			return fmt.Sprintf("%s and a smile along the way. You're having a good run %s.", countTasks(in.count), in.period)
		},
	},
	{
		name: "moderate_calm",
		when: func(in narrativeInput) bool {
			return in.volume == VolumeModerate && in.positive && in.strong(domain.BucketCalm)
		},
		render: func(in narrativeInput) string {
			return fmt.Sprintf("Steady and calm through %s. Consistency is your strength %s.", countTasks(in.count), in.period)
		},
	},
	{
		name: "moderate_frustrated_and_anxious",
		when: func(in narrativeInput) bool {
			return in.volume == VolumeModerate && !in.positive && in.strong(domain.BucketFrustrated) && in.secondaryIs(domain.BucketAnxious)
		},
		render: func(in narrativeInput) string {
			return fmt.Sprintf("It's been a challenging stretch with %s. Consider a short break before the next one.", countTasks(in.count))
		},
	},
	{
		name: "moderate_frustrated",
		when: func(in narrativeInput) bool {
			return in.volume == VolumeModerate && in.strong(domain.BucketFrustrated)
		},
		render: func(in narrativeInput) string {
			return fmt.Sprintf("Some frustration crept into %s, but you kept going. That persistence matters.", countTasks(in.count))
		},
	},
	{
		name: "moderate_anxious",
		when: func(in narrativeInput) bool {
			return in.volume == VolumeModerate && in.strong(domain.BucketAnxious)
		},
		render: func(in narrativeInput) string {
			return fmt.Sprintf("You pushed through %s despite some worry. Try breaking the next task into smaller pieces.", countTasks(in.count))
		},
	},

	// High volume: six or more tasks.
	{
		name: "high_excited",
		when: func(in narrativeInput) bool {
			return in.volume == VolumeHigh && in.positive && in.strong(domain.BucketExcited)
		},
		render: func(in narrativeInput) string {
			return fmt.Sprintf("What a productive stretch! %s %s and you're still energized.", countTasks(in.count), in.period)
		},
	},
	{
		name: "high_happy",
		when: func(in narrativeInput) bool {
			return in.volume == VolumeHigh && in.positive && in.strong(domain.BucketHappy)
		},
		render: func(in narrativeInput) string {
			return fmt.Sprintf("%s and you enjoyed the ride. Take a moment to celebrate that.", countTasks(in.count))
		},
	},
	{
		name: "high_calm",
		when: func(in narrativeInput) bool {
			return in.volume == VolumeHigh && in.positive && in.strong(domain.BucketCalm)
		},
		render: func(in narrativeInput) string {
			return fmt.Sprintf("%s at a calm, sustainable pace. That's how lasting progress is made.", countTasks(in.count))
		},
	},
	{
		name: "high_strained",
		when: func(in narrativeInput) bool {
			return in.volume == VolumeHigh && !in.positive && in.strongAny(domain.BucketFrustrated, domain.BucketAnxious)
		},
		render: func(in narrativeInput) string {
			return fmt.Sprintf("%s is a lot, and it shows. You've earned some rest.", countTasks(in.count))
		},
	},

	// Fallbacks apply to every volume.
	{
		name: "mixed",
		when: func(in narrativeInput) bool { return len(in.significant()) >= 2 },
		render: func(in narrativeInput) string {
			return fmt.Sprintf("You've experienced mixed emotions %s: %s. That's completely normal.",
				in.period, joinNames(in.significant()))
		},
	},
	{
		name: "generic",
		when: func(narrativeInput) bool { return true },
		render: func(in narrativeInput) string {
			return fmt.Sprintf("You've completed %s %s, feeling mostly %s.", countTasks(in.count), in.period, in.dominant.Bucket)
		},
	},
}

func (in narrativeInput) significant() []domain.EmotionBucket {
	var out []domain.EmotionBucket
	for _, bv := range in.ranked {
		if bv.Value > significantShare {
			out = append(out, bv.Bucket)
		}
	}
	return out
}

// Narrative returns the rule-based reflective sentence for a daily window.
func Narrative(b domain.EmotionBreakdown, taskCount int) (string, error) {
	return NarrativeFor(b, taskCount, domain.ViewToday)
}

// NarrativeFor returns the rule-based sentence, phrasing the period after view.
func NarrativeFor(b domain.EmotionBreakdown, taskCount int, view domain.ViewGranularity) (string, error) {
	text, _, err := evaluateNarrative(b, taskCount, view)
	return text, err
}

// NarrativeRule returns the name of the cascade branch that produced the
// sentence for the given input. Useful for tracing and tests.
func NarrativeRule(b domain.EmotionBreakdown, taskCount int, view domain.ViewGranularity) (string, error) {
	_, name, err := evaluateNarrative(b, taskCount, view)
	return name, err
}

func evaluateNarrative(b domain.EmotionBreakdown, taskCount int, view domain.ViewGranularity) (string, string, error) {
	if err := b.Validate(); err != nil {
		return "", "", err
	}
	if err := domain.ValidateTaskCount(taskCount); err != nil {
		return "", "", err
	}
	if !view.Valid() {
		return "", "", &domain.InputError{Field: "view", Reason: fmt.Sprintf("unknown view %q", view)}
	}

	ranked := b.Ranked()
	in := narrativeInput{
		count:     taskCount,
		volume:    VolumeOf(taskCount),
		period:    view.Period(),
		dominant:  ranked[0],
		secondary: ranked[1],
		positive:  b.IsPositive(),
		ranked:    ranked,
	}

	for _, rule := range narrativeRules {
		if rule.when(in) {
			return rule.render(in), rule.name, nil
		}
	}
	// Unreachable: the generic rule always matches.
	return "", "", fmt.Errorf("no narrative rule matched")
}

func taskNoun(n int) string {
	if n == 1 {
		return "task"
	}
	return "tasks"
}

func countTasks(n int) string {
	return fmt.Sprintf("%d %s", n, taskNoun(n))
}

func joinNames(bs []domain.EmotionBucket) string {
	names := make([]string, len(bs))
	for i, b := range bs {
		names[i] = string(b)
	}
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}
