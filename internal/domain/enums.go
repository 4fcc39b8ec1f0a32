package domain

import "strings"

// Emotion is a fine-grained emotion tag attached to a logged task.
type Emotion string

const (
	EmotionCalm        Emotion = "calm"
	EmotionRelaxed     Emotion = "relaxed"
	EmotionContent     Emotion = "content"
	EmotionHappy       Emotion = "happy"
	EmotionProud       Emotion = "proud"
	EmotionGrateful    Emotion = "grateful"
	EmotionExcited     Emotion = "excited"
	EmotionEnergized   Emotion = "energized"
	EmotionMotivated   Emotion = "motivated"
	EmotionFrustrated  Emotion = "frustrated"
	EmotionAnnoyed     Emotion = "annoyed"
	EmotionBored       Emotion = "bored"
	EmotionAnxious     Emotion = "anxious"
	EmotionStressed    Emotion = "stressed"
	EmotionOverwhelmed Emotion = "overwhelmed"
)

// EmotionBucket is one of the five coarse buckets used for analytics.
type EmotionBucket string

const (
	BucketCalm       EmotionBucket = "calm"
	BucketHappy      EmotionBucket = "happy"
	BucketExcited    EmotionBucket = "excited"
	BucketFrustrated EmotionBucket = "frustrated"
	BucketAnxious    EmotionBucket = "anxious"
)

// Buckets lists the coarse buckets in canonical order. Radar axes and
// tie-breaking both follow this order.
var Buckets = []EmotionBucket{
	BucketCalm,
	BucketHappy,
	BucketExcited,
	BucketFrustrated,
	BucketAnxious,
}

// Emotions lists the fine-grained taxonomy grouped by bucket.
var Emotions = []Emotion{
	EmotionCalm, EmotionRelaxed, EmotionContent,
	EmotionHappy, EmotionProud, EmotionGrateful,
	EmotionExcited, EmotionEnergized, EmotionMotivated,
	EmotionFrustrated, EmotionAnnoyed, EmotionBored,
	EmotionAnxious, EmotionStressed, EmotionOverwhelmed,
}

var emotionBuckets = map[Emotion]EmotionBucket{
	EmotionCalm:        BucketCalm,
	EmotionRelaxed:     BucketCalm,
	EmotionContent:     BucketCalm,
	EmotionHappy:       BucketHappy,
	EmotionProud:       BucketHappy,
	EmotionGrateful:    BucketHappy,
	EmotionExcited:     BucketExcited,
	EmotionEnergized:   BucketExcited,
	EmotionMotivated:   BucketExcited,
	EmotionFrustrated:  BucketFrustrated,
	EmotionAnnoyed:     BucketFrustrated,
	EmotionBored:       BucketFrustrated,
	EmotionAnxious:     BucketAnxious,
	EmotionStressed:    BucketAnxious,
	EmotionOverwhelmed: BucketAnxious,
}

// Bucket returns the coarse bucket for e. The second result is false for
// emotions outside the taxonomy.
func (e Emotion) Bucket() (EmotionBucket, bool) {
	b, ok := emotionBuckets[e]
	return b, ok
}

// Valid reports whether e belongs to the taxonomy.
func (e Emotion) Valid() bool {
	_, ok := emotionBuckets[e]
	return ok
}

// Positive reports whether the bucket counts toward the positive tone.
func (b EmotionBucket) Positive() bool {
	return b == BucketCalm || b == BucketHappy || b == BucketExcited
}

// ParseEmotion resolves a user-supplied name, case-insensitively. Bucket
// names are also fine-grained emotions, so "calm" and "happy" parse too.
func ParseEmotion(s string) (Emotion, error) {
	e := Emotion(strings.ToLower(strings.TrimSpace(s)))
	if !e.Valid() {
		return "", newInputError("emotion", "unknown emotion %q", s)
	}
	return e, nil
}

// ViewGranularity selects the reporting window.
type ViewGranularity string

const (
	ViewToday   ViewGranularity = "today"
	ViewWeekly  ViewGranularity = "weekly"
	ViewMonthly ViewGranularity = "monthly"
)

// Views lists every reporting window in ascending span.
var Views = []ViewGranularity{ViewToday, ViewWeekly, ViewMonthly}

// ParseView resolves a view name, case-insensitively.
func ParseView(s string) (ViewGranularity, error) {
	v := ViewGranularity(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := viewThresholds[v]; !ok {
		return "", newInputError("view", "unknown view %q (want today, weekly or monthly)", s)
	}
	return v, nil
}

// ResourceBucketKey identifies a curated resource list.
type ResourceBucketKey string

const (
	ResourceBalanced   ResourceBucketKey = "balanced"
	ResourceStruggling ResourceBucketKey = "struggling"
	ResourceEnergized  ResourceBucketKey = "energized"
	ResourceTired      ResourceBucketKey = "tired"
	ResourceDefault    ResourceBucketKey = "default"
)

// ResourceBucketKeys lists every bucket key.
var ResourceBucketKeys = []ResourceBucketKey{
	ResourceBalanced,
	ResourceStruggling,
	ResourceEnergized,
	ResourceTired,
	ResourceDefault,
}

// ResourceCategory is the kind of a curated resource.
type ResourceCategory string

const (
	CategoryTool    ResourceCategory = "tool"
	CategoryReading ResourceCategory = "reading"
	CategoryAudio   ResourceCategory = "audio"
	CategoryVideo   ResourceCategory = "video"
)

// ResourceCategories lists the categories in display order. Every bucket
// carries exactly one resource per category.
var ResourceCategories = []ResourceCategory{
	CategoryTool,
	CategoryReading,
	CategoryAudio,
	CategoryVideo,
}

// NarrativeSource records where a narrative sentence came from.
type NarrativeSource string

const (
	NarrativeRules     NarrativeSource = "rules"
	NarrativeAugmented NarrativeSource = "augmented"
)
