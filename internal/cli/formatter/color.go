package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/moodlog/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// BucketStyle returns the style used for an emotion bucket everywhere in the
// CLI, so a bucket keeps its color between the radar, bars and records.
func BucketStyle(b domain.EmotionBucket) lipgloss.Style {
	switch b {
	case domain.BucketCalm:
		return StyleBlue
	case domain.BucketHappy:
		return StyleGreen
	case domain.BucketExcited:
		return StyleYellow
	case domain.BucketFrustrated:
		return StyleRed
	case domain.BucketAnxious:
		return StylePurple
	default:
		return StyleDim
	}
}

// EmotionLabel renders an emotion tag in its bucket's color.
func EmotionLabel(e domain.Emotion) string {
	b, ok := e.Bucket()
	if !ok {
		return StyleDim.Render(string(e))
	}
	return BucketStyle(b).Render(string(e))
}

// BucketIndicator returns a colored resource bucket label such as "● ENERGIZED".
func BucketIndicator(key domain.ResourceBucketKey) string {
	label := "● " + strings.ToUpper(string(key))
	switch key {
	case domain.ResourceStruggling:
		return StyleRed.Render(label)
	case domain.ResourceTired:
		return StyleYellow.Render(label)
	case domain.ResourceEnergized:
		return StyleGreen.Render(label)
	case domain.ResourceBalanced:
		return StyleBlue.Render(label)
	default:
		return StyleDim.Render(label)
	}
}

// SourceBadge marks where a narrative came from.
func SourceBadge(src domain.NarrativeSource) string {
	if src == domain.NarrativeAugmented {
		return StylePurple.Render("✦ augmented")
	}
	return StyleDim.Render("· rules")
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
