package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/moodlog/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// RelativeDateFrom returns a human-friendly relative date string from a reference time.
func RelativeDateFrom(t time.Time, now time.Time) string {
	days := int(math.Round(t.Sub(now).Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == -1:
		return "Yesterday"
	case days > 0:
		return t.Format("Jan 2")
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// WindowLabel renders a half-open reporting window as an inclusive day range.
func WindowLabel(start, end time.Time) string {
	last := end.Add(-time.Nanosecond)
	if start.Year() == last.Year() && start.YearDay() == last.YearDay() {
		return start.Format("Mon Jan 2")
	}
	return fmt.Sprintf("%s – %s", start.Format("Jan 2"), last.Format("Jan 2"))
}

// TaskCountLabel renders "1 task" or "N tasks".
func TaskCountLabel(n int) string {
	if n == 1 {
		return "1 task"
	}
	return fmt.Sprintf("%d tasks", n)
}

// EmotionList joins emotion tags, each in its bucket color.
func EmotionList(emotions []domain.Emotion) string {
	parts := make([]string, len(emotions))
	for i, e := range emotions {
		parts[i] = EmotionLabel(e)
	}
	return strings.Join(parts, Dim(", "))
}

// Truncate shortens s to n runes, ending with an ellipsis when cut.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 1 {
		return s
	}
	return string(r[:n-1]) + "…"
}

// Title capitalizes the first letter of a lowercase word.
func Title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
