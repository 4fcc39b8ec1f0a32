package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/alexanderramin/moodlog/internal/cli/formatter"
	"github.com/alexanderramin/moodlog/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// moodlogHuhTheme applies the gruvbox palette to huh forms.
func moodlogHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorGreen).SetString("[•] ")
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.UnselectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorDim).SetString("[ ] ")
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// emotionOptions lists the taxonomy with each emotion labelled by its bucket.
func emotionOptions() []huh.Option[domain.Emotion] {
	opts := make([]huh.Option[domain.Emotion], 0, len(domain.Emotions))
	for _, e := range domain.Emotions {
		b, _ := e.Bucket()
		label := fmt.Sprintf("%-12s %s", e, formatter.Dim(string(b)))
		opts = append(opts, huh.NewOption(label, e))
	}
	return opts
}

func validateEmotionSelection(selected []domain.Emotion) error {
	if len(selected) == 0 {
		return errors.New("pick at least one emotion")
	}
	return nil
}

// emotionForm asks which emotions a task brought up. The form draws on out
// so stdout stays free for command output.
func emotionForm(description string, value *[]domain.Emotion, out io.Writer) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[domain.Emotion]().
				Title("How did it feel?").
				Description(description).
				Options(emotionOptions()...).
				Height(12).
				Value(value).
				Validate(validateEmotionSelection),
		),
	).WithTheme(moodlogHuhTheme()).
		WithShowHelp(false).
		WithProgramOptions(tea.WithOutput(out))
}
