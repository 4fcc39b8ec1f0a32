package cli

import (
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/alexanderramin/moodlog/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// viewFlag is a pflag.Value that only accepts known views.
type viewFlag struct {
	view domain.ViewGranularity
}

var _ pflag.Value = (*viewFlag)(nil)

func (f *viewFlag) String() string { return string(f.view) }

func (f *viewFlag) Set(s string) error {
	v, err := domain.ParseView(s)
	if err != nil {
		return err
	}
	f.view = v
	return nil
}

func (f *viewFlag) Type() string { return "view" }

func viewNames() []string {
	names := make([]string, len(domain.Views))
	for i, v := range domain.Views {
		names[i] = string(v)
	}
	return names
}

// addViewFlag registers --view on cmd with shell completion.
func addViewFlag(cmd *cobra.Command, f *viewFlag) {
	if f.view == "" {
		f.view = domain.ViewToday
	}
	cmd.Flags().Var(f, "view", "Reporting window: "+strings.Join(viewNames(), ", "))
	_ = cmd.RegisterFlagCompletionFunc("view", cobra.FixedCompletions(viewNames(), cobra.ShellCompDirectiveNoFileComp))
}

func emotionNames() []string {
	names := make([]string, len(domain.Emotions))
	for i, e := range domain.Emotions {
		names[i] = string(e)
	}
	return names
}

// parseEmotions resolves repeated or comma-separated -e values.
func parseEmotions(raw []string) ([]domain.Emotion, error) {
	var out []domain.Emotion
	for _, r := range raw {
		for _, part := range strings.Split(r, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			e, err := domain.ParseEmotion(part)
			if err != nil {
				return nil, err
			}
			out = append(out, e)
		}
	}
	return out, nil
}

// parseAt accepts an RFC3339 timestamp or an HH:MM time on now's day.
func parseAt(s string, now time.Time) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	clock, err := time.ParseInLocation("15:04", s, now.Location())
	if err != nil {
		return nil, &domain.InputError{Field: "at", Reason: "want RFC3339 or HH:MM, got " + s}
	}
	y, m, d := now.Date()
	t := time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, now.Location())
	return &t, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
