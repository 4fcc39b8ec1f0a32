package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/moodlog/internal/app"
	"github.com/alexanderramin/moodlog/internal/cli/formatter"
	"github.com/alexanderramin/moodlog/internal/domain"
	"github.com/spf13/cobra"
)

func newLogCmd(a *App) *cobra.Command {
	var emotions []string
	var at string

	cmd := &cobra.Command{
		Use:   "log <description>",
		Short: "Log a task and the emotions it brought up",
		Example: `  moodlog log "review PR" -e calm -e proud
  moodlog log "tax forms" -e anxious,stressed --at 14:30`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseEmotions(emotions)
			if err != nil {
				return err
			}
			description := strings.Join(args, " ")

			if len(parsed) == 0 {
				if !a.interactive() {
					return &domain.InputError{Field: "emotions", Reason: "pass at least one -e/--emotion"}
				}
				if err := emotionForm(description, &parsed, cmd.ErrOrStderr()).Run(); err != nil {
					return err
				}
			}

			loggedAt, err := parseAt(at, a.now())
			if err != nil {
				return err
			}

			rec, err := a.Tasks.LogTask(cmd.Context(), app.LogTaskRequest{
				Description: description,
				Emotions:    parsed,
				LoggedAt:    loggedAt,
			})
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLogged(rec))
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&emotions, "emotion", "e", nil, "Emotion tag, repeatable or comma-separated")
	cmd.Flags().StringVar(&at, "at", "", "When the task happened: RFC3339 or HH:MM today")
	_ = cmd.RegisterFlagCompletionFunc("emotion", cobra.FixedCompletions(emotionNames(), cobra.ShellCompDirectiveNoFileComp))

	return cmd
}
