package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/alexanderramin/moodlog/internal/app"
	"github.com/alexanderramin/moodlog/internal/cli/formatter"
	"github.com/alexanderramin/moodlog/internal/domain"
	"github.com/spf13/cobra"
)

func newReflectCmd(a *App) *cobra.Command {
	var view viewFlag
	var augment, asJSON bool

	cmd := &cobra.Command{
		Use:   "reflect",
		Short: "Summarize how a window felt and suggest resources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			now := a.now()
			req := app.ReflectRequest{View: view.view, Now: &now, Augment: augment}

			if augment && !asJSON {
				warnIfUnavailable(ctx, a, cmd.ErrOrStderr())
				if a.interactive() {
					return reflectStreaming(ctx, a, req, out, cmd.ErrOrStderr())
				}
			}

			resp, err := a.Reflect.Reflect(ctx, req)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(out, resp)
			}
			fmt.Fprintln(out, formatter.FormatReflection(resp))
			return nil
		},
	}

	addViewFlag(cmd, &view)
	cmd.Flags().BoolVar(&augment, "augment", false, "Ask the configured language model to rephrase the narrative")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of formatted output")

	return cmd
}

// reflectStreaming prints the rule-based reflection at once, then the
// augmented narrative if the gateway returns one.
func reflectStreaming(ctx context.Context, a *App, req app.ReflectRequest, out, errOut io.Writer) error {
	req.Augment = false
	resp, updates, err := a.Reflect.ReflectStream(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, formatter.FormatReflection(resp))

	stop := formatter.StartSpinner(errOut, "Asking the model for another take...")
	var augmented *domain.NarrativeResult
	for n := range updates {
		augmented = &n
	}
	stop()

	if augmented != nil {
		fmt.Fprintln(out, formatter.RenderBox("Another take", formatter.FormatNarrative(*augmented, resp.TaskCount)))
	}
	return nil
}

func warnIfUnavailable(ctx context.Context, a *App, errOut io.Writer) {
	if !a.Reflect.AugmentationAvailable(ctx) {
		fmt.Fprintln(errOut, formatter.Dim("Augmentation is not available; showing the rule-based narrative."))
	}
}

func newRadarCmd(a *App) *cobra.Command {
	var view viewFlag
	var radius float64
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "radar",
		Short: "Show radar chart geometry for a window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := a.now()
			resp, err := a.Reflect.Reflect(cmd.Context(), app.ReflectRequest{View: view.view, Now: &now, Radius: radius})
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), resp.Radar)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRadar(resp.Radar))
			return nil
		},
	}

	addViewFlag(cmd, &view)
	cmd.Flags().Float64Var(&radius, "radius", 0, "Chart radius in output units (default 100)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")

	return cmd
}

func newResourcesCmd(a *App) *cobra.Command {
	var view viewFlag
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "resources",
		Short: "Suggest resources for how a window felt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := a.now()
			resp, err := a.Reflect.Reflect(cmd.Context(), app.ReflectRequest{View: view.view, Now: &now})
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), struct {
					Bucket    domain.ResourceBucketKey `json:"bucket"`
					Scores    domain.ResourceScores    `json:"scores"`
					Resources []domain.Resource        `json:"resources"`
				}{resp.Bucket, resp.Scores, resp.Resources})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatResources(resp.Bucket, resp.Resources))
			return nil
		},
	}

	addViewFlag(cmd, &view)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of formatted output")

	return cmd
}

func newOverviewCmd(a *App) *cobra.Command {
	var augment, asJSON bool

	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Reflect on today, this week and this month at once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if augment && !asJSON {
				warnIfUnavailable(ctx, a, cmd.ErrOrStderr())
			}

			now := a.now()
			var stop func()
			if augment && !asJSON && a.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Reflecting...")
			}
			resp, err := a.Reflect.Overview(ctx, app.OverviewRequest{Now: &now, Augment: augment})
			if stop != nil {
				stop()
			}
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatOverview(resp))
			return nil
		},
	}

	cmd.Flags().BoolVar(&augment, "augment", false, "Ask the configured language model to rephrase each narrative")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of formatted output")

	return cmd
}
