package cli

import (
	"fmt"

	"github.com/alexanderramin/moodlog/internal/app"
	"github.com/alexanderramin/moodlog/internal/cli/formatter"
	"github.com/alexanderramin/moodlog/internal/domain"
	"github.com/spf13/cobra"
)

func newListCmd(a *App) *cobra.Command {
	var view viewFlag
	var recent int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks logged in a window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := a.now()
			if cmd.Flags().Changed("recent") {
				records, err := a.Tasks.RecentRecords(cmd.Context(), recent)
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd.OutOrStdout(), records)
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRecentRecords(records, now))
				return nil
			}

			resp, err := a.Tasks.ListRecords(cmd.Context(), app.ListRecordsRequest{View: view.view, Now: &now})
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRecords(resp, now))
			return nil
		},
	}

	addViewFlag(cmd, &view)
	cmd.Flags().IntVar(&recent, "recent", 10, "List the N most recent tasks instead of a window")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	cmd.MarkFlagsMutuallyExclusive("view", "recent")

	return cmd
}

func newShowCmd(a *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one logged task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := a.Tasks.GetRecord(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), rec)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRecord(rec, a.now()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of formatted output")
	return cmd
}

func newDeleteCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a logged task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.Tasks.DeleteRecord(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.StyleGreen.Render("✔ Deleted"), formatter.Dim(args[0]))
			return nil
		},
	}
}

type taxonomyEntry struct {
	Bucket   domain.EmotionBucket `json:"bucket"`
	Positive bool                 `json:"positive"`
	Emotions []domain.Emotion     `json:"emotions"`
}

func newEmotionsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "emotions",
		Short: "Show the emotion taxonomy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !asJSON {
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaxonomy())
				return nil
			}
			entries := make([]taxonomyEntry, 0, len(domain.Buckets))
			for _, b := range domain.Buckets {
				entry := taxonomyEntry{Bucket: b, Positive: b.Positive()}
				for _, e := range domain.Emotions {
					if eb, _ := e.Bucket(); eb == b {
						entry.Emotions = append(entry.Emotions, e)
					}
				}
				entries = append(entries, entry)
			}
			return writeJSON(cmd.OutOrStdout(), entries)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}
