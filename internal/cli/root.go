package cli

import (
	"time"

	"github.com/alexanderramin/moodlog/internal/app"
	"github.com/spf13/cobra"
)

// App holds the use cases and process hooks CLI commands run against.
type App struct {
	Reflect app.ReflectUseCase
	Tasks   app.TaskLogUseCase

	// IsInteractive reports whether stdin is a terminal. Prompts and
	// spinners are only shown when it returns true.
	IsInteractive func() bool
	// SetVerbose raises log verbosity when --verbose is passed.
	SetVerbose func(bool)
	// Now overrides the clock, for tests.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "moodlog" command and registers all
// subcommands against the provided App.
func NewRootCmd(a *App) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "moodlog",
		Short:         "Log how your work feels and reflect on it",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose && a.SetVerbose != nil {
				a.SetVerbose(true)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")

	root.AddCommand(
		newLogCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newDeleteCmd(a),
		newEmotionsCmd(),
		newReflectCmd(a),
		newRadarCmd(a),
		newResourcesCmd(a),
		newOverviewCmd(a),
	)

	return root
}
