package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/syllabus/internal/cli/formatter"
	"github.com/alexanderramin/syllabus/internal/config"
	"github.com/alexanderramin/syllabus/internal/metrics"
	"github.com/alexanderramin/syllabus/internal/reminder"
	"github.com/alexanderramin/syllabus/internal/service"
)

// App holds everything the commands need.
type App struct {
	Tracker  *service.Tracker
	Backup   *service.BackupService
	Notifier reminder.Notifier
	Metrics  *metrics.Metrics
	Config   config.Config
	Logger   *slog.Logger

	// Interactive enables huh prompts and launches the TUI from the bare
	// root command.
	Interactive bool
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return a.Logger
}

// NewRootCmd creates the top-level "syllabus" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "syllabus",
		Short:         "Exam syllabus, revision and practice-test tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			formatter.ApplyTheme(app.Tracker.State().IsDarkMode)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Interactive {
				return runTUI(cmdContext(cmd), app)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newStatusCmd(app),
		newAnalysisCmd(app),
		newPriorityCmd(app),
		newHowToCmd(app),
		newSubjectCmd(app),
		newChapterCmd(app),
		newActivityCmd(app),
		newRevisionCmd(app),
		newTestCmd(app),
		newProfileCmd(app),
		newDeadlineCmd(app),
		newThemeCmd(app),
		newPageCmd(app),
		newBackupCmd(app),
		newRemindCmd(app),
		newTUICmd(app),
	)

	return root
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
