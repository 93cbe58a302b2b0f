package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/syllabus/internal/cli/formatter"
	"github.com/alexanderramin/syllabus/internal/reminder"
	"github.com/alexanderramin/syllabus/internal/service"
)

func newRemindCmd(app *App) *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Deliver scheduled revision reminders until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := newReminderRunner(app, app.Notifier)
			if once {
				ok, err := app.Notifier.RequestPermission(cmdContext(cmd))
				if err != nil {
					return fmt.Errorf("requesting reminder permission: %w", err)
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Reminders are disabled.")
					return nil
				}
				n := runner.Tick(cmdContext(cmd))
				fmt.Fprintf(cmd.OutOrStdout(), "%s delivered\n", formatter.Plural(n, "reminder"))
				return nil
			}

			ctx, stop := signal.NotifyContext(cmdContext(cmd), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			app.logger().Info("reminder daemon started",
				"interval", app.Config.ReminderInterval,
				"date_refresh", app.Config.DateRefreshInterval)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Watching revision schedules. Press Ctrl+C to stop."))
			return service.RunBackground(ctx, app.Tracker, app.Config.DateRefreshInterval, nil, runner)
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "Check once, deliver anything due and exit")

	return cmd
}

func newReminderRunner(app *App, n reminder.Notifier) *reminder.Runner {
	opts := []reminder.Option{
		reminder.WithInterval(app.Config.ReminderInterval),
		reminder.WithLogger(app.logger()),
		reminder.WithClock(app.Tracker.Now),
	}
	if app.Metrics != nil {
		opts = append(opts, reminder.WithRecorder(app.Metrics))
	}
	return reminder.NewRunner(app.Tracker, n, opts...)
}
