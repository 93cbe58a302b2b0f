package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/syllabus/internal/cli/formatter"
	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/schedule"
	"github.com/alexanderramin/syllabus/internal/state"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or set your exam profile",
	}

	cmd.AddCommand(
		newProfileSetCmd(app),
		newProfileShowCmd(app),
	)

	return cmd
}

func newProfileSetCmd(app *App) *cobra.Command {
	var p domain.UserProfile

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set your name, exam and exam date (onboarding form without flags)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profile := p
			if current := app.Tracker.State().UserProfile; current != nil {
				profile = mergeProfile(*current, p, cmd)
			}
			if app.Interactive && cmd.Flags().NFlag() == 0 {
				if err := onboardingForm(&profile).Run(); err != nil {
					return err
				}
			}
			profile.Name = strings.TrimSpace(profile.Name)
			if err := domain.ValidateUserProfile(profile); err != nil {
				return err
			}
			s := app.Tracker.Dispatch(cmdContext(cmd), state.SetUserProfile{Profile: profile})
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProfile(s, app.Tracker.Now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&p.Name, "name", "", "Your name")
	cmd.Flags().StringVar(&p.Exam, "exam", "", "Exam, e.g. JEE Advanced")
	cmd.Flags().StringVar(&p.Year, "year", "", "Exam year")
	cmd.Flags().StringVar(&p.ExamDate, "exam-date", "", "Exam date (YYYY-MM-DD), also the countdown target")

	return cmd
}

// mergeProfile keeps current values for flags the user did not pass.
func mergeProfile(current, flags domain.UserProfile, cmd *cobra.Command) domain.UserProfile {
	if cmd.Flags().Changed("name") {
		current.Name = flags.Name
	}
	if cmd.Flags().Changed("exam") {
		current.Exam = flags.Exam
	}
	if cmd.Flags().Changed("year") {
		current.Year = flags.Year
	}
	if cmd.Flags().Changed("exam-date") {
		current.ExamDate = flags.ExamDate
	}
	return current
}

func newProfileShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show your profile and exam countdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProfile(app.Tracker.State(), app.Tracker.Now()))
			return nil
		},
	}
}

func newDeadlineCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deadline",
		Short: "Manage the countdown target date",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set YYYY-MM-DD",
		Short: "Set the countdown target date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := schedule.ValidateDay(args[0]); err != nil {
				return err
			}
			s := app.Tracker.Dispatch(cmdContext(cmd), state.SetTargetDeadline{Date: args[0]})
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCountdown(s.TargetDeadline, app.Tracker.Now()))
			return nil
		},
	})

	return cmd
}

func newThemeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Switch between light and dark output",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Toggle dark mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := app.Tracker.Dispatch(cmdContext(cmd), state.ToggleDarkMode{})
			formatter.ApplyTheme(s.IsDarkMode)
			mode := "light"
			if s.IsDarkMode {
				mode = "dark"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Theme: %s\n", mode)
			return nil
		},
	})

	return cmd
}

func newPageCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "page [NAME]",
		Short: "Choose the page the TUI opens on (lists pages without NAME)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			current := app.Tracker.State().CurrentPage
			if len(args) == 0 {
				for _, p := range domain.Pages {
					marker := "  "
					if p == current {
						marker = "* "
					}
					fmt.Fprintf(out, "%s%-13s %s\n", marker, p, formatter.Dim(p.Label()))
				}
				return nil
			}
			page := domain.Page(strings.ToLower(args[0]))
			if !domain.ValidPage(page) {
				return fmt.Errorf("unknown page %q", args[0])
			}
			app.Tracker.Dispatch(cmdContext(cmd), state.SetCurrentPage{Page: page})
			fmt.Fprintf(out, "Page: %s\n", page.Label())
			return nil
		},
	}
}
