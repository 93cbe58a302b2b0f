package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/syllabus/internal/cli/formatter"
	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/progress"
	"github.com/alexanderramin/syllabus/internal/state"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show countdown, daily quote and overall progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := app.Tracker.Dispatch(cmdContext(cmd), state.UpdateCurrentDate{})
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStatus(s, app.Tracker.Now()))
			return nil
		},
	}
}

func newAnalysisCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "analysis",
		Short: "Show chapter and activity completion per subject",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAnalysis(app.Tracker.State().Subjects))
			return nil
		},
	}
}

func newPriorityCmd(app *App) *cobra.Command {
	var subjectFlag, difficulty string

	cmd := &cobra.Command{
		Use:   "priority",
		Short: "List a subject's chapters at one difficulty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDifficulty(difficulty)
			if err != nil {
				return err
			}
			subj, err := resolveSubjectOrActive(app.Tracker.State(), subjectFlag)
			if err != nil {
				return err
			}
			rows := progress.FilterByDifficulty(subj, d)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPriority(subj, d, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&subjectFlag, "subject", "", "Subject (defaults to the active subject)")
	cmd.Flags().StringVar(&difficulty, "difficulty", string(domain.DifficultyHard), "Difficulty (easy|medium|hard|none)")

	return cmd
}

func newHowToCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "howto",
		Short: "Show a short usage guide",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHowTo())
			return nil
		},
	}
}

func parseDifficulty(s string) (domain.Difficulty, error) {
	if !domain.ValidDifficulties[s] {
		return "", fmt.Errorf("invalid difficulty %q (use easy, medium, hard or none)", s)
	}
	return domain.Difficulty(s), nil
}
