package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/syllabus/internal/cli/formatter"
	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/schedule"
	"github.com/alexanderramin/syllabus/internal/state"
)

func newChapterCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chapter",
		Short: "Manage chapters",
	}

	cmd.PersistentFlags().String("subject", "", "Subject to look chapters up in (defaults to all)")

	cmd.AddCommand(
		newChapterAddCmd(app),
		newChapterListCmd(app),
		newChapterShowCmd(app),
		newChapterRenameCmd(app),
		newChapterRemoveCmd(app),
		newChapterDifficultyCmd(app),
		newChapterTargetCmd(app),
		newChapterCompleteCmd(app, true),
		newChapterCompleteCmd(app, false),
	)

	return cmd
}

func subjectFlag(cmd *cobra.Command) string {
	v, _ := cmd.Flags().GetString("subject")
	return v
}

// chapterArg resolves args[0] honouring the --subject flag.
func chapterArg(app *App, cmd *cobra.Command, input string) (chapterRef, error) {
	return resolveChapter(app.Tracker.State(), subjectFlag(cmd), input)
}

func newChapterAddCmd(app *App) *cobra.Command {
	var difficulty string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a chapter to a subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDifficulty(difficulty)
			if err != nil {
				return err
			}
			subj, err := resolveSubjectOrActive(app.Tracker.State(), subjectFlag(cmd))
			if err != nil {
				return err
			}
			s := app.Tracker.Dispatch(cmdContext(cmd), state.AddChapter{SubjectID: subj.ID, Name: args[0], Difficulty: d})
			updated := s.FindSubject(subj.ID)
			if updated == nil || len(updated.Chapters) == len(subj.Chapters) {
				return fmt.Errorf("chapter name is required")
			}
			ch := updated.Chapters[len(updated.Chapters)-1]
			fmt.Fprintf(cmd.OutOrStdout(), "Added chapter %s to %s %s\n", ch.Name, subj.Name, formatter.TruncID(ch.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&difficulty, "difficulty", string(domain.DifficultyNone), "Difficulty (easy|medium|hard|none)")

	return cmd
}

func newChapterListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the chapters of a subject",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := app.Tracker.State()
			subj, err := resolveSubjectOrActive(s, subjectFlag(cmd))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatSubjectTabs(s.Subjects, subj.ID))
			fmt.Fprintln(out)
			fmt.Fprint(out, formatter.FormatChapterList(subj, app.Tracker.Now()))
			return nil
		},
	}
}

func newChapterShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show CHAPTER",
		Short: "Show a chapter's activities and revision state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := chapterArg(app, cmd, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatChapterDetail(ref.Subject, ref.Chapter, app.Tracker.Now()))
			return nil
		},
	}
}

func newChapterRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename CHAPTER NAME",
		Short: "Rename a chapter",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := chapterArg(app, cmd, args[0])
			if err != nil {
				return err
			}
			if err := requireName(args[1]); err != nil {
				return err
			}
			app.Tracker.Dispatch(cmdContext(cmd), state.RenameChapter{ChapterID: ref.Chapter.ID, Name: args[1]})
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed chapter %s to %s\n", ref.Chapter.Name, args[1])
			return nil
		},
	}
}

func newChapterRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm CHAPTER",
		Aliases: []string{"remove"},
		Short:   "Delete a chapter",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := chapterArg(app, cmd, args[0])
			if err != nil {
				return err
			}
			ok, err := confirm(app, yes, fmt.Sprintf("Delete chapter %s?", ref.Chapter.Name))
			if err != nil || !ok {
				return err
			}
			app.Tracker.Dispatch(cmdContext(cmd), state.DeleteChapter{ChapterID: ref.Chapter.ID})
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted chapter %s\n", ref.Chapter.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}

func newChapterDifficultyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "difficulty CHAPTER LEVEL",
		Short: "Set a chapter's difficulty (easy|medium|hard|none)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := parseDifficulty(args[1])
			if err != nil {
				return err
			}
			ref, err := chapterArg(app, cmd, args[0])
			if err != nil {
				return err
			}
			app.Tracker.Dispatch(cmdContext(cmd), state.SetChapterDifficulty{ChapterID: ref.Chapter.ID, Difficulty: d})
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", ref.Chapter.Name, d)
			return nil
		},
	}
}

func newChapterTargetCmd(app *App) *cobra.Command {
	var clear bool

	cmd := &cobra.Command{
		Use:   "target CHAPTER [YYYY-MM-DD]",
		Short: "Set or clear a chapter's target date",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := chapterArg(app, cmd, args[0])
			if err != nil {
				return err
			}
			date := ""
			switch {
			case clear:
			case len(args) == 2:
				if err := schedule.ValidateDay(args[1]); err != nil {
					return err
				}
				date = args[1]
			default:
				return fmt.Errorf("give a date or --clear")
			}
			app.Tracker.Dispatch(cmdContext(cmd), state.SetChapterTargetDate{ChapterID: ref.Chapter.ID, TargetDate: date})
			if date == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared target date of %s\n", ref.Chapter.Name)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Target for %s set to %s\n", ref.Chapter.Name, date)
			return nil
		},
	}

	cmd.Flags().BoolVar(&clear, "clear", false, "Remove the target date")

	return cmd
}

// newChapterCompleteCmd builds "complete" (tick every activity) or "reset"
// (untick every activity).
func newChapterCompleteCmd(app *App, completed bool) *cobra.Command {
	use, short, verb := "complete CHAPTER", "Mark every activity in a chapter done", "Completed"
	if !completed {
		use, short, verb = "reset CHAPTER", "Mark every activity in a chapter not done", "Reset"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := chapterArg(app, cmd, args[0])
			if err != nil {
				return err
			}
			app.Tracker.Dispatch(cmdContext(cmd), state.ToggleAllActivities{ChapterID: ref.Chapter.ID, Completed: completed})
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", verb, ref.Chapter.Name, formatter.Plural(len(ref.Chapter.Activities), "activity"))
			return nil
		},
	}
}

func requireName(name string) error {
	if trimmed(name) == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}
