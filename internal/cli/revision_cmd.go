package cli

import (
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/syllabus/internal/cli/formatter"
	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/schedule"
	"github.com/alexanderramin/syllabus/internal/state"
)

func newRevisionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "revision",
		Aliases: []string{"rev"},
		Short:   "Track and schedule chapter revisions",
	}

	cmd.PersistentFlags().String("subject", "", "Subject to look chapters up in (defaults to all)")

	cmd.AddCommand(
		newRevisionMarkCmd(app),
		newRevisionUndoCmd(app),
		newRevisionScheduleCmd(app),
		newRevisionCancelCmd(app),
		newRevisionListCmd(app),
	)

	return cmd
}

func newRevisionMarkCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mark CHAPTER",
		Short: "Record a revision of a chapter now",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := chapterArg(app, cmd, args[0])
			if err != nil {
				return err
			}
			app.Tracker.Dispatch(cmdContext(cmd), state.MarkChapterRevised{ChapterID: ref.Chapter.ID})
			count := revisionCount(app, ref.Chapter.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Revised %s (%s)\n", ref.Chapter.Name, formatter.Plural(count, "revision"))
			return nil
		},
	}
}

func newRevisionUndoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "undo CHAPTER",
		Short: "Remove the most recent revision of a chapter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := chapterArg(app, cmd, args[0])
			if err != nil {
				return err
			}
			if ref.Chapter.RevisionCount == 0 {
				return fmt.Errorf("%s has no revisions to undo", ref.Chapter.Name)
			}
			app.Tracker.Dispatch(cmdContext(cmd), state.UndoChapterRevision{ChapterID: ref.Chapter.ID})
			count := revisionCount(app, ref.Chapter.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Undid last revision of %s (%s left)\n", ref.Chapter.Name, formatter.Plural(count, "revision"))
			return nil
		},
	}
}

func newRevisionScheduleCmd(app *App) *cobra.Command {
	var date, clock string
	var notify bool

	cmd := &cobra.Command{
		Use:   "schedule CHAPTER",
		Short: "Schedule the next revision of a chapter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := schedule.ValidateDay(date); err != nil {
				return err
			}
			if clock != "" {
				if err := schedule.ValidateClock(clock); err != nil {
					return err
				}
			}
			ref, err := chapterArg(app, cmd, args[0])
			if err != nil {
				return err
			}
			app.Tracker.Dispatch(cmdContext(cmd), state.ScheduleRevision{
				ChapterID:          ref.Chapter.ID,
				Date:               date,
				Time:               clock,
				EnableNotification: notify,
			})
			status := schedule.ScheduleStatus(date, app.Tracker.Now())
			if clock != "" {
				status += " at " + clock
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", ref.Chapter.Name, status)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Revision date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&clock, "time", "", "Reminder time (HH:MM, optional)")
	cmd.Flags().BoolVar(&notify, "notify", true, "Send a reminder on the day")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func newRevisionCancelCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel CHAPTER",
		Short: "Cancel a scheduled revision",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := chapterArg(app, cmd, args[0])
			if err != nil {
				return err
			}
			app.Tracker.Dispatch(cmdContext(cmd), state.CancelRevisionSchedule{ChapterID: ref.Chapter.ID})
			fmt.Fprintf(cmd.OutOrStdout(), "Cancelled scheduled revision of %s\n", ref.Chapter.Name)
			return nil
		},
	}
}

func newRevisionListCmd(app *App) *cobra.Command {
	var difficulty string
	var dueOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List chapters with their revision status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter domain.Difficulty
			if difficulty != "" {
				d, err := parseDifficulty(difficulty)
				if err != nil {
					return err
				}
				filter = d
			}
			s := app.Tracker.State()
			subjects := s.Subjects
			if name := subjectFlag(cmd); name != "" {
				subj, err := resolveSubject(s, name)
				if err != nil {
					return err
				}
				subjects = []domain.Subject{subj}
			}
			rows := revisionRows(subjects, filter, dueOnly, app.Tracker.Now())
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRevisionList(rows, app.Tracker.Now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&difficulty, "difficulty", "", "Only chapters at this difficulty")
	cmd.Flags().BoolVar(&dueOnly, "due", false, "Only chapters due today or overdue")

	return cmd
}

var dueUrgencies = []schedule.Urgency{schedule.UrgencyDueToday, schedule.UrgencyOverdue}

func revisionRows(subjects []domain.Subject, difficulty domain.Difficulty, dueOnly bool, now time.Time) []formatter.RevisionRow {
	var rows []formatter.RevisionRow
	for _, subj := range subjects {
		for _, ch := range subj.Chapters {
			if difficulty != "" && domain.NormalizeDifficulty(ch.Difficulty) != difficulty {
				continue
			}
			if dueOnly && !slices.Contains(dueUrgencies, schedule.RevisionUrgency(ch, now)) {
				continue
			}
			rows = append(rows, formatter.RevisionRow{Subject: subj, Chapter: ch})
		}
	}
	return rows
}

func revisionCount(app *App, chapterID string) int {
	_, ch, _ := app.Tracker.Chapter(chapterID)
	return ch.RevisionCount
}
