package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/syllabus/internal/cli/formatter"
	"github.com/alexanderramin/syllabus/internal/state"
)

func newActivityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Manage the activities of a chapter",
	}

	cmd.PersistentFlags().String("subject", "", "Subject to look chapters up in (defaults to all)")

	cmd.AddCommand(
		newActivityAddCmd(app),
		newActivityToggleCmd(app),
		newActivityRenameCmd(app),
		newActivityRemoveCmd(app),
	)

	return cmd
}

func newActivityAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add CHAPTER NAME...",
		Short: "Add one or more activities to a chapter",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := chapterArg(app, cmd, args[0])
			if err != nil {
				return err
			}
			ctx := cmdContext(cmd)
			var added []string
			for _, name := range args[1:] {
				if err := requireName(name); err != nil {
					return err
				}
				app.Tracker.Dispatch(ctx, state.AddActivity{ChapterID: ref.Chapter.ID, Name: name})
				added = append(added, trimmed(name))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s\n", strings.Join(added, ", "), ref.Chapter.Name)
			return nil
		},
	}
}

func newActivityToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle CHAPTER ACTIVITY",
		Short: "Flip an activity between done and not done",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := chapterArg(app, cmd, args[0])
			if err != nil {
				return err
			}
			act, err := resolveActivity(ref.Chapter, args[1])
			if err != nil {
				return err
			}
			app.Tracker.Dispatch(cmdContext(cmd), state.ToggleActivity{ChapterID: ref.Chapter.ID, ActivityID: act.ID})
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.Checkbox(!act.Completed), act.Name)
			return nil
		},
	}
}

func newActivityRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename CHAPTER ACTIVITY NAME",
		Short: "Rename an activity",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := chapterArg(app, cmd, args[0])
			if err != nil {
				return err
			}
			act, err := resolveActivity(ref.Chapter, args[1])
			if err != nil {
				return err
			}
			if err := requireName(args[2]); err != nil {
				return err
			}
			app.Tracker.Dispatch(cmdContext(cmd), state.RenameActivity{ChapterID: ref.Chapter.ID, ActivityID: act.ID, Name: args[2]})
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %s\n", act.Name, trimmed(args[2]))
			return nil
		},
	}
}

func newActivityRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm CHAPTER ACTIVITY",
		Aliases: []string{"remove"},
		Short:   "Delete an activity",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := chapterArg(app, cmd, args[0])
			if err != nil {
				return err
			}
			act, err := resolveActivity(ref.Chapter, args[1])
			if err != nil {
				return err
			}
			app.Tracker.Dispatch(cmdContext(cmd), state.DeleteActivity{ChapterID: ref.Chapter.ID, ActivityID: act.ID})
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted activity %s from %s\n", act.Name, ref.Chapter.Name)
			return nil
		},
	}
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
