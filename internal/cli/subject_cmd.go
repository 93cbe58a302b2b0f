package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/syllabus/internal/cli/formatter"
	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/state"
)

func newSubjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subject",
		Short: "Manage subjects",
	}

	cmd.AddCommand(
		newSubjectAddCmd(app),
		newSubjectListCmd(app),
		newSubjectRemoveCmd(app),
		newSubjectUseCmd(app),
	)

	return cmd
}

func newSubjectAddCmd(app *App) *cobra.Command {
	var short string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := domain.ValidateSubjectInput(args[0], short); err != nil {
				return err
			}
			before := len(app.Tracker.State().Subjects)
			s := app.Tracker.Dispatch(cmdContext(cmd), state.AddSubject{Name: args[0], ShortName: short})
			if len(s.Subjects) == before {
				return fmt.Errorf("subject %q was not added", args[0])
			}
			added := s.Subjects[len(s.Subjects)-1]
			fmt.Fprintf(cmd.OutOrStdout(), "Added subject %s [%s] %s\n", added.Name, added.ShortName, formatter.TruncID(added.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&short, "short", "", "Short name shown in tabs (1-3 characters)")
	_ = cmd.MarkFlagRequired("short")

	return cmd
}

func newSubjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List subjects with progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := app.Tracker.State()
			if len(s.Subjects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No subjects. Add one with `subject add`.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSubjectList(s.Subjects, s.ActiveSubject))
			return nil
		},
	}
}

func newSubjectRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm SUBJECT",
		Aliases: []string{"remove"},
		Short:   "Delete a subject and all its chapters",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			subj, err := resolveSubject(app.Tracker.State(), args[0])
			if err != nil {
				return err
			}
			ok, err := confirm(app, yes, fmt.Sprintf("Delete %s and its %s?", subj.Name, formatter.Plural(len(subj.Chapters), "chapter")))
			if err != nil || !ok {
				return err
			}
			s := app.Tracker.Dispatch(cmdContext(cmd), state.DeleteSubject{SubjectID: subj.ID})
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted subject %s; active subject is now %s\n", subj.Name, s.ActiveSubject)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}

func newSubjectUseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "use SUBJECT",
		Short: "Switch the active subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			subj, err := resolveSubject(app.Tracker.State(), args[0])
			if err != nil {
				return err
			}
			app.Tracker.Dispatch(cmdContext(cmd), state.SetActiveSubject{SubjectID: subj.ID})
			fmt.Fprintf(cmd.OutOrStdout(), "Active subject: %s\n", subj.Name)
			return nil
		},
	}
}
