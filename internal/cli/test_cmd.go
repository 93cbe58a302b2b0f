package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alexanderramin/syllabus/internal/cli/formatter"
	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/progress"
	"github.com/alexanderramin/syllabus/internal/state"
	"github.com/alexanderramin/syllabus/internal/testentry"
)

func newTestCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Record and analyse practice tests",
	}

	cmd.AddCommand(
		newTestAddCmd(app),
		newTestEditCmd(app),
		newTestRemoveCmd(app),
		newTestListCmd(app),
		newTestShowCmd(app),
		newTestAnalysisCmd(app),
	)

	return cmd
}

// testFlags binds the record fields to flags shared by add and edit.
type testFlags struct {
	fields   testFields
	subjects []string
}

func (tf *testFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&tf.fields.Name, "name", "", "Test name")
	fs.StringVar(&tf.fields.DateAttempted, "date", "", "Date attempted (YYYY-MM-DD)")
	fs.StringVar(&tf.fields.Questions, "questions", "", "Total questions (defaults to correct+incorrect+unattempted)")
	fs.StringVar(&tf.fields.Correct, "correct", "", "Correct answers")
	fs.StringVar(&tf.fields.Incorrect, "incorrect", "", "Incorrect answers")
	fs.StringVar(&tf.fields.Unattempted, "unattempted", "", "Unattempted questions")
	fs.StringVar(&tf.fields.TotalTime, "time", "", "Total time taken, e.g. 3h")
	fs.StringArrayVar(&tf.subjects, "subject", nil, "Subject row Name:correct:incorrect:unattempted (repeatable)")
}

// overlay copies the flags the user set onto base.
func (tf *testFlags) overlay(fs *pflag.FlagSet, base testFields) testFields {
	set := func(name string, dst *string, v string) {
		if fs.Changed(name) {
			*dst = v
		}
	}
	set("name", &base.Name, tf.fields.Name)
	set("date", &base.DateAttempted, tf.fields.DateAttempted)
	set("questions", &base.Questions, tf.fields.Questions)
	set("correct", &base.Correct, tf.fields.Correct)
	set("incorrect", &base.Incorrect, tf.fields.Incorrect)
	set("unattempted", &base.Unattempted, tf.fields.Unattempted)
	set("time", &base.TotalTime, tf.fields.TotalTime)
	if fs.Changed("subject") {
		base.Subjects = strings.Join(tf.subjects, "\n")
	}
	if !fs.Changed("questions") && (fs.Changed("correct") || fs.Changed("incorrect") || fs.Changed("unattempted")) {
		base.Questions = ""
	}
	return base
}

func anyTestFlagSet(fs *pflag.FlagSet) bool {
	for _, name := range []string{"name", "date", "questions", "correct", "incorrect", "unattempted", "time", "subject"} {
		if fs.Changed(name) {
			return true
		}
	}
	return false
}

// buildTest validates fields through every wizard stage and returns the
// finished record.
func buildTest(fields testFields, createdAt string) (domain.Test, error) {
	f, err := fields.toForm()
	if err != nil {
		return domain.Test{}, err
	}
	if strings.TrimSpace(fields.Questions) == "" {
		f.TotalQuestions = f.Correct + f.Incorrect + f.Unattempted
	}
	w := testentry.NewWizard(f)
	return w.Save(createdAt)
}

func newTestAddCmd(app *App) *cobra.Command {
	var flags testFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a practice test (interactive wizard without flags)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			createdAt := app.Tracker.Now().UTC().Format(time.RFC3339)
			var (
				t   domain.Test
				err error
			)
			if app.Interactive && !anyTestFlagSet(cmd.Flags()) {
				t, err = runTestWizard(testentry.NewWizard(testentry.Form{}), createdAt)
			} else {
				t, err = buildTest(flags.overlay(cmd.Flags(), testFields{}), createdAt)
			}
			if err != nil {
				return err
			}
			s := app.Tracker.Dispatch(cmdContext(cmd), state.AddTest{Test: t})
			added := s.Tests[len(s.Tests)-1]
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s: %d/%d marks %s\n", added.Name, added.TotalMarks, added.MaxMarks(), formatter.TruncID(added.ID))
			return nil
		},
	}

	flags.register(cmd.Flags())

	return cmd
}

func newTestEditCmd(app *App) *cobra.Command {
	var flags testFlags

	cmd := &cobra.Command{
		Use:   "edit TEST",
		Short: "Edit a recorded test (interactive wizard without flags)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			existing, err := resolveTest(app.Tracker.State(), args[0])
			if err != nil {
				return err
			}
			var t domain.Test
			if app.Interactive && !anyTestFlagSet(cmd.Flags()) {
				t, err = runTestWizard(testentry.NewWizard(testentry.FromTest(existing)), existing.CreatedAt)
			} else {
				t, err = buildTest(flags.overlay(cmd.Flags(), fieldsFromForm(testentry.FromTest(existing))), existing.CreatedAt)
			}
			if err != nil {
				return err
			}
			t.ID = existing.ID
			app.Tracker.Dispatch(cmdContext(cmd), state.EditTest{TestID: testKey(existing), Test: t})
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: %d/%d marks\n", t.Name, t.TotalMarks, t.MaxMarks())
			return nil
		},
	}

	flags.register(cmd.Flags())

	return cmd
}

func newTestRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm TEST",
		Aliases: []string{"remove"},
		Short:   "Delete a recorded test",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolveTest(app.Tracker.State(), args[0])
			if err != nil {
				return err
			}
			ok, err := confirm(app, yes, fmt.Sprintf("Delete test %s?", t.Name))
			if err != nil || !ok {
				return err
			}
			app.Tracker.Dispatch(cmdContext(cmd), state.DeleteTest{TestID: testKey(t)})
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted test %s\n", t.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}

func newTestListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded tests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTestList(app.Tracker.State().Tests))
			return nil
		},
	}
}

func newTestShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show TEST",
		Short: "Show one test with its subject breakdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := resolveTest(app.Tracker.State(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTestDetail(t))
			return nil
		},
	}
}

func newTestAnalysisCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "analysis",
		Short: "Show aggregate test statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTestAnalysis(progress.AnalyzeTests(app.Tracker.State().Tests)))
			return nil
		},
	}
}

// testKey is the identifier the reducer matches a test by. Records imported
// without an id are matched by their creation time.
func testKey(t domain.Test) string {
	if t.ID != "" {
		return t.ID
	}
	return t.CreatedAt
}
