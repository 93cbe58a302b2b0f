package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/syllabus/internal/testutil"
)

func TestResolveChapter(t *testing.T) {
	s := testutil.NewTestState(
		testutil.WithChapters("physics",
			testutil.NewTestChapter("physics", "Kinematics", testutil.WithChapterID("ch-kin-1")),
			testutil.NewTestChapter("physics", "Rotation", testutil.WithChapterID("ch-rot-1")),
		),
		testutil.WithChapters("chemistry",
			testutil.NewTestChapter("chemistry", "Kinetics", testutil.WithChapterID("ch-kt-2")),
			testutil.NewTestChapter("chemistry", "Rotation", testutil.WithChapterID("ch-rot-2")),
		),
	)

	tests := []struct {
		name    string
		subject string
		input   string
		wantID  string
		wantErr error
	}{
		{name: "exact id", input: "ch-rot-2", wantID: "ch-rot-2"},
		{name: "name ignores case", input: "kinematics", wantID: "ch-kin-1"},
		{name: "unique prefix", input: "ch-kt", wantID: "ch-kt-2"},
		{name: "duplicate name", input: "Rotation", wantErr: ErrAmbiguous},
		{name: "duplicate name within subject", subject: "Chemistry", input: "Rotation", wantID: "ch-rot-2"},
		{name: "ambiguous prefix", input: "ch-rot", wantErr: ErrAmbiguous},
		{name: "missing", input: "Optics", wantErr: ErrNotFound},
		{name: "unknown subject", subject: "Biology", input: "Rotation", wantErr: ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := resolveChapter(s, tt.subject, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, ref.Chapter.ID)
		})
	}
}

func TestResolveSubjectOrActive(t *testing.T) {
	s := testutil.NewTestState()
	s.ActiveSubject = "maths"

	subj, err := resolveSubjectOrActive(s, "")
	require.NoError(t, err)
	assert.Equal(t, "Mathematics", subj.Name)

	subj, err = resolveSubjectOrActive(s, "chem")
	require.NoError(t, err)
	assert.Equal(t, "chemistry", subj.ID)
}

func TestResolve_EmptyInput(t *testing.T) {
	_, err := resolveTest(testutil.NewTestState(), "  ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "test is required")
}
