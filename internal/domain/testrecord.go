package domain

// Marking scheme: +4 per correct answer, -1 per incorrect, 0 for unattempted.
const (
	MarksPerCorrect     = 4
	PenaltyPerIncorrect = 1
)

// Marks applies the fixed marking scheme.
func Marks(correct, incorrect int) int {
	return correct*MarksPerCorrect - incorrect*PenaltyPerIncorrect
}

type TestSubject struct {
	Name        string `json:"name"`
	Correct     int    `json:"correct"`
	Incorrect   int    `json:"incorrect"`
	Unattempted int    `json:"unattempted"`
	Marks       int    `json:"marks"`
}

// Test is a practice-exam record. TotalMarks and per-subject Marks are
// computed by the producer before the record reaches the reducer.
type Test struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	DateAttempted  string        `json:"dateAttempted"`
	TotalQuestions int           `json:"totalQuestions"`
	Correct        int           `json:"correct"`
	Incorrect      int           `json:"incorrect"`
	Unattempted    int           `json:"unattempted"`
	TotalTime      string        `json:"totalTime"`
	TotalMarks     int           `json:"totalMarks"`
	Subjects       []TestSubject `json:"subjects"`
	CreatedAt      string        `json:"createdAt"`
}

// Attempted returns the number of answered questions.
func (t Test) Attempted() int {
	return t.Correct + t.Incorrect
}

// MaxMarks returns the score for a paper with every question correct.
func (t Test) MaxMarks() int {
	return t.TotalQuestions * MarksPerCorrect
}
