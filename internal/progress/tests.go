package progress

import (
	"math"

	"github.com/alexanderramin/syllabus/internal/domain"
)

// TestAnalysis aggregates all recorded practice tests.
type TestAnalysis struct {
	TotalTests   int
	AverageMarks float64
	BestScore    int
	WorstScore   int
	// Accuracy is correct/attempted as a percentage rounded to one decimal.
	Accuracy float64
	Subjects []SubjectTestStats
}

// SubjectTestStats sums per-subject rows across tests, keyed by subject name.
type SubjectTestStats struct {
	Name      string
	Correct   int
	Incorrect int
	Total     int
}

// Accuracy returns correct/(correct+incorrect) as a percentage.
func (s SubjectTestStats) Accuracy() float64 {
	attempted := s.Correct + s.Incorrect
	if attempted == 0 {
		return 0
	}
	return float64(s.Correct) / float64(attempted) * 100
}

// AnalyzeTests returns nil when there are no tests.
func AnalyzeTests(tests []domain.Test) *TestAnalysis {
	if len(tests) == 0 {
		return nil
	}

	a := &TestAnalysis{
		TotalTests: len(tests),
		BestScore:  math.MinInt,
		WorstScore: math.MaxInt,
	}

	var sumMarks, correct, attempted int
	index := make(map[string]int)
	for _, t := range tests {
		sumMarks += t.TotalMarks
		if t.TotalMarks > a.BestScore {
			a.BestScore = t.TotalMarks
		}
		if t.TotalMarks < a.WorstScore {
			a.WorstScore = t.TotalMarks
		}
		correct += t.Correct
		attempted += t.Correct + t.Incorrect

		for _, s := range t.Subjects {
			i, ok := index[s.Name]
			if !ok {
				i = len(a.Subjects)
				index[s.Name] = i
				a.Subjects = append(a.Subjects, SubjectTestStats{Name: s.Name})
			}
			a.Subjects[i].Correct += s.Correct
			a.Subjects[i].Incorrect += s.Incorrect
			a.Subjects[i].Total += s.Correct + s.Incorrect + s.Unattempted
		}
	}

	a.AverageMarks = float64(sumMarks) / float64(len(tests))
	if attempted > 0 {
		a.Accuracy = math.Round(float64(correct)/float64(attempted)*1000) / 10
	}
	return a
}
