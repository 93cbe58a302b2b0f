package domain

type Difficulty string

const (
	DifficultyNone   Difficulty = "none"
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ValidDifficulties is the canonical set of accepted difficulty strings.
var ValidDifficulties = map[string]bool{
	"none": true, "easy": true, "medium": true, "hard": true,
}

// NormalizeDifficulty maps empty or unknown values to DifficultyNone.
func NormalizeDifficulty(d Difficulty) Difficulty {
	if ValidDifficulties[string(d)] {
		return d
	}
	return DifficultyNone
}

// Page identifies one of the top-level screens of the tracker.
type Page string

const (
	PageChecklist    Page = "checklist"
	PageAnalysis     Page = "analysis"
	PagePriority     Page = "priority"
	PageHowTo        Page = "howto"
	PageRevision     Page = "revision"
	PageTest         Page = "test"
	PageTestAnalysis Page = "testanalysis"
	PageDataBackup   Page = "databackup"
)

// Pages lists every page in sidebar order.
var Pages = []Page{
	PageChecklist,
	PageAnalysis,
	PagePriority,
	PageRevision,
	PageTest,
	PageTestAnalysis,
	PageDataBackup,
	PageHowTo,
}

// ValidPage reports whether p names a known page.
func ValidPage(p Page) bool {
	for _, known := range Pages {
		if p == known {
			return true
		}
	}
	return false
}

// Label returns the human-readable menu label for a page.
func (p Page) Label() string {
	switch p {
	case PageChecklist:
		return "Checklist"
	case PageAnalysis:
		return "Analysis"
	case PagePriority:
		return "Priority"
	case PageHowTo:
		return "How to use"
	case PageRevision:
		return "Revision"
	case PageTest:
		return "Tests"
	case PageTestAnalysis:
		return "Test analysis"
	case PageDataBackup:
		return "Data backup"
	default:
		return string(p)
	}
}
