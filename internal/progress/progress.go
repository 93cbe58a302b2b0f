// Package progress derives completion percentages and test analytics from
// the state tree. Every function is pure and safe to call repeatedly.
package progress

import (
	"math"

	"github.com/alexanderramin/syllabus/internal/domain"
)

// Percent returns round(100*done/total) with half-up rounding, or 0 when
// total is zero.
func Percent(done, total int) int {
	if total <= 0 {
		return 0
	}
	return SafePercent(float64(done) / float64(total) * 100)
}

// SafePercent rounds half up and maps NaN and infinities to 0.
func SafePercent(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(math.Floor(v + 0.5))
}

// ChapterProgress returns the share of completed activities, 0 for none.
func ChapterProgress(activities []domain.Activity) int {
	done := 0
	for _, a := range activities {
		if a.Completed {
			done++
		}
	}
	return Percent(done, len(activities))
}

// SubjectProgress weights by activity count across all chapters, not by
// chapter count.
func SubjectProgress(chapters []domain.Chapter) int {
	done, total := countChapters(chapters)
	return Percent(done, total)
}

// OverallProgress applies the same flattening across all subjects.
func OverallProgress(subjects []domain.Subject) int {
	var done, total int
	for _, s := range subjects {
		d, t := countChapters(s.Chapters)
		done += d
		total += t
	}
	return Percent(done, total)
}

func countChapters(chapters []domain.Chapter) (done, total int) {
	for i := range chapters {
		done += chapters[i].CompletedCount()
		total += len(chapters[i].Activities)
	}
	return done, total
}

// SubjectStats is the per-subject breakdown shown on the analysis page.
type SubjectStats struct {
	SubjectID           string
	Name                string
	ShortName           string
	Progress            int
	TotalChapters       int
	CompletedChapters   int
	TotalActivities     int
	CompletedActivities int
}

// DetailedStats returns one SubjectStats per subject, in subject order.
func DetailedStats(subjects []domain.Subject) []SubjectStats {
	stats := make([]SubjectStats, 0, len(subjects))
	for _, s := range subjects {
		done, total := countChapters(s.Chapters)
		completedChapters := 0
		for i := range s.Chapters {
			if s.Chapters[i].IsComplete() {
				completedChapters++
			}
		}
		stats = append(stats, SubjectStats{
			SubjectID:           s.ID,
			Name:                s.Name,
			ShortName:           s.ShortName,
			Progress:            Percent(done, total),
			TotalChapters:       len(s.Chapters),
			CompletedChapters:   completedChapters,
			TotalActivities:     total,
			CompletedActivities: done,
		})
	}
	return stats
}

// ChapterRow pairs a chapter with its derived progress.
type ChapterRow struct {
	Chapter     domain.Chapter
	SubjectName string
	ShortName   string
	Progress    int
}

// FilterByDifficulty returns the subject's chapters at the given difficulty,
// each with its progress, for the priority view.
func FilterByDifficulty(subject domain.Subject, difficulty domain.Difficulty) []ChapterRow {
	var rows []ChapterRow
	for _, ch := range subject.Chapters {
		if domain.NormalizeDifficulty(ch.Difficulty) != difficulty {
			continue
		}
		rows = append(rows, ChapterRow{
			Chapter:     ch,
			SubjectName: subject.Name,
			ShortName:   subject.ShortName,
			Progress:    ChapterProgress(ch.Activities),
		})
	}
	return rows
}
