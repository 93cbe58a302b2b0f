package state

import "github.com/alexanderramin/syllabus/internal/domain"

// Position locates a chapter inside AppState.Subjects.
type Position struct {
	Subject int
	Chapter int
}

// Index maps chapter ids to their position in one state snapshot. It must be
// rebuilt whenever the subject tree changes shape.
type Index struct {
	chapters map[string]Position
}

// NewIndex scans subjects once. When imported data carries duplicate
// chapter ids the first occurrence wins.
func NewIndex(subjects []domain.Subject) Index {
	idx := Index{chapters: make(map[string]Position)}
	for i := range subjects {
		for j := range subjects[i].Chapters {
			id := subjects[i].Chapters[j].ID
			if _, dup := idx.chapters[id]; !dup {
				idx.chapters[id] = Position{Subject: i, Chapter: j}
			}
		}
	}
	return idx
}

// Lookup returns the position of a chapter.
func (x Index) Lookup(chapterID string) (Position, bool) {
	pos, ok := x.chapters[chapterID]
	return pos, ok
}

// Len returns the number of indexed chapters.
func (x Index) Len() int {
	return len(x.chapters)
}

// Chapter resolves chapterID against s, which must be the snapshot the index
// was built from.
func (x Index) Chapter(s domain.AppState, chapterID string) (domain.Subject, domain.Chapter, bool) {
	pos, ok := x.Lookup(chapterID)
	if !ok {
		return domain.Subject{}, domain.Chapter{}, false
	}
	subj := s.Subjects[pos.Subject]
	return subj, subj.Chapters[pos.Chapter], true
}
