package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// FallbackSubjectID is the active-subject sentinel used when no subject remains.
const FallbackSubjectID = "physics"

type Activity struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

type Subject struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ShortName string    `json:"shortName"`
	Chapters  []Chapter `json:"chapters"`
}

// ValidateSubjectInput checks the user-supplied fields of a new subject.
// The short name is shown in narrow tabs and must be 1-3 characters.
func ValidateSubjectInput(name, shortName string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("subject name is required")
	}
	n := utf8.RuneCountInString(strings.TrimSpace(shortName))
	if n < 1 || n > 3 {
		return fmt.Errorf("short name %q must be 1-3 characters", shortName)
	}
	return nil
}

// FindChapter returns the chapter with the given id, or nil.
func (s *Subject) FindChapter(id string) *Chapter {
	for i := range s.Chapters {
		if s.Chapters[i].ID == id {
			return &s.Chapters[i]
		}
	}
	return nil
}
