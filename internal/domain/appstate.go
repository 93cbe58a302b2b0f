package domain

import "slices"

// DefaultTargetDeadline is the countdown target before a profile is set.
const DefaultTargetDeadline = "2025-12-30"

// AppState is the root of the tracker's state tree. It owns the subject and
// test lists exclusively; every mutation goes through the reducer.
type AppState struct {
	Subjects       []Subject    `json:"subjects"`
	ActiveSubject  string       `json:"activeSubject"`
	SidebarOpen    bool         `json:"sidebarOpen"`
	CurrentPage    Page         `json:"currentPage"`
	TargetDeadline string       `json:"targetDeadline"`
	CurrentDate    string       `json:"currentDate"`
	Loading        bool         `json:"loading"`
	UserProfile    *UserProfile `json:"userProfile,omitempty"`
	Tests          []Test       `json:"tests,omitempty"`
	IsDarkMode     bool         `json:"isDarkMode"`
}

// SeedState returns the first-run state: three empty subjects and no profile.
func SeedState(currentDate string) AppState {
	return AppState{
		Subjects: []Subject{
			{ID: "physics", Name: "Physics", ShortName: "P", Chapters: []Chapter{}},
			{ID: "chemistry", Name: "Chemistry", ShortName: "C", Chapters: []Chapter{}},
			{ID: "maths", Name: "Mathematics", ShortName: "M", Chapters: []Chapter{}},
		},
		ActiveSubject:  "physics",
		CurrentPage:    PageChecklist,
		TargetDeadline: DefaultTargetDeadline,
		CurrentDate:    currentDate,
	}
}

// FindSubject returns the subject with the given id, or nil.
func (s *AppState) FindSubject(id string) *Subject {
	for i := range s.Subjects {
		if s.Subjects[i].ID == id {
			return &s.Subjects[i]
		}
	}
	return nil
}

// FindTest returns the test with the given id, or nil.
func (s *AppState) FindTest(id string) *Test {
	for i := range s.Tests {
		if s.Tests[i].ID == id {
			return &s.Tests[i]
		}
	}
	return nil
}

// HasProfile reports whether onboarding has been completed.
func (s AppState) HasProfile() bool {
	return s.UserProfile != nil
}

// Normalize repairs a state tree that came from outside the reducer (storage
// or an imported backup). It fills defaulted fields and never shares slices
// with the input.
func Normalize(in AppState) AppState {
	out := in
	out.Subjects = make([]Subject, len(in.Subjects))
	for i, subj := range in.Subjects {
		chapters := make([]Chapter, len(subj.Chapters))
		for j, ch := range subj.Chapters {
			ch.Difficulty = NormalizeDifficulty(ch.Difficulty)
			if ch.Subject == "" {
				ch.Subject = subj.ID
			}
			ch.Activities = append([]Activity{}, ch.Activities...)
			ch.RevisionHistory = slices.Clone(ch.RevisionHistory)
			chapters[j] = ch
		}
		subj.Chapters = chapters
		out.Subjects[i] = subj
	}
	if in.UserProfile != nil {
		profile := *in.UserProfile
		out.UserProfile = &profile
	}
	if in.Tests != nil {
		out.Tests = make([]Test, len(in.Tests))
		for i, t := range in.Tests {
			t.Subjects = slices.Clone(t.Subjects)
			out.Tests[i] = t
		}
	}
	if !ValidPage(out.CurrentPage) {
		out.CurrentPage = PageChecklist
	}
	if out.FindSubject(out.ActiveSubject) == nil {
		out.ActiveSubject = firstSubjectID(out.Subjects)
	}
	return out
}

func firstSubjectID(subjects []Subject) string {
	if len(subjects) > 0 {
		return subjects[0].ID
	}
	return FallbackSubjectID
}
