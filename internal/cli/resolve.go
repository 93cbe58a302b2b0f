package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/syllabus/internal/domain"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrAmbiguous = errors.New("ambiguous")
)

// resolve picks one item by, in order: exact id, case-insensitive name,
// unique id prefix.
func resolve[T any](items []T, id, name func(T) string, kind, input string) (T, error) {
	var zero T
	input = strings.TrimSpace(input)
	if input == "" {
		return zero, fmt.Errorf("%s is required", kind)
	}

	for _, it := range items {
		if id(it) == input {
			return it, nil
		}
	}

	var byName []T
	for _, it := range items {
		if strings.EqualFold(strings.TrimSpace(name(it)), input) {
			byName = append(byName, it)
		}
	}
	switch len(byName) {
	case 1:
		return byName[0], nil
	case 0:
	default:
		return zero, fmt.Errorf("%s name %q matches %d items, use the id: %w", kind, input, len(byName), ErrAmbiguous)
	}

	var byPrefix []T
	for _, it := range items {
		if strings.HasPrefix(id(it), input) {
			byPrefix = append(byPrefix, it)
		}
	}
	switch len(byPrefix) {
	case 0:
		return zero, fmt.Errorf("%s %q: %w", kind, input, ErrNotFound)
	case 1:
		return byPrefix[0], nil
	default:
		return zero, fmt.Errorf("%s id prefix %q matches %d items: %w", kind, input, len(byPrefix), ErrAmbiguous)
	}
}

func resolveSubject(s domain.AppState, input string) (domain.Subject, error) {
	return resolve(s.Subjects,
		func(x domain.Subject) string { return x.ID },
		func(x domain.Subject) string { return x.Name },
		"subject", input)
}

// resolveSubjectOrActive falls back to the active subject when input is empty.
func resolveSubjectOrActive(s domain.AppState, input string) (domain.Subject, error) {
	if input == "" {
		input = s.ActiveSubject
	}
	return resolveSubject(s, input)
}

// chapterRef is a chapter together with its owning subject.
type chapterRef struct {
	Subject domain.Subject
	Chapter domain.Chapter
}

// resolveChapter searches one subject when subjectInput is set, otherwise
// every subject.
func resolveChapter(s domain.AppState, subjectInput, input string) (chapterRef, error) {
	subjects := s.Subjects
	if subjectInput != "" {
		subj, err := resolveSubject(s, subjectInput)
		if err != nil {
			return chapterRef{}, err
		}
		subjects = []domain.Subject{subj}
	}

	var refs []chapterRef
	for _, subj := range subjects {
		for _, ch := range subj.Chapters {
			refs = append(refs, chapterRef{Subject: subj, Chapter: ch})
		}
	}
	return resolve(refs,
		func(r chapterRef) string { return r.Chapter.ID },
		func(r chapterRef) string { return r.Chapter.Name },
		"chapter", input)
}

func resolveActivity(ch domain.Chapter, input string) (domain.Activity, error) {
	return resolve(ch.Activities,
		func(a domain.Activity) string { return a.ID },
		func(a domain.Activity) string { return a.Name },
		"activity", input)
}

func resolveTest(s domain.AppState, input string) (domain.Test, error) {
	return resolve(s.Tests,
		func(t domain.Test) string { return t.ID },
		func(t domain.Test) string { return t.Name },
		"test", input)
}
