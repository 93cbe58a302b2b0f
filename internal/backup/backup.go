// Package backup reads and writes the portable JSON backup of the tracker.
// Import accepts any document whose subjects field is an array; there is no
// migration between versions.
package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/schedule"
)

// Version is written into every exported file.
const Version = "1.0"

// ErrInvalidBackup is returned for documents that cannot be restored.
var ErrInvalidBackup = errors.New("invalid backup")

// File is the on-disk backup document.
type File struct {
	Subjects       []domain.Subject    `json:"subjects"`
	CurrentDate    string              `json:"currentDate"`
	TargetDeadline string              `json:"targetDeadline"`
	Tests          []domain.Test       `json:"tests"`
	UserProfile    *domain.UserProfile `json:"userProfile,omitempty"`
	ExportDate     string              `json:"exportDate"`
	Version        string              `json:"version"`
}

// Export captures the persistent parts of s.
func Export(s domain.AppState, now time.Time) File {
	tests := s.Tests
	if tests == nil {
		tests = []domain.Test{}
	}
	return File{
		Subjects:       s.Subjects,
		CurrentDate:    s.CurrentDate,
		TargetDeadline: s.TargetDeadline,
		Tests:          tests,
		UserProfile:    s.UserProfile,
		ExportDate:     now.UTC().Format(time.RFC3339),
		Version:        Version,
	}
}

// Marshal renders f as indented JSON.
func Marshal(f File) ([]byte, error) {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding backup: %w", err)
	}
	return data, nil
}

// FileName is the default name for a backup written at now.
func FileName(now time.Time) string {
	return "syllabus-tracker-backup-" + now.Format(schedule.DayLayout) + ".json"
}

// Parse validates a backup document and returns the state it carries. Fields
// outside the backup format (for example a raw state dump's activeSubject)
// are kept; the caller normalizes the result.
func Parse(data []byte) (domain.AppState, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return domain.AppState{}, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	raw, ok := fields["subjects"]
	if !ok {
		return domain.AppState{}, fmt.Errorf("%w: subjects array missing", ErrInvalidBackup)
	}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '[' {
		return domain.AppState{}, fmt.Errorf("%w: subjects is not an array", ErrInvalidBackup)
	}

	var s domain.AppState
	if err := json.Unmarshal(data, &s); err != nil {
		return domain.AppState{}, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	return s, nil
}
