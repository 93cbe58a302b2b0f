package domain

import (
	"fmt"
	"strings"
	"time"
)

type UserProfile struct {
	Name     string `json:"name"`
	Exam     string `json:"exam"`
	Year     string `json:"year"`
	ExamDate string `json:"examDate"`
}

// ValidateUserProfile requires every onboarding field and an ISO exam date.
func ValidateUserProfile(p UserProfile) error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"name", p.Name},
		{"exam", p.Exam},
		{"year", p.Year},
		{"exam date", p.ExamDate},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("profile is missing %s", strings.Join(missing, ", "))
	}
	if _, err := time.Parse("2006-01-02", p.ExamDate); err != nil {
		return fmt.Errorf("exam date %q must be YYYY-MM-DD", p.ExamDate)
	}
	return nil
}
