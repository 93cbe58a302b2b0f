package domain

// RevisionEntry records a single revision of a chapter.
type RevisionEntry struct {
	ID   string `json:"id"`
	Date string `json:"date"`
	Time string `json:"time"`
}

// Chapter is a topic within a subject. Progress is always derived from
// Activities and never stored on the chapter.
type Chapter struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Subject    string     `json:"subject"`
	Activities []Activity `json:"activities"`
	TargetDate string     `json:"targetDate,omitempty"`
	Difficulty Difficulty `json:"difficulty"`

	// Revision tracking
	LastRevisedDate       string          `json:"lastRevisedDate,omitempty"`
	ScheduledRevisionDate string          `json:"scheduledRevisionDate,omitempty"`
	ScheduledRevisionTime string          `json:"scheduledRevisionTime,omitempty"`
	NotificationEnabled   bool            `json:"notificationEnabled,omitempty"`
	RevisionCount         int             `json:"revisionCount,omitempty"`
	RevisionHistory       []RevisionEntry `json:"revisionHistory,omitempty"`
}

// CompletedCount returns the number of completed activities.
func (c Chapter) CompletedCount() int {
	n := 0
	for _, a := range c.Activities {
		if a.Completed {
			n++
		}
	}
	return n
}

// IsComplete reports whether the chapter has at least one activity and all
// of them are completed. An empty chapter is never complete.
func (c Chapter) IsComplete() bool {
	return len(c.Activities) > 0 && c.CompletedCount() == len(c.Activities)
}

// HasSchedule reports whether a revision is scheduled for the chapter.
func (c Chapter) HasSchedule() bool {
	return c.ScheduledRevisionDate != ""
}
