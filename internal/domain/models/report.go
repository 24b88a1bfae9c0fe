package models

import "time"

// Report statuses, in workflow order. A report only ever moves forward:
// Submitted → In-Progress → Resolved.
const (
	StatusSubmitted  = "Submitted"
	StatusInProgress = "In-Progress"
	StatusResolved   = "Resolved"
)

// Statuses lists every valid report status in workflow order.
var Statuses = []string{StatusSubmitted, StatusInProgress, StatusResolved}

// ValidStatus reports whether s is one of the enumerated report statuses.
func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Report is the canonical rescue-incident record after normalization.
// IDs are assigned by the report service; SubmitterID never changes after
// creation.
type Report struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	LocationText string    `json:"locationText"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	Day          string    `json:"day"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	SubmitterID  string    `json:"submitterId"`
}

// ReportDraft is what a submitter fills in. The report service assigns the
// ID and initial status; CreatedAt is defaulted during normalization.
type ReportDraft struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	LocationText string `json:"locationText"`
	ImageURL     string `json:"imageUrl,omitempty"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Day          string `json:"day"`
	SubmitterID  string `json:"submitterId"`
}
