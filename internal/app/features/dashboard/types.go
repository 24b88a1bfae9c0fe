// internal/app/features/dashboard/types.go
package dashboard

import (
	"html/template"
	"strings"

	"github.com/projectguardian/rescuehub/internal/app/policy/statuspolicy"
	"github.com/projectguardian/rescuehub/internal/app/system/htmlsanitize"
	"github.com/projectguardian/rescuehub/internal/app/system/viewdata"
	"github.com/projectguardian/rescuehub/internal/domain/models"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Report view model                                                           |
*─────────────────────────────────────────────────────────────────────────────*/

// reportVM is one report prepared for rendering: user-entered text sanitized,
// timestamps formatted, and the single legal workflow action (if any)
// pre-computed so templates never offer an illegal transition.
type reportVM struct {
	ID           string
	Title        string
	Description  template.HTML
	LocationText string
	ImageURL     string
	Date         string
	Time         string
	Day          string
	Status       string
	StatusClass  string
	CreatedAt    string

	NextStatus string // "" when the report is terminal
	NextLabel  string
	Terminal   bool
}

func newReportVM(r models.Report) reportVM {
	next := statuspolicy.NextStatus(r.Status)

	vm := reportVM{
		ID:           r.ID,
		Title:        htmlsanitize.Sanitize(r.Title),
		Description:  htmlsanitize.PrepareForDisplay(r.Description),
		LocationText: htmlsanitize.Sanitize(r.LocationText),
		ImageURL:     r.ImageURL,
		Date:         r.Date,
		Time:         r.Time,
		Day:          r.Day,
		Status:       r.Status,
		StatusClass:  statusClass(r.Status),
		NextStatus:   next,
		Terminal:     statuspolicy.IsTerminal(r.Status),
	}
	if !r.CreatedAt.IsZero() {
		vm.CreatedAt = r.CreatedAt.Format("Jan 2, 2006 15:04")
	}
	switch next {
	case models.StatusInProgress:
		vm.NextLabel = "Mark In-Progress"
	case models.StatusResolved:
		vm.NextLabel = "Mark Resolved"
	}
	return vm
}

func newReportVMs(reports []models.Report) []reportVM {
	out := make([]reportVM, 0, len(reports))
	for _, r := range reports {
		out = append(out, newReportVM(r))
	}
	return out
}

// statusClass maps a status onto a CSS hook, e.g. "status-in-progress".
func statusClass(status string) string {
	return "status-" + strings.ToLower(strings.ReplaceAll(status, " ", "-"))
}

/*─────────────────────────────────────────────────────────────────────────────*
| Template-data                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

// reportForm carries the submit form's entered values so a failed submission
// re-renders with everything the user typed still in place.
type reportForm struct {
	Title        string
	Description  string
	LocationText string
	ImageURL     string
	Date         string
	Time         string
	Day          string
}

type submitterData struct {
	viewdata.BaseVM
	Flash     string
	FormError string
	Form      reportForm
	Reports   []reportVM
}

type organizationData struct {
	viewdata.BaseVM
	Flash      string
	FlashError string

	Filter          string
	Total           int
	CountSubmitted  int
	CountInProgress int
	CountResolved   int

	Reports []reportVM
}
