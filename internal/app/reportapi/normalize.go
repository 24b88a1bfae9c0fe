package reportapi

import (
	"time"

	"github.com/projectguardian/rescuehub/internal/domain/models"
)

// RawReport is a report record as the report service returns it. Older
// deployments of the service used different field names (reportTitle,
// location, imgUrl, ...), so every record goes through Normalize before it
// reaches the rest of the application.
type RawReport map[string]any

// aliasTable declares, per canonical field, the accepted source keys in
// priority order. Normalization walks each list left to right and takes the
// first non-empty value. New backend spellings are added here, not in code.
var aliasTable = []struct {
	canonical string
	aliases   []string
}{
	{"id", []string{"id"}},
	{"title", []string{"title", "reportTitle"}},
	{"description", []string{"description", "reportDescription"}},
	{"locationText", []string{"locationText", "location"}},
	{"imageUrl", []string{"imageUrl", "imgUrl"}},
	{"date", []string{"date", "reportDate"}},
	{"time", []string{"time", "reportTime"}},
	{"day", []string{"day"}},
	{"status", []string{"status"}},
	{"submitterId", []string{"submitterId"}},
}

// Normalize maps a raw record onto the canonical Report shape.
//
// It is pure apart from the createdAt default: a record with no usable
// createdAt is stamped with the supplied now value. Status defaults to
// Submitted when absent so every stored report carries a valid status.
func Normalize(raw RawReport, now time.Time) models.Report {
	fields := make(map[string]string, len(aliasTable))
	for _, entry := range aliasTable {
		for _, key := range entry.aliases {
			if v := stringField(raw, key); v != "" {
				fields[entry.canonical] = v
				break
			}
		}
	}

	status := fields["status"]
	if !models.ValidStatus(status) {
		status = models.StatusSubmitted
	}

	return models.Report{
		ID:           fields["id"],
		Title:        fields["title"],
		Description:  fields["description"],
		LocationText: fields["locationText"],
		ImageURL:     fields["imageUrl"],
		Date:         fields["date"],
		Time:         fields["time"],
		Day:          fields["day"],
		Status:       status,
		CreatedAt:    createdAt(raw, now),
		SubmitterID:  fields["submitterId"],
	}
}

// NormalizeAll normalizes a fetched batch, preserving response order.
func NormalizeAll(raws []RawReport, now time.Time) []models.Report {
	reports := make([]models.Report, 0, len(raws))
	for _, raw := range raws {
		reports = append(reports, Normalize(raw, now))
	}
	return reports
}

func stringField(raw RawReport, key string) string {
	if v, ok := raw[key].(string); ok {
		return v
	}
	return ""
}

func createdAt(raw RawReport, now time.Time) time.Time {
	if v := stringField(raw, "createdAt"); v != "" {
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			return ts
		}
	}
	return now
}
