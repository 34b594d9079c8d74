package model

import (
	"strconv"
	"time"

	"github.com/secmon-lab/checkin/pkg/domain/period"
	"github.com/secmon-lab/checkin/pkg/domain/types"
)

// StatusReport is one submitted weekly status report (WSR) of a project
type StatusReport struct {
	ID           types.ReportID     `json:"id"`
	ProjectID    types.ProjectID    `json:"project_id"`
	CheckInID    types.CheckInID    `json:"check_in_id,omitempty"`
	Month        string             `json:"month"` // Three-letter month name (e.g., "Dec")
	Year         string             `json:"year"`
	WeekLabel    string             `json:"week_label"` // e.g., "Week 2"
	HealthStatus types.HealthStatus `json:"health_status"`
	SubmittedAt  time.Time          `json:"submitted_at"`
	IsLatest     bool               `json:"is_latest"`
}

// NewStatusReport creates the status report entry for a submitted check-in
func NewStatusReport(checkIn *CheckIn, submittedAt time.Time) *StatusReport {
	return &StatusReport{
		ID:           types.NewReportID(),
		ProjectID:    checkIn.ProjectID,
		CheckInID:    checkIn.ID,
		Month:        checkIn.Period.Month.String(),
		Year:         strconv.Itoa(checkIn.Period.Year),
		WeekLabel:    period.WeekLabel(checkIn.Period.WeekIndex),
		HealthStatus: checkIn.HealthStatus,
		SubmittedAt:  submittedAt,
		IsLatest:     true,
	}
}

// Key returns the grouping key "{month} {year}"
func (r *StatusReport) Key() string {
	return r.Month + " " + r.Year
}

// SubmittedLabel returns the submission date as "Dec 8, 2025"
func (r *StatusReport) SubmittedLabel() string {
	return period.FormatDate(r.SubmittedAt)
}

// ReportGroup is a run of status reports sharing the same month and year
type ReportGroup struct {
	Key     string          `json:"key"`
	Reports []*StatusReport `json:"reports"`
}

// ReportHistory is the filtered, grouped report list of a project
type ReportHistory struct {
	Groups []*ReportGroup `json:"groups"`
	Years  []string       `json:"years"` // Filter choices, newest first
	Total  int            `json:"total"`
	Shown  int            `json:"shown"`
}

// IsFiltered checks if some reports are hidden by the active filters
func (h *ReportHistory) IsFiltered() bool {
	return h.Shown != h.Total
}
