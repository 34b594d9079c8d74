package model

import (
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/checkin/pkg/domain/period"
	"github.com/secmon-lab/checkin/pkg/domain/types"
)

// CheckIn is the weekly check-in form submitted by a project manager
type CheckIn struct {
	ID                  types.CheckInID      `json:"id"`
	ProjectID           types.ProjectID      `json:"project_id"`
	ReportID            types.ReportID       `json:"report_id,omitempty"`
	Period              period.Period        `json:"period"`
	HealthStatus        types.HealthStatus   `json:"health_status"`
	Highlights          string               `json:"highlights"`
	RAID                []RAIDItem           `json:"raid"`
	CompletedMilestones string               `json:"completed_milestones"`
	PlannedMilestones   string               `json:"planned_milestones"`
	Resources           []ResourceAllocation `json:"resources"`
	Comments            string               `json:"comments"`
	SubmittedBy         string               `json:"submitted_by"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at"`
}

// Validate checks the check-in fields required for submission
func (c *CheckIn) Validate() error {
	if err := c.ProjectID.Validate(); err != nil {
		return goerr.Wrap(ErrValidation, err.Error())
	}
	if !c.HealthStatus.IsValid() {
		return goerr.Wrap(ErrValidation, "health status is required",
			goerr.V("health_status", c.HealthStatus))
	}
	if !c.Period.Month.IsValid() {
		return goerr.Wrap(ErrValidation, "month is required", goerr.V("month", c.Period.Month))
	}
	if c.Period.WeekIndex < 1 {
		return goerr.Wrap(ErrValidation, "week is required", goerr.V("week", c.Period.WeekIndex))
	}
	for i := range c.RAID {
		if err := c.RAID[i].Validate(); err != nil {
			return goerr.Wrap(err, "invalid RAID item", goerr.V("index", i))
		}
	}
	for i := range c.Resources {
		if err := c.Resources[i].Validate(); err != nil {
			return goerr.Wrap(err, "invalid resource", goerr.V("index", i))
		}
	}
	return nil
}

// OpenRAIDItems returns RAID items that are not closed or mitigated
func (c *CheckIn) OpenRAIDItems() []RAIDItem {
	var items []RAIDItem
	for _, item := range c.RAID {
		if item.Status != RAIDStatusClosed && item.Status != RAIDStatusMitigated {
			items = append(items, item)
		}
	}
	return items
}

// VerifiedResources returns the number of verified resources and the total
func (c *CheckIn) VerifiedResources() (verified, total int) {
	for _, r := range c.Resources {
		if r.Verified {
			verified++
		}
	}
	return verified, len(c.Resources)
}

// CarryOver copies the RAID log and resources into a new draft. Verification is reset.
func (c *CheckIn) CarryOver() ([]RAIDItem, []ResourceAllocation) {
	raid := make([]RAIDItem, len(c.RAID))
	copy(raid, c.RAID)

	resources := make([]ResourceAllocation, len(c.Resources))
	for i, r := range c.Resources {
		r.Verified = false
		resources[i] = r
	}
	return raid, resources
}

// Level is an impact or priority rating of a RAID item
type Level string

const (
	LevelLow      Level = "Low"
	LevelMedium   Level = "Medium"
	LevelHigh     Level = "High"
	LevelCritical Level = "Critical"
)

// IsValid checks if the level is known. Empty means not selected yet.
func (l Level) IsValid() bool {
	switch l {
	case "", LevelLow, LevelMedium, LevelHigh, LevelCritical:
		return true
	}
	return false
}

// RAIDStatus is the tracking status of a RAID item
type RAIDStatus string

const (
	RAIDStatusOpen       RAIDStatus = "Open"
	RAIDStatusInProgress RAIDStatus = "In Progress"
	RAIDStatusMitigated  RAIDStatus = "Mitigated"
	RAIDStatusClosed     RAIDStatus = "Closed"
)

// IsValid checks if the status is known. Empty means not selected yet.
func (s RAIDStatus) IsValid() bool {
	switch s {
	case "", RAIDStatusOpen, RAIDStatusInProgress, RAIDStatusMitigated, RAIDStatusClosed:
		return true
	}
	return false
}

// RAIDKind classifies a RAID item
type RAIDKind string

const (
	RAIDKindRisk       RAIDKind = "risk"
	RAIDKindAssumption RAIDKind = "assumption"
	RAIDKindIssue      RAIDKind = "issue"
	RAIDKindDependency RAIDKind = "dependency"
	RAIDKindUnknown    RAIDKind = "unknown"
)

// RAIDItem is one row of the Risks, Assumptions, Issues and Dependencies log
type RAIDItem struct {
	RiskID      string     `json:"risk_id"` // e.g., "R001", "I003"
	Description string     `json:"description"`
	Impact      Level      `json:"impact"`
	Priority    Level      `json:"priority"`
	Status      RAIDStatus `json:"status"`
}

// Kind derives the item kind from the first letter of its ID
func (r RAIDItem) Kind() RAIDKind {
	id := strings.TrimSpace(r.RiskID)
	if id == "" {
		return RAIDKindUnknown
	}
	switch strings.ToUpper(id[:1]) {
	case "R":
		return RAIDKindRisk
	case "A":
		return RAIDKindAssumption
	case "I":
		return RAIDKindIssue
	case "D":
		return RAIDKindDependency
	}
	return RAIDKindUnknown
}

// Validate checks the select fields of the item
func (r RAIDItem) Validate() error {
	if !r.Impact.IsValid() {
		return goerr.Wrap(ErrValidation, "invalid impact", goerr.V("impact", r.Impact))
	}
	if !r.Priority.IsValid() {
		return goerr.Wrap(ErrValidation, "invalid priority", goerr.V("priority", r.Priority))
	}
	if !r.Status.IsValid() {
		return goerr.Wrap(ErrValidation, "invalid RAID status", goerr.V("status", r.Status))
	}
	return nil
}

// ResourceAllocation is a team member assigned to the project
type ResourceAllocation struct {
	Name       string `json:"name"`
	Role       string `json:"role"`
	Allocation string `json:"allocation"` // e.g., "75%"
	Verified   bool   `json:"verified"`
}

// AllocationPercent parses the allocation string. Empty allocation is 0.
func (r ResourceAllocation) AllocationPercent() (int, error) {
	s := strings.TrimSpace(r.Allocation)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(s, "%")))
	if err != nil {
		return 0, goerr.Wrap(ErrValidation, "allocation is not a percentage",
			goerr.V("allocation", r.Allocation))
	}
	if n < 0 || n > 100 {
		return 0, goerr.Wrap(ErrValidation, "allocation must be between 0% and 100%",
			goerr.V("allocation", r.Allocation))
	}
	return n, nil
}

// Validate checks the resource row
func (r ResourceAllocation) Validate() error {
	if _, err := r.AllocationPercent(); err != nil {
		return err
	}
	return nil
}
