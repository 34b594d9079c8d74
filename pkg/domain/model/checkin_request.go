package model

import "github.com/secmon-lab/checkin/pkg/domain/types"

// CheckInRequest is the weekly check-in form as submitted by a project manager
type CheckInRequest struct {
	Month               string               `json:"month"` // Three-letter month name
	Year                string               `json:"year"`
	Week                int                  `json:"week"`
	HealthStatus        types.HealthStatus   `json:"health_status"`
	Highlights          string               `json:"highlights"`
	RAID                []RAIDItem           `json:"raid"`
	CompletedMilestones string               `json:"completed_milestones"`
	PlannedMilestones   string               `json:"planned_milestones"`
	Resources           []ResourceAllocation `json:"resources"`
	Comments            string               `json:"comments"`
	SubmittedBy         string               `json:"submitted_by"`
}

// Apply copies the form content into the check-in. Period is resolved by the caller.
func (r *CheckInRequest) Apply(c *CheckIn) {
	c.HealthStatus = r.HealthStatus
	c.Highlights = r.Highlights
	c.RAID = append([]RAIDItem(nil), r.RAID...)
	c.CompletedMilestones = r.CompletedMilestones
	c.PlannedMilestones = r.PlannedMilestones
	c.Resources = append([]ResourceAllocation(nil), r.Resources...)
	c.Comments = r.Comments
	if r.SubmittedBy != "" {
		c.SubmittedBy = r.SubmittedBy
	}
}
