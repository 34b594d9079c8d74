package types

import "github.com/m-mizutani/goerr/v2"

// HealthStatus represents the RAG (red/amber/green) health of a project
type HealthStatus string

const (
	HealthRed   HealthStatus = "red"
	HealthAmber HealthStatus = "amber"
	HealthGreen HealthStatus = "green"
)

var healthDescriptions = map[HealthStatus]string{
	HealthRed:   "Critical issues requiring immediate attention. Project is at risk of significant delays or failure. Escalation needed.",
	HealthAmber: "Some concerns or minor issues present. Project may face delays but is manageable with attention. Close monitoring required.",
	HealthGreen: "Project is on track. No significant issues. Progressing as planned within scope, schedule, and budget.",
}

// ParseHealthStatus parses a lowercase RAG value
func ParseHealthStatus(s string) (HealthStatus, error) {
	h := HealthStatus(s)
	if !h.IsValid() {
		return "", goerr.New("invalid health status", goerr.V("status", s))
	}
	return h, nil
}

// String returns the string representation of the status
func (h HealthStatus) String() string {
	return string(h)
}

// IsValid checks if the status is valid
func (h HealthStatus) IsValid() bool {
	switch h {
	case HealthRed, HealthAmber, HealthGreen:
		return true
	default:
		return false
	}
}

// Title returns the capitalized status, e.g. "Green"
func (h HealthStatus) Title() string {
	switch h {
	case HealthRed:
		return "Red"
	case HealthAmber:
		return "Amber"
	case HealthGreen:
		return "Green"
	default:
		return "Unknown"
	}
}

// Label returns the badge text shown next to the status
func (h HealthStatus) Label() string {
	switch h {
	case HealthRed:
		return "Off Track"
	case HealthAmber:
		return "At Risk"
	case HealthGreen:
		return "On Track"
	default:
		return ""
	}
}

// Description returns the guidance text for choosing the status
func (h HealthStatus) Description() string {
	return healthDescriptions[h]
}

// ProjectStatus returns the project status implied by the health status
func (h HealthStatus) ProjectStatus() ProjectStatus {
	switch h {
	case HealthRed:
		return ProjectOffTrack
	case HealthAmber:
		return ProjectAtRisk
	default:
		return ProjectOnTrack
	}
}

// ProjectStatus represents the delivery status shown on the project list
type ProjectStatus string

const (
	ProjectOnTrack  ProjectStatus = "on-track"
	ProjectAtRisk   ProjectStatus = "at-risk"
	ProjectOffTrack ProjectStatus = "off-track"
)

// IsValid checks if the status is valid
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectOnTrack, ProjectAtRisk, ProjectOffTrack:
		return true
	default:
		return false
	}
}

// CheckInStatus represents whether this week's check-in has been logged
type CheckInStatus string

const (
	CheckInDone    CheckInStatus = "done"
	CheckInPending CheckInStatus = "pending"
	CheckInOverdue CheckInStatus = "overdue"
)

// IsValid checks if the status is valid
func (s CheckInStatus) IsValid() bool {
	switch s {
	case CheckInDone, CheckInPending, CheckInOverdue:
		return true
	default:
		return false
	}
}
