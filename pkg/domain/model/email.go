package model

import (
	"net/mail"
	"slices"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/checkin/pkg/domain/types"
)

// Placeholders available in email templates
const (
	PlaceholderProjectName    = "{project_name}"
	PlaceholderCheckInDetails = "{check_in_details}"
	PlaceholderPMName         = "{pm_name}"
)

// DefaultAttachment is attached to every status report email
const DefaultAttachment = "Weekly_Status_Report.pdf"

// EmailSettings holds recipients and templates for status report emails
type EmailSettings struct {
	Recipients     []string `json:"recipients" yaml:"recipients"`
	CCEnabled      bool     `json:"cc_enabled" yaml:"cc_enabled"`
	CCEmail        string   `json:"cc_email" yaml:"cc_email"`
	DefaultSubject string   `json:"default_subject" yaml:"default_subject"`
	DefaultBody    string   `json:"default_body" yaml:"default_body"`
}

// DefaultEmailSettings returns the initial email configuration
func DefaultEmailSettings() *EmailSettings {
	return &EmailSettings{
		Recipients:     []string{"leadership@company.com", "stakeholders@company.com"},
		CCEnabled:      true,
		CCEmail:        "pm-reports@company.com",
		DefaultSubject: "Weekly Project Status Update - " + PlaceholderProjectName,
		DefaultBody: "Hi Team,\n\n" +
			"Please find below the weekly status update for " + PlaceholderProjectName + ".\n\n" +
			PlaceholderCheckInDetails + "\n\n" +
			"Best regards,\n" + PlaceholderPMName,
	}
}

// AddRecipient adds an address to the recipient list. Duplicates are ignored.
func (s *EmailSettings) AddRecipient(addr string) error {
	addr = strings.TrimSpace(addr)
	if err := validateAddress(addr); err != nil {
		return err
	}
	if !slices.Contains(s.Recipients, addr) {
		s.Recipients = append(s.Recipients, addr)
	}
	return nil
}

// RemoveRecipient removes an address from the recipient list
func (s *EmailSettings) RemoveRecipient(addr string) {
	s.Recipients = slices.DeleteFunc(s.Recipients, func(r string) bool {
		return r == addr
	})
}

// Validate checks addresses and templates
func (s *EmailSettings) Validate() error {
	for _, r := range s.Recipients {
		if err := validateAddress(r); err != nil {
			return err
		}
	}
	if s.CCEnabled {
		if err := validateAddress(s.CCEmail); err != nil {
			return goerr.Wrap(err, "invalid CC address")
		}
	}
	if strings.TrimSpace(s.DefaultSubject) == "" {
		return goerr.Wrap(ErrValidation, "default subject is required")
	}
	return nil
}

// CC returns the CC list, empty when CC is disabled
func (s *EmailSettings) CC() []string {
	if !s.CCEnabled || s.CCEmail == "" {
		return nil
	}
	return []string{s.CCEmail}
}

// EmailValues are the values substituted into the templates
type EmailValues struct {
	ProjectName    string
	CheckInDetails string
	PMName         string
}

// Render substitutes placeholders in the subject and body templates
func (s *EmailSettings) Render(v EmailValues) (subject, body string) {
	r := strings.NewReplacer(
		PlaceholderProjectName, v.ProjectName,
		PlaceholderCheckInDetails, v.CheckInDetails,
		PlaceholderPMName, v.PMName,
	)
	return r.Replace(s.DefaultSubject), r.Replace(s.DefaultBody)
}

// Copy returns a deep copy of the settings
func (s *EmailSettings) Copy() *EmailSettings {
	c := *s
	c.Recipients = slices.Clone(s.Recipients)
	return &c
}

// EmailDraft is a composed email ready to be sent
type EmailDraft struct {
	ProjectID   types.ProjectID `json:"project_id,omitempty"`
	ReportID    types.ReportID  `json:"report_id,omitempty"`
	To          []string        `json:"to"`
	CC          []string        `json:"cc,omitempty"`
	Subject     string          `json:"subject"`
	Body        string          `json:"body"`
	Attachments []string        `json:"attachments,omitempty"`
}

// Validate checks that the draft can be delivered
func (d *EmailDraft) Validate() error {
	if len(d.To) == 0 {
		return goerr.Wrap(ErrValidation, "at least one recipient is required")
	}
	for _, addr := range append(slices.Clone(d.To), d.CC...) {
		if err := validateAddress(addr); err != nil {
			return err
		}
	}
	if strings.TrimSpace(d.Subject) == "" {
		return goerr.Wrap(ErrValidation, "subject is required")
	}
	return nil
}

func validateAddress(addr string) error {
	if addr == "" {
		return goerr.Wrap(ErrValidation, "email address is empty")
	}
	parsed, err := mail.ParseAddress(addr)
	if err != nil || parsed.Address != addr {
		return goerr.Wrap(ErrValidation, "invalid email address", goerr.V("address", addr))
	}
	return nil
}
