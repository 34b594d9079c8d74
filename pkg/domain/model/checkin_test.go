package model_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/checkin/pkg/domain/model"
	"github.com/secmon-lab/checkin/pkg/domain/period"
	"github.com/secmon-lab/checkin/pkg/domain/types"
)

func validCheckIn() *model.CheckIn {
	return &model.CheckIn{
		ID:           types.CheckInID("ci-1"),
		ProjectID:    types.ProjectID("p-1"),
		Period:       period.Period{Month: period.Dec, Year: 2025, WeekIndex: 2},
		HealthStatus: types.HealthGreen,
		RAID: []model.RAIDItem{
			{RiskID: "R001", Impact: model.LevelHigh, Priority: model.LevelMedium, Status: model.RAIDStatusOpen},
			{RiskID: "I002", Status: model.RAIDStatusClosed},
		},
		Resources: []model.ResourceAllocation{
			{Name: "Alice", Role: "Developer", Allocation: "75%", Verified: true},
			{Name: "Bob", Role: "QA", Allocation: "50%"},
		},
	}
}

func TestCheckInValidate(t *testing.T) {
	t.Run("Valid check-in", func(t *testing.T) {
		gt.NoError(t, validCheckIn().Validate())
	})

	testCases := []struct {
		name   string
		mutate func(c *model.CheckIn)
	}{
		{name: "missing project", mutate: func(c *model.CheckIn) { c.ProjectID = "" }},
		{name: "missing health", mutate: func(c *model.CheckIn) { c.HealthStatus = "" }},
		{name: "invalid month", mutate: func(c *model.CheckIn) { c.Period.Month = period.Month(12) }},
		{name: "missing week", mutate: func(c *model.CheckIn) { c.Period.WeekIndex = 0 }},
		{name: "invalid RAID priority", mutate: func(c *model.CheckIn) { c.RAID[0].Priority = "Urgent" }},
		{name: "invalid RAID status", mutate: func(c *model.CheckIn) { c.RAID[0].Status = "Done" }},
		{name: "invalid allocation", mutate: func(c *model.CheckIn) { c.Resources[0].Allocation = "lots" }},
		{name: "allocation over 100", mutate: func(c *model.CheckIn) { c.Resources[0].Allocation = "120%" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := validCheckIn()
			tc.mutate(c)
			err := c.Validate()
			gt.Error(t, err)
			gt.True(t, errors.Is(err, model.ErrValidation))
		})
	}
}

func TestCheckInOpenRAIDItems(t *testing.T) {
	items := validCheckIn().OpenRAIDItems()
	gt.Equal(t, len(items), 1)
	gt.Equal(t, items[0].RiskID, "R001")
}

func TestCheckInVerifiedResources(t *testing.T) {
	verified, total := validCheckIn().VerifiedResources()
	gt.Equal(t, verified, 1)
	gt.Equal(t, total, 2)
}

func TestCheckInCarryOver(t *testing.T) {
	c := validCheckIn()
	raid, resources := c.CarryOver()

	gt.Equal(t, len(raid), 2)
	gt.Equal(t, len(resources), 2)
	for _, r := range resources {
		gt.False(t, r.Verified)
	}

	// The source is left untouched
	gt.True(t, c.Resources[0].Verified)
	raid[0].Description = "changed"
	gt.Equal(t, c.RAID[0].Description, "")
}

func TestRAIDItemKind(t *testing.T) {
	testCases := []struct {
		id       string
		expected model.RAIDKind
	}{
		{id: "R001", expected: model.RAIDKindRisk},
		{id: "a002", expected: model.RAIDKindAssumption},
		{id: "I003", expected: model.RAIDKindIssue},
		{id: "D004", expected: model.RAIDKindDependency},
		{id: "X005", expected: model.RAIDKindUnknown},
		{id: "", expected: model.RAIDKindUnknown},
	}

	for _, tc := range testCases {
		t.Run(tc.id, func(t *testing.T) {
			gt.Equal(t, model.RAIDItem{RiskID: tc.id}.Kind(), tc.expected)
		})
	}
}

func TestResourceAllocationPercent(t *testing.T) {
	testCases := []struct {
		allocation string
		expected   int
		wantErr    bool
	}{
		{allocation: "75%", expected: 75},
		{allocation: "100", expected: 100},
		{allocation: " 50 % ", expected: 50},
		{allocation: "", expected: 0},
		{allocation: "-1%", wantErr: true},
		{allocation: "half", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.allocation, func(t *testing.T) {
			n, err := model.ResourceAllocation{Allocation: tc.allocation}.AllocationPercent()
			if tc.wantErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err)
			gt.Equal(t, n, tc.expected)
		})
	}
}
