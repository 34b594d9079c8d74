// Package report filters and groups submitted status reports for history views.
package report

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/secmon-lab/checkin/pkg/domain/model"
)

// All disables a year or month filter
const All = "all"

// Filter returns the reports matching year and month. Input order is preserved.
func Filter(reports []*model.StatusReport, year, month string) []*model.StatusReport {
	result := make([]*model.StatusReport, 0, len(reports))
	for _, r := range reports {
		if year != All && r.Year != year {
			continue
		}
		if month != All && r.Month != month {
			continue
		}
		result = append(result, r)
	}
	return result
}

// Group groups reports by "{month} {year}". Groups appear in the order their key
// is first seen and reports keep their input order inside each group.
func Group(reports []*model.StatusReport) []*model.ReportGroup {
	groups := make([]*model.ReportGroup, 0)
	index := make(map[string]int)

	for _, r := range reports {
		key := r.Key()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, &model.ReportGroup{Key: key})
		}
		groups[i].Reports = append(groups[i].Reports, r)
	}
	return groups
}

// DistinctYears returns the de-duplicated years of reports, newest first
func DistinctYears(reports []*model.StatusReport) []string {
	seen := make(map[string]struct{})
	years := make([]string, 0)
	for _, r := range reports {
		if _, ok := seen[r.Year]; ok {
			continue
		}
		seen[r.Year] = struct{}{}
		years = append(years, r.Year)
	}

	slices.SortFunc(years, func(a, b string) int {
		return compareYear(b, a)
	})
	return years
}

// History filters, groups and counts reports for one history view
func History(reports []*model.StatusReport, year, month string) *model.ReportHistory {
	filtered := Filter(reports, year, month)
	return &model.ReportHistory{
		Groups: Group(filtered),
		Years:  DistinctYears(reports),
		Total:  len(reports),
		Shown:  len(filtered),
	}
}

// compareYear orders numeric years by value, above any non-numeric year
func compareYear(a, b string) int {
	ai, errA := strconv.Atoi(a)
	bi, errB := strconv.Atoi(b)
	switch {
	case errA == nil && errB == nil:
		return cmp.Compare(ai, bi)
	case errA == nil:
		return 1
	case errB == nil:
		return -1
	default:
		return cmp.Compare(a, b)
	}
}
