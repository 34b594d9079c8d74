package http

import (
	"github.com/secmon-lab/checkin/pkg/domain/period"
)

const dateLayout = "2006-01-02"

type weekView struct {
	Index int    `json:"index"`
	Start string `json:"start"`
	End   string `json:"end"`
	Label string `json:"label"`
	Range string `json:"range"`
}

func newWeekView(w period.CalendarWeek) weekView {
	return weekView{
		Index: w.Index,
		Start: w.Start.Format(dateLayout),
		End:   w.End.Format(dateLayout),
		Label: w.Label(),
		Range: w.Range(),
	}
}

type weeksView struct {
	Month string     `json:"month"`
	Year  string     `json:"year"`
	Weeks []weekView `json:"weeks"`
}

type periodView struct {
	Month string   `json:"month"`
	Year  int      `json:"year"`
	Week  weekView `json:"week"`
}

func newPeriodView(p period.Period) periodView {
	return periodView{
		Month: p.Month.String(),
		Year:  p.Year,
		Week:  newWeekView(p.Week),
	}
}

// reselectRequest carries the current week and the newly chosen month and year
type reselectRequest struct {
	Week  int    `json:"week"`
	Month string `json:"month"`
	Year  string `json:"year"`
}

type digestRequest struct {
	ProjectIDs []string `json:"project_ids"`
	Message    string   `json:"message"`
}
