package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/checkin/pkg/domain/model"
	"github.com/secmon-lab/checkin/pkg/domain/period"
	"github.com/secmon-lab/checkin/pkg/domain/types"
	"github.com/secmon-lab/checkin/pkg/utils/async"
)

func (s *Server) handleWeeks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	month, year := q.Get("month"), q.Get("year")

	weeks, err := s.uc.calendar.Weeks(r.Context(), month, year)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := weeksView{Month: month, Year: year, Weeks: make([]weekView, 0, len(weeks))}
	for _, week := range weeks {
		resp.Weeks = append(resp.Weeks, newWeekView(week))
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	week, err := strconv.Atoi(q.Get("week"))
	if err != nil {
		writeError(w, r, goerr.Wrap(period.ErrInvalidInput, "week is not numeric", goerr.V("week", q.Get("week"))))
		return
	}

	p, err := s.uc.calendar.Resolve(r.Context(), q.Get("month"), q.Get("year"), week)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, newPeriodView(p))
}

func (s *Server) handleCurrent(w http.ResponseWriter, r *http.Request) {
	p, err := s.uc.calendar.Current(r.Context(), s.now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, newPeriodView(p))
}

func (s *Server) handleReselect(w http.ResponseWriter, r *http.Request) {
	var req reselectRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	p, err := s.uc.calendar.Reselect(r.Context(), period.Period{WeekIndex: req.Week}, req.Month, req.Year)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, newPeriodView(p))
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.uc.project.ListProjects(r.Context(), s.now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, projects)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	project, err := s.uc.project.GetProject(r.Context(), projectID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, project)
}

func (s *Server) handleReportHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	history, err := s.uc.project.ReportHistory(r.Context(), projectID(r), q.Get("year"), q.Get("month"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, history)
}

func (s *Server) handleComposeReport(w http.ResponseWriter, r *http.Request) {
	reportID := types.ReportID(chi.URLParam(r, "reportID"))
	draft, err := s.uc.email.ComposeReport(r.Context(), projectID(r), reportID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, draft)
}

func (s *Server) handleDraftCheckIn(w http.ResponseWriter, r *http.Request) {
	draft, err := s.uc.checkIn.Draft(r.Context(), projectID(r), s.now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, draft)
}

func (s *Server) handleLatestCheckIn(w http.ResponseWriter, r *http.Request) {
	checkIn, err := s.uc.checkIn.Latest(r.Context(), projectID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, checkIn)
}

func (s *Server) handleSubmitCheckIn(w http.ResponseWriter, r *http.Request) {
	var req model.CheckInRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	checkIn, err := s.uc.checkIn.Submit(r.Context(), projectID(r), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, checkIn)
}

func (s *Server) handleGetCheckIn(w http.ResponseWriter, r *http.Request) {
	checkIn, err := s.uc.checkIn.Get(r.Context(), checkInID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, checkIn)
}

func (s *Server) handleUpdateCheckIn(w http.ResponseWriter, r *http.Request) {
	var req model.CheckInRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	checkIn, err := s.uc.checkIn.Update(r.Context(), checkInID(r), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, checkIn)
}

func (s *Server) handleComposeDigest(w http.ResponseWriter, r *http.Request) {
	var req digestRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	ids := make([]types.ProjectID, 0, len(req.ProjectIDs))
	for _, id := range req.ProjectIDs {
		ids = append(ids, types.ProjectID(id))
	}

	draft, err := s.uc.email.ComposeDigest(r.Context(), ids, req.Message)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, draft)
}

// handleSendEmail accepts the draft and delivers it in the background
func (s *Server) handleSendEmail(w http.ResponseWriter, r *http.Request) {
	var draft model.EmailDraft
	if err := readJSON(r, &draft); err != nil {
		writeError(w, r, err)
		return
	}
	if err := draft.Validate(); err != nil {
		writeError(w, r, err)
		return
	}

	async.Dispatch(r.Context(), func(ctx context.Context) error {
		return s.uc.email.Send(ctx, &draft)
	})

	writeJSON(w, r, http.StatusAccepted, map[string]string{"status": "accepted"})
}

func (s *Server) handleGetEmailSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.uc.email.Settings(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, settings)
}

func (s *Server) handlePutEmailSettings(w http.ResponseWriter, r *http.Request) {
	var settings model.EmailSettings
	if err := readJSON(r, &settings); err != nil {
		writeError(w, r, err)
		return
	}

	saved, err := s.uc.email.SaveSettings(r.Context(), &settings)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, saved)
}

func projectID(r *http.Request) types.ProjectID {
	return types.ProjectID(chi.URLParam(r, "projectID"))
}

func checkInID(r *http.Request) types.CheckInID {
	return types.CheckInID(chi.URLParam(r, "checkInID"))
}
