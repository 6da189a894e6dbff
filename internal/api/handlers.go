package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/ohitsming/guapital-sub001/internal/cache"
	"github.com/ohitsming/guapital-sub001/internal/calculation"
	"github.com/ohitsming/guapital-sub001/internal/config"
	"github.com/ohitsming/guapital-sub001/internal/domain"
	"github.com/ohitsming/guapital-sub001/internal/store"
	"github.com/shopspring/decimal"
)

const maxBodyBytes = 1 << 20

// maxScheduleYears bounds amortization requests
const maxScheduleYears = 50

type errorResponse struct {
	Error string `json:"error"`
}

type amortizationRequest struct {
	AccountID  string          `json:"account_id"`
	Category   string          `json:"category"`
	Balance    decimal.Decimal `json:"balance"`
	AnnualRate decimal.Decimal `json:"annual_rate"`
	TermYears  int             `json:"term_years"`
}

type simulateRequest struct {
	MonthlyIncome   decimal.Decimal  `json:"monthly_income"`
	MonthlyExpenses decimal.Decimal  `json:"monthly_expenses"`
	CurrentNetWorth decimal.Decimal  `json:"current_net_worth"`
	ExpectedReturn  *decimal.Decimal `json:"expected_return,omitempty"`
	Age             *int             `json:"age,omitempty"`
	RetirementAge   *int             `json:"retirement_age,omitempty"`
	AsOf            time.Time        `json:"as_of,omitempty"`
}

type simulateResponse struct {
	Fire       domain.FireCalculation `json:"fire"`
	Scenarios  domain.ScenarioSet     `json:"scenarios"`
	Milestones []domain.Milestone     `json:"milestones"`
}

type snapshotsResponse struct {
	UserID    string         `json:"user_id"`
	Snapshots []store.Record `json:"snapshots"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok"}
	if s.store != nil {
		if err := s.store.Ping(r.Context()); err != nil {
			status["status"] = "degraded"
			status["store"] = err.Error()
			writeJSON(w, http.StatusServiceUnavailable, status)
			return
		}
		status["store"] = "ok"
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) trajectory(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.decodeSnapshot(w, r)
	if !ok {
		return
	}
	report, err := s.evaluateCached(r.Context(), snap)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) projection(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.decodeSnapshot(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.engine.Project(snap.Accounts))
}

func (s *Server) fire(w http.ResponseWriter, r *http.Request) {
	s.withReport(w, r, func(report *domain.TrajectoryReport) any { return report.Fire })
}

func (s *Server) scenarios(w http.ResponseWriter, r *http.Request) {
	s.withReport(w, r, func(report *domain.TrajectoryReport) any { return report.Scenarios })
}

func (s *Server) milestones(w http.ResponseWriter, r *http.Request) {
	s.withReport(w, r, func(report *domain.TrajectoryReport) any { return report.Milestones })
}

func (s *Server) withReport(w http.ResponseWriter, r *http.Request, pick func(*domain.TrajectoryReport) any) {
	snap, ok := s.decodeSnapshot(w, r)
	if !ok {
		return
	}
	report, err := s.evaluateCached(r.Context(), snap)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pick(report))
}

func (s *Server) amortization(w http.ResponseWriter, r *http.Request) {
	var req amortizationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	switch {
	case req.Balance.IsNegative():
		writeError(w, http.StatusBadRequest, "balance cannot be negative")
		return
	case req.TermYears < 0 || req.TermYears > maxScheduleYears:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("term_years must be between 0 and %d", maxScheduleYears))
		return
	case req.AnnualRate.LessThan(decimal.NewFromInt(-1)) || req.AnnualRate.GreaterThan(decimal.NewFromInt(1)):
		writeError(w, http.StatusBadRequest, "annual_rate must be between -1 and 1")
		return
	}
	writeJSON(w, http.StatusOK, calculation.BuildLiabilitySchedule(req.AccountID, req.Category, req.Balance, req.AnnualRate, req.TermYears))
}

func (s *Server) simulate(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := config.ValidateCashFlow(req.MonthlyIncome, req.MonthlyExpenses); err != nil {
		s.fail(w, err)
		return
	}

	in := calculation.FireInput{
		MonthlyIncome:   req.MonthlyIncome,
		MonthlyExpenses: req.MonthlyExpenses,
		CurrentNetWorth: req.CurrentNetWorth,
		ExpectedReturn:  calculation.BaseReturn,
		AsOf:            req.AsOf,
	}
	if req.ExpectedReturn != nil {
		in.ExpectedReturn = *req.ExpectedReturn
	}
	snap := domain.Snapshot{MonthlyExpenses: req.MonthlyExpenses, RetirementAge: req.RetirementAge}
	writeJSON(w, http.StatusOK, simulateResponse{
		Fire:      calculation.CalculateFire(in),
		Scenarios: calculation.CalculateScenarios(in),
		Milestones: calculation.EvaluateMilestones(calculation.MilestoneInput{
			AnnualExpenses: snap.AnnualExpenses(),
			NetWorth:       req.CurrentNetWorth,
			CurrentAge:     req.Age,
			RetirementAge:  snap.RetirementAgeOrDefault(),
		}),
	})
}

func (s *Server) saveSnapshot(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "snapshot store is not configured")
		return
	}
	snap, ok := s.decodeSnapshot(w, r)
	if !ok {
		return
	}
	if snap.UserID == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	report, err := s.engine.Evaluate(r.Context(), snap)
	if err != nil {
		s.fail(w, err)
		return
	}
	day := snap.AsOf
	if day.IsZero() {
		day = s.now()
	}
	rec, err := store.RecordFromReport(report, day)
	if err != nil {
		s.fail(w, err)
		return
	}
	saved, err := s.store.UpsertSnapshot(r.Context(), rec)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) listSnapshots(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "snapshot store is not configured")
		return
	}
	userID := mux.Vars(r)["userID"]
	from, err := parseDay(r.URL.Query().Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "from: "+err.Error())
		return
	}
	to, err := parseDay(r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "to: "+err.Error())
		return
	}
	records, err := s.store.ListSnapshots(r.Context(), userID, from, to)
	if err != nil {
		s.fail(w, err)
		return
	}
	if records == nil {
		records = []store.Record{}
	}
	for i := range records {
		// the list view carries the summary columns only
		records[i].Payload = nil
	}
	writeJSON(w, http.StatusOK, snapshotsResponse{UserID: userID, Snapshots: records})
}

// evaluateCached serves a report from the cache when an identical snapshot was
// evaluated the same day. Cache failures are logged and never fail the request.
func (s *Server) evaluateCached(ctx context.Context, snap *domain.Snapshot) (*domain.TrajectoryReport, error) {
	if s.cache == nil {
		return s.engine.Evaluate(ctx, snap)
	}
	key, err := cache.Key("trajectory", struct {
		Day      string           `json:"day"`
		Snapshot *domain.Snapshot `json:"snapshot"`
	}{s.now().Format(store.DateLayout), snap})
	if err != nil {
		s.logger.Warnf("cache key: %v", err)
		return s.engine.Evaluate(ctx, snap)
	}
	if cached, ok := s.cache.Get(ctx, key); ok {
		var report domain.TrajectoryReport
		if err := json.Unmarshal([]byte(cached), &report); err == nil {
			return &report, nil
		}
		s.logger.Warnf("discarding unreadable cache entry %s", key)
	}

	report, err := s.engine.Evaluate(ctx, snap)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(report); err == nil {
		if err := s.cache.Set(ctx, key, string(data)); err != nil {
			s.logger.Warnf("cache set: %v", err)
		}
	}
	return report, nil
}

func (s *Server) decodeSnapshot(w http.ResponseWriter, r *http.Request) (*domain.Snapshot, bool) {
	var snap domain.Snapshot
	if !decodeBody(w, r, &snap) {
		return nil, false
	}
	if err := s.parser.ValidateSnapshot(&snap); err != nil {
		s.fail(w, err)
		return nil, false
	}
	return &snap, true
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, config.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "request cancelled")
	default:
		s.logger.Errorf("request failed: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func parseDay(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(store.DateLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected YYYY-MM-DD, got %q", v)
	}
	return t, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
