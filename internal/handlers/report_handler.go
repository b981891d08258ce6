package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/workpay/backend/internal/services"
)

type ReportHandler struct {
	reports *services.ReportService
}

func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// BestProfession returns the top-earning profession in a window
// @Summary Best profession
// @Description Profession that earned the most from jobs paid in [start, end]
// @Tags reports
// @Produce json
// @Param start query string true "Window start (RFC 3339 or YYYY-MM-DD)"
// @Param end query string true "Window end (RFC 3339 or YYYY-MM-DD)"
// @Success 200 {object} services.ProfessionEarnings
// @Failure 400 {object} services.ErrorResponse
// @Failure 404 {object} services.ErrorResponse
// @Router /admin/best-profession [get]
func (h *ReportHandler) BestProfession(w http.ResponseWriter, r *http.Request) {
	start, end, ok := parseWindow(r)
	if !ok {
		writeServiceError(w, services.ErrInvalidRange)
		return
	}

	result, err := h.reports.BestProfession(r.Context(), start, end)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// BestPayers returns the top payers in a window
// @Summary Best payers
// @Description Payers who paid the most for jobs in [start, end], largest first
// @Tags reports
// @Produce json
// @Param start query string true "Window start (RFC 3339 or YYYY-MM-DD)"
// @Param end query string true "Window end (RFC 3339 or YYYY-MM-DD)"
// @Param limit query int false "Number of payers to return (default: 2)"
// @Success 200 {object} object{payers=[]services.PayerTotal,count=int}
// @Failure 400 {object} services.ErrorResponse
// @Router /admin/best-payers [get]
func (h *ReportHandler) BestPayers(w http.ResponseWriter, r *http.Request) {
	start, end, ok := parseWindow(r)
	if !ok {
		writeServiceError(w, services.ErrInvalidRange)
		return
	}

	// Anything that does not parse as a positive integer falls back to
	// the default rather than failing.
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			limit = v
		}
	}

	payers, err := h.reports.BestPayers(r.Context(), start, end, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"payers": payers,
		"count":  len(payers),
	})
}

// parseWindow reads the start and end query parameters. Date-only ends
// are widened to the last second of that day so the window stays
// inclusive.
func parseWindow(r *http.Request) (time.Time, time.Time, bool) {
	start, ok := parseDateParam(r.URL.Query().Get("start"), false)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	end, ok := parseDateParam(r.URL.Query().Get("end"), true)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func parseDateParam(raw string, endOfDay bool) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		if endOfDay {
			t = t.Add(24*time.Hour - time.Second)
		}
		return t, true
	}
	return time.Time{}, false
}
