package handler

import (
	"net/http"
	"strconv"
)

const defaultTrendMonths = 6

// GetDashboardSummary returns the dashboard payload: balance, current-month
// totals, recent transactions and the top budgets and goals
func (h *Handler) GetDashboardSummary(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	summary, err := h.svc.GetDashboardSummary(uid)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// GetTrendChart returns the income and expense series for the last N months
func (h *Handler) GetTrendChart(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	months := defaultTrendMonths
	if raw := r.URL.Query().Get("months"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			months = n
		}
	}

	series, err := h.svc.GetTrendSeries(uid, months)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, series)
}

// GetPieChart returns the current-month expense breakdown by category
func (h *Handler) GetPieChart(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	slices, err := h.svc.GetPieChartData(uid)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, slices)
}
