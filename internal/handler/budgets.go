package handler

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"financetracker/internal/service"
)

type budgetRequest struct {
	CategoryID  int64           `json:"category_id"`
	Amount      decimal.Decimal `json:"amount"`
	Period      string          `json:"period"`
	Description string          `json:"description"`
}

func (req budgetRequest) toInput() service.BudgetInput {
	return service.BudgetInput{
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		Period:      req.Period,
		Description: req.Description,
	}
}

// GetBudgetsOverview returns every budget with its current-month spend,
// page totals and the alert list
func (h *Handler) GetBudgetsOverview(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	overview, err := h.svc.GetBudgetsOverview(uid)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, overview)
}

// CreateBudget handles budget creation
func (h *Handler) CreateBudget(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var req budgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	budget, err := h.svc.CreateBudget(uid, req.toInput())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, budget)
}

// UpdateBudget handles a budget edit
func (h *Handler) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid budget ID", http.StatusBadRequest)
		return
	}

	var req budgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	budget, err := h.svc.UpdateBudget(uid, id, req.toInput())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, budget)
}

// DeleteBudget removes a budget without touching its transactions
func (h *Handler) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid budget ID", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteBudget(uid, id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Budget deleted successfully"})
}

// NotifyOverBudget sends the over-budget email digest for the current month
func (h *Handler) NotifyOverBudget(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	if err := h.svc.NotifyOverBudget(uid); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Budget notifications sent"})
}
