package handler

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"financetracker/internal/service"
)

type goalRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	TargetDate    string          `json:"target_date"`
	Icon          string          `json:"icon"`
	Color         string          `json:"color"`
}

func (req goalRequest) toInput() (service.GoalInput, bool) {
	in := service.GoalInput{
		Name:          req.Name,
		Description:   req.Description,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Icon:          req.Icon,
		Color:         req.Color,
	}
	if req.TargetDate != "" {
		date, ok := parseDate(req.TargetDate)
		if !ok {
			return in, false
		}
		in.TargetDate = date
	}
	return in, true
}

// GetGoalsOverview returns every goal with its progress and page totals
func (h *Handler) GetGoalsOverview(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	overview, err := h.svc.GetGoalsOverview(uid)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, overview)
}

// GetGoalsChartData returns the twelve-month progress series for every goal
func (h *Handler) GetGoalsChartData(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	chart, err := h.svc.GetGoalsChartData(uid)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, chart)
}

// CreateGoal handles goal creation
func (h *Handler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	in, ok := req.toInput()
	if !ok {
		http.Error(w, "Invalid target date", http.StatusBadRequest)
		return
	}

	goal, err := h.svc.CreateGoal(uid, in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, goal)
}

// UpdateGoal handles a goal edit
func (h *Handler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid goal ID", http.StatusBadRequest)
		return
	}

	var req goalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	in, ok := req.toInput()
	if !ok {
		http.Error(w, "Invalid target date", http.StatusBadRequest)
		return
	}

	goal, err := h.svc.UpdateGoal(uid, id, in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, goal)
}

// DeleteGoal removes a goal and its saved history
func (h *Handler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid goal ID", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteGoal(uid, id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Goal deleted successfully"})
}

// AddMoneyToGoal adds an arbitrary positive amount to a goal
func (h *Handler) AddMoneyToGoal(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid goal ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Amount decimal.Decimal `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	goal, err := h.svc.AddMoneyToGoal(uid, id, req.Amount)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, goal)
}

// QuickAddMoney adds one of the preset amounts to a goal
func (h *Handler) QuickAddMoney(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid goal ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Amount int64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	goal, err := h.svc.QuickAddMoney(uid, id, req.Amount)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, goal)
}
