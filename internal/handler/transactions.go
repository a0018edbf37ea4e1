package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"financetracker/internal/export"
	"financetracker/internal/models"
	"financetracker/internal/service"
)

type transactionRequest struct {
	CategoryID  int64           `json:"category_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
}

func (req transactionRequest) toInput() (service.TransactionInput, bool) {
	in := service.TransactionInput{
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		Description: req.Description,
	}
	if req.Date != "" {
		date, ok := parseDate(req.Date)
		if !ok {
			return in, false
		}
		in.Date = date
	}
	return in, true
}

// filterFromQuery builds the ledger filter from query parameters. Invalid
// values are dropped, matching the lenient filtering of the listing page.
func filterFromQuery(r *http.Request) models.TransactionFilter {
	q := r.URL.Query()
	var f models.TransactionFilter

	if start, ok := parseDate(q.Get("start_date")); ok {
		f.StartDate = &start
	}
	if end, ok := parseDate(q.Get("end_date")); ok {
		// Include the whole end day for date-only bounds.
		end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
		f.EndDate = &end
	}
	if id, err := strconv.ParseInt(q.Get("category"), 10, 64); err == nil {
		f.CategoryID = id
	}
	if t := q.Get("type"); models.ValidType(t) {
		f.Type = t
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		f.Limit = limit
	}
	return f
}

// ListTransactions returns the filtered ledger with totals
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	page, err := h.svc.ListTransactions(uid, filterFromQuery(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, page)
}

// CreateTransaction handles a single ledger write
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	in, ok := req.toInput()
	if !ok {
		http.Error(w, "Invalid date format", http.StatusBadRequest)
		return
	}

	transaction, err := h.svc.CreateTransaction(uid, in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, transaction)
}

// UpdateTransaction handles a ledger edit
func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid transaction ID", http.StatusBadRequest)
		return
	}

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	in, ok := req.toInput()
	if !ok {
		http.Error(w, "Invalid date format", http.StatusBadRequest)
		return
	}

	transaction, err := h.svc.UpdateTransaction(uid, id, in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, transaction)
}

// DeleteTransaction handles a ledger delete
func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		http.Error(w, "Invalid transaction ID", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteTransaction(uid, id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Transaction deleted successfully"})
}

// RecalculateBalance forces a full balance recalculation for the user's account
func (h *Handler) RecalculateBalance(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	balance, err := h.svc.RecalculateBalance(uid)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"balance": balance})
}

// ImportTransactionsCSV imports an uploaded CSV file as an all-or-nothing batch
func (h *Handler) ImportTransactionsCSV(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	// 5MB upload cap, matching the export side's expectations
	if err := r.ParseMultipartForm(5 << 20); err != nil {
		http.Error(w, "File too large or malformed upload", http.StatusBadRequest)
		return
	}
	file, _, err := r.FormFile("csv_file")
	if err != nil {
		http.Error(w, "No file was uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	imported, rowErrs, err := h.svc.ImportTransactionsCSV(uid, file)
	if err != nil {
		if len(rowErrs) > 0 {
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":  "Errors found in CSV file",
				"errors": rowErrs,
			})
			return
		}
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"imported": imported,
	})
}

// ExportTransactionsCSV streams the filtered ledger as a CSV download
func (h *Handler) ExportTransactionsCSV(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	page, err := h.svc.ListTransactions(uid, filterFromQuery(r))
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions_export.csv"`)
	if err := export.WriteCSV(w, page.Transactions); err != nil {
		respondError(w, err)
	}
}

// ExportTransactionsXML streams the filtered ledger as an XML download
func (h *Handler) ExportTransactionsXML(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}

	page, err := h.svc.ListTransactions(uid, filterFromQuery(r))
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/xml")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions_export.xml"`)
	if err := export.WriteXML(w, page.Transactions); err != nil {
		respondError(w, err)
	}
}
