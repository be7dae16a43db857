package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/Kamaljaya32/Laundry/internal/middleware"
	"github.com/Kamaljaya32/Laundry/internal/models"
	"github.com/Kamaljaya32/Laundry/internal/websocket"
	"github.com/shopspring/decimal"
)

// ExpenseRequest is the payload for recording an expense
type ExpenseRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note"`
	Date   *time.Time      `json:"date"`
}

// listExpenses returns the owner's expenses, newest first
func (r *Router) listExpenses(w http.ResponseWriter, req *http.Request) {
	owner := middleware.OwnerID(req)

	var expenses []models.Expense
	if err := r.db.Where("owner_id = ?", owner).Order("date DESC").Find(&expenses).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch expenses")
		return
	}

	respondJSON(w, http.StatusOK, expenses)
}

// createExpense records a manually entered expense. Expenses are
// append-only; there are no update or delete operations.
func (r *Router) createExpense(w http.ResponseWriter, req *http.Request) {
	owner := middleware.OwnerID(req)

	var er ExpenseRequest
	if err := json.NewDecoder(req.Body).Decode(&er); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	er.Note = strings.TrimSpace(er.Note)
	if !er.Amount.GreaterThan(decimal.Zero) || er.Note == "" {
		respondError(w, http.StatusBadRequest, "Amount and note are required")
		return
	}

	date := time.Now()
	if er.Date != nil {
		date = *er.Date
	}

	expense := models.Expense{
		Amount:  er.Amount,
		Note:    er.Note,
		Date:    date,
		OwnerID: owner,
	}
	if err := r.db.Create(&expense).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to record expense")
		return
	}

	r.hub.Publish(owner, websocket.Event{Type: "expense.created", Data: expense})
	respondJSON(w, http.StatusCreated, expense)
}
