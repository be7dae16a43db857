package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Kamaljaya32/Laundry/internal/middleware"
	"github.com/Kamaljaya32/Laundry/internal/models"
	"github.com/Kamaljaya32/Laundry/internal/services/report"
)

// monthlyReport returns the month-bucketed ledger for one calendar year
// (default: the current year)
func (r *Router) monthlyReport(w http.ResponseWriter, req *http.Request) {
	owner := middleware.OwnerID(req)

	year := time.Now().Year()
	if y := req.URL.Query().Get("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid year")
			return
		}
		year = parsed
	}

	orders, expenses, ok := r.fetchLedgerRows(w, owner)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, report.Monthly(orders, expenses, year))
}

// dailyReport returns today's income, expense and balance — the summary
// strip shown at the top of the dashboard
func (r *Router) dailyReport(w http.ResponseWriter, req *http.Request) {
	owner := middleware.OwnerID(req)

	orders, expenses, ok := r.fetchLedgerRows(w, owner)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, report.Daily(orders, expenses, time.Now()))
}

// fetchLedgerRows loads the raw order and expense rows the aggregator
// derives its figures from
func (r *Router) fetchLedgerRows(w http.ResponseWriter, owner string) ([]models.Order, []models.Expense, bool) {
	var orders []models.Order
	if err := r.db.Where("owner_id = ?", owner).Find(&orders).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return nil, nil, false
	}
	var expenses []models.Expense
	if err := r.db.Where("owner_id = ?", owner).Find(&expenses).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch expenses")
		return nil, nil, false
	}
	return orders, expenses, true
}
