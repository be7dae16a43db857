package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/Kamaljaya32/Laundry/internal/models"
	"github.com/shopspring/decimal"
)

// MonthlyBucket aggregates one month of the ledger. Month is the
// zero-padded month number ("01".."12") used as the bucket key.
type MonthlyBucket struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// Profit returns income minus expense for this bucket
func (b MonthlyBucket) Profit() decimal.Decimal {
	return b.Income.Sub(b.Expense)
}

// MonthlyReport is the year-to-date ledger view: only months with activity
// appear, sorted by month key.
type MonthlyReport struct {
	Year         int             `json:"year"`
	Buckets      []MonthlyBucket `json:"buckets"`
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	Profit       decimal.Decimal `json:"profit"`
}

// DailySummary is the home-screen finance strip: today's paid income,
// today's expenses and their balance.
type DailySummary struct {
	Date    string          `json:"date"` // YYYY-MM-DD
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// Monthly buckets paid orders and expenses of the given calendar year by
// month. Aggregates are recomputed from the raw rows on every call; there
// is no persisted rollup to drift out of sync.
func Monthly(orders []models.Order, expenses []models.Expense, year int) MonthlyReport {
	type bucket struct {
		income  decimal.Decimal
		expense decimal.Decimal
	}
	buckets := make(map[string]*bucket)
	ensure := func(key string) *bucket {
		b, ok := buckets[key]
		if !ok {
			b = &bucket{income: decimal.Zero, expense: decimal.Zero}
			buckets[key] = b
		}
		return b
	}

	for _, o := range orders {
		if !o.Payment.Paid() || o.CreatedAt.Year() != year {
			continue
		}
		b := ensure(monthKey(o.CreatedAt))
		b.income = b.income.Add(o.Total)
	}
	for _, e := range expenses {
		if e.Date.Year() != year {
			continue
		}
		b := ensure(monthKey(e.Date))
		b.expense = b.expense.Add(e.Amount)
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rep := MonthlyReport{
		Year:         year,
		Buckets:      make([]MonthlyBucket, 0, len(keys)),
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}
	for _, k := range keys {
		b := buckets[k]
		rep.Buckets = append(rep.Buckets, MonthlyBucket{Month: k, Income: b.income, Expense: b.expense})
		rep.TotalIncome = rep.TotalIncome.Add(b.income)
		rep.TotalExpense = rep.TotalExpense.Add(b.expense)
	}
	rep.Profit = rep.TotalIncome.Sub(rep.TotalExpense)
	return rep
}

// Daily sums paid orders created on the given day and expenses dated that
// day. The day window is [00:00, 24:00) in the day's location.
func Daily(orders []models.Order, expenses []models.Expense, day time.Time) DailySummary {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	sum := DailySummary{
		Date:    start.Format("2006-01-02"),
		Income:  decimal.Zero,
		Expense: decimal.Zero,
	}
	for _, o := range orders {
		if !o.Payment.Paid() || o.CreatedAt.Before(start) || !o.CreatedAt.Before(end) {
			continue
		}
		sum.Income = sum.Income.Add(o.Total)
	}
	for _, e := range expenses {
		if e.Date.Before(start) || !e.Date.Before(end) {
			continue
		}
		sum.Expense = sum.Expense.Add(e.Amount)
	}
	sum.Balance = sum.Income.Sub(sum.Expense)
	return sum
}

func monthKey(t time.Time) string {
	return fmt.Sprintf("%02d", int(t.Month()))
}
