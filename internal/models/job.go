package models

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// JobStatus defines the dashboard lifecycle of an active order
type JobStatus string

const (
	StatusProcessing  JobStatus = "processing"    // being washed
	StatusNotPickedUp JobStatus = "not_picked_up" // done, waiting at the counter
	StatusPickedUp    JobStatus = "picked_up"     // terminal; job record is deleted
)

// Valid reports whether s is a known job status
func (s JobStatus) Valid() bool {
	switch s {
	case StatusProcessing, StatusNotPickedUp, StatusPickedUp:
		return true
	}
	return false
}

// Rank returns the display ordering of the status on the dashboard
func (s JobStatus) Rank() int {
	switch s {
	case StatusProcessing:
		return 0
	case StatusNotPickedUp:
		return 1
	case StatusPickedUp:
		return 2
	}
	return 3
}

// Job is the mutable dashboard projection of an active order. It shares
// OrderNumber with exactly one Order and is deleted once the customer
// picks the laundry up; the Order remains as the historical record.
type Job struct {
	ID          uint                        `gorm:"primaryKey" json:"id"`
	OrderNumber int64                       `gorm:"not null;uniqueIndex:idx_jobs_owner_number" json:"orderNumber"`
	OwnerID     string                      `gorm:"type:uuid;not null;uniqueIndex:idx_jobs_owner_number;index" json:"ownerId"`
	Name        string                      `json:"name"`
	Phone       string                      `json:"phone"`
	Items       datatypes.JSONSlice[string] `json:"items"`
	Status      JobStatus                   `gorm:"type:varchar(20);default:'processing'" json:"status"`
	Payment     PaymentMethod               `gorm:"type:varchar(20);default:'unpaid'" json:"payment"`
	Deadline    *time.Time                  `json:"deadline,omitempty"`
	Discount    decimal.Decimal             `gorm:"type:numeric(14,2)" json:"discount"`
	CreatedAt   time.Time                   `json:"createdAt"`
	UpdatedAt   time.Time                   `json:"updatedAt"`
}

// TableName specifies the table name for Job model
func (Job) TableName() string {
	return "laundry"
}

// FilterUnpaid is the pseudo-status accepted by FilterJobs that matches on
// payment state instead of job status.
const FilterUnpaid = "unpaid"

// SortJobs orders jobs for dashboard display: status rank first, unpaid
// before paid within a status, then ascending order number. The sort is
// stable, so equal snapshots always render in the same order.
func SortJobs(jobs []Job) {
	sort.SliceStable(jobs, func(i, j int) bool {
		a, b := jobs[i], jobs[j]
		if ra, rb := a.Status.Rank(), b.Status.Rank(); ra != rb {
			return ra < rb
		}
		ua, ub := a.Payment == PaymentUnpaid, b.Payment == PaymentUnpaid
		if ua != ub {
			return ua
		}
		return a.OrderNumber < b.OrderNumber
	})
}

// FilterJobs applies the dashboard filter: an optional status (or the
// "unpaid" pseudo-status) and an optional free-text query matched against
// the customer name or the order number. Both conditions must hold.
func FilterJobs(jobs []Job, status, query string) []Job {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Job, 0, len(jobs))
	for _, j := range jobs {
		if status != "" {
			if status == FilterUnpaid {
				if j.Payment != PaymentUnpaid {
					continue
				}
			} else if string(j.Status) != status {
				continue
			}
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(j.Name), q) &&
			!strings.Contains(strconv.FormatInt(j.OrderNumber, 10), q) {
			continue
		}
		out = append(out, j)
	}
	return out
}
