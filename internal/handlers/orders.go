package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Kamaljaya32/Laundry/internal/middleware"
	"github.com/Kamaljaya32/Laundry/internal/models"
	"github.com/Kamaljaya32/Laundry/internal/services/printer"
	"github.com/Kamaljaya32/Laundry/internal/websocket"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CheckoutRequest is the order builder's submit payload: the accumulated
// wizard state (customer, dates, items, payment, discount).
type CheckoutRequest struct {
	CustomerID    string               `json:"customerId"`
	InDate        *time.Time           `json:"inDate"`
	OutDate       *time.Time           `json:"outDate"`
	Deadline      *time.Time           `json:"deadline"`
	Items         []models.OrderItem   `json:"items"`
	Payment       models.PaymentMethod `json:"payment"`
	DiscountType  models.DiscountType  `json:"discountType"`
	DiscountInput decimal.Decimal      `json:"discountInput"`
}

// checkout commits a draft order: it allocates the next order number for
// the owner, writes the immutable Order, its dashboard Job and the
// customer's order counter in one transaction, then notifies subscribers.
func (r *Router) checkout(w http.ResponseWriter, req *http.Request) {
	owner := middleware.OwnerID(req)

	var cr CheckoutRequest
	if err := json.NewDecoder(req.Body).Decode(&cr); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if cr.CustomerID == "" {
		respondError(w, http.StatusBadRequest, "A customer must be selected")
		return
	}
	if len(cr.Items) == 0 {
		respondError(w, http.StatusBadRequest, "At least one service item is required")
		return
	}
	if cr.Payment == "" {
		cr.Payment = models.PaymentUnpaid
	}
	if !cr.Payment.Valid() {
		respondError(w, http.StatusBadRequest, "Unknown payment method")
		return
	}

	subtotal, discount, total := models.ComputeTotals(cr.Items, cr.DiscountType, cr.DiscountInput)

	var order models.Order
	var job models.Job

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.Where("id = ? AND owner_id = ?", cr.CustomerID, owner).First(&customer).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errCustomerNotFound
			}
			return err
		}

		// Allocate the next order number under a row lock
		var counter models.OrderCounter
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("owner_id = ?", owner).First(&counter).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// First order for this owner. Two devices can race to create
			// the row, so a conflicting insert is a no-op and both fall
			// through to lock whichever row won.
			counter = models.OrderCounter{OwnerID: owner}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&counter).Error; err != nil {
				return err
			}
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("owner_id = ?", owner).First(&counter).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
		counter.LastNumber++
		if err := tx.Save(&counter).Error; err != nil {
			return err
		}

		order = models.Order{
			OrderNumber:  counter.LastNumber,
			OwnerID:      owner,
			CustomerID:   customer.ID,
			CustomerName: customer.Name,
			Phone:        customer.Phone,
			InDate:       cr.InDate,
			OutDate:      cr.OutDate,
			Items:        cr.Items,
			Subtotal:     subtotal,
			Discount:     discount,
			Total:        total,
			Payment:      cr.Payment,
			Status:       models.StatusProcessing,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		summaries := make([]string, len(cr.Items))
		for i, item := range cr.Items {
			summaries[i] = fmt.Sprintf("%skg %s", item.Weight.String(), item.Service)
		}
		job = models.Job{
			OrderNumber: order.OrderNumber,
			OwnerID:     owner,
			Name:        customer.Name,
			Phone:       customer.Phone,
			Items:       summaries,
			Status:      models.StatusProcessing,
			Payment:     cr.Payment,
			Deadline:    cr.Deadline,
			Discount:    discount,
		}
		if err := tx.Create(&job).Error; err != nil {
			return err
		}

		return tx.Model(&customer).
			Update("total_orders", gorm.Expr("total_orders + 1")).Error
	})

	if errors.Is(err, errCustomerNotFound) {
		respondError(w, http.StatusBadRequest, "A customer must be selected")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to commit order")
		return
	}

	r.hub.Publish(owner, websocket.Event{Type: "order.created", Data: order})
	r.hub.Publish(owner, websocket.Event{Type: "job.created", Data: job})

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"order": order,
		"job":   job,
	})
}

var errCustomerNotFound = errors.New("customer not found")

// listOrders returns the owner's order history, newest first, optionally
// filtered by payment method and creation date range
func (r *Router) listOrders(w http.ResponseWriter, req *http.Request) {
	owner := middleware.OwnerID(req)

	query := r.db.Where("owner_id = ?", owner)
	if payment := req.URL.Query().Get("payment"); payment != "" {
		if payment == "paid" {
			query = query.Where("payment IN ?", []models.PaymentMethod{
				models.PaymentCash, models.PaymentQris, models.PaymentTransfer,
			})
		} else {
			query = query.Where("payment = ?", payment)
		}
	}
	if from := req.URL.Query().Get("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid 'from' date, expected YYYY-MM-DD")
			return
		}
		query = query.Where("created_at >= ?", t)
	}
	if to := req.URL.Query().Get("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid 'to' date, expected YYYY-MM-DD")
			return
		}
		query = query.Where("created_at < ?", t.AddDate(0, 0, 1))
	}

	var orders []models.Order
	if err := query.Order("order_number DESC").Find(&orders).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

// getOrder returns a single order by ID
func (r *Router) getOrder(w http.ResponseWriter, req *http.Request) {
	owner := middleware.OwnerID(req)

	order, ok := r.findOrder(w, req, owner)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// orderReceipt renders the order's receipt. ?format=text (default)
// returns the fixed-width ESC/POS text; ?format=pdf returns a PDF with a
// QR code. ?copy=owner renders the shop's copy.
func (r *Router) orderReceipt(w http.ResponseWriter, req *http.Request) {
	owner := middleware.OwnerID(req)

	order, ok := r.findOrder(w, req, owner)
	if !ok {
		return
	}

	copyKind := printer.CopyCustomer
	if req.URL.Query().Get("copy") == string(printer.CopyOwner) {
		copyKind = printer.CopyOwner
	}
	shop := printer.ShopInfo{Name: r.cfg.Shop.Name, Address: r.cfg.Shop.Address}

	if req.URL.Query().Get("format") == "pdf" {
		pdfBytes, err := printer.RenderPDF(order, shop, copyKind)
		if err != nil {
			respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to generate PDF: %v", err))
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"nota_%d.pdf\"", order.OrderNumber))
		w.Header().Set("Content-Length", strconv.Itoa(len(pdfBytes)))
		w.Write(pdfBytes)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(printer.RenderText(order, shop, copyKind)))
}

// findOrder loads the order in the {id} path variable, responding with
// the appropriate error itself when it cannot
func (r *Router) findOrder(w http.ResponseWriter, req *http.Request, owner string) (*models.Order, bool) {
	id, err := strconv.ParseUint(mux.Vars(req)["id"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid order ID")
		return nil, false
	}

	var order models.Order
	if err := r.db.Where("id = ? AND owner_id = ?", id, owner).First(&order).Error; err != nil {
		respondError(w, http.StatusNotFound, "Order not found")
		return nil, false
	}
	return &order, true
}
