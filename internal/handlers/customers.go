package handlers

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"

	"github.com/Kamaljaya32/Laundry/internal/middleware"
	"github.com/Kamaljaya32/Laundry/internal/models"
	"github.com/Kamaljaya32/Laundry/internal/websocket"
	"github.com/gorilla/mux"
)

// CustomerRequest is the create/update payload for a customer
type CustomerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// listCustomers returns the owner's customers sorted by name, optionally
// narrowed by a free-text search over name or phone
func (r *Router) listCustomers(w http.ResponseWriter, req *http.Request) {
	owner := middleware.OwnerID(req)

	var customers []models.Customer
	if err := r.db.Where("owner_id = ?", owner).Find(&customers).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch customers")
		return
	}

	if q := req.URL.Query().Get("q"); q != "" {
		filtered := customers[:0]
		for _, c := range customers {
			if c.MatchesSearch(q) {
				filtered = append(filtered, c)
			}
		}
		customers = filtered
	}

	sort.Slice(customers, func(i, j int) bool {
		return strings.ToLower(customers[i].Name) < strings.ToLower(customers[j].Name)
	})

	respondJSON(w, http.StatusOK, customers)
}

// autocompleteCustomers returns customers whose phone starts with the
// given prefix, for the order form's phone autocomplete
func (r *Router) autocompleteCustomers(w http.ResponseWriter, req *http.Request) {
	owner := middleware.OwnerID(req)
	prefix := req.URL.Query().Get("phone")

	var customers []models.Customer
	if err := r.db.Where("owner_id = ?", owner).Find(&customers).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch customers")
		return
	}

	respondJSON(w, http.StatusOK, models.FilterCustomersByPhone(customers, prefix))
}

// getCustomer returns a single customer by ID
func (r *Router) getCustomer(w http.ResponseWriter, req *http.Request) {
	owner := middleware.OwnerID(req)
	id := mux.Vars(req)["id"]

	var customer models.Customer
	if err := r.db.Where("id = ? AND owner_id = ?", id, owner).First(&customer).Error; err != nil {
		respondError(w, http.StatusNotFound, "Customer not found")
		return
	}

	respondJSON(w, http.StatusOK, customer)
}

// createCustomer creates a new customer with a zero order count
func (r *Router) createCustomer(w http.ResponseWriter, req *http.Request) {
	owner := middleware.OwnerID(req)

	var cr CustomerRequest
	if err := json.NewDecoder(req.Body).Decode(&cr); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	cr.Name = strings.TrimSpace(cr.Name)
	cr.Phone = strings.TrimSpace(cr.Phone)
	if cr.Name == "" || cr.Phone == "" {
		respondError(w, http.StatusBadRequest, "Name and phone are required")
		return
	}

	customer := models.Customer{
		Name:    cr.Name,
		Phone:   cr.Phone,
		OwnerID: owner,
	}
	if err := r.db.Create(&customer).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	r.hub.Publish(owner, websocket.Event{Type: "customer.created", Data: customer})
	respondJSON(w, http.StatusCreated, customer)
}

// updateCustomer updates a customer's name and phone. TotalOrders is
// owned by checkout and cannot be edited here.
func (r *Router) updateCustomer(w http.ResponseWriter, req *http.Request) {
	owner := middleware.OwnerID(req)
	id := mux.Vars(req)["id"]

	var customer models.Customer
	if err := r.db.Where("id = ? AND owner_id = ?", id, owner).First(&customer).Error; err != nil {
		respondError(w, http.StatusNotFound, "Customer not found")
		return
	}

	var cr CustomerRequest
	if err := json.NewDecoder(req.Body).Decode(&cr); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if name := strings.TrimSpace(cr.Name); name != "" {
		customer.Name = name
	}
	if phone := strings.TrimSpace(cr.Phone); phone != "" {
		customer.Phone = phone
	}

	if err := r.db.Save(&customer).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update customer")
		return
	}

	r.hub.Publish(owner, websocket.Event{Type: "customer.updated", Data: customer})
	respondJSON(w, http.StatusOK, customer)
}

// deleteCustomer removes a customer. Their orders stay in the ledger.
func (r *Router) deleteCustomer(w http.ResponseWriter, req *http.Request) {
	owner := middleware.OwnerID(req)
	id := mux.Vars(req)["id"]

	result := r.db.Where("id = ? AND owner_id = ?", id, owner).Delete(&models.Customer{})
	if result.Error != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete customer")
		return
	}
	if result.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, "Customer not found")
		return
	}

	r.hub.Publish(owner, websocket.Event{Type: "customer.deleted", Data: map[string]string{"id": id}})
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Customer deleted successfully",
	})
}
