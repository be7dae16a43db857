package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Kamaljaya32/Laundry/internal/buildinfo"
	"github.com/Kamaljaya32/Laundry/internal/config"
	"github.com/Kamaljaya32/Laundry/internal/database"
	"github.com/Kamaljaya32/Laundry/internal/middleware"
	"github.com/Kamaljaya32/Laundry/internal/services/storage"
	"github.com/Kamaljaya32/Laundry/internal/websocket"
	"github.com/gorilla/mux"
)

// Router wraps the mux router and the handles every request needs
type Router struct {
	*mux.Router
	db    *database.DB
	cfg   *config.Config
	hub   *websocket.Hub
	store *storage.Store
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(db *database.DB, cfg *config.Config, hub *websocket.Hub, store *storage.Store) *Router {
	r := &Router{
		Router: mux.NewRouter(),
		db:     db,
		cfg:    cfg,
		hub:    hub,
		store:  store,
	}

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	// Auth routes
	auth := r.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.login).Methods("POST")
	auth.HandleFunc("/register", r.register).Methods("POST")
	auth.HandleFunc("/refresh", r.refresh).Methods("POST")
	auth.HandleFunc("/logout", r.logout).Methods("POST")

	// Realtime event stream (token authenticated in the handler)
	r.HandleFunc("/ws", r.serveWs).Methods("GET")

	// API routes (protected)
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Auth(cfg.JWTSecret))

	api.HandleFunc("/status", r.getStatus).Methods("GET")

	// Customer directory
	api.HandleFunc("/customers", r.listCustomers).Methods("GET")
	api.HandleFunc("/customers", r.createCustomer).Methods("POST")
	api.HandleFunc("/customers/autocomplete", r.autocompleteCustomers).Methods("GET")
	api.HandleFunc("/customers/{id}", r.getCustomer).Methods("GET")
	api.HandleFunc("/customers/{id}", r.updateCustomer).Methods("PUT")
	api.HandleFunc("/customers/{id}", r.deleteCustomer).Methods("DELETE")

	// Service catalog
	api.HandleFunc("/services", r.listServiceTypes).Methods("GET")
	api.HandleFunc("/services", r.createServiceType).Methods("POST")
	api.HandleFunc("/services/{id}", r.deleteServiceType).Methods("DELETE")

	// Orders (immutable history) and checkout
	api.HandleFunc("/orders", r.checkout).Methods("POST")
	api.HandleFunc("/orders", r.listOrders).Methods("GET")
	api.HandleFunc("/orders/{id}", r.getOrder).Methods("GET")
	api.HandleFunc("/orders/{id}/receipt", r.orderReceipt).Methods("GET")

	// Job dashboard
	api.HandleFunc("/jobs", r.listJobs).Methods("GET")
	api.HandleFunc("/jobs/{id}/status", r.updateJobStatus).Methods("PATCH")
	api.HandleFunc("/jobs/{id}/payment", r.updateJobPayment).Methods("PATCH")

	// Expenses
	api.HandleFunc("/expenses", r.listExpenses).Methods("GET")
	api.HandleFunc("/expenses", r.createExpense).Methods("POST")

	// Inventory
	api.HandleFunc("/inventory", r.listInventory).Methods("GET")
	api.HandleFunc("/inventory", r.createInventoryItem).Methods("POST")
	api.HandleFunc("/inventory/{id}", r.getInventoryItem).Methods("GET")
	api.HandleFunc("/inventory/{id}", r.updateInventoryItem).Methods("PUT")
	api.HandleFunc("/inventory/{id}", r.deleteInventoryItem).Methods("DELETE")
	api.HandleFunc("/inventory/{id}/photo", r.uploadInventoryPhoto).Methods("POST")

	// Reports
	api.HandleFunc("/reports/monthly", r.monthlyReport).Methods("GET")
	api.HandleFunc("/reports/daily", r.dailyReport).Methods("GET")

	// Uploaded inventory photos
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))

	return r
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"server": "laundry-pos",
	})
}

// getStatus returns the current status and build identity
func (r *Router) getStatus(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":    "running",
		"version":   buildinfo.Version,
		"commit":    buildinfo.CommitHash,
		"buildTime": buildinfo.BuildTime,
		"startTime": buildinfo.StartTime,
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
