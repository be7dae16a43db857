package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Kamaljaya32/Laundry/internal/middleware"
	"github.com/Kamaljaya32/Laundry/internal/models"
	"github.com/gorilla/mux"
)

// ServiceTypeRequest is the payload for adding a catalog entry
type ServiceTypeRequest struct {
	Name string `json:"name"`
}

// listServiceTypes returns the owner's service catalog sorted by name,
// used by the order form to autocomplete service entry
func (r *Router) listServiceTypes(w http.ResponseWriter, req *http.Request) {
	owner := middleware.OwnerID(req)

	var services []models.ServiceType
	if err := r.db.Where("owner_id = ?", owner).Order("name ASC").Find(&services).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch services")
		return
	}

	respondJSON(w, http.StatusOK, services)
}

// createServiceType adds a service name to the catalog, ignoring exact
// duplicates so repeated submits from the form are harmless
func (r *Router) createServiceType(w http.ResponseWriter, req *http.Request) {
	owner := middleware.OwnerID(req)

	var sr ServiceTypeRequest
	if err := json.NewDecoder(req.Body).Decode(&sr); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	sr.Name = strings.TrimSpace(sr.Name)
	if sr.Name == "" {
		respondError(w, http.StatusBadRequest, "Name is required")
		return
	}

	var existing models.ServiceType
	if err := r.db.Where("owner_id = ? AND name = ?", owner, sr.Name).First(&existing).Error; err == nil {
		respondJSON(w, http.StatusOK, existing)
		return
	}

	service := models.ServiceType{Name: sr.Name, OwnerID: owner}
	if err := r.db.Create(&service).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create service")
		return
	}

	respondJSON(w, http.StatusCreated, service)
}

// deleteServiceType removes a catalog entry
func (r *Router) deleteServiceType(w http.ResponseWriter, req *http.Request) {
	owner := middleware.OwnerID(req)
	id := mux.Vars(req)["id"]

	result := r.db.Where("id = ? AND owner_id = ?", id, owner).Delete(&models.ServiceType{})
	if result.Error != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete service")
		return
	}
	if result.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, "Service not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Service deleted successfully",
	})
}
