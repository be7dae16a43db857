package handlers

import (
	"encoding/json"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/Kamaljaya32/Laundry/internal/middleware"
	"github.com/Kamaljaya32/Laundry/internal/models"
	"github.com/Kamaljaya32/Laundry/internal/websocket"
	"github.com/gorilla/mux"
)

// Photo uploads are capped well above what a compressed phone photo needs
const maxPhotoSize = 8 << 20 // 8MB

// InventoryRequest is the create/update payload for an inventory item
type InventoryRequest struct {
	Name  string `json:"name"`
	Stock *int   `json:"stock"`
}

// listInventory returns the owner's inventory, newest first
func (r *Router) listInventory(w http.ResponseWriter, req *http.Request) {
	owner := middleware.OwnerID(req)

	var items []models.InventoryItem
	if err := r.db.Where("owner_id = ?", owner).Order("created_at DESC").Find(&items).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch inventory")
		return
	}

	respondJSON(w, http.StatusOK, items)
}

// getInventoryItem returns a single inventory item by ID
func (r *Router) getInventoryItem(w http.ResponseWriter, req *http.Request) {
	owner := middleware.OwnerID(req)

	item, ok := r.findInventoryItem(w, req, owner)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, item)
}

// createInventoryItem adds a new supply item
func (r *Router) createInventoryItem(w http.ResponseWriter, req *http.Request) {
	owner := middleware.OwnerID(req)

	var ir InventoryRequest
	if err := json.NewDecoder(req.Body).Decode(&ir); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	ir.Name = strings.TrimSpace(ir.Name)
	if ir.Name == "" || ir.Stock == nil || *ir.Stock < 0 {
		respondError(w, http.StatusBadRequest, "Name and a non-negative stock are required")
		return
	}

	item := models.InventoryItem{
		Name:    ir.Name,
		Stock:   *ir.Stock,
		OwnerID: owner,
	}
	if err := r.db.Create(&item).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create inventory item")
		return
	}

	r.hub.Publish(owner, websocket.Event{Type: "inventory.created", Data: item})
	respondJSON(w, http.StatusCreated, item)
}

// updateInventoryItem updates an item's name and stock count
func (r *Router) updateInventoryItem(w http.ResponseWriter, req *http.Request) {
	owner := middleware.OwnerID(req)

	item, ok := r.findInventoryItem(w, req, owner)
	if !ok {
		return
	}

	var ir InventoryRequest
	if err := json.NewDecoder(req.Body).Decode(&ir); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if name := strings.TrimSpace(ir.Name); name != "" {
		item.Name = name
	}
	if ir.Stock != nil {
		if *ir.Stock < 0 {
			respondError(w, http.StatusBadRequest, "Stock cannot be negative")
			return
		}
		item.Stock = *ir.Stock
	}

	if err := r.db.Save(item).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update inventory item")
		return
	}

	r.hub.Publish(owner, websocket.Event{Type: "inventory.updated", Data: item})
	respondJSON(w, http.StatusOK, item)
}

// deleteInventoryItem removes an item and its stored photo
func (r *Router) deleteInventoryItem(w http.ResponseWriter, req *http.Request) {
	owner := middleware.OwnerID(req)

	item, ok := r.findInventoryItem(w, req, owner)
	if !ok {
		return
	}

	if err := r.db.Delete(item).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete inventory item")
		return
	}
	if item.PhotoURL != nil {
		_ = r.store.Delete(*item.PhotoURL)
	}

	r.hub.Publish(owner, websocket.Event{Type: "inventory.deleted", Data: map[string]string{"id": item.ID}})
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Inventory item deleted successfully",
	})
}

// uploadInventoryPhoto stores a photo for the item and saves its URL.
// A previously uploaded photo is replaced.
func (r *Router) uploadInventoryPhoto(w http.ResponseWriter, req *http.Request) {
	owner := middleware.OwnerID(req)

	item, ok := r.findInventoryItem(w, req, owner)
	if !ok {
		return
	}

	req.Body = http.MaxBytesReader(w, req.Body, maxPhotoSize)
	if err := req.ParseMultipartForm(maxPhotoSize); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart payload")
		return
	}
	file, header, err := req.FormFile("photo")
	if err != nil {
		respondError(w, http.StatusBadRequest, "A 'photo' file field is required")
		return
	}
	defer file.Close()

	url, err := r.store.Save(owner, filepath.Ext(header.Filename), file)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to store photo")
		return
	}

	old := item.PhotoURL
	item.PhotoURL = &url
	if err := r.db.Save(item).Error; err != nil {
		_ = r.store.Delete(url)
		respondError(w, http.StatusInternalServerError, "Failed to update inventory item")
		return
	}
	if old != nil {
		_ = r.store.Delete(*old)
	}

	r.hub.Publish(owner, websocket.Event{Type: "inventory.updated", Data: item})
	respondJSON(w, http.StatusOK, item)
}

// findInventoryItem loads the item in the {id} path variable, responding
// with the appropriate error itself when it cannot
func (r *Router) findInventoryItem(w http.ResponseWriter, req *http.Request, owner string) (*models.InventoryItem, bool) {
	id := mux.Vars(req)["id"]

	var item models.InventoryItem
	if err := r.db.Where("id = ? AND owner_id = ?", id, owner).First(&item).Error; err != nil {
		respondError(w, http.StatusNotFound, "Inventory item not found")
		return nil, false
	}
	return &item, true
}
