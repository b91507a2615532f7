package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/motorhaus/garagego/internal/middleware"
	"github.com/motorhaus/garagego/internal/models"
)

// listInventory returns the user's parts. By default only active records
// (visibility=public) are returned; ?all=true includes hardware and history
// rows, ?status= and ?vehicle= filter further.
func (r *Router) listInventory(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFromContext(req.Context())

	q := r.db.Where("user_id = ?", userID)
	if req.URL.Query().Get("all") != "true" {
		q = q.Where("visibility = ?", models.VisibilityPublic)
	}
	if status := req.URL.Query().Get("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if vehicle := req.URL.Query().Get("vehicle"); vehicle != "" {
		q = q.Where("vehicle_id = ?", vehicle)
	}

	var items []models.InventoryItem
	if err := q.Order("created_at desc").Find(&items).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load inventory")
		return
	}

	respondJSON(w, http.StatusOK, items)
}

// createInventoryItem adds a part. Default status is wishlist, so a bare
// {name, vehicle_id} payload is a wishlist add.
func (r *Router) createInventoryItem(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFromContext(req.Context())

	var item models.InventoryItem
	if err := json.NewDecoder(req.Body).Decode(&item); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if item.Name == "" {
		respondError(w, http.StatusBadRequest, "Name is required")
		return
	}
	if item.Quantity == 0 {
		item.Quantity = 1
	}
	if item.Quantity < 1 {
		respondError(w, http.StatusBadRequest, "Quantity must be at least 1")
		return
	}
	if item.Status == "" {
		item.Status = models.StatusWishlist
	}
	if item.Visibility == "" {
		item.Visibility = models.VisibilityPublic
	}

	item.ID = 0
	item.UserID = userID
	if err := r.db.Create(&item).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create item")
		return
	}

	respondJSON(w, http.StatusCreated, item)
}

// getInventoryItem returns one part with its order and hardware
func (r *Router) getInventoryItem(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFromContext(req.Context())
	id, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid item id")
		return
	}

	var item models.InventoryItem
	if err := r.db.
		Preload("Order").
		Preload("Hardware").
		Preload("MasterPart").
		Where("user_id = ?", userID).
		First(&item, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Item not found")
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// updateInventoryItem updates descriptive fields. Status moves only through
// the dedicated endpoints, so incoming status changes are ignored here.
func (r *Router) updateInventoryItem(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFromContext(req.Context())
	id, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid item id")
		return
	}

	var item models.InventoryItem
	if err := r.db.Where("user_id = ?", userID).First(&item, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Item not found")
		return
	}

	var payload models.InventoryItem
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.Name == "" {
		respondError(w, http.StatusBadRequest, "Name is required")
		return
	}

	updates := map[string]interface{}{
		"name":            payload.Name,
		"category":        payload.Category,
		"part_number":     payload.PartNumber,
		"variant":         payload.Variant,
		"purchase_price":  payload.PurchasePrice,
		"purchase_url":    payload.PurchaseURL,
		"priority":        payload.Priority,
		"lifespan_miles":  payload.LifespanMiles,
		"lifespan_months": payload.LifespanMonths,
		"is_reusable":     payload.IsReusable,
		"specs":           payload.Specs,
	}
	if err := r.db.Model(&item).Updates(updates).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update item")
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// deleteInventoryItem removes a part unless a job references it
func (r *Router) deleteInventoryItem(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFromContext(req.Context())
	id, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid item id")
		return
	}

	if err := r.svc.DeleteInventoryItem(userID, id); err != nil {
		respondEngineError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Item deleted"})
}

// markOrdered links an item to an order: wishlist -> ordered
func (r *Router) markOrdered(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFromContext(req.Context())
	id, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid item id")
		return
	}

	var payload struct {
		OrderID uint `json:"order_id"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil || payload.OrderID == 0 {
		respondError(w, http.StatusBadRequest, "order_id is required")
		return
	}

	if err := r.svc.MarkOrdered(userID, id, payload.OrderID); err != nil {
		respondEngineError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Item marked ordered"})
}

// markArrived moves an ordered item into stock
func (r *Router) markArrived(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFromContext(req.Context())
	id, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid item id")
		return
	}

	if err := r.svc.MarkArrived(userID, id); err != nil {
		respondEngineError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Item in stock"})
}

// unlinkFromOrder reverts an ordered item to the wishlist
func (r *Router) unlinkFromOrder(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFromContext(req.Context())
	id, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid item id")
		return
	}

	if err := r.svc.UnlinkFromOrder(userID, id); err != nil {
		respondEngineError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Item back on wishlist"})
}

// markPlanned reserves a part conceptually
func (r *Router) markPlanned(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFromContext(req.Context())
	id, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid item id")
		return
	}

	if err := r.svc.MarkPlanned(userID, id); err != nil {
		respondEngineError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Item marked planned"})
}
