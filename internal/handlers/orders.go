package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/motorhaus/garagego/internal/middleware"
	"github.com/motorhaus/garagego/internal/models"
	"github.com/motorhaus/garagego/internal/workshop"
)

// listOrders returns the user's orders with their items
func (r *Router) listOrders(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFromContext(req.Context())

	q := r.db.Where("user_id = ?", userID)
	if status := req.URL.Query().Get("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var orders []models.Order
	if err := q.Preload("Items").Order("created_at desc").Find(&orders).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load orders")
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

// createOrder records a purchase
func (r *Router) createOrder(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFromContext(req.Context())

	var order models.Order
	if err := json.NewDecoder(req.Body).Decode(&order); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if order.Vendor == "" {
		respondError(w, http.StatusBadRequest, "Vendor is required")
		return
	}
	if order.Status == "" {
		order.Status = models.OrderStatusOrdered
	}

	order.ID = 0
	order.UserID = userID
	if err := r.db.Create(&order).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create order")
		return
	}

	respondJSON(w, http.StatusCreated, order)
}

// getOrder returns one order with its items
func (r *Router) getOrder(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFromContext(req.Context())
	id, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	var order models.Order
	if err := r.db.Preload("Items").Where("user_id = ?", userID).First(&order, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Order not found")
		return
	}

	respondJSON(w, http.StatusOK, order)
}

// updateOrder updates order metadata and shipping state
func (r *Router) updateOrder(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFromContext(req.Context())
	id, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	var order models.Order
	if err := r.db.Where("user_id = ?", userID).First(&order, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Order not found")
		return
	}

	var payload models.Order
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	payload.ID = order.ID
	payload.UserID = userID
	payload.CreatedAt = order.CreatedAt
	if err := r.db.Save(&payload).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update order")
		return
	}

	respondJSON(w, http.StatusOK, payload)
}

// deleteOrder removes an order that has no items attached
func (r *Router) deleteOrder(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFromContext(req.Context())
	id, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	var attached int64
	if err := r.db.Model(&models.InventoryItem{}).Where("order_id = ?", id).Count(&attached).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to check order items")
		return
	}
	if attached > 0 {
		respondError(w, http.StatusConflict, "Order still has items linked; unlink them first")
		return
	}

	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Order{})
	if res.Error != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete order")
		return
	}
	if res.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, "Order not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Order deleted"})
}

// decomposeOrder expands order lines into discrete parts and hardware
func (r *Router) decomposeOrder(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFromContext(req.Context())
	id, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	var payload struct {
		Lines []workshop.DecomposeLine `json:"lines"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	createdIDs, err := r.svc.DecomposeOrder(userID, id, payload.Lines)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"created_ids": createdIDs,
	})
}
