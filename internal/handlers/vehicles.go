package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/motorhaus/garagego/internal/health"
	"github.com/motorhaus/garagego/internal/middleware"
	"github.com/motorhaus/garagego/internal/models"
)

// pathID parses the {id} route variable
func pathID(req *http.Request, name string) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(req)[name], 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// listVehicles returns the user's garage
func (r *Router) listVehicles(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFromContext(req.Context())

	var vehicles []models.Vehicle
	if err := r.db.Where("user_id = ?", userID).Order("created_at").Find(&vehicles).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load vehicles")
		return
	}

	respondJSON(w, http.StatusOK, vehicles)
}

// createVehicle adds a car to the garage
func (r *Router) createVehicle(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFromContext(req.Context())

	var vehicle models.Vehicle
	if err := json.NewDecoder(req.Body).Decode(&vehicle); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if vehicle.Make == "" || vehicle.Model == "" {
		respondError(w, http.StatusBadRequest, "Make and model are required")
		return
	}

	vehicle.ID = 0
	vehicle.UserID = userID
	if err := r.db.Create(&vehicle).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create vehicle")
		return
	}

	respondJSON(w, http.StatusCreated, vehicle)
}

// getVehicle returns one vehicle
func (r *Router) getVehicle(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFromContext(req.Context())
	id, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid vehicle id")
		return
	}

	var vehicle models.Vehicle
	if err := r.db.Where("user_id = ?", userID).First(&vehicle, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Vehicle not found")
		return
	}

	respondJSON(w, http.StatusOK, vehicle)
}

// updateVehicle updates vehicle fields. The odometer only moves forward.
func (r *Router) updateVehicle(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFromContext(req.Context())
	id, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid vehicle id")
		return
	}

	var vehicle models.Vehicle
	if err := r.db.Where("user_id = ?", userID).First(&vehicle, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Vehicle not found")
		return
	}

	var payload models.Vehicle
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.Odometer < vehicle.Odometer {
		respondError(w, http.StatusBadRequest, "Odometer cannot decrease")
		return
	}

	payload.ID = vehicle.ID
	payload.UserID = userID
	payload.CreatedAt = vehicle.CreatedAt
	if err := r.db.Save(&payload).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update vehicle")
		return
	}

	respondJSON(w, http.StatusOK, payload)
}

// deleteVehicle removes a vehicle and its dependents (soft delete)
func (r *Router) deleteVehicle(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFromContext(req.Context())
	id, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid vehicle id")
		return
	}

	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Vehicle{})
	if res.Error != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete vehicle")
		return
	}
	if res.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, "Vehicle not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Vehicle deleted"})
}

// partHealth pairs an installed part with its computed wear result
type partHealth struct {
	Item    models.InventoryItem `json:"item"`
	Health  health.Result        `json:"health"`
	Message string               `json:"message,omitempty"`
}

// vehicleHealthReport scores every installed part on the vehicle against
// the current odometer
func (r *Router) vehicleHealthReport(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFromContext(req.Context())
	id, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid vehicle id")
		return
	}

	var vehicle models.Vehicle
	if err := r.db.Where("user_id = ?", userID).First(&vehicle, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Vehicle not found")
		return
	}

	var items []models.InventoryItem
	if err := r.db.
		Where("vehicle_id = ? AND status = ? AND visibility = ?", vehicle.ID, models.StatusInstalled, models.VisibilityPublic).
		Find(&items).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load inventory")
		return
	}

	// Category definitions keyed by name for default lifespans
	var defs []models.ComponentType
	if err := r.db.Find(&defs).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load component types")
		return
	}
	defByName := make(map[string]*models.ComponentType, len(defs))
	for i := range defs {
		defByName[defs[i].Name] = &defs[i]
	}

	now := time.Now().UTC()
	report := make([]partHealth, 0, len(items))
	for i := range items {
		result := health.Calculate(&items[i], defByName[items[i].Category], vehicle.Odometer, now)
		entry := partHealth{Item: items[i], Health: result}
		if result.Status == health.StatusUnknown {
			entry.Message = health.UnknownReasonMessage(result.UnknownReason)
		}
		report = append(report, entry)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"vehicle": vehicle,
		"parts":   report,
	})
}
