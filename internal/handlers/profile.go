package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/motorhaus/garagego/internal/middleware"
	"github.com/motorhaus/garagego/internal/models"
	"github.com/motorhaus/garagego/internal/workshop"
)

// getProfile returns the authenticated user's profile
func (r *Router) getProfile(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFromContext(req.Context())

	var user models.UserAuth
	if err := r.db.First(&user, "id = ?", userID).Error; err != nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// updateProfile updates name and skill level
func (r *Router) updateProfile(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFromContext(req.Context())

	var payload struct {
		Name       string `json:"name"`
		SkillLevel string `json:"skillLevel"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	updates := map[string]interface{}{}
	if payload.Name != "" {
		updates["name"] = payload.Name
	}
	switch payload.SkillLevel {
	case "":
	case "beginner", "intermediate", "experienced", "professional":
		updates["skill_level"] = payload.SkillLevel
	default:
		respondError(w, http.StatusBadRequest, "Unknown skill level: "+payload.SkillLevel)
		return
	}

	var user models.UserAuth
	if err := r.db.First(&user, "id = ?", userID).Error; err != nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}
	if err := r.db.Model(&user).Updates(updates).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// listOwnedTools returns the user's garage tool list
func (r *Router) listOwnedTools(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFromContext(req.Context())

	var tools []models.OwnedTool
	if err := r.db.Where("user_id = ?", userID).Order("name").Find(&tools).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load tools")
		return
	}

	respondJSON(w, http.StatusOK, tools)
}

// addOwnedTool records a tool the user owns
func (r *Router) addOwnedTool(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFromContext(req.Context())

	var payload struct {
		Name      string `json:"name"`
		Suggested bool   `json:"suggested"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	normalized := workshop.NormalizeToolName(payload.Name)
	if normalized == "" {
		respondError(w, http.StatusBadRequest, "Tool name is required")
		return
	}

	tool := models.OwnedTool{
		UserID:         userID,
		Name:           payload.Name,
		NormalizedName: normalized,
		Suggested:      payload.Suggested,
	}
	if err := r.db.Create(&tool).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to save tool")
		return
	}

	respondJSON(w, http.StatusCreated, tool)
}

// deleteOwnedTool removes a tool from the garage list
func (r *Router) deleteOwnedTool(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFromContext(req.Context())

	id, err := strconv.ParseUint(mux.Vars(req)["id"], 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid tool id")
		return
	}

	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.OwnedTool{})
	if res.Error != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete tool")
		return
	}
	if res.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, "Tool not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Tool deleted"})
}
