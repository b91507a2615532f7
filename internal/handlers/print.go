package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"gorm.io/gorm"

	"github.com/motorhaus/garagego/internal/middleware"
	"github.com/motorhaus/garagego/internal/models"
	"github.com/motorhaus/garagego/internal/services/printer"
)

// printJobSheet streams a printable work order PDF
func (r *Router) printJobSheet(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFromContext(req.Context())
	id, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid job id")
		return
	}

	var job models.Job
	if err := r.db.
		Preload("Tasks", func(db *gorm.DB) *gorm.DB { return db.Order("order_index") }).
		Preload("Tools").
		Preload("Specs").
		Where("user_id = ?", userID).
		First(&job, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Job not found")
		return
	}

	var vehicle models.Vehicle
	if err := r.db.Where("user_id = ?", userID).First(&vehicle, job.VehicleID).Error; err != nil {
		respondError(w, http.StatusNotFound, "Vehicle not found")
		return
	}

	pdf, err := printer.GenerateJobSheetPDF(&job, &vehicle)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="job-%d.pdf"`, job.ID))
	w.Write(pdf)
}

// printPartLabels streams a QR label sheet for the requested parts
func (r *Router) printPartLabels(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFromContext(req.Context())

	var payload struct {
		IDs    []uint               `json:"ids"`
		Layout *printer.LabelConfig `json:"layout"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil || len(payload.IDs) == 0 {
		respondError(w, http.StatusBadRequest, "ids is required")
		return
	}

	var parts []models.InventoryItem
	if err := r.db.Where("user_id = ? AND id IN ?", userID, payload.IDs).Find(&parts).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load parts")
		return
	}
	if len(parts) == 0 {
		respondError(w, http.StatusNotFound, "No matching parts")
		return
	}

	cfg := printer.DefaultLabelConfig()
	if payload.Layout != nil {
		cfg = *payload.Layout
	}

	pdf, err := printer.GeneratePartLabelsPDF(cfg, parts)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="part-labels.pdf"`)
	w.Write(pdf)
}
