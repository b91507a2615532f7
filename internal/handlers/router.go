package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/motorhaus/garagego/internal/ai"
	"github.com/motorhaus/garagego/internal/buildinfo"
	"github.com/motorhaus/garagego/internal/config"
	"github.com/motorhaus/garagego/internal/database"
	"github.com/motorhaus/garagego/internal/middleware"
	"github.com/motorhaus/garagego/internal/websocket"
	"github.com/motorhaus/garagego/internal/workshop"
)

// Router wraps the mux router and the application dependencies
type Router struct {
	*mux.Router
	db      *database.DB
	cfg     *config.Config
	svc     *workshop.Service
	planner *ai.Planner
	hub     *websocket.Hub
}

// NewRouter creates a new HTTP router with all routes. planner may be nil
// when no Gemini key is configured; the plan endpoint then returns 503.
func NewRouter(db *database.DB, cfg *config.Config, svc *workshop.Service, planner *ai.Planner, hub *websocket.Hub) *Router {
	r := &Router{
		Router:  mux.NewRouter(),
		db:      db,
		cfg:     cfg,
		svc:     svc,
		planner: planner,
		hub:     hub,
	}

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	// Auth routes
	auth := r.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.login).Methods("POST")
	auth.HandleFunc("/register", r.register).Methods("POST")
	auth.HandleFunc("/logout", r.logout).Methods("POST")

	// API routes (protected)
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.AuthMiddleware(cfg))
	api.HandleFunc("/status", r.getStatus).Methods("GET")

	// Profile + owned tools
	api.HandleFunc("/profile", r.getProfile).Methods("GET")
	api.HandleFunc("/profile", r.updateProfile).Methods("PUT")
	api.HandleFunc("/tools", r.listOwnedTools).Methods("GET")
	api.HandleFunc("/tools", r.addOwnedTool).Methods("POST")
	api.HandleFunc("/tools/{id}", r.deleteOwnedTool).Methods("DELETE")

	// Vehicles
	api.HandleFunc("/vehicles", r.listVehicles).Methods("GET")
	api.HandleFunc("/vehicles", r.createVehicle).Methods("POST")
	api.HandleFunc("/vehicles/{id}", r.getVehicle).Methods("GET")
	api.HandleFunc("/vehicles/{id}", r.updateVehicle).Methods("PUT")
	api.HandleFunc("/vehicles/{id}", r.deleteVehicle).Methods("DELETE")
	api.HandleFunc("/vehicles/{id}/health", r.vehicleHealthReport).Methods("GET")

	// Inventory
	api.HandleFunc("/inventory", r.listInventory).Methods("GET")
	api.HandleFunc("/inventory", r.createInventoryItem).Methods("POST")
	api.HandleFunc("/inventory/{id}", r.getInventoryItem).Methods("GET")
	api.HandleFunc("/inventory/{id}", r.updateInventoryItem).Methods("PUT")
	api.HandleFunc("/inventory/{id}", r.deleteInventoryItem).Methods("DELETE")
	api.HandleFunc("/inventory/{id}/ordered", r.markOrdered).Methods("POST")
	api.HandleFunc("/inventory/{id}/arrived", r.markArrived).Methods("POST")
	api.HandleFunc("/inventory/{id}/unlink-order", r.unlinkFromOrder).Methods("POST")
	api.HandleFunc("/inventory/{id}/planned", r.markPlanned).Methods("POST")

	// Orders
	api.HandleFunc("/orders", r.listOrders).Methods("GET")
	api.HandleFunc("/orders", r.createOrder).Methods("POST")
	api.HandleFunc("/orders/{id}", r.getOrder).Methods("GET")
	api.HandleFunc("/orders/{id}", r.updateOrder).Methods("PUT")
	api.HandleFunc("/orders/{id}", r.deleteOrder).Methods("DELETE")
	api.HandleFunc("/orders/{id}/decompose", r.decomposeOrder).Methods("POST")

	// Jobs
	api.HandleFunc("/jobs", r.listJobs).Methods("GET")
	api.HandleFunc("/jobs", r.createJob).Methods("POST")
	api.HandleFunc("/jobs/{id}", r.getJob).Methods("GET")
	api.HandleFunc("/jobs/{id}", r.updateJob).Methods("PUT")
	api.HandleFunc("/jobs/{id}", r.deleteJob).Methods("DELETE")
	api.HandleFunc("/jobs/{id}/readiness", r.jobReadiness).Methods("GET")
	api.HandleFunc("/jobs/{id}/plan-status", r.transitionPlanStatus).Methods("PUT")
	api.HandleFunc("/jobs/{id}/start", r.startJob).Methods("POST")
	api.HandleFunc("/jobs/{id}/complete", r.completeJob).Methods("POST")
	api.HandleFunc("/jobs/{id}/reopen", r.reopenJob).Methods("POST")
	api.HandleFunc("/jobs/{id}/parts", r.linkPart).Methods("POST")
	api.HandleFunc("/jobs/{id}/parts/{inventoryId}", r.unlinkPart).Methods("DELETE")
	api.HandleFunc("/jobs/{id}/generate-plan", r.generatePlan).Methods("POST")
	api.HandleFunc("/jobs/{id}/tasks/{taskId}", r.updateTask).Methods("PUT")
	api.HandleFunc("/jobs/{id}/tools/{toolId}", r.updateJobTool).Methods("PUT")

	// Printing
	api.HandleFunc("/print/jobs/{id}", r.printJobSheet).Methods("GET")
	api.HandleFunc("/print/labels", r.printPartLabels).Methods("POST")

	// Live updates
	r.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
		websocket.ServeWs(hub, w, req)
	})

	// Static files
	if cfg.FrontendDir != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.FrontendDir)))
	}

	return r
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// getStatus returns build metadata
func (r *Router) getStatus(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "running",
		"commit":  buildinfo.CommitHash,
		"built":   buildinfo.BuildTime,
		"started": buildinfo.StartTime,
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

// respondEngineError maps engine error types to HTTP statuses. Guard
// violations carry their unmet conditions through to the client.
func respondEngineError(w http.ResponseWriter, err error) {
	var (
		validation *workshop.ValidationError
		guard      *workshop.GuardViolation
		conflict   *workshop.ReferentialConflict
		missing    *workshop.NotFoundError
	)

	switch {
	case errors.As(err, &validation):
		respondError(w, http.StatusBadRequest, validation.Reason)
	case errors.As(err, &guard):
		respondJSON(w, http.StatusConflict, map[string]interface{}{
			"error":      guard.Reason,
			"conditions": guard.Conditions,
		})
	case errors.As(err, &conflict):
		respondError(w, http.StatusConflict, conflict.Reason)
	case errors.As(err, &missing):
		respondError(w, http.StatusNotFound, missing.Error())
	default:
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
