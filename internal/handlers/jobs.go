package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/motorhaus/garagego/internal/middleware"
	"github.com/motorhaus/garagego/internal/models"
)

// listJobs returns the user's jobs, optionally filtered by vehicle/status
func (r *Router) listJobs(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFromContext(req.Context())

	q := r.db.Where("user_id = ?", userID)
	if vehicle := req.URL.Query().Get("vehicle"); vehicle != "" {
		q = q.Where("vehicle_id = ?", vehicle)
	}
	if status := req.URL.Query().Get("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var jobs []models.Job
	if err := q.Order("order_index, created_at").Find(&jobs).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load jobs")
		return
	}

	respondJSON(w, http.StatusOK, jobs)
}

// createJob opens a new job on a vehicle. Jobs start as planned/draft.
func (r *Router) createJob(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFromContext(req.Context())

	var job models.Job
	if err := json.NewDecoder(req.Body).Decode(&job); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if job.Title == "" || job.VehicleID == 0 {
		respondError(w, http.StatusBadRequest, "Title and vehicle_id are required")
		return
	}

	var vehicle models.Vehicle
	if err := r.db.Where("user_id = ?", userID).First(&vehicle, job.VehicleID).Error; err != nil {
		respondError(w, http.StatusNotFound, "Vehicle not found")
		return
	}

	job.ID = 0
	job.UserID = userID
	job.Status = models.JobStatusPlanned
	job.PlanStatus = models.PlanStatusDraft
	job.Odometer = nil
	job.DateCompleted = nil
	if err := r.db.Create(&job).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create job")
		return
	}

	respondJSON(w, http.StatusCreated, job)
}

// getJob returns a job with its full plan
func (r *Router) getJob(w http.ResponseWriter, req *http.Request) {
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
		Preload("Parts.Inventory").
		Where("user_id = ?", userID).
		First(&job, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Job not found")
		return
	}

	respondJSON(w, http.StatusOK, job)
}

// updateJob updates title, notes and ordering. Status and plan status move
// only through their dedicated endpoints.
func (r *Router) updateJob(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFromContext(req.Context())
	id, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid job id")
		return
	}

	var job models.Job
	if err := r.db.Where("user_id = ?", userID).First(&job, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Job not found")
		return
	}

	var payload struct {
		Title      string `json:"title"`
		Notes      string `json:"notes"`
		OrderIndex *int   `json:"order_index"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	updates := map[string]interface{}{"notes": payload.Notes}
	if payload.Title != "" {
		updates["title"] = payload.Title
	}
	if payload.OrderIndex != nil {
		updates["order_index"] = *payload.OrderIndex
	}
	if err := r.db.Model(&job).Updates(updates).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update job")
		return
	}

	respondJSON(w, http.StatusOK, job)
}

// deleteJob removes a job and its plan (cascade)
func (r *Router) deleteJob(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFromContext(req.Context())
	id, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid job id")
		return
	}

	res := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Job{})
	if res.Error != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete job")
		return
	}
	if res.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, "Job not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Job deleted"})
}

// jobReadiness reports missing parts and tools
func (r *Router) jobReadiness(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFromContext(req.Context())
	id, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid job id")
		return
	}

	readiness, err := r.svc.CheckReadiness(userID, id)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, readiness)
}

// transitionPlanStatus moves a plan between draft/ready
func (r *Router) transitionPlanStatus(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFromContext(req.Context())
	id, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid job id")
		return
	}

	var payload struct {
		PlanStatus models.PlanStatus `json:"plan_status"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil || payload.PlanStatus == "" {
		respondError(w, http.StatusBadRequest, "plan_status is required")
		return
	}

	if err := r.svc.TransitionPlanStatus(userID, id, payload.PlanStatus); err != nil {
		respondEngineError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Plan status updated"})
}

// startJob begins work on a job
func (r *Router) startJob(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFromContext(req.Context())
	id, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid job id")
		return
	}

	if err := r.svc.StartJob(userID, id); err != nil {
		respondEngineError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Job started"})
}

// completeJob closes out a job at the given odometer reading
func (r *Router) completeJob(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFromContext(req.Context())
	id, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid job id")
		return
	}

	var payload struct {
		Odometer int `json:"odometer"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := r.svc.CompleteJob(userID, id, payload.Odometer); err != nil {
		respondEngineError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Job completed"})
}

// reopenJob moves an in-progress job back to planned
func (r *Router) reopenJob(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFromContext(req.Context())
	id, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid job id")
		return
	}

	if err := r.svc.MoveJobToPlanned(userID, id); err != nil {
		respondEngineError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Job moved back to planned"})
}

// linkPart allocates a part (or a split of it) to a job
func (r *Router) linkPart(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFromContext(req.Context())
	id, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid job id")
		return
	}

	var payload struct {
		InventoryID uint `json:"inventory_id"`
		Qty         int  `json:"qty"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil || payload.InventoryID == 0 {
		respondError(w, http.StatusBadRequest, "inventory_id is required")
		return
	}
	if payload.Qty == 0 {
		payload.Qty = 1
	}

	linkedID, err := r.svc.LinkPartToJob(userID, id, payload.InventoryID, payload.Qty)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]uint{"linked_inventory_id": linkedID})
}

// unlinkPart removes a part allocation
func (r *Router) unlinkPart(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFromContext(req.Context())
	id, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid job id")
		return
	}
	inventoryID, ok := pathID(req, "inventoryId")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid inventory id")
		return
	}

	if err := r.svc.UnlinkPartFromJob(userID, id, inventoryID); err != nil {
		respondEngineError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Part unlinked"})
}

// generatePlan asks the AI planner for a work plan and seeds the job's
// tasks, tools and specs from the validated draft. Existing checklist rows
// are replaced.
func (r *Router) generatePlan(w http.ResponseWriter, req *http.Request) {
	if r.planner == nil {
		respondError(w, http.StatusServiceUnavailable, "Plan generation is not configured")
		return
	}

	userID := middleware.UserIDFromContext(req.Context())
	id, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid job id")
		return
	}

	var job models.Job
	if err := r.db.Preload("Parts.Inventory").Where("user_id = ?", userID).First(&job, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Job not found")
		return
	}

	var vehicle models.Vehicle
	if err := r.db.Where("user_id = ?", userID).First(&vehicle, job.VehicleID).Error; err != nil {
		respondError(w, http.StatusNotFound, "Vehicle not found")
		return
	}

	var user models.UserAuth
	if err := r.db.First(&user, "id = ?", userID).Error; err != nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	var owned []models.OwnedTool
	if err := r.db.Where("user_id = ?", userID).Find(&owned).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load tools")
		return
	}

	partNames := make([]string, 0, len(job.Parts))
	for _, link := range job.Parts {
		if link.Inventory != nil {
			partNames = append(partNames, link.Inventory.Name)
		}
	}

	ctx, cancel := context.WithTimeout(req.Context(), 60*time.Second)
	defer cancel()

	draft, err := r.planner.GeneratePlan(ctx, vehicle.Description(), job.Title, user.SkillLevel, partNames, owned)
	if err != nil {
		respondError(w, http.StatusBadGateway, "Plan generation failed: "+err.Error())
		return
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&models.JobTask{}, &models.JobTool{}, &models.JobSpec{}} {
			if err := tx.Where("job_id = ?", job.ID).Delete(model).Error; err != nil {
				return err
			}
		}

		idx := 0
		for _, step := range draft.TeardownSteps {
			task := models.JobTask{JobID: job.ID, Instruction: step, Phase: models.PhaseTeardown, OrderIndex: idx}
			if err := tx.Create(&task).Error; err != nil {
				return err
			}
			idx++
		}
		for _, step := range draft.AssemblySteps {
			task := models.JobTask{JobID: job.ID, Instruction: step, Phase: models.PhaseAssembly, OrderIndex: idx}
			if err := tx.Create(&task).Error; err != nil {
				return err
			}
			idx++
		}

		for _, tool := range draft.Tools {
			row := models.JobTool{JobID: job.ID, Name: tool.Name, Required: tool.Required, IsAcquired: tool.IsAcquired, Note: tool.Note}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		for _, spec := range draft.Specs {
			row := models.JobSpec{JobID: job.ID, Item: spec.Item, Value: spec.Value, Note: spec.Note}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to save plan")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"plan":     draft,
		"warnings": draft.Warnings,
		"pro_tips": draft.ProTips,
	})
}

// updateTask toggles per-phase completion flags on a checklist step
func (r *Router) updateTask(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFromContext(req.Context())
	jobID, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid job id")
		return
	}
	taskID, ok := pathID(req, "taskId")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid task id")
		return
	}

	var job models.Job
	if err := r.db.Where("user_id = ?", userID).First(&job, jobID).Error; err != nil {
		respondError(w, http.StatusNotFound, "Job not found")
		return
	}

	var task models.JobTask
	if err := r.db.Where("job_id = ?", jobID).First(&task, taskID).Error; err != nil {
		respondError(w, http.StatusNotFound, "Task not found")
		return
	}

	var payload struct {
		IsDoneTear  *bool `json:"is_done_tear"`
		IsDoneBuild *bool `json:"is_done_build"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	updates := map[string]interface{}{}
	if payload.IsDoneTear != nil {
		updates["is_done_tear"] = *payload.IsDoneTear
	}
	if payload.IsDoneBuild != nil {
		updates["is_done_build"] = *payload.IsDoneBuild
	}
	if len(updates) == 0 {
		respondError(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	if err := r.db.Model(&task).Updates(updates).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update task")
		return
	}

	respondJSON(w, http.StatusOK, task)
}

// updateJobTool toggles acquisition on a job tool
func (r *Router) updateJobTool(w http.ResponseWriter, req *http.Request) {
	userID := middleware.UserIDFromContext(req.Context())
	jobID, ok := pathID(req, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid job id")
		return
	}
	toolID, ok := pathID(req, "toolId")
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid tool id")
		return
	}

	var job models.Job
	if err := r.db.Where("user_id = ?", userID).First(&job, jobID).Error; err != nil {
		respondError(w, http.StatusNotFound, "Job not found")
		return
	}

	var tool models.JobTool
	if err := r.db.Where("job_id = ?", jobID).First(&tool, toolID).Error; err != nil {
		respondError(w, http.StatusNotFound, "Tool not found")
		return
	}

	var payload struct {
		IsAcquired *bool `json:"is_acquired"`
		Required   *bool `json:"required"`
	}
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	updates := map[string]interface{}{}
	if payload.IsAcquired != nil {
		updates["is_acquired"] = *payload.IsAcquired
	}
	if payload.Required != nil {
		updates["required"] = *payload.Required
	}
	if len(updates) == 0 {
		respondError(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	if err := r.db.Model(&tool).Updates(updates).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update tool")
		return
	}

	respondJSON(w, http.StatusOK, tool)
}
