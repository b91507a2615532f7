package workshop

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/motorhaus/garagego/internal/models"
)

// Notifier receives engine events (part arrived, job completed...) for
// pushing to connected clients. Nil-safe from the service's point of view.
type Notifier interface {
	Publish(event string, payload interface{})
}

// Service executes the allocation and lifecycle operations. Every mutating
// operation runs as one database transaction: a failed step leaves
// quantities and links exactly as they were.
type Service struct {
	db       *gorm.DB
	notifier Notifier
}

// NewService creates the workshop engine service
func NewService(db *gorm.DB, notifier Notifier) *Service {
	return &Service{db: db, notifier: notifier}
}

func (s *Service) publish(event string, payload interface{}) {
	if s.notifier != nil {
		s.notifier.Publish(event, payload)
	}
}

// LinkPartToJob allocates qty units of an inventory item to a job,
// splitting the record when a fractional amount is consumed. Returns the id
// that ended up linked (the original, or the split-off record).
func (s *Service) LinkPartToJob(userID string, jobID, inventoryID uint, qty int) (uint, error) {
	var linkedID uint

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var job models.Job
		if err := tx.Where("user_id = ?", userID).First(&job, jobID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("job", jobID)
			}
			return err
		}

		var item models.InventoryItem
		if err := tx.Where("user_id = ?", userID).First(&item, inventoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("inventory item", inventoryID)
			}
			return err
		}

		if err := CheckAllocationGate(job.PlanStatus, &item); err != nil {
			return err
		}

		plan, err := PlanSplit(&item, qty)
		if err != nil {
			return err
		}

		linkedID = item.ID
		if !plan.LinkWhole {
			// Conditional decrement: if a concurrent allocation changed the
			// quantity since we read it, fail this request instead of
			// double-allocating.
			res := tx.Model(&models.InventoryItem{}).
				Where("id = ? AND quantity = ?", item.ID, item.Quantity).
				Update("quantity", plan.RemainderQty)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return &GuardViolation{Reason: fmt.Sprintf("inventory item %d was modified concurrently, retry the allocation", item.ID)}
			}

			if err := tx.Create(plan.Clone).Error; err != nil {
				return err
			}
			linkedID = plan.Clone.ID
		}

		link := models.JobPart{JobID: job.ID, InventoryID: linkedID, QtyUsed: plan.QtyUsed}
		return tx.Create(&link).Error
	})
	if err != nil {
		return 0, err
	}

	s.publish("PART_LINKED", map[string]uint{"jobId": jobID, "inventoryId": linkedID})
	return linkedID, nil
}

// UnlinkPartFromJob removes the link between a job and an inventory item
func (s *Service) UnlinkPartFromJob(userID string, jobID, inventoryID uint) error {
	var job models.Job
	if err := s.db.Where("user_id = ?", userID).First(&job, jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("job", jobID)
		}
		return err
	}

	res := s.db.Where("job_id = ? AND inventory_id = ?", jobID, inventoryID).Delete(&models.JobPart{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("job part link", inventoryID)
	}
	return nil
}

// MarkOrdered links a wishlist item to an order: wishlist -> ordered,
// stamping purchased_at from the order date.
func (s *Service) MarkOrdered(userID string, inventoryID, orderID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var item models.InventoryItem
		if err := tx.Where("user_id = ?", userID).First(&item, inventoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("inventory item", inventoryID)
			}
			return err
		}

		if item.Status != models.StatusWishlist {
			return &GuardViolation{Reason: fmt.Sprintf("only wishlist items can be ordered; %q is %s", item.Name, item.Status)}
		}

		var order models.Order
		if err := tx.Where("user_id = ?", userID).First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("order", orderID)
			}
			return err
		}

		purchasedAt := order.OrderDate
		if purchasedAt == nil {
			now := time.Now().UTC()
			purchasedAt = &now
		}

		return tx.Model(&item).Updates(map[string]interface{}{
			"status":       models.StatusOrdered,
			"order_id":     order.ID,
			"purchased_at": purchasedAt,
		}).Error
	})
}

// MarkArrived moves an ordered item into stock and clears its tracking
// fields. If it was the last pending item on its order, the order itself
// flips to delivered.
func (s *Service) MarkArrived(userID string, inventoryID uint) error {
	var arrived models.InventoryItem

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).First(&arrived, inventoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("inventory item", inventoryID)
			}
			return err
		}

		if arrived.Status != models.StatusOrdered {
			return &GuardViolation{Reason: fmt.Sprintf("item %q is %s, not ordered", arrived.Name, arrived.Status)}
		}

		if err := tx.Model(&arrived).Updates(map[string]interface{}{
			"status":          models.StatusInStock,
			"tracking_number": "",
			"carrier":         "",
		}).Error; err != nil {
			return err
		}

		if arrived.OrderID == nil {
			return nil
		}

		var pending int64
		if err := tx.Model(&models.InventoryItem{}).
			Where("order_id = ? AND status = ?", *arrived.OrderID, models.StatusOrdered).
			Count(&pending).Error; err != nil {
			return err
		}
		if pending == 0 {
			return tx.Model(&models.Order{}).
				Where("id = ?", *arrived.OrderID).
				Update("status", models.OrderStatusDelivered).Error
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publish("PART_ARRIVED", map[string]interface{}{"inventoryId": inventoryID, "name": arrived.Name})
	return nil
}

// UnlinkFromOrder is the explicit inverse of ordering: ordered -> wishlist,
// clearing the order reference, purchase date and tracking fields.
func (s *Service) UnlinkFromOrder(userID string, inventoryID uint) error {
	var item models.InventoryItem
	if err := s.db.Where("user_id = ?", userID).First(&item, inventoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound("inventory item", inventoryID)
		}
		return err
	}

	if item.Status != models.StatusOrdered && item.Status != models.StatusWishlist {
		return &GuardViolation{Reason: fmt.Sprintf("item %q is %s and cannot be unlinked from an order", item.Name, item.Status)}
	}

	return s.db.Model(&item).Updates(map[string]interface{}{
		"status":          models.StatusWishlist,
		"order_id":        nil,
		"purchased_at":    nil,
		"tracking_number": "",
		"carrier":         "",
	}).Error
}

// MarkPlanned reserves a part conceptually without stock tracking
func (s *Service) MarkPlanned(userID string, inventoryID uint) error {
	res := s.db.Model(&models.InventoryItem{}).
		Where("id = ? AND user_id = ?", inventoryID, userID).
		Update("status", models.StatusPlanned)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("inventory item", inventoryID)
	}
	return nil
}

// DeleteInventoryItem removes a part unless a job still references it
func (s *Service) DeleteInventoryItem(userID string, inventoryID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var item models.InventoryItem
		if err := tx.Where("user_id = ?", userID).First(&item, inventoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("inventory item", inventoryID)
			}
			return err
		}

		var links int64
		if err := tx.Model(&models.JobPart{}).Where("inventory_id = ?", inventoryID).Count(&links).Error; err != nil {
			return err
		}
		if links > 0 {
			return &ReferentialConflict{Reason: fmt.Sprintf("part %q is attached to a job; remove it from the job first", item.Name)}
		}

		return tx.Delete(&item).Error
	})
}

// DecomposeOrder expands delivered order lines into discrete parts and
// attached hardware, flipping each source line to a lineage-only record.
// The whole expansion is one transaction.
func (s *Service) DecomposeOrder(userID string, orderID uint, lines []DecomposeLine) ([]uint, error) {
	if len(lines) == 0 {
		return nil, validationf("decomposition request has no lines")
	}

	var createdIDs []uint

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Where("user_id = ?", userID).First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("order", orderID)
			}
			return err
		}

		for _, line := range lines {
			var source models.InventoryItem
			if err := tx.Where("user_id = ?", userID).First(&source, line.SourceInventoryID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return notFound("inventory item", line.SourceInventoryID)
				}
				return err
			}

			// Every child must trace to a line of this order, not just any item
			if source.OrderID == nil || *source.OrderID != order.ID {
				return validationf("inventory item %d is not a line of order %d", source.ID, order.ID)
			}

			plan, err := PlanDecomposition(&source, line.Children)
			if err != nil {
				return err
			}

			// The source becomes a pure lineage record
			if err := tx.Model(&source).Update("visibility", models.VisibilityHistoryOnly).Error; err != nil {
				return err
			}

			// Public children first: their ids anchor the hardware parents
			for _, pub := range plan.Public {
				if err := tx.Create(pub).Error; err != nil {
					return err
				}
				createdIDs = append(createdIDs, pub.ID)
			}

			plan.ResolveHardwareParents()

			for _, hw := range plan.Hardware {
				if err := tx.Create(hw).Error; err != nil {
					return err
				}
				createdIDs = append(createdIDs, hw.ID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish("ORDER_DECOMPOSED", map[string]interface{}{"orderId": orderID, "createdIds": createdIDs})
	return createdIDs, nil
}

// CheckReadiness reports whether all of a job's parts are in stock and all
// required tools acquired. Pure query.
func (s *Service) CheckReadiness(userID string, jobID uint) (Readiness, error) {
	var job models.Job
	if err := s.db.Where("user_id = ?", userID).First(&job, jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Readiness{}, notFound("job", jobID)
		}
		return Readiness{}, err
	}

	parts, tools, err := s.loadJobRequirements(s.db, jobID)
	if err != nil {
		return Readiness{}, err
	}
	return EvaluateReadiness(parts, tools), nil
}

// TransitionPlanStatus moves a job's plan maturity. draft -> ready runs the
// readiness check and reports the unmet conditions on failure.
func (s *Service) TransitionPlanStatus(userID string, jobID uint, target models.PlanStatus) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var job models.Job
		if err := tx.Where("user_id = ?", userID).First(&job, jobID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("job", jobID)
			}
			return err
		}

		parts, tools, err := s.loadJobRequirements(tx, jobID)
		if err != nil {
			return err
		}

		if err := CheckPlanTransition(job.PlanStatus, target, EvaluateReadiness(parts, tools)); err != nil {
			return err
		}

		return tx.Model(&job).Update("plan_status", target).Error
	})
}

// StartJob moves a job to in_progress. A still-draft plan is implicitly
// promoted through the same readiness check; failure blocks the start.
func (s *Service) StartJob(userID string, jobID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var job models.Job
		if err := tx.Where("user_id = ?", userID).First(&job, jobID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("job", jobID)
			}
			return err
		}

		if err := CheckStatusTransition(job.Status, models.JobStatusInProgress); err != nil {
			return err
		}

		// Readiness is re-validated against every existing link, so a
		// draft-era link to a non-in-stock part blocks the start here.
		parts, tools, err := s.loadJobRequirements(tx, jobID)
		if err != nil {
			return err
		}
		readiness := EvaluateReadiness(parts, tools)

		if job.PlanStatus == models.PlanStatusDraft {
			if err := CheckPlanTransition(models.PlanStatusDraft, models.PlanStatusReady, readiness); err != nil {
				return err
			}
		} else if !readiness.Ready {
			return readinessViolation(readiness)
		}

		return tx.Model(&job).Updates(map[string]interface{}{
			"status":      models.JobStatusInProgress,
			"plan_status": models.PlanStatusActive,
		}).Error
	})
	if err != nil {
		return err
	}

	s.publish("JOB_STARTED", map[string]uint{"jobId": jobID})
	return nil
}

// CompleteJob closes out a job: every linked part becomes installed with the
// closing odometer stamped, and the vehicle odometer is raised (never
// lowered) to the same reading.
func (s *Service) CompleteJob(userID string, jobID uint, closingOdometer int) error {
	if closingOdometer < 0 {
		return validationf("closing odometer cannot be negative, got %d", closingOdometer)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var job models.Job
		if err := tx.Where("user_id = ?", userID).First(&job, jobID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("job", jobID)
			}
			return err
		}

		if err := CheckStatusTransition(job.Status, models.JobStatusCompleted); err != nil {
			return err
		}

		now := time.Now().UTC()
		if err := tx.Model(&job).Updates(map[string]interface{}{
			"status":         models.JobStatusCompleted,
			"odometer":       closingOdometer,
			"date_completed": now,
		}).Error; err != nil {
			return err
		}

		var links []models.JobPart
		if err := tx.Where("job_id = ?", jobID).Find(&links).Error; err != nil {
			return err
		}

		if len(links) > 0 {
			ids := make([]uint, len(links))
			for i, l := range links {
				ids[i] = l.InventoryID
			}
			if err := tx.Model(&models.InventoryItem{}).
				Where("id IN ? AND status = ?", ids, models.StatusInStock).
				Updates(map[string]interface{}{
					"status":        models.StatusInstalled,
					"installed_at":  now,
					"install_miles": closingOdometer,
				}).Error; err != nil {
				return err
			}
		}

		// Raise the vehicle odometer only if it is currently lower
		return tx.Model(&models.Vehicle{}).
			Where("id = ? AND odometer < ?", job.VehicleID, closingOdometer).
			Update("odometer", closingOdometer).Error
	})
	if err != nil {
		return err
	}

	s.publish("JOB_COMPLETED", map[string]interface{}{"jobId": jobID, "odometer": closingOdometer})
	return nil
}

// MoveJobToPlanned is the escape hatch: in_progress -> planned, clearing
// the completion fields.
func (s *Service) MoveJobToPlanned(userID string, jobID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var job models.Job
		if err := tx.Where("user_id = ?", userID).First(&job, jobID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("job", jobID)
			}
			return err
		}

		if err := CheckStatusTransition(job.Status, models.JobStatusPlanned); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"status":         models.JobStatusPlanned,
			"odometer":       nil,
			"date_completed": nil,
		}
		// An active plan drops back to ready; its links were validated at start
		if job.PlanStatus == models.PlanStatusActive {
			updates["plan_status"] = models.PlanStatusReady
		}
		return tx.Model(&job).Updates(updates).Error
	})
}

// loadJobRequirements fetches the inventory items linked to a job plus its
// tool checklist
func (s *Service) loadJobRequirements(tx *gorm.DB, jobID uint) ([]models.InventoryItem, []models.JobTool, error) {
	var links []models.JobPart
	if err := tx.Where("job_id = ?", jobID).Find(&links).Error; err != nil {
		return nil, nil, err
	}

	var parts []models.InventoryItem
	if len(links) > 0 {
		ids := make([]uint, len(links))
		for i, l := range links {
			ids[i] = l.InventoryID
		}
		if err := tx.Where("id IN ?", ids).Find(&parts).Error; err != nil {
			return nil, nil, err
		}
	}

	var tools []models.JobTool
	if err := tx.Where("job_id = ?", jobID).Find(&tools).Error; err != nil {
		return nil, nil, err
	}

	return parts, tools, nil
}
