package workshop

import (
	"fmt"

	"github.com/motorhaus/garagego/internal/models"
)

// Pure transition rules for the two independent job state dimensions and
// for inventory status moves. The service layer applies them transactionally.

// CheckPlanTransition validates a plan_status move. draft -> ready requires
// the readiness check to pass; ready -> draft is a deliberate downgrade and
// always allowed. active is only reached through StartJob.
func CheckPlanTransition(current, target models.PlanStatus, readiness Readiness) error {
	switch {
	case current == target:
		return nil
	case current == models.PlanStatusDraft && target == models.PlanStatusReady:
		if readiness.Ready {
			return nil
		}
		return readinessViolation(readiness)
	case current == models.PlanStatusReady && target == models.PlanStatusDraft:
		return nil
	case current == models.PlanStatusActive && target == models.PlanStatusDraft:
		// Reopening an active plan happens via moving the job back to planned
		return nil
	default:
		return &GuardViolation{Reason: fmt.Sprintf("plan cannot move from %s to %s", current, target)}
	}
}

// CheckAllocationGate enforces the in-stock-only rule: once a plan has left
// draft, only parts already on the shelf may be linked. Draft is the
// exploratory phase and accepts any status.
func CheckAllocationGate(planStatus models.PlanStatus, item *models.InventoryItem) error {
	if planStatus == models.PlanStatusDraft {
		return nil
	}
	if item.Status == models.StatusInStock {
		return nil
	}
	return &GuardViolation{
		Reason: fmt.Sprintf("job plan is %s; only in-stock parts can be allocated", planStatus),
		Conditions: []string{
			fmt.Sprintf("part %q has status %s", item.Name, item.Status),
		},
	}
}

// CheckStatusTransition validates an execution-status move
func CheckStatusTransition(current, target models.JobStatus) error {
	if current == target {
		return nil
	}

	allowed := map[models.JobStatus][]models.JobStatus{
		models.JobStatusPlanned:    {models.JobStatusInProgress},
		models.JobStatusInProgress: {models.JobStatusCompleted, models.JobStatusPaused, models.JobStatusPlanned},
		models.JobStatusPaused:     {models.JobStatusInProgress, models.JobStatusPlanned},
		models.JobStatusCompleted:  {},
	}

	for _, next := range allowed[current] {
		if next == target {
			return nil
		}
	}
	return &GuardViolation{Reason: fmt.Sprintf("job cannot move from %s to %s", current, target)}
}

func readinessViolation(r Readiness) error {
	conditions := make([]string, 0, len(r.MissingParts)+len(r.MissingTools))
	for _, p := range r.MissingParts {
		conditions = append(conditions, fmt.Sprintf("part %q is %s", p.Name, p.Status))
	}
	for _, tool := range r.MissingTools {
		conditions = append(conditions, fmt.Sprintf("tool %q not acquired", tool.Name))
	}
	return &GuardViolation{
		Reason:     fmt.Sprintf("job not ready: %d parts and %d tools missing", len(r.MissingParts), len(r.MissingTools)),
		Conditions: conditions,
	}
}
