package workshop

import (
	"github.com/motorhaus/garagego/internal/models"
)

// MissingPart identifies a linked part that is not yet on the shelf
type MissingPart struct {
	ID     uint                   `json:"id"`
	Name   string                 `json:"name"`
	Status models.InventoryStatus `json:"status"`
}

// MissingTool identifies a required tool not yet acquired
type MissingTool struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Readiness is the computed answer to "can this job start?"
type Readiness struct {
	Ready        bool          `json:"ready"`
	PartsCount   int           `json:"partsCount"`
	ToolsCount   int           `json:"toolsCount"`
	MissingParts []MissingPart `json:"missingParts"`
	MissingTools []MissingTool `json:"missingTools"`
}

// EvaluateReadiness inspects a job's linked parts and required tools.
// Ready iff every linked part is in stock and every required tool acquired.
// Pure query, no mutation.
func EvaluateReadiness(parts []models.InventoryItem, tools []models.JobTool) Readiness {
	r := Readiness{
		PartsCount:   len(parts),
		MissingParts: []MissingPart{},
		MissingTools: []MissingTool{},
	}

	for _, p := range parts {
		if p.Status != models.StatusInStock {
			r.MissingParts = append(r.MissingParts, MissingPart{ID: p.ID, Name: p.Name, Status: p.Status})
		}
	}

	for _, tool := range tools {
		if !tool.Required {
			continue
		}
		r.ToolsCount++
		if !tool.IsAcquired {
			r.MissingTools = append(r.MissingTools, MissingTool{ID: tool.ID, Name: tool.Name})
		}
	}

	r.Ready = len(r.MissingParts) == 0 && len(r.MissingTools) == 0
	return r
}
