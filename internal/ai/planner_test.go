package ai

import (
	"context"
	"strings"
	"testing"

	"github.com/motorhaus/garagego/internal/models"
)

const samplePlan = `Sure! Here is the plan:
` + "```json" + `
{
  "tools": [
    {"name": "Torque Wrench", "required": true, "note": "1/2 inch drive"},
    {"name": "Brake Cleaner", "required": false},
    {"name": "  ", "required": true}
  ],
  "specs": [
    {"item": "Caliper bracket bolt", "value": "80 ft-lbs"},
    {"item": "", "value": "should be dropped"}
  ],
  "teardown_steps": ["Loosen lug nuts", "Jack up the car", "  "],
  "assembly_steps": ["Torque lug nuts in a star pattern"],
  "warnings": ["Never rely on the jack alone"],
  "pro_tips": []
}
` + "```" + `
Let me know if you need anything else.`

func TestParsePlanDraft(t *testing.T) {
	draft, err := ParsePlanDraft(samplePlan)
	if err != nil {
		t.Fatalf("Failed to parse plan: %v", err)
	}

	if len(draft.Tools) != 2 {
		t.Errorf("Expected 2 tools after cleanup, got %d", len(draft.Tools))
	}
	if draft.Tools[0].Name != "Torque Wrench" || !draft.Tools[0].Required {
		t.Errorf("Unexpected first tool: %+v", draft.Tools[0])
	}
	if len(draft.Specs) != 1 {
		t.Errorf("Expected 1 spec after cleanup, got %d", len(draft.Specs))
	}
	if len(draft.TeardownSteps) != 2 {
		t.Errorf("Expected 2 teardown steps, got %d", len(draft.TeardownSteps))
	}
	if len(draft.AssemblySteps) != 1 {
		t.Errorf("Expected 1 assembly step, got %d", len(draft.AssemblySteps))
	}
}

func TestParsePlanDraftRejectsGarbage(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"no json", "I cannot help with that."},
		{"unterminated", `{"tools": [`},
		{"wrong types", `{"teardown_steps": "not a list"}`},
		{"no steps", `{"tools": [{"name": "Wrench"}], "teardown_steps": [], "assembly_steps": []}`},
	}

	for _, tc := range cases {
		if _, err := ParsePlanDraft(tc.raw); err == nil {
			t.Errorf("%s: expected error, got none", tc.name)
		}
	}
}

func TestParsePlanDraftBracesInStrings(t *testing.T) {
	raw := `{"teardown_steps": ["remove the {left} panel"], "assembly_steps": []}`
	draft, err := ParsePlanDraft(raw)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if draft.TeardownSteps[0] != "remove the {left} panel" {
		t.Errorf("Step mangled: %q", draft.TeardownSteps[0])
	}
}

func TestMarkOwnedTools(t *testing.T) {
	draft := &PlanDraft{
		Tools: []PlanTool{
			{Name: "1/2 inch Torque Wrench", Required: true},
			{Name: "Brake Caliper Tool", Required: true},
		},
	}

	owned := []models.OwnedTool{
		{Name: "Torque Wrench", NormalizedName: "torque wrench"},
	}

	MarkOwnedTools(draft, owned)

	if !draft.Tools[0].IsAcquired {
		t.Error("Torque wrench should be marked acquired")
	}
	if draft.Tools[1].IsAcquired {
		t.Error("Caliper tool should not be marked acquired")
	}
}

type cannedGenerator struct {
	response string
}

func (g *cannedGenerator) GenerateContent(_ context.Context, _ string) (string, error) {
	return g.response, nil
}

func TestGeneratePlan(t *testing.T) {
	planner := NewPlanner(&cannedGenerator{response: samplePlan})

	owned := []models.OwnedTool{{Name: "Torque Wrench", NormalizedName: "torque wrench"}}
	draft, err := planner.GeneratePlan(context.Background(), "2008 Honda Civic", "Front brake job", "beginner", []string{"Brake Pads"}, owned)
	if err != nil {
		t.Fatalf("GeneratePlan failed: %v", err)
	}

	if !draft.Tools[0].IsAcquired {
		t.Error("Owned tool should come back pre-acquired")
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("2008 Honda Civic", "Front brake job", "beginner", []string{"Brake Pads", "Rotors"})

	for _, want := range []string{"2008 Honda Civic", "Front brake job", "beginner", "Brake Pads, Rotors", "teardown_steps"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Prompt missing %q", want)
		}
	}
}
