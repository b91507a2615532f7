package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/motorhaus/garagego/internal/models"
	"github.com/motorhaus/garagego/internal/workshop"
)

// Generator is the text-generation surface the planner needs. Satisfied by
// GeminiClient; tests substitute a canned implementation.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// PlanTool is a tool the model recommends for the job
type PlanTool struct {
	Name       string `json:"name"`
	Required   bool   `json:"required"`
	Note       string `json:"note,omitempty"`
	IsAcquired bool   `json:"is_acquired"`
}

// PlanSpec is a torque value, fluid capacity or similar reference figure
type PlanSpec struct {
	Item  string `json:"item"`
	Value string `json:"value"`
	Note  string `json:"note,omitempty"`
}

// PlanDraft is the validated output of one plan generation. Steps and tools
// are opaque labels; the engine never interprets their content.
type PlanDraft struct {
	Tools         []PlanTool `json:"tools"`
	Specs         []PlanSpec `json:"specs"`
	TeardownSteps []string   `json:"teardown_steps"`
	AssemblySteps []string   `json:"assembly_steps"`
	Warnings      []string   `json:"warnings,omitempty"`
	ProTips       []string   `json:"pro_tips,omitempty"`
}

// Planner turns a job description into a work plan draft
type Planner struct {
	gen Generator
}

// NewPlanner creates a planner on top of a text generator
func NewPlanner(gen Generator) *Planner {
	return &Planner{gen: gen}
}

// GeneratePlan asks the model for a work plan and validates the result.
// Owned tools are matched against the recommended tool list so the checklist
// starts with known tools already ticked off.
func (p *Planner) GeneratePlan(ctx context.Context, vehicle, jobTitle, skillLevel string, partNames []string, owned []models.OwnedTool) (*PlanDraft, error) {
	prompt := BuildPrompt(vehicle, jobTitle, skillLevel, partNames)

	raw, err := p.gen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	draft, err := ParsePlanDraft(raw)
	if err != nil {
		return nil, err
	}

	MarkOwnedTools(draft, owned)
	return draft, nil
}

// BuildPrompt assembles the plan-generation prompt
func BuildPrompt(vehicle, jobTitle, skillLevel string, partNames []string) string {
	var b strings.Builder

	b.WriteString("You are an experienced automotive crew chief planning a repair job.\n\n")
	fmt.Fprintf(&b, "Vehicle: %s\n", vehicle)
	fmt.Fprintf(&b, "Job: %s\n", jobTitle)
	if skillLevel != "" {
		fmt.Fprintf(&b, "Mechanic skill level: %s\n", skillLevel)
	}
	if len(partNames) > 0 {
		fmt.Fprintf(&b, "Parts on hand: %s\n", strings.Join(partNames, ", "))
	}

	b.WriteString(`
Respond with ONLY a JSON object, no prose before or after, in this shape:
{
  "tools": [{"name": "...", "required": true, "note": "..."}],
  "specs": [{"item": "...", "value": "...", "note": "..."}],
  "teardown_steps": ["..."],
  "assembly_steps": ["..."],
  "warnings": ["..."],
  "pro_tips": ["..."]
}

Rules:
- teardown_steps is the disassembly sequence, assembly_steps the reverse pass.
- Include torque values and fluid capacities in specs when they matter.
- Mark a tool required only if the job cannot be done without it.
- Match the level of detail to the stated skill level.
`)

	return b.String()
}

// ParsePlanDraft extracts the first JSON object from model output and
// validates it into a PlanDraft. Models wrap JSON in markdown fences or
// chatter often enough that a plain Unmarshal is not good enough.
func ParsePlanDraft(raw string) (*PlanDraft, error) {
	jsonText, err := extractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	var draft PlanDraft
	if err := json.Unmarshal([]byte(jsonText), &draft); err != nil {
		return nil, fmt.Errorf("plan response is not valid JSON: %w", err)
	}

	draft.TeardownSteps = cleanStrings(draft.TeardownSteps)
	draft.AssemblySteps = cleanStrings(draft.AssemblySteps)
	draft.Warnings = cleanStrings(draft.Warnings)
	draft.ProTips = cleanStrings(draft.ProTips)

	tools := draft.Tools[:0]
	for _, tool := range draft.Tools {
		tool.Name = strings.TrimSpace(tool.Name)
		if tool.Name != "" {
			tools = append(tools, tool)
		}
	}
	draft.Tools = tools

	specs := draft.Specs[:0]
	for _, spec := range draft.Specs {
		spec.Item = strings.TrimSpace(spec.Item)
		spec.Value = strings.TrimSpace(spec.Value)
		if spec.Item != "" && spec.Value != "" {
			specs = append(specs, spec)
		}
	}
	draft.Specs = specs

	if len(draft.TeardownSteps) == 0 && len(draft.AssemblySteps) == 0 {
		return nil, fmt.Errorf("plan response contains no work steps")
	}

	return &draft, nil
}

// MarkOwnedTools flips IsAcquired on recommended tools the user already owns
func MarkOwnedTools(draft *PlanDraft, owned []models.OwnedTool) {
	if len(owned) == 0 {
		return
	}
	keys := make([]string, len(owned))
	for i, o := range owned {
		keys[i] = o.NormalizedName
	}
	for i := range draft.Tools {
		if workshop.MatchesOwnedTool(draft.Tools[i].Name, keys) {
			draft.Tools[i].IsAcquired = true
		}
	}
}

// extractJSONObject returns the first balanced {...} block in s, skipping
// braces inside JSON string literals.
func extractJSONObject(s string) (string, error) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", fmt.Errorf("no JSON object in model response")
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}

	return "", fmt.Errorf("unterminated JSON object in model response")
}

func cleanStrings(in []string) []string {
	out := in[:0]
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
