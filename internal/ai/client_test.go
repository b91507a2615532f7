package ai

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
)

func TestTextFromResponseJoinsParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("brake "), genai.Text("pads")}}},
		},
	}

	got, err := textFromResponse(resp)
	if err != nil {
		t.Fatalf("textFromResponse failed: %v", err)
	}
	if got != "brake pads" {
		t.Errorf("Expected 'brake pads', got %q", got)
	}
}

func TestTextFromResponseBlockedCandidate(t *testing.T) {
	// Safety-blocked candidates come back with a finish reason but no content
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: nil, FinishReason: genai.FinishReasonSafety},
		},
	}

	if _, err := textFromResponse(resp); err == nil {
		t.Fatal("Expected error for candidate without content, got nil")
	}
}

func TestTextFromResponseNoCandidates(t *testing.T) {
	if _, err := textFromResponse(&genai.GenerateContentResponse{}); err == nil {
		t.Fatal("Expected error for empty candidate list, got nil")
	}
}

func TestTextFromResponseEmptyParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{}},
		},
	}

	if _, err := textFromResponse(resp); err == nil {
		t.Fatal("Expected error for candidate with no parts, got nil")
	}
}
