package workshop

import "testing"

func TestNormalizeToolName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Torque Wrench", "torque wrench"},
		{"  10MM   Socket ", "10mm socket"},
		{"", ""},
		{"JACK\tSTANDS", "jack stands"},
	}

	for _, tt := range tests {
		if got := NormalizeToolName(tt.in); got != tt.want {
			t.Errorf("NormalizeToolName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMatchesOwnedTool(t *testing.T) {
	owned := []string{
		NormalizeToolName("Torque Wrench"),
		NormalizeToolName("Floor Jack"),
	}

	tests := []struct {
		suggested string
		want      bool
	}{
		{"torque wrench", true},
		{"1/2 inch Torque Wrench", true}, // owned name inside suggestion
		{"Torque", true},                 // suggestion inside owned name
		{"Spring Compressor", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := MatchesOwnedTool(tt.suggested, owned); got != tt.want {
			t.Errorf("MatchesOwnedTool(%q) = %v, want %v", tt.suggested, got, tt.want)
		}
	}
}

func TestMatchesOwnedToolIgnoresEmptyOwnedKeys(t *testing.T) {
	if MatchesOwnedTool("anything", []string{""}) {
		t.Error("empty owned key must never match")
	}
}
