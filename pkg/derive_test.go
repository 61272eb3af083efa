package casetree

import (
	"path/filepath"
	"testing"
)

func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		id    string
		valid bool
	}{
		{"2023-0141", true},
		{"CASE 17 B", true},
		{"folder.v2", true},
		{"", false},
		{".", false},
		{"..", false},
		{"a/b", false},
		{"a\\b", false},
		{"../escape", false},
		{"bad\x00id", false},
	}

	for _, tt := range tests {
		err := ValidateIdentifier(tt.id)
		if tt.valid && err != nil {
			t.Errorf("ValidateIdentifier(%q) = %v, want nil", tt.id, err)
		}
		if !tt.valid && err == nil {
			t.Errorf("ValidateIdentifier(%q) = nil, want error", tt.id)
		}
	}
}

func TestDerivePath(t *testing.T) {
	tests := []struct {
		root     string
		id       string
		segments []string
		want     string
	}{
		{"/work", "A", nil, filepath.Join("/work", "A")},
		{"/work", "A", []string{"Homepage"}, filepath.Join("/work", "A", "Homepage")},
		{"/work", "A", []string{"Individual Gate", "s1"}, filepath.Join("/work", "A", "Individual Gate", "s1")},
		{"/work", "A", []string{"Homepage", "report.pdf"}, filepath.Join("/work", "A", "Homepage", "report.pdf")},
	}

	for _, tt := range tests {
		got := DerivePath(tt.root, tt.id, tt.segments...)
		if got != tt.want {
			t.Errorf("DerivePath(%q, %q, %v) = %q, want %q", tt.root, tt.id, tt.segments, got, tt.want)
		}
	}
}
