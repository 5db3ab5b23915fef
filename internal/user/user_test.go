package user

import (
	"errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"plain", "Ada", "Ada", false},
		{"trimmed", "  Grace Hopper ", "Grace Hopper", false},
		{"accented", "José", "José", false},
		{"empty", "", "", true},
		{"spaces only", "   ", "", true},
		{"too long", strings.Repeat("a", MaxNameLength+1), "", true},
		{"max length", strings.Repeat("a", MaxNameLength), strings.Repeat("a", MaxNameLength), false},
		{"embedded newline", "a\nb", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := New(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidName) {
					t.Fatalf("New(%q) error = %v, want ErrInvalidName", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("New(%q) unexpected error: %v", tt.input, err)
			}
			if u.Name != tt.want {
				t.Errorf("Name = %q, want %q", u.Name, tt.want)
			}
			if len(u.ID) != 12 {
				t.Errorf("ID = %q, want 12 hex chars", u.ID)
			}
		})
	}
}

func TestID_Normalized(t *testing.T) {
	if ID("Ada") != ID("  ada ") {
		t.Error("ids differ by case or space")
	}
	if ID("Ada") == ID("Bob") {
		t.Error("distinct names share an id")
	}
	if got := ID("ada"); got != "fdee430d40bd" {
		t.Errorf("ID(ada) = %s", got)
	}
}
