package validate

import (
	"testing"

	"github.com/google/uuid"

	"github.com/shopcart/shopcart/internal/apperr"
)

func TestCheckID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid_v4", "a0eebc99-9c0b-4ef8-bb6d-6bb9bd380a11", false},
		{"valid_uppercase", "A0EEBC99-9C0B-4EF8-BB6D-6BB9BD380A11", false},
		{"empty", "", true},
		{"too_short", "a0eebc99-9c0b-4ef8-bb6d", true},
		{"too_long", "a0eebc99-9c0b-4ef8-bb6d-6bb9bd380a11ff", true},
		{"wrong_version", "a0eebc99-9c0b-1ef8-bb6d-6bb9bd380a11", true},
		{"wrong_variant", "a0eebc99-9c0b-4ef8-1b6d-6bb9bd380a11", true},
		{"not_hex", "z0eebc99-9c0b-4ef8-bb6d-6bb9bd380a11", true},
		{"no_dashes", "a0eebc999c0b4ef8bb6d6bb9bd380a11", true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := CheckID(test.id)
			if test.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got nil", test.id)
				}
				if !apperr.IsKind(err, apperr.BadRequest) {
					t.Fatalf("expected bad request, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error for %q, got %v", test.id, err)
			}
		})
	}
}

func TestCheckID_GeneratedV4(t *testing.T) {
	for i := 0; i < 100; i++ {
		id := uuid.NewString()
		if err := CheckID(id); err != nil {
			t.Fatalf("generated UUID %q rejected: %v", id, err)
		}
	}
}

func TestNormalizeSortOrder(t *testing.T) {
	tests := []struct {
		input string
		want  SortOrder
	}{
		{"asc", SortAsc},
		{"desc", SortDesc},
		{"", SortAsc},
		{"DESC", SortAsc},
		{"random", SortAsc},
	}

	for _, test := range tests {
		if got := NormalizeSortOrder(test.input); got != test.want {
			t.Errorf("NormalizeSortOrder(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestNormalizeLimit(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"50", 50},
		{"100", 100},
		{"abc", DefaultLimit},
		{"", DefaultLimit},
		{"1000", DefaultLimit},
		{"101", DefaultLimit},
		{"12.5", DefaultLimit},
		// Values <= 0 are intentionally not clamped.
		{"0", 0},
		{"-5", -5},
	}

	for _, test := range tests {
		if got := NormalizeLimit(test.input); got != test.want {
			t.Errorf("NormalizeLimit(%q) = %d, want %d", test.input, got, test.want)
		}
	}
}

func TestNormalizeOffset(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"20", 20},
		{"0", 0},
		{"-5", DefaultOffset},
		{"abc", DefaultOffset},
		{"", DefaultOffset},
		{"7.5", DefaultOffset},
	}

	for _, test := range tests {
		if got := NormalizeOffset(test.input); got != test.want {
			t.Errorf("NormalizeOffset(%q) = %d, want %d", test.input, got, test.want)
		}
	}
}
