package utils

import (
	"strings"
	"testing"
)

func TestNewBookingRef(t *testing.T) {
	t.Parallel()

	ref := NewBookingRef()
	if !strings.HasPrefix(ref, "MKC") {
		t.Fatalf("expected MKC prefix, got %q", ref)
	}
	if len(ref) != 14 {
		t.Fatalf("expected 14 characters, got %d (%q)", len(ref), ref)
	}
	for _, c := range ref[3:9] {
		if c < '0' || c > '9' {
			t.Fatalf("time suffix must be digits, got %q", ref)
		}
	}
	if ref != strings.ToUpper(ref) {
		t.Fatalf("reference must be uppercase, got %q", ref)
	}

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		r := NewBookingRef()
		if seen[r] {
			t.Fatalf("duplicate reference %q", r)
		}
		seen[r] = true
	}
}
