package id

import (
	"regexp"
	"testing"
)

func TestNew_Format(t *testing.T) {
	hexRe := regexp.MustCompile(`^[0-9a-f]{16}$`)

	for i := 0; i < 100; i++ {
		got := New()
		if !hexRe.MatchString(got) {
			t.Fatalf("New() = %q, want 16 lowercase hex characters", got)
		}
	}
}

func TestNew_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		got := New()
		if seen[got] {
			t.Fatalf("New() returned duplicate id %q", got)
		}
		seen[got] = true
	}
}
