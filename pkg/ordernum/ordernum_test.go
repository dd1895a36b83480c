package ordernum

import (
	"regexp"
	"testing"
)

func TestOrderFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^ORD-\d+-[0-9A-Z]{9}$`)
	for i := 0; i < 100; i++ {
		n := Order()
		if !pattern.MatchString(n) {
			t.Fatalf("order number %q does not match expected format", n)
		}
	}
}

func TestTrackingFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^TRK-\d+-[0-9A-Z]{9}$`)
	for i := 0; i < 100; i++ {
		n := Tracking()
		if !pattern.MatchString(n) {
			t.Fatalf("tracking number %q does not match expected format", n)
		}
	}
}

func TestNoImmediateCollisions(t *testing.T) {
	seen := make(map[string]bool, 1000)
	for i := 0; i < 1000; i++ {
		n := Order()
		if seen[n] {
			t.Fatalf("duplicate order number generated: %q", n)
		}
		seen[n] = true
	}
}
