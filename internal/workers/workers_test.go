package workers

import (
	"runtime"
	"testing"
)

func TestCount(t *testing.T) {
	t.Setenv("PARSER_WORKERS", "")

	tests := []struct {
		name       string
		multiplier float64
		limit      int
	}{
		{name: "cpu bound", multiplier: 1.0, limit: 8},
		{name: "io bound", multiplier: 2.0, limit: 16},
		{name: "mixed", multiplier: 1.5, limit: 12},
		{name: "no limit", multiplier: 2.0, limit: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Count(tt.multiplier, tt.limit)
			if got < 1 {
				t.Errorf("Count(%v, %d) = %d, want >= 1", tt.multiplier, tt.limit, got)
			}
			if tt.limit > 0 && got > tt.limit {
				t.Errorf("Count(%v, %d) = %d, exceeds limit", tt.multiplier, tt.limit, got)
			}
		})
	}
}

func TestCountOverride(t *testing.T) {
	t.Setenv("PARSER_WORKERS", "3")

	if got := Count(1.0, 0); got != 3 {
		t.Errorf("Count with override = %d, want 3", got)
	}

	// Override is still capped by the limit
	if got := Count(1.0, 2); got != 2 {
		t.Errorf("Count with override and limit = %d, want 2", got)
	}
}

func TestCountInvalidOverride(t *testing.T) {
	t.Setenv("PARSER_WORKERS", "not-a-number")

	got := Count(1.0, 0)
	want := runtime.GOMAXPROCS(0)
	if got != want {
		t.Errorf("Count with invalid override = %d, want %d", got, want)
	}
}

func TestHelpers(t *testing.T) {
	t.Setenv("PARSER_WORKERS", "")

	if got := ForCPU(1); got != 1 {
		t.Errorf("ForCPU(1) = %d, want 1", got)
	}
	if got := ForIO(1); got != 1 {
		t.Errorf("ForIO(1) = %d, want 1", got)
	}
	if got := ForMixed(1); got != 1 {
		t.Errorf("ForMixed(1) = %d, want 1", got)
	}
}
