package config

import (
	"math"
	"testing"
)

func TestPacingDisabledKeepsInitialLevel(t *testing.T) {
	pm := NewPacingManager(PacingConfig{Enabled: false, InitialLevel: 0.3, MaxAt: 10, IntervalReduction: 0.5})
	if got := pm.Level(100); got != 0.3 {
		t.Errorf("Level = %v, want 0.3", got)
	}
}

func TestPacingLevelInterpolates(t *testing.T) {
	pm := NewPacingManager(PacingConfig{Enabled: true, InitialLevel: 0, MaxAt: 100, IntervalReduction: 0.5})

	tests := []struct {
		elapsed float64
		want    float64
	}{
		{0, 0},
		{50, 0.5},
		{100, 1},
		{500, 1},
		{-5, 0},
	}
	for _, tt := range tests {
		if got := pm.Level(tt.elapsed); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Level(%v) = %v, want %v", tt.elapsed, got, tt.want)
		}
	}
}

func TestPacingInterval(t *testing.T) {
	pm := NewPacingManager(PacingConfig{Enabled: true, MaxAt: 100, IntervalReduction: 0.5})

	if got := pm.Interval(10, 0); got != 10 {
		t.Errorf("Interval at start = %v, want 10", got)
	}
	if got := pm.Interval(10, 100); got != 5 {
		t.Errorf("Interval at max = %v, want 5", got)
	}
	if got := pm.Interval(0, 50); got != 0 {
		t.Errorf("disabled interval should stay 0, got %v", got)
	}
	if got := pm.Interval(0.6, 100); got != minSpawnInterval {
		t.Errorf("Interval should floor at %v, got %v", minSpawnInterval, got)
	}
}

func TestPacingZeroMaxAt(t *testing.T) {
	pm := NewPacingManager(PacingConfig{Enabled: true, MaxAt: 0})
	if got := pm.Level(0.5); math.IsNaN(got) || got < 0 || got > 1 {
		t.Errorf("Level should stay in [0,1], got %v", got)
	}
}
