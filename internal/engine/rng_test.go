package engine

import (
	"math"
	"testing"
)

func TestNewSourceRange(t *testing.T) {
	src := NewSource()
	for i := 0; i < 10000; i++ {
		f := src.Float64()
		if f < 0 || f >= 1 {
			t.Fatalf("value %d out of range [0, 1): %f", i, f)
		}
	}
}

func TestNewSourceIndependent(t *testing.T) {
	a, b := NewSource(), NewSource()

	same := 0
	for i := 0; i < 16; i++ {
		if a.Float64() == b.Float64() {
			same++
		}
	}
	if same == 16 {
		t.Error("expected two sources to produce different sequences")
	}
}

func TestPCGSourceMean(t *testing.T) {
	src := NewPCGSource(1, 2)

	const n = 100000
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += src.Float64()
	}
	if mean := sum / n; math.Abs(mean-0.5) > 0.01 {
		t.Errorf("expected mean near 0.5, got %f", mean)
	}
}

func TestSeededFactory(t *testing.T) {
	a, b := NewSeededFactory(7), NewSeededFactory(7)

	a1, b1 := a(), b()
	for i := 0; i < 8; i++ {
		if x, y := a1.Float64(), b1.Float64(); x != y {
			t.Fatalf("draw %d: expected equal sequences for the same seed, got %f and %f", i, x, y)
		}
	}

	if a().Float64() == NewPCGSource(7, 1).Float64() {
		t.Error("expected the second source of a factory to differ from the first")
	}
}

func TestSequenceSource(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		draws  int
		want   []float64
	}{
		{name: "replays in order", values: []float64{0.1, 0.2, 0.3}, draws: 3, want: []float64{0.1, 0.2, 0.3}},
		{name: "wraps around", values: []float64{0.25, 0.75}, draws: 5, want: []float64{0.25, 0.75, 0.25, 0.75, 0.25}},
		{name: "empty yields zero", values: nil, draws: 2, want: []float64{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := NewSequenceSource(tt.values...)
			for i := 0; i < tt.draws; i++ {
				if got := src.Float64(); got != tt.want[i] {
					t.Errorf("draw %d: expected %f, got %f", i, tt.want[i], got)
				}
			}
		})
	}
}

func TestSafeDiv(t *testing.T) {
	tests := []struct {
		name     string
		num, den float64
		want     float64
	}{
		{"zero denominator", 5, 0, 0},
		{"zero both", 0, 0, 0},
		{"regular", 3, 4, 0.75},
		{"negative", -1, 2, -0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SafeDiv(tt.num, tt.den); got != tt.want {
				t.Errorf("SafeDiv(%v, %v) = %v, want %v", tt.num, tt.den, got, tt.want)
			}
		})
	}
}
