package freqdetector

import (
	"math"
	"testing"
)

func TestAutocorrelationPeak_Boundaries(t *testing.T) {
	t.Parallel()

	a, err := NewAutocorrelation(DefaultParams)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		window []float64
		want   bool
	}{
		{"maximum on first element", []float64{1, 0.8, 0.5, 0.2}, false},
		{"maximum on last element", []float64{0.2, 0.5, 0.8, 1}, false},
		{"empty window", nil, false},
		{"silence", []float64{math.NaN(), math.NaN(), math.NaN()}, false},
		{"interior maximum", []float64{0.2, 0.9, 0.6}, true},
		{"tie resolves to the earlier interior maximum", []float64{0.1, 0.9, 0.5, 0.9, 0.1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			point, ok := a.peak(tt.window)
			if ok != tt.want {
				t.Fatalf("peak(%v) ok = %v, want %v", tt.window, ok, tt.want)
			}
			if ok && (point.X <= 0.5 || point.X >= 1.5) {
				t.Errorf("peak(%v) = %v, want a position around bin 1", tt.window, point.X)
			}
		})
	}
}

func TestPowerCepstrumPeak_PicksLargestCandidate(t *testing.T) {
	t.Parallel()

	c, err := NewPowerCepstrum(DefaultParams)
	if err != nil {
		t.Fatal(err)
	}

	amplitudes := make([]float64, 400)
	for i, bump := range map[int]float64{100: 40, 130: 60, 300: 50} {
		amplitudes[i-1], amplitudes[i], amplitudes[i+1] = bump/2, bump, bump/4
	}

	point, ok := c.peak(amplitudes, 42)
	if !ok {
		t.Fatal("no peak found")
	}
	if point.X < 129.5 || point.X > 130.5 {
		t.Errorf("peak at %v, want close to 130", point.X)
	}

	if _, ok := c.peak(make([]float64, 400), 42); ok {
		t.Error("found a peak in a flat cepstrum")
	}
}

func TestRelevantRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		sampleRate   float64
		n            int
		lower, upper int
	}{
		{44100, 8192, 42, 1349},
		{44000, 8192, 42, 1346},
		{48000, 1024, 46, 1024},
		{8000, 4096, 8, 245},
		{44100, 10, 10, 10},
		{-1, 100, 0, 0},
	}

	for _, tt := range tests {
		lower, upper := DefaultParams.relevantRange(tt.sampleRate, tt.n)
		if lower != tt.lower || upper != tt.upper {
			t.Errorf("relevantRange(%v, %d) = [%d, %d), want [%d, %d)", tt.sampleRate, tt.n, lower, upper, tt.lower, tt.upper)
		}
	}
}
