package peakdetector

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bump struct {
	at     int
	height float64
}

// triangles returns n samples of zero baseline with a triangular bump (slope 4 per bin) at every position in bumps.
func triangles(n int, bumps ...bump) []float64 {
	values := make([]float64, n)
	for i := range values {
		for _, b := range bumps {
			values[i] = math.Max(values[i], b.height-4*math.Abs(float64(i-b.at)))
		}
	}
	return values
}

func TestFind(t *testing.T) {
	tests := []struct {
		name          string
		values        []float64
		minDistance   int
		minProminence float64
		want          []Peak
	}{
		{
			name:          "two well separated maxima",
			values:        triangles(300, bump{50, 40}, bump{200, 30}),
			minDistance:   60,
			minProminence: 10,
			want:          []Peak{{50, 40}, {200, 30}},
		},
		{
			name:          "smaller neighbour within distance is suppressed",
			values:        triangles(300, bump{50, 40}, bump{90, 25}, bump{200, 30}),
			minDistance:   60,
			minProminence: 10,
			want:          []Peak{{50, 40}, {200, 30}},
		},
		{
			name:          "larger neighbour within distance takes over",
			values:        triangles(300, bump{50, 25}, bump{90, 40}, bump{200, 30}),
			minDistance:   60,
			minProminence: 10,
			want:          []Peak{{90, 40}, {200, 30}},
		},
		{
			name:          "equal neighbours keep the earlier one",
			values:        triangles(300, bump{50, 40}, bump{90, 40}),
			minDistance:   60,
			minProminence: 10,
			want:          []Peak{{50, 40}},
		},
		{
			name:          "low prominence is discarded",
			values:        triangles(300, bump{50, 40}, bump{150, 5}, bump{250, 30}),
			minDistance:   60,
			minProminence: 10,
			want:          []Peak{{50, 40}, {250, 30}},
		},
		{
			name:          "prominence measured against the higher valley",
			values:        []float64{0, 10, 20, 30, 25, 28, 20, 10, 0},
			minDistance:   1,
			minProminence: 4,
			want:          []Peak{{3, 30}},
		},
		{
			name:          "plateau reported at first index",
			values:        []float64{0, 1, 3, 3, 3, 1, 0},
			minDistance:   1,
			minProminence: 0,
			want:          []Peak{{2, 3}},
		},
		{
			name:          "monotonic input has no interior maximum",
			values:        []float64{5, 4, 3, 2, 1},
			minDistance:   1,
			minProminence: 0,
			want:          nil,
		},
		{
			name:          "rising edge at the end is not a maximum",
			values:        []float64{0, 1, 2, 3},
			minDistance:   1,
			minProminence: 0,
			want:          nil,
		},
		{
			name:          "NaN values are never reported",
			values:        []float64{0, math.NaN(), 0, 20, 0},
			minDistance:   1,
			minProminence: 10,
			want:          []Peak{{3, 20}},
		},
		{
			name:          "empty input",
			values:        nil,
			minDistance:   60,
			minProminence: 10,
			want:          nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := slices.Collect(Find(Slice(tt.values, 0), tt.minDistance, tt.minProminence))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFind_KeepsOffsetIndices(t *testing.T) {
	t.Parallel()

	values := triangles(100, bump{30, 40})
	got := slices.Collect(Find(Slice(values, 42), 60, 10))
	assert.Equal(t, []Peak{{72, 40}}, got)
}

func TestFind_Restartable(t *testing.T) {
	t.Parallel()

	peaks := Find(Slice(triangles(300, bump{50, 40}, bump{200, 30}), 0), 60, 10)
	first := slices.Collect(peaks)
	second := slices.Collect(peaks)
	require.Len(t, first, 2)
	assert.Equal(t, first, second)
}

func TestFind_StopsEarly(t *testing.T) {
	t.Parallel()

	var got []Peak
	for p := range Find(Slice(triangles(400, bump{50, 40}, bump{200, 30}, bump{350, 20}), 0), 60, 10) {
		got = append(got, p)
		break
	}
	assert.Equal(t, []Peak{{50, 40}}, got)
}

func TestFinder_MatchesFind(t *testing.T) {
	t.Parallel()

	values := triangles(400, bump{50, 40}, bump{90, 25}, bump{200, 30}, bump{350, 5})
	finder := Finder{MinDistance: 60, MinProminence: 10}

	var got []Peak
	finder.Each(values[42:], 42, func(p Peak) bool {
		got = append(got, p)
		return true
	})
	assert.Equal(t, []Peak{{50, 40}, {200, 30}}, got)
	assert.Equal(t, slices.Collect(Find(Slice(values[42:], 42), 60, 10)), got)
}

func TestFinder_StopsEarly(t *testing.T) {
	t.Parallel()

	var got []Peak
	Finder{MinDistance: 60, MinProminence: 10}.Each(triangles(400, bump{50, 40}, bump{200, 30}, bump{350, 20}), 0,
		func(p Peak) bool {
			got = append(got, p)
			return false
		})
	assert.Equal(t, []Peak{{50, 40}}, got)
}

func TestFinder_DoesNotAllocate(t *testing.T) {
	values := triangles(1300, bump{200, 80}, bump{400, 40}, bump{600, 30})
	finder := Finder{MinDistance: 60, MinProminence: 10}

	var best Peak
	allocs := testing.AllocsPerRun(10, func() {
		best = Peak{}
		finder.Each(values, 42, func(p Peak) bool {
			if p.Amplitude > best.Amplitude {
				best = p
			}
			return true
		})
	})
	assert.Zero(t, allocs)
	assert.Equal(t, Peak{242, 80}, best)
}

func TestInterpolate(t *testing.T) {
	t.Parallel()

	parabola := func(x float64) float64 { return 10 - (x-2.3)*(x-2.3) }
	values := []float64{parabola(0), parabola(1), parabola(2), parabola(3), parabola(4)}

	p, ok := Interpolate(values, 2)
	require.True(t, ok)
	assert.InDelta(t, 2.3, p.X, 1e-9)
	assert.InDelta(t, 10, p.Y, 1e-9)
}

func TestInterpolate_NoResult(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values []float64
		index  int
	}{
		{"first element", []float64{3, 2, 1}, 0},
		{"last element", []float64{1, 2, 3}, 2},
		{"out of range", []float64{1, 2, 3}, 5},
		{"negative index", []float64{1, 2, 3}, -1},
		{"flat neighbourhood", []float64{1, 1, 1}, 1},
		{"straight line", []float64{1, 2, 3, 4}, 2},
		{"NaN neighbour", []float64{math.NaN(), 2, 1}, 1},
		{"empty", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, ok := Interpolate(tt.values, tt.index)
			assert.False(t, ok)
		})
	}
}

func TestMaxIndex(t *testing.T) {
	t.Parallel()

	assert.Equal(t, -1, MaxIndex(nil))
	assert.Equal(t, 0, MaxIndex([]float64{4, 3, 2}))
	assert.Equal(t, 1, MaxIndex([]float64{1, 3, 3, 2}), "ties resolve to the earliest index")
	assert.Equal(t, 2, MaxIndex([]float64{1, math.NaN(), 5}))
	assert.Equal(t, 2, MaxIndex([]float64{math.NaN(), 0.2, 0.9, 0.5}), "a leading NaN is skipped")
	assert.Equal(t, -1, MaxIndex([]float64{math.NaN(), math.NaN()}))
}
