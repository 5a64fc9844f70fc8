// Package peakdetector finds and refines local maxima in sampled spectra.
package peakdetector

import (
	"iter"
	"math"
)

// Peak is a local maximum at an integer bin.
type Peak struct {
	Index     int
	Amplitude float64
}

// Finder locates the prominent local maxima of an amplitude sequence.
//
// Only interior maxima are reported; a plateau is reported at its first index. A maximum is dropped unless it rises
// at least MinProminence above the higher of its two valleys, where a valley is the lowest value between the
// maximum and the neighbouring maximum (or the end of the sequence). Of two surviving maxima closer than
// MinDistance bins, only the larger is kept; on equal amplitudes the earlier one stays.
type Finder struct {
	MinDistance   int
	MinProminence float64
}

// Each calls yield with the peaks of values in index order until yield returns false. Bins are numbered from
// offset, so a window cut from a longer array keeps the bin numbers of the original array.
//
// Each does not allocate when yield does not escape.
func (f Finder) Each(values []float64, offset int, yield func(Peak) bool) {
	s := scan{Finder: f}
	for i, v := range values {
		if !s.step(offset+i, v, yield) {
			return
		}
	}
	s.finish(yield)
}

// Find returns the peaks of seq as a lazy sequence, with the filtering rules of Finder.
//
// seq is read lazily and may be ranged over any number of times.
func Find(seq iter.Seq2[int, float64], minDistance int, minProminence float64) iter.Seq[Peak] {
	f := Finder{MinDistance: minDistance, MinProminence: minProminence}
	return func(yield func(Peak) bool) {
		s := scan{Finder: f}
		for i, v := range seq {
			if !s.step(i, v, yield) {
				return
			}
		}
		s.finish(yield)
	}
}

// scan holds the state of one pass over a sequence.
type scan struct {
	Finder

	started bool
	prev    float64
	rising  bool
	top     Peak
	low     float64

	cand     Peak
	candLow  float64
	haveCand bool

	held     Peak
	haveHeld bool
}

// step consumes the value at bin i. It returns false once yield stops.
func (s *scan) step(i int, v float64, yield func(Peak) bool) bool {
	if !s.started {
		s.started, s.prev, s.low = true, v, v
		return true
	}

	switch {
	case v > s.prev:
		s.rising = true
		s.top = Peak{Index: i, Amplitude: v}
	case v < s.prev && s.rising:
		s.rising = false
		if !s.settle(s.low, yield) {
			return false
		}
		s.cand, s.candLow, s.haveCand = s.top, s.low, true
		s.low = v
	}

	if v < s.low || math.IsNaN(s.low) {
		s.low = v
	}
	s.prev = v
	return true
}

func (s *scan) finish(yield func(Peak) bool) {
	if !s.settle(s.low, yield) {
		return
	}
	if s.haveHeld {
		yield(s.held)
	}
}

// settle decides on the pending candidate once the valley to its right is known.
func (s *scan) settle(rightLow float64, yield func(Peak) bool) bool {
	if !s.haveCand {
		return true
	}
	s.haveCand = false
	// Negated so that NaN prominences are dropped too.
	if !(s.cand.Amplitude-math.Max(s.candLow, rightLow) >= s.MinProminence) {
		return true
	}
	return s.accept(s.cand, yield)
}

// accept applies the distance filter.
func (s *scan) accept(p Peak, yield func(Peak) bool) bool {
	if s.haveHeld && p.Index-s.held.Index < s.MinDistance {
		if p.Amplitude > s.held.Amplitude {
			s.held = p
		}
		return true
	}
	if s.haveHeld && !yield(s.held) {
		return false
	}
	s.held, s.haveHeld = p, true
	return true
}

// Slice enumerates values with their indices shifted by offset, so a window cut from a longer array keeps the bin
// numbers of the original array.
func Slice(values []float64, offset int) iter.Seq2[int, float64] {
	return func(yield func(int, float64) bool) {
		for i, v := range values {
			if !yield(offset+i, v) {
				return
			}
		}
	}
}
