package freqdetector

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mherrerarendon/freq-detector/internal/peakdetector"
)

// PowerCepstrum detects the period of a signal from the most prominent peak of its power cepstrum, the inverse FFT
// of the log power spectrum.
//
// The cepstrum relies on a harmonic series being present and is not reliable on pure sine waves.
type PowerCepstrum struct {
	params Params
}

// NewPowerCepstrum creates a power cepstrum detector.
func NewPowerCepstrum(params Params) (*PowerCepstrum, error) {
	if err := params.validate(); err != nil {
		return nil, fmt.Errorf("power cepstrum: %w", err)
	}
	return &PowerCepstrum{params: params}, nil
}

// DetectFrequency implements Detector.
func (c *PowerCepstrum) DetectFrequency(signal []float64, sampleRate float64) (float64, bool) {
	return detectFrequency(c, signal, sampleRate)
}

// DetectFrequencyWithWorkspace implements Detector.
func (c *PowerCepstrum) DetectFrequencyWithWorkspace(signal []float64, sampleRate float64, ws *Workspace) (float64, bool) {
	lower, upper := c.params.relevantRange(sampleRate, ws.Len())
	amplitudes := c.process(signal, ws, lower, upper)
	point, ok := c.peak(amplitudes, lower)
	if !ok {
		return 0, false
	}
	// Peak indices count from quefrency zero, so unlike Autocorrelation no window offset is added here.
	return sampleRate / point.X, true
}

// process computes the power cepstrum of signal in ws and stores the amplitudes of quefrencies [lower, upper) at
// the same indices of the workspace scratch, which is returned truncated to upper.
func (c *PowerCepstrum) process(signal []float64, ws *Workspace, lower, upper int) []float64 {
	ws.Init(signal)
	ws.Forward()
	ws.Map(logPowerSpectrum)
	ws.Inverse()

	space, scratch := ws.Workspace()
	amplitudes := scratch[:upper]
	for bin := lower; bin < upper; bin++ {
		amplitudes[bin] = cmplx.Abs(space[bin])
	}
	return amplitudes
}

func (c *PowerCepstrum) peak(amplitudes []float64, lower int) (peakdetector.Point, bool) {
	var (
		best  peakdetector.Peak
		found bool
	)
	finder := peakdetector.Finder{MinDistance: c.params.MinPeakDistance, MinProminence: c.params.MinProminence}
	finder.Each(amplitudes[lower:], lower, func(p peakdetector.Peak) bool {
		if !found || p.Amplitude > best.Amplitude {
			best, found = p, true
		}
		return true
	})
	if !found {
		if c.params.Logger != nil {
			c.params.Logger.Debug("no cepstral peak found", "lower", lower, "upper", len(amplitudes))
		}
		return peakdetector.Point{}, false
	}

	point, ok := peakdetector.Interpolate(amplitudes, best.Index)
	if !ok || !(point.X > 0) {
		if c.params.Logger != nil {
			c.params.Logger.Debug("cepstral peak cannot be interpolated", "index", best.Index)
		}
		return peakdetector.Point{}, false
	}
	return point, true
}

func logPowerSpectrum(x complex128) complex128 {
	re, im := real(x), imag(x)
	return complex(math.Log(re*re+im*im), 0)
}
