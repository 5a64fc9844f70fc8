package freqdetector

import (
	"fmt"
	"math/cmplx"

	"github.com/mherrerarendon/freq-detector/internal/peakdetector"
)

// Autocorrelation detects the period of a signal from the highest point of its autocorrelation, computed as the
// inverse FFT of the power spectrum.
type Autocorrelation struct {
	params Params
}

// NewAutocorrelation creates an autocorrelation detector. Only the frequency bounds of params are used.
func NewAutocorrelation(params Params) (*Autocorrelation, error) {
	if err := params.validate(); err != nil {
		return nil, fmt.Errorf("autocorrelation: %w", err)
	}
	return &Autocorrelation{params: params}, nil
}

// DetectFrequency implements Detector.
func (a *Autocorrelation) DetectFrequency(signal []float64, sampleRate float64) (float64, bool) {
	return detectFrequency(a, signal, sampleRate)
}

// DetectFrequencyWithWorkspace implements Detector.
func (a *Autocorrelation) DetectFrequencyWithWorkspace(signal []float64, sampleRate float64, ws *Workspace) (float64, bool) {
	lower, upper := a.params.relevantRange(sampleRate, ws.Len())
	point, ok := a.peak(a.process(signal, ws, lower, upper))
	if !ok {
		return 0, false
	}
	// The peak position is relative to the window, so the window offset is added back.
	return sampleRate / (float64(lower) + point.X), true
}

// process computes the autocorrelation of signal in ws and returns lags [lower, upper) normalized by the zero-lag
// energy. The returned slice is the workspace scratch.
func (a *Autocorrelation) process(signal []float64, ws *Workspace, lower, upper int) []float64 {
	ws.Init(signal)
	ws.Forward()
	ws.Map(powerSpectrum)
	ws.Inverse()

	space, scratch := ws.Workspace()
	window := scratch[:upper-lower]
	energy := real(space[0])
	for i := range window {
		window[i] = real(space[lower+i]) / energy
	}
	return window
}

func (a *Autocorrelation) peak(window []float64) (peakdetector.Point, bool) {
	i := peakdetector.MaxIndex(window)
	if i < 0 {
		if a.params.Logger != nil {
			a.params.Logger.Debug("no autocorrelation maximum", "window", len(window))
		}
		return peakdetector.Point{}, false
	}
	point, ok := peakdetector.Interpolate(window, i)
	if !ok && a.params.Logger != nil {
		a.params.Logger.Debug("autocorrelation peak cannot be interpolated", "index", i, "window", len(window))
	}
	return point, ok
}

func powerSpectrum(c complex128) complex128 {
	return c * cmplx.Conj(c)
}
