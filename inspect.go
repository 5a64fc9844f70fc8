package freqdetector

import "slices"

// SpectrumPoint is one bin of a diagnostic spectrum.
type SpectrumPoint struct {
	Bin   int
	Value float64
}

// SpectrumInspector exposes the intermediate spectra of a detector for tests and plotting tools. Production
// callers only need Detector.
type SpectrumInspector interface {
	// Name returns the algorithm name, as accepted by New.
	Name() string
	// RelevantRange returns the quefrency bins [lower, upper) searched for a signal of n samples.
	RelevantRange(sampleRate float64, n int) (lower, upper int)
	// UnscaledSpectrum returns the values the detector searches, one per bin of RelevantRange.
	UnscaledSpectrum(signal []float64, sampleRate float64) []float64
	// Spectrum returns UnscaledSpectrum paired with absolute bin numbers.
	Spectrum(signal []float64, sampleRate float64) []SpectrumPoint
}

var (
	_ Detector          = (*Autocorrelation)(nil)
	_ Detector          = (*PowerCepstrum)(nil)
	_ SpectrumInspector = (*Autocorrelation)(nil)
	_ SpectrumInspector = (*PowerCepstrum)(nil)
)

// Name implements SpectrumInspector.
func (a *Autocorrelation) Name() string { return AutocorrelationAlgorithm }

// RelevantRange implements SpectrumInspector.
func (a *Autocorrelation) RelevantRange(sampleRate float64, n int) (lower, upper int) {
	return a.params.relevantRange(sampleRate, n)
}

// UnscaledSpectrum implements SpectrumInspector.
func (a *Autocorrelation) UnscaledSpectrum(signal []float64, sampleRate float64) []float64 {
	lower, upper := a.RelevantRange(sampleRate, len(signal))
	return slices.Clone(a.process(signal, workspaceFor(signal), lower, upper))
}

// Spectrum implements SpectrumInspector.
func (a *Autocorrelation) Spectrum(signal []float64, sampleRate float64) []SpectrumPoint {
	lower, _ := a.RelevantRange(sampleRate, len(signal))
	return spectrumPoints(a.UnscaledSpectrum(signal, sampleRate), lower)
}

// Name implements SpectrumInspector.
func (c *PowerCepstrum) Name() string { return PowerCepstrumAlgorithm }

// RelevantRange implements SpectrumInspector.
func (c *PowerCepstrum) RelevantRange(sampleRate float64, n int) (lower, upper int) {
	return c.params.relevantRange(sampleRate, n)
}

// UnscaledSpectrum implements SpectrumInspector.
func (c *PowerCepstrum) UnscaledSpectrum(signal []float64, sampleRate float64) []float64 {
	lower, upper := c.RelevantRange(sampleRate, len(signal))
	return slices.Clone(c.process(signal, workspaceFor(signal), lower, upper)[lower:])
}

// Spectrum implements SpectrumInspector.
func (c *PowerCepstrum) Spectrum(signal []float64, sampleRate float64) []SpectrumPoint {
	lower, _ := c.RelevantRange(sampleRate, len(signal))
	return spectrumPoints(c.UnscaledSpectrum(signal, sampleRate), lower)
}

func spectrumPoints(values []float64, lower int) []SpectrumPoint {
	points := make([]SpectrumPoint, len(values))
	for i, v := range values {
		points[i] = SpectrumPoint{Bin: lower + i, Value: v}
	}
	return points
}
