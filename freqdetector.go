// Package freqdetector estimates the fundamental frequency of a window of audio using spectral methods: the
// autocorrelation of the signal and its power cepstrum, both computed with FFTs on a reusable Workspace.
package freqdetector

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Frequency bounds used by DefaultParams. The detectors only search the quefrency bins that correspond to this
// range.
const (
	MinFrequency = 32.70   // C1
	MaxFrequency = 1046.50 // C6
)

// Algorithm names accepted by New.
const (
	AutocorrelationAlgorithm = "autocorrelation"
	PowerCepstrumAlgorithm   = "power-cepstrum"
)

type logger interface {
	Debug(msg string, args ...any)
}

type (
	// Params defines configuration options shared by the detectors.
	Params struct {
		MinFrequency    float64 // Minimum detectable frequency in Hz.
		MaxFrequency    float64 // Maximum detectable frequency in Hz.
		MinPeakDistance int     // Minimum distance in bins between cepstral peaks.
		MinProminence   float64 // Minimum prominence of a cepstral peak.
		Logger          logger  // Optional logger for debug messages.
	}

	// Detector estimates the fundamental frequency of a signal. The second return value is false when no reliable
	// periodic component was found.
	Detector interface {
		// DetectFrequency allocates a Workspace sized to signal and detects its frequency.
		DetectFrequency(signal []float64, sampleRate float64) (float64, bool)
		// DetectFrequencyWithWorkspace detects the frequency of signal using ws, which must have been created for
		// len(signal) samples. This is the allocation-free path for repeated detection.
		DetectFrequencyWithWorkspace(signal []float64, sampleRate float64, ws *Workspace) (float64, bool)
	}
)

var (
	// ErrInvalidParams is returned by the constructors for out of range Params.
	ErrInvalidParams = errors.New("invalid detector params")
	// ErrUnknownAlgorithm is returned by New for an unsupported algorithm name.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")

	DefaultParams = Params{
		MinFrequency:    MinFrequency,
		MaxFrequency:    MaxFrequency,
		MinPeakDistance: 60,
		MinProminence:   10,
	}
)

// New creates the detector registered under algorithm.
func New(algorithm string, params Params) (Detector, error) {
	switch strings.ToLower(algorithm) {
	case AutocorrelationAlgorithm:
		d, err := NewAutocorrelation(params)
		if err != nil {
			return nil, err
		}
		return d, nil
	case PowerCepstrumAlgorithm:
		d, err := NewPowerCepstrum(params)
		if err != nil {
			return nil, err
		}
		return d, nil
	default:
		return nil, fmt.Errorf("%w: %s; available algorithms: %+q", ErrUnknownAlgorithm, algorithm, Algorithms())
	}
}

// Algorithms lists the names accepted by New.
func Algorithms() []string {
	return []string{AutocorrelationAlgorithm, PowerCepstrumAlgorithm}
}

func (p Params) validate() error {
	if !(p.MinFrequency > 0) || math.IsInf(p.MaxFrequency, 0) || !(p.MaxFrequency > p.MinFrequency) {
		return fmt.Errorf("%w: frequency range %.2f-%.2f Hz", ErrInvalidParams, p.MinFrequency, p.MaxFrequency)
	}
	if p.MinPeakDistance < 0 {
		return fmt.Errorf("%w: negative peak distance %d", ErrInvalidParams, p.MinPeakDistance)
	}
	if !(p.MinProminence >= 0) {
		return fmt.Errorf("%w: prominence %v", ErrInvalidParams, p.MinProminence)
	}
	return nil
}

// relevantRange returns the quefrency bins [lower, upper) matching the frequency bounds, since
// frequency = sampleRate / quefrency. Both ends are clamped to [0, n].
func (p Params) relevantRange(sampleRate float64, n int) (lower, upper int) {
	lower = min(n, max(0, int(math.Round(sampleRate/p.MaxFrequency))))
	upper = min(n, int(math.Round(sampleRate/p.MinFrequency)))
	return lower, max(lower, upper)
}

// detectFrequency is the allocating path shared by the detectors.
func detectFrequency(d Detector, signal []float64, sampleRate float64) (float64, bool) {
	return d.DetectFrequencyWithWorkspace(signal, sampleRate, workspaceFor(signal))
}

func workspaceFor(signal []float64) *Workspace {
	ws, err := NewWorkspace(len(signal))
	if err != nil {
		panic(fmt.Sprintf("freqdetector: %v", err))
	}
	return ws
}
