package freqdetector

import (
	"errors"
	"fmt"
	"iter"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// ErrEmptyWorkspace is returned when a workspace is requested for a non-positive length.
var ErrEmptyWorkspace = errors.New("workspace length must be positive")

// Workspace is the reusable transform buffer shared by the detectors. It holds a complex buffer of fixed length,
// a real-valued scratch slice of the same length and the FFT plan, so repeated detections on frames of that length
// do not allocate.
//
// A Workspace must not be used by more than one goroutine at a time. Every detection call overwrites it entirely.
type Workspace struct {
	fft     *fourier.CmplxFFT
	space   []complex128
	scratch []float64
}

// NewWorkspace allocates a workspace for signals of exactly n samples.
func NewWorkspace(n int) (*Workspace, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrEmptyWorkspace, n)
	}
	return &Workspace{
		fft:     fourier.NewCmplxFFT(n),
		space:   make([]complex128, n),
		scratch: make([]float64, n),
	}, nil
}

// Len returns the signal length the workspace was built for.
func (w *Workspace) Len() int {
	return len(w.space)
}

// Init loads signal into the buffer as complex values with a zero imaginary part. It panics when the signal length
// differs from Len, since that is a bug in the caller rather than a detection failure.
func (w *Workspace) Init(signal []float64) {
	if len(signal) != len(w.space) {
		panic(fmt.Sprintf("freqdetector: signal has %d samples, workspace expects %d", len(signal), len(w.space)))
	}
	for i, s := range signal {
		w.space[i] = complex(s, 0)
	}
}

// Workspace exposes the complex buffer and the real scratch slice. Both are only valid until the next Init.
func (w *Workspace) Workspace() ([]complex128, []float64) {
	return w.space, w.scratch
}

// Forward replaces the buffer with its discrete Fourier transform.
func (w *Workspace) Forward() {
	w.fft.Coefficients(w.space, w.space)
}

// Inverse replaces the buffer with its inverse discrete Fourier transform. The result is not scaled, so Forward
// followed by Inverse multiplies the original contents by Len.
func (w *Workspace) Inverse() {
	w.fft.Sequence(w.space, w.space)
}

// Map applies fn to every entry of the buffer.
func (w *Workspace) Map(fn func(complex128) complex128) {
	for i, c := range w.space {
		w.space[i] = fn(c)
	}
}

// FrequencyDomain yields the amplitude and phase of every bin currently in the buffer. With normalize set,
// amplitudes are divided by the buffer length.
func (w *Workspace) FrequencyDomain(normalize bool) iter.Seq2[float64, float64] {
	scale := 1.0
	if normalize {
		scale = 1 / float64(len(w.space))
	}
	return func(yield func(float64, float64) bool) {
		for _, c := range w.space {
			if !yield(cmplx.Abs(c)*scale, cmplx.Phase(c)) {
				return
			}
		}
	}
}
