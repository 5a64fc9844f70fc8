// Package audio provides signal windows for the detectors: mono WAV clips split into frames, and synthetic test
// tones.
package audio

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"os"
	"slices"

	"github.com/go-audio/wav"
)

var (
	// ErrInvalidWAV is returned for files that are not decodable WAV audio.
	ErrInvalidWAV = errors.New("invalid WAV file")
	// ErrNotMono is returned for WAV files with more than one channel.
	ErrNotMono = errors.New("only mono WAV files are supported")
)

// Clip is a decoded mono recording with samples scaled to [-1, 1].
type Clip struct {
	SampleRate float64
	Samples    []float64
}

// ReadWAV decodes the mono WAV file at path.
func ReadWAV(path string) (*Clip, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidWAV, path)
	}

	buffer, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if buffer.Format.NumChannels != 1 {
		return nil, fmt.Errorf("%w: %s has %d channels", ErrNotMono, path, buffer.Format.NumChannels)
	}

	samples := buffer.AsFloatBuffer().Data
	if depth := int(decoder.BitDepth); depth > 1 {
		scale := 1 / math.Pow(2, float64(depth-1))
		for i := range samples {
			samples[i] *= scale
		}
	}

	return &Clip{SampleRate: float64(buffer.Format.SampleRate), Samples: samples}, nil
}

// Frames yields consecutive, non-overlapping frames of size samples together with their position. A trailing
// partial frame is dropped. The frames alias the clip's samples.
func (c *Clip) Frames(size int) iter.Seq2[int, []float64] {
	return func(yield func(int, []float64) bool) {
		if size <= 0 {
			return
		}
		i := 0
		for chunk := range slices.Chunk(c.Samples, size) {
			if len(chunk) < size {
				return
			}
			if !yield(i, chunk) {
				return
			}
			i++
		}
	}
}

// Frame returns the k-th frame of size samples, or false when the clip is too short.
func (c *Clip) Frame(k, size int) ([]float64, bool) {
	if k < 0 || size <= 0 || (k+1)*size > len(c.Samples) {
		return nil, false
	}
	return c.Samples[k*size : (k+1)*size], true
}

// Duration returns the clip length in seconds.
func (c *Clip) Duration() float64 {
	if c.SampleRate == 0 {
		return 0
	}
	return float64(len(c.Samples)) / c.SampleRate
}
