package audio

import "math"

// Sine returns n samples of a unit amplitude sine wave at freq Hz.
func Sine(n int, freq, sampleRate float64) []float64 {
	signal := make([]float64, n)
	for i := range signal {
		signal[i] = math.Sin(2 * math.Pi * freq * float64(i) / sampleRate)
	}
	return signal
}

// Harmonics returns n samples of a tone made of the first partials harmonics of freq, all at equal amplitude.
// Partials at or above the Nyquist frequency are left out.
func Harmonics(n int, freq, sampleRate float64, partials int) []float64 {
	signal := make([]float64, n)
	for k := 1; k <= partials && float64(k)*freq < sampleRate/2; k++ {
		w := 2 * math.Pi * float64(k) * freq / sampleRate
		for i := range signal {
			signal[i] += math.Sin(w * float64(i))
		}
	}
	return signal
}
