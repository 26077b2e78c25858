// Package tapsynth converts a propagation path list into the
// fixed-point complex tap vector the channel emulator consumes.
package tapsynth

import (
	"math"

	"github.com/kd2nrd/chanem/internal/propagation"
)

// NumTaps is the width of the FIR the emulator device applies.
const NumTaps = 41

// maxTapValue and minTapValue bound the saturating i16 conversion.
// The reference implementation deliberately leaves 7 counts of
// headroom below the true int16 range.
const (
	maxTapValue = 32760
	minTapValue = -32760
	noLossScale = 32767
)

// TapVector is the 41-tap complex filter, stored as parallel real and
// imaginary arrays of saturated 16-bit integers in the order the wire
// format expects them.
type TapVector struct {
	Real [NumTaps]int16
	Imag [NumTaps]int16
}

// Synthesize computes the tap vector for a propagation path list
// sampled at sampleRate and scaled by the current scaling coefficient
// kappa.
func Synthesize(paths []propagation.Path, sampleRate, kappa float64) TapVector {
	var real [NumTaps]float64
	var imag [NumTaps]float64

	var deltaT = 1.0 / sampleRate

	for _, p := range paths {
		var i = int(math.Floor(float64(p.Delay) / deltaT))
		if i < 0 || i >= NumTaps {
			continue
		}

		var phi = 2*math.Pi*float64(p.Delay)*propagation.Frequency + float64(p.Phase)

		var contribReal, contribImag float64
		if p.Loss == 0 {
			contribReal = noLossScale * math.Cos(phi)
			contribImag = noLossScale * math.Sin(phi)
		} else {
			// Deliberate asymmetry kept from the reference
			// implementation: a lossy path contributes a bare scalar,
			// never rotated by its own phasor.
			contribReal = (noLossScale / float64(p.Loss)) * kappa
			contribImag = 0
		}

		real[i] += contribReal
		imag[i] += contribImag
	}

	var out TapVector
	for i := 0; i < NumTaps; i++ {
		out.Real[i] = saturate(real[i])
		out.Imag[i] = saturate(imag[i])
	}

	return out
}

// SynthesizeManual builds the tap vector for manual mode: every tap
// zero except tap 0's real component, set from an explicit dB value.
func SynthesizeManual(manualDB, kappa float64) TapVector {
	var out TapVector
	var linear = math.Pow(10, manualDB/20)
	out.Real[0] = saturate((noLossScale / linear) * kappa)
	return out
}

// saturate rounds toward zero and clamps to [minTapValue, maxTapValue].
func saturate(v float64) int16 {
	var truncated = math.Trunc(v)

	if truncated > maxTapValue {
		return maxTapValue
	}
	if truncated < minTapValue {
		return minTapValue
	}

	return int16(truncated)
}
