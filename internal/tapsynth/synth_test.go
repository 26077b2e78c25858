package tapsynth

import (
	"testing"

	"github.com/kd2nrd/chanem/internal/propagation"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestWireSizeMatchesSpec(t *testing.T) {
	assert.Equal(t, 164, WireSize)
}

func TestSynthesizeSinglePathNoLoss(t *testing.T) {
	var paths = []propagation.Path{{Loss: 0, Delay: 0, Phase: 0}}
	var taps = Synthesize(paths, 200e6, 30000)

	assert.Equal(t, int16(32760), taps.Real[0], "a no-loss reference tap saturates at the top of the i16 band")
	assert.Equal(t, int16(0), taps.Imag[0])

	for i := 1; i < NumTaps; i++ {
		assert.Equal(t, int16(0), taps.Real[i])
		assert.Equal(t, int16(0), taps.Imag[i])
	}
}

func TestSynthesizeLossyPathHasNoImaginaryComponent(t *testing.T) {
	var paths = []propagation.Path{{Loss: 100, Delay: 0, Phase: 1.2}}
	var taps = Synthesize(paths, 200e6, 30000)

	assert.NotEqual(t, int16(0), taps.Real[0])
	assert.Equal(t, int16(0), taps.Imag[0], "lossy-path contributions are never rotated by their own phasor")
}

func TestSynthesizeDiscardsOutOfRangeDelay(t *testing.T) {
	var paths = []propagation.Path{{Loss: 50, Delay: 1, Phase: 0}} // 1s delay at 200Msps is far past tap 40
	var taps = Synthesize(paths, 200e6, 30000)

	for i := 0; i < NumTaps; i++ {
		assert.Equal(t, int16(0), taps.Real[i])
		assert.Equal(t, int16(0), taps.Imag[i])
	}
}

func TestSynthesizeManualTapZero(t *testing.T) {
	var taps = SynthesizeManual(50, 30000)

	assert.NotEqual(t, int16(0), taps.Real[0])
	assert.Equal(t, int16(0), taps.Imag[0])

	for i := 1; i < NumTaps; i++ {
		assert.Equal(t, int16(0), taps.Real[i])
		assert.Equal(t, int16(0), taps.Imag[i])
	}
}

// TestTapsAlwaysInRange is a property test: for any path list built
// from arbitrary finite losses/delays/phases, every resulting tap
// value stays within the saturating i16 band.
func TestTapsAlwaysInRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		var n = rapid.IntRange(0, 9).Draw(rt, "n")
		var paths = make([]propagation.Path, n)
		for i := range paths {
			paths[i] = propagation.Path{
				Loss:  rapid.Float32Range(0, 1000).Draw(rt, "loss"),
				Delay: rapid.Float32Range(0, 2e-7).Draw(rt, "delay"),
				Phase: rapid.Float32Range(0, 6.29).Draw(rt, "phase"),
			}
		}

		var taps = Synthesize(paths, 200e6, 30000)
		for i := 0; i < NumTaps; i++ {
			assert.LessOrEqual(t, taps.Real[i], int16(maxTapValue))
			assert.GreaterOrEqual(t, taps.Real[i], int16(minTapValue))
			assert.LessOrEqual(t, taps.Imag[i], int16(maxTapValue))
			assert.GreaterOrEqual(t, taps.Imag[i], int16(minTapValue))
		}
	})
}
