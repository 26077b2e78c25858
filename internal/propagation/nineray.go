package propagation

import (
	"math"
	"math/rand"
)

// rayState is the per-ray latch entry: the position the ray's on/off
// state was last refreshed at, whether it is currently contributing a
// path, and how much spatial displacement remains before it must be
// refreshed again.
type rayState struct {
	anchorX, anchorY, anchorZ float64
	isOn                      bool
	remainingDuration         float64
}

// newRayLatch returns the seven-ray latch in its process-start state:
// every ray off, anchored far away so the first sample always forces
// a refresh.
func newRayLatch() [7]rayState {
	var latch [7]rayState
	for i := range latch {
		latch[i] = rayState{anchorX: 0, anchorY: 0, anchorZ: -1e10, isOn: false, remainingDuration: 0}
	}
	return latch
}

// sampleLogLinear draws 10^(a + b*max(d-distanceBreakpoint,0) + N(0,s))
// for the given regression row and current ground distance d.
func sampleLogLinear(rng *rand.Rand, row regressionRow, groundDist float64) float64 {
	var excess = groundDist - distanceBreakpoint
	if excess < 0 {
		excess = 0
	}

	var noise = rng.NormFloat64() * row.stdDev
	var exponent = row.intercept + row.slope*excess + noise

	return math.Pow(10, exponent)
}

// nineRaySuburban appends up to seven intermittent rays to a base
// path list already containing the CE2R line-of-sight and ground
// paths, mutating latch in place. losLoss is the linear loss of path
// index 0 (the LOS ray), used as the reference additional rays scale
// against.
func nineRaySuburban(rng *rand.Rand, latch *[7]rayState, x, y, z float32, base []Path) []Path {
	var paths = base
	var losLoss = base[0].Loss

	var groundDist = float64(Distance(x, y, StationZ))

	for k := 0; k < 7; k++ {
		var ray = &latch[k]

		var dx = float64(x) - ray.anchorX
		var dy = float64(y) - ray.anchorY
		var dz = float64(z) - ray.anchorZ
		var moved = math.Sqrt(dx*dx + dy*dy + dz*dz)

		if moved > ray.remainingDuration {
			var p = sampleOnProbability(rng, onProbabilityTable[k], groundDist)
			var u = rng.Float64()
			ray.isOn = u < p
			ray.remainingDuration = sampleLogLinear(rng, durationTable[k], groundDist)
			ray.anchorX, ray.anchorY, ray.anchorZ = float64(x), float64(y), float64(z)

			if !ray.isOn {
				break
			}
		} else if !ray.isOn {
			break
		}

		var excessDB = rng.NormFloat64()*4.1 + 30.3
		if excessDB < 0 {
			excessDB = 0
		}

		var additionalLossLinear = math.Pow(10, excessDB/20)

		var phase = rng.Float64() * 2 * math.Pi

		var excessDelayNS = sampleLogLinear(rng, excessDelayTable[k], groundDist)
		if excessDelayNS < 0 {
			excessDelayNS = 0
		}
		var excessDelay = excessDelayNS * 1e-9

		paths = append(paths, Path{
			Loss:  float32(float64(losLoss) * additionalLossLinear),
			Delay: float32(excessDelay),
			Phase: float32(phase),
		})
	}

	return paths
}

func sampleOnProbability(rng *rand.Rand, row regressionRow, groundDist float64) float64 {
	return sampleLogLinear(rng, row, groundDist)
}
