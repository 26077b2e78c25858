package propagation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestFreeSpaceSinglePath(t *testing.T) {
	var paths = FreeSpace(100, 0, 50)
	assert.Len(t, paths, 1)
	assert.Equal(t, float32(0), paths[0].Delay)
	assert.Equal(t, float32(0), paths[0].Phase)
	assert.Greater(t, paths[0].Loss, float32(0))
}

func TestFlatEarthTwoRayTwoPaths(t *testing.T) {
	var paths = FlatEarthTwoRay(100, 0, 50)
	assert.Len(t, paths, 2)
	assert.Equal(t, float32(0), paths[0].Delay)
	assert.Greater(t, paths[1].Delay, float32(0), "the ground-reflected ray must arrive after the direct ray")
}

func TestCurvedEarthTwoRayTwoPaths(t *testing.T) {
	var paths = CurvedEarthTwoRay(500, 0, 100)
	assert.Len(t, paths, 2)
	assert.Equal(t, float32(0), paths[0].Delay)
	assert.GreaterOrEqual(t, paths[1].Delay, float32(0))
}

// TestNineRayDeterministicUnderFixedSeed is property S6: two identical
// position sequences through engines seeded alike produce identical
// path lists.
func TestNineRayDeterministicUnderFixedSeed(t *testing.T) {
	var positions = [][3]float32{
		{200, 0, 50},
		{250, 10, 52},
		{400, -20, 40},
		{600, 30, 60},
	}

	var run = func() [][]Path {
		var e = NewEngine(42)
		var out [][]Path
		for _, p := range positions {
			out = append(out, e.Evaluate(ModelNineRaySuburban, p[0], p[1], p[2]))
		}
		return out
	}

	var a = run()
	var b = run()

	assert.Equal(t, a, b)
}

func TestNineRayLatchMonotone(t *testing.T) {
	// Invariant: if ray k-1 is off this sample, ray k must not have
	// been updated or emitted, so the path count from index 2 onward
	// never "skips" an off ray to emit a later one.
	var e = NewEngine(7)

	rapid.Check(t, func(rt *rapid.T) {
		var x = rapid.Float32Range(20, 2000).Draw(rt, "x")
		var y = rapid.Float32Range(-500, 500).Draw(rt, "y")
		var z = rapid.Float32Range(1, 200).Draw(rt, "z")

		var before = e.latch
		var paths = e.Evaluate(ModelNineRaySuburban, x, y, z)
		assert.LessOrEqual(t, len(paths), 9, "CE2R base (2) plus at most 7 intermittent rays")

		var emitted = len(paths) - 2
		for k := 0; k < emitted; k++ {
			assert.True(t, e.latch[k].isOn, "every emitted intermittent ray is on")
		}
		for k := emitted + 1; k < 7; k++ {
			assert.Equal(t, before[k], e.latch[k], "rays after the first off ray are not updated")
		}
	})
}

func TestFarFieldBypass(t *testing.T) {
	var e = NewEngine(1)
	var paths = e.Evaluate(ModelFreeSpace, 0.001, 0, 1.5)
	assert.Len(t, paths, 1)
	assert.Equal(t, float32(1.0), paths[0].Loss)
}
