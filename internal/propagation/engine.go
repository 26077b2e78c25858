package propagation

import (
	"math/rand"
	"sync"
)

// Model identifies which path-loss model an Engine invocation should
// evaluate.
type Model int

const (
	ModelFreeSpace Model = iota
	ModelFlatEarthTwoRay
	ModelCurvedEarthTwoRay
	ModelNineRaySuburban
)

// Engine evaluates one of the four path-loss models for a given
// station-relative position. It owns the only piece of state in this
// package: the nine-ray intermittent-ray latch, which must persist
// across calls and be safe for concurrent use because a scripting
// embedding may invoke the engine from outside the Reactor's own
// goroutine.
type Engine struct {
	mu    sync.Mutex
	latch [7]rayState
	rng   *rand.Rand
}

// NewEngine returns an Engine seeded from seed. A fixed seed gives
// reproducible nine-ray output for testing; production wiring seeds
// from a time-derived value at startup.
func NewEngine(seed int64) *Engine {
	return &Engine{
		latch: newRayLatch(),
		rng:   rand.New(rand.NewSource(seed)),
	}
}

var (
	defaultEngine     *Engine
	defaultEngineOnce sync.Once
)

// Default returns a process-wide Engine for callers, such as the
// batch analysis tool, that have no Reactor to own one. It is seeded
// once from a fixed constant so repeated runs of the batch tool over
// the same input are reproducible.
func Default() *Engine {
	defaultEngineOnce.Do(func() {
		defaultEngine = NewEngine(1)
	})
	return defaultEngine
}

// Evaluate computes the path list for model at station-relative
// position (x, y, z). Near-field positions (inside FarFieldDistance)
// are short-circuited to a single lossless pass-through path for
// every model, matching the Reactor's far-field bypass.
func (e *Engine) Evaluate(model Model, x, y, z float32) []Path {
	if Distance(x, y, z) < FarFieldDistance {
		return []Path{{Loss: 1.0, Delay: 0, Phase: 0}}
	}

	switch model {
	case ModelFreeSpace:
		return FreeSpace(x, y, z)
	case ModelFlatEarthTwoRay:
		return FlatEarthTwoRay(x, y, z)
	case ModelCurvedEarthTwoRay:
		return CurvedEarthTwoRay(x, y, z)
	case ModelNineRaySuburban:
		return e.nineRay(x, y, z)
	default:
		panic("propagation: unrecognised model")
	}
}

func (e *Engine) nineRay(x, y, z float32) []Path {
	e.mu.Lock()
	defer e.mu.Unlock()

	var base = CurvedEarthTwoRay(x, y, z)
	return nineRaySuburban(e.rng, &e.latch, x, y, z, base)
}
