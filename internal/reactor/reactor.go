// Package reactor implements the single-consumer control loop that
// reconciles position, mode and scaling events into a deterministic
// stream of tap vectors.
package reactor

import (
	"context"

	"github.com/kd2nrd/chanem/internal/chanlog"
	"github.com/kd2nrd/chanem/internal/modewatch"
	"github.com/kd2nrd/chanem/internal/propagation"
	"github.com/kd2nrd/chanem/internal/tapsynth"
)

// EmulatorSink is the one output adapter that must never drop a
// send silently; the Reactor treats a failed send there as fatal,
// matching the spec's error taxonomy for the emulator connection.
type EmulatorSink interface {
	SendTaps(taps tapsynth.TapVector) error
}

// GUISink mirrors tap vectors (and, separately, raw positions/mode
// status/control tokens via the input adapters) to the operator GUI.
// Failures there are warned and dropped, never retried.
type GUISink interface {
	SendTaps(taps tapsynth.TapVector)
}

var modeToModel = map[ModeIndex]propagation.Model{
	ModeFreeSpace:         propagation.ModelFreeSpace,
	ModeFlatEarthTwoRay:   propagation.ModelFlatEarthTwoRay,
	ModeCurvedEarthTwoRay: propagation.ModelCurvedEarthTwoRay,
	ModeNineRaySuburban:   propagation.ModelNineRaySuburban,
}

// Reactor owns the process's only mutable control state: the active
// mode, last manual dB, scaling coefficient and most recently emitted
// taps.
type Reactor struct {
	engine     *propagation.Engine
	sampleRate float64
	emulator   EmulatorSink
	gui        GUISink
	modeWatch  *modewatch.Broadcast[ModeIndex]
	log        *chanlog.Logger

	mode     ModeIndex
	manualDB float64
	kappa    float64
	lastTaps tapsynth.TapVector
}

// New constructs a Reactor. modeWatch is published to after every
// mode change so the gamepad poller can recover the authoritative
// mode even when it last changed over the network.
func New(engine *propagation.Engine, sampleRate float64, emulator EmulatorSink, gui GUISink, modeWatch *modewatch.Broadcast[ModeIndex], log *chanlog.Logger) *Reactor {
	return &Reactor{
		engine:     engine,
		sampleRate: sampleRate,
		emulator:   emulator,
		gui:        gui,
		modeWatch:  modeWatch,
		log:        log,
		mode:       ModeFreeSpace,
		manualDB:   50,
		kappa:      30000,
	}
}

// Run drains events in strict receive order until ctx is cancelled or
// the channel closes. No coalescing happens: three positions in a row
// yield three emissions.
func (r *Reactor) Run(ctx context.Context, events <-chan Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			r.handle(ev)
		}
	}
}

func (r *Reactor) handle(ev Event) {
	switch e := ev.(type) {
	case ModeChange:
		r.handleModeChange(e)
	case Scaling:
		r.kappa = e.Kappa
	case Position:
		r.handlePosition(e)
	default:
		panic("reactor: unrecognised event type")
	}
}

func (r *Reactor) handleModeChange(e ModeChange) {
	r.mode = e.Mode
	r.modeWatch.Set(r.mode)

	if r.mode != ModeManual {
		// Automatic modes wait for the next position sample; they do
		// not emit on the mode-change event itself.
		return
	}

	if e.ManualDB != ManualKeepPrevious {
		r.manualDB = e.ManualDB
	}

	r.emit(tapsynth.SynthesizeManual(r.manualDB, r.kappa))
}

func (r *Reactor) handlePosition(e Position) {
	if r.mode == ModeManual {
		// The manual event already produced the current taps.
		return
	}

	model, ok := modeToModel[r.mode]
	if !ok {
		panic("reactor: unrecognised mode index")
	}

	var paths = r.engine.Evaluate(model, e.X, e.Y, e.Z)
	r.emit(tapsynth.Synthesize(paths, r.sampleRate, r.kappa))
}

func (r *Reactor) emit(taps tapsynth.TapVector) {
	r.lastTaps = taps

	if err := r.emulator.SendTaps(taps); err != nil {
		r.log.Fatal("emulator send failed", "err", err)
	}

	r.gui.SendTaps(taps)
}
