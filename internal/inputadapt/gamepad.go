package inputadapt

import (
	"encoding/binary"
	"time"

	"github.com/kd2nrd/chanem/internal/chanlog"
	"github.com/kd2nrd/chanem/internal/modewatch"
	"github.com/kd2nrd/chanem/internal/reactor"
)

// pollInterval is the gamepad's polling cadence. The spec calls for
// ~10Hz; the poller's own goroutine is pinned to its OS thread by the
// caller since most gamepad backends demand a thread-pinned pump.
const pollInterval = 100 * time.Millisecond

const (
	manualDBDefault = 50.0
	manualDBStep    = 5.0
	manualDBMin     = 0.0
	manualDBMax     = 120.0
)

// GamepadState is a single polled snapshot of the buttons this driver
// cares about. Analog sticks are not read; only East (mode cycle),
// the DPad (manual dB trim) and the remaining face buttons/triggers
// (opaque control tokens) matter to this system.
type GamepadState struct {
	East, West, South, North bool
	TriggerL, TriggerR       bool
	DPadUp, DPadDown         bool
}

// Gamepad abstracts over the input backend so the poller logic below
// works identically against a real USB/Bluetooth pad (gamepadEvdev)
// or a GPIO button rig on a bench unit (gamepadGPIO).
type Gamepad interface {
	Poll() (GamepadState, error)
}

// GamepadPoller runs the ~10Hz edge-detection loop described in the
// spec: East release cycles the mode, DPad up/down trims the manual
// dB while in manual mode, and every other tracked button emits an
// opaque 3-byte control token for the GUI.
type GamepadPoller struct {
	pad       Gamepad
	events    chan<- reactor.Event
	gui       GUIForwarder
	modeWatch *modewatch.Broadcast[reactor.ModeIndex]
	log       *chanlog.Logger

	manualDB float64
	prev     GamepadState
}

// NewGamepadPoller constructs a poller over pad. events is the shared
// queue feeding the Reactor; gui mirrors mode-status and control
// tokens; modeWatch lets the poller recover the authoritative mode
// even when it last changed over the network.
func NewGamepadPoller(pad Gamepad, events chan<- reactor.Event, gui GUIForwarder, modeWatch *modewatch.Broadcast[reactor.ModeIndex]) *GamepadPoller {
	return &GamepadPoller{
		pad:       pad,
		events:    events,
		gui:       gui,
		modeWatch: modeWatch,
		log:       chanlog.For("gamepad"),
		manualDB:  manualDBDefault,
	}
}

// Run polls at pollInterval until done is closed. Callers should
// run it on a runtime.LockOSThread'd goroutine: most gamepad and GPIO
// backends require their polling calls to stay on one OS thread.
func (p *GamepadPoller) Run(done <-chan struct{}) {
	var ticker = time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			state, err := p.pad.Poll()
			if err != nil {
				p.log.Warn("gamepad poll failed", "err", err)
				continue
			}

			p.handleEdges(state)
			p.prev = state
		}
	}
}

func (p *GamepadPoller) handleEdges(state GamepadState) {
	if p.prev.East && !state.East {
		p.cycleMode()
	}

	var mode = p.modeWatch.Get()

	// DPad direction is inverted on purpose: up lowers the manual dB,
	// down raises it.
	if state.DPadUp && !p.prev.DPadUp && mode == reactor.ModeManual {
		p.adjustManualDB(-manualDBStep)
	}
	if state.DPadDown && !p.prev.DPadDown && mode == reactor.ModeManual {
		p.adjustManualDB(manualDBStep)
	}

	// Triggers fire their token on press, matching ETR/ETL; the
	// remaining face buttons fire on release, matching East's own
	// release-triggered mode cycle above.
	p.edgeToken(state.TriggerR, p.prev.TriggerR, "ETR")
	p.edgeToken(state.TriggerL, p.prev.TriggerL, "ETL")
	p.releaseToken(state.West, p.prev.West, "EAW")
	p.releaseToken(state.South, p.prev.South, "EAS")
	p.releaseToken(state.North, p.prev.North, "EAN")
}

func (p *GamepadPoller) cycleMode() {
	var next = reactor.ModeIndex((int(p.modeWatch.Get()) + 1) % reactor.NumModes)
	p.modeWatch.Set(next)
	p.events <- reactor.ModeChange{Mode: next, ManualDB: reactor.ManualKeepPrevious}
	p.sendModeStatus(next)
}

func (p *GamepadPoller) adjustManualDB(delta float64) {
	p.manualDB += delta
	if p.manualDB < manualDBMin {
		p.manualDB = manualDBMin
	}
	if p.manualDB > manualDBMax {
		p.manualDB = manualDBMax
	}

	p.events <- reactor.ModeChange{Mode: reactor.ModeManual, ManualDB: p.manualDB}
	p.sendModeStatus(reactor.ModeManual)
}

func (p *GamepadPoller) sendModeStatus(mode reactor.ModeIndex) {
	var payload = make([]byte, 0, 6)
	payload = append(payload, 'M', byte(mode))
	payload = binary.BigEndian.AppendUint32(payload, float32bits(p.manualDB))
	p.gui.Forward(payload)
}

func (p *GamepadPoller) edgeToken(current, previous bool, token string) {
	if current && !previous {
		p.gui.Forward([]byte(token))
	}
}

func (p *GamepadPoller) releaseToken(current, previous bool, token string) {
	if !current && previous {
		p.gui.Forward([]byte(token))
	}
}
