package reactor

import (
	"context"
	"testing"
	"time"

	"github.com/kd2nrd/chanem/internal/chanlog"
	"github.com/kd2nrd/chanem/internal/modewatch"
	"github.com/kd2nrd/chanem/internal/propagation"
	"github.com/kd2nrd/chanem/internal/tapsynth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEmulator struct {
	sent []tapsynth.TapVector
}

func (r *recordingEmulator) SendTaps(taps tapsynth.TapVector) error {
	r.sent = append(r.sent, taps)
	return nil
}

type recordingGUI struct {
	sent []tapsynth.TapVector
}

func (r *recordingGUI) SendTaps(taps tapsynth.TapVector) {
	r.sent = append(r.sent, taps)
}

func newTestReactor() (*Reactor, *recordingEmulator, *recordingGUI) {
	var emulator = &recordingEmulator{}
	var gui = &recordingGUI{}
	var watch = modewatch.NewBroadcast(ModeFreeSpace)
	var r = New(propagation.NewEngine(1), 200e6, emulator, gui, watch, chanlog.For("test"))
	return r, emulator, gui
}

// TestEmissionOrderingNoCoalescing is the spec's ordering guarantee:
// (position, position, mode-change, position) must yield exactly
// three emissions in that order, never fewer.
func TestEmissionOrderingNoCoalescing(t *testing.T) {
	var r, emulator, _ = newTestReactor()

	var events = make(chan Event, 8)
	events <- Position{X: 200, Y: 0, Z: 50}
	events <- Position{X: 250, Y: 0, Z: 55}
	events <- ModeChange{Mode: ModeManual, ManualDB: 40}
	events <- Position{X: 300, Y: 0, Z: 60}
	close(events)

	var ctx, cancel = context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	r.Run(ctx, events)

	require.Len(t, emulator.sent, 3, "two automatic positions plus the manual mode change emit; the trailing position is ignored while in manual mode")
}

func TestModeChangeToAutomaticDoesNotEmit(t *testing.T) {
	var r, emulator, _ = newTestReactor()

	var events = make(chan Event, 4)
	events <- ModeChange{Mode: ModeCurvedEarthTwoRay}
	close(events)

	var ctx, cancel = context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	r.Run(ctx, events)

	assert.Empty(t, emulator.sent, "an automatic mode change waits for the next position sample before emitting")
}

func TestManualSentinelKeepsPreviousValue(t *testing.T) {
	var r, emulator, _ = newTestReactor()

	var events = make(chan Event, 4)
	events <- ModeChange{Mode: ModeManual, ManualDB: 70}
	events <- ModeChange{Mode: ModeManual, ManualDB: ManualKeepPrevious}
	close(events)

	var ctx, cancel = context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	r.Run(ctx, events)

	require.Len(t, emulator.sent, 2)
	assert.Equal(t, emulator.sent[0], emulator.sent[1], "the sentinel manual value must reuse the last stored dB, producing identical taps")
}

// TestModeCycleClosure is scenario S4/S6-adjacent: cycling the mode
// index modulo NumModes five times returns to the starting mode.
func TestModeCycleClosure(t *testing.T) {
	var mode = ModeFreeSpace
	for i := 0; i < NumModes; i++ {
		mode = ModeIndex((int(mode) + 1) % NumModes)
	}
	assert.Equal(t, ModeFreeSpace, mode)
}

func TestPositionIgnoredDuringManual(t *testing.T) {
	var r, emulator, _ = newTestReactor()

	var events = make(chan Event, 4)
	events <- ModeChange{Mode: ModeManual, ManualDB: 50}
	events <- Position{X: 200, Y: 0, Z: 50}
	close(events)

	var ctx, cancel = context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	r.Run(ctx, events)

	require.Len(t, emulator.sent, 1, "a position sample while in manual mode must not trigger a second emission")
}
