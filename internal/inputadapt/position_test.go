package inputadapt

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/kd2nrd/chanem/internal/chanlog"
	"github.com/kd2nrd/chanem/internal/reactor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingGUIForwarder struct {
	forwarded [][]byte
}

func (r *recordingGUIForwarder) Forward(payload []byte) {
	var cp = make([]byte, len(payload))
	copy(cp, payload)
	r.forwarded = append(r.forwarded, cp)
}

func encodePosition(x, y, z, roll, pitch, yaw float32) [recvBufferSize]byte {
	var buf [recvBufferSize]byte
	var vals = []float32{x, y, z, roll, pitch, yaw}
	for i, v := range vals {
		binary.BigEndian.PutUint32(buf[i*4:i*4+4], math.Float32bits(v))
	}
	return buf
}

func TestPositionReceiverEnqueuesValidSample(t *testing.T) {
	var events = make(chan reactor.Event, 1)
	var gui = &recordingGUIForwarder{}
	var p = &PositionReceiver{events: events, gui: gui, log: chanlog.For("test")}

	p.handleDatagram(encodePosition(10, 20, 30, 0, 0, 0), positionPayloadSize)

	require.Len(t, events, 1)
	var ev = (<-events).(reactor.Position)
	assert.Equal(t, float32(10), ev.X)
	assert.Equal(t, float32(20), ev.Y)
	assert.Equal(t, float32(30), ev.Z)
	require.Len(t, gui.forwarded, 1)
	assert.Equal(t, byte('P'), gui.forwarded[0][0])
}

func TestPositionReceiverIgnoresPowerFolderSignature(t *testing.T) {
	var events = make(chan reactor.Event, 1)
	var gui = &recordingGUIForwarder{}
	var p = &PositionReceiver{events: events, gui: gui, log: chanlog.For("test")}

	// The real broadcast runs well past the 24-byte position payload
	// size, e.g. "PowerFolder node: [1337]-[AUTJpBd5EcTPnEtSPDkZ]\x00";
	// only its leading 24 bytes are the fixed signature.
	var buf [recvBufferSize]byte
	var n = copy(buf[:], powerFolderSignature)
	n += copy(buf[n:], "-[AUTJpBd5EcTPnEtSPDkZ]\x00")
	require.Equal(t, 48, n)

	p.handleDatagram(buf, n)

	assert.Empty(t, events)
	assert.Empty(t, gui.forwarded)
}

func TestPositionReceiverWarnsOnMalformedLength(t *testing.T) {
	var events = make(chan reactor.Event, 1)
	var gui = &recordingGUIForwarder{}
	var p = &PositionReceiver{events: events, gui: gui, log: chanlog.For("test")}

	var buf [recvBufferSize]byte
	p.handleDatagram(buf, 10)

	assert.Empty(t, events)
	assert.Empty(t, gui.forwarded)
}

func TestModeScaleReceiverParsesAutomaticMode(t *testing.T) {
	var events = make(chan reactor.Event, 1)
	var m = &ModeScaleReceiver{events: events, log: chanlog.For("test")}

	m.handleDatagram([]byte{2})

	var ev = (<-events).(reactor.ModeChange)
	assert.Equal(t, reactor.ModeCurvedEarthTwoRay, ev.Mode)
}

func TestModeScaleReceiverParsesManualSentinel(t *testing.T) {
	var events = make(chan reactor.Event, 1)
	var m = &ModeScaleReceiver{events: events, log: chanlog.For("test")}

	m.handleDatagram([]byte{200})

	var ev = (<-events).(reactor.ModeChange)
	assert.Equal(t, reactor.ModeManual, ev.Mode)
	assert.Equal(t, float64(reactor.ManualKeepPrevious), ev.ManualDB)
}

func TestModeScaleReceiverParsesScaling(t *testing.T) {
	var events = make(chan reactor.Event, 1)
	var m = &ModeScaleReceiver{events: events, log: chanlog.For("test")}

	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], math.Float32bits(12345))
	m.handleDatagram(buf[:])

	var ev = (<-events).(reactor.Scaling)
	assert.Equal(t, float64(float32(12345)), ev.Kappa)
}

func TestModeScaleReceiverWarnsOnOtherLengths(t *testing.T) {
	var events = make(chan reactor.Event, 1)
	var m = &ModeScaleReceiver{events: events, log: chanlog.For("test")}

	m.handleDatagram([]byte{1, 2, 3})

	assert.Empty(t, events)
}
