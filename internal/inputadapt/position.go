package inputadapt

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"net"

	"github.com/kd2nrd/chanem/internal/chanlog"
	"github.com/kd2nrd/chanem/internal/reactor"
)

// recvBufferSize is the fixed receive buffer every datagram is read
// into. Position mirrors forwarded to the GUI carry this whole
// buffer, as a faithful reproduction of the reference tool's receive
// path. The buffer is reused across reads, so the bytes past the
// datagram are zero only until a longer datagram has been received;
// after that they hold that datagram's leftover bytes.
const recvBufferSize = 2048

// positionPayloadSize is the only valid datagram length carrying a
// real position sample: 6 big-endian float32 values.
const positionPayloadSize = 24

// powerFolderSignature is the leading prefix of a well-known spurious
// broadcast (the full datagram runs well past 24 bytes, e.g.
// "PowerFolder node: [1337]-[AUTJpBd5EcTPnEtSPDkZ]\x00") that lands on
// the same port in some network environments and must be ignored
// without logging a warning.
var powerFolderSignature = []byte("PowerFolder node: [1337]")

// GUIForwarder is implemented by outputadapt.GUIMirror; it lets the
// input adapters mirror raw traffic to the GUI without importing the
// output package (which would create an import cycle through
// reactor).
type GUIForwarder interface {
	Forward(payload []byte)
}

// PositionReceiver listens for 24-byte position/attitude datagrams
// and turns each into a reactor.Position event.
type PositionReceiver struct {
	conn   *net.UDPConn
	events chan<- reactor.Event
	gui    GUIForwarder
	log    *chanlog.Logger
}

// ListenPosition binds the position UDP port (default 1337).
func ListenPosition(port int, events chan<- reactor.Event, gui GUIForwarder) (*PositionReceiver, error) {
	var conn, err = net.ListenUDP("udp", &net.UDPAddr{Port: port})
	if err != nil {
		return nil, fmt.Errorf("inputadapt: bind position port %d: %w", port, err)
	}

	return &PositionReceiver{conn: conn, events: events, gui: gui, log: chanlog.For("position-receiver")}, nil
}

// Run reads datagrams until the socket is closed.
func (p *PositionReceiver) Run(done <-chan struct{}) {
	go func() {
		<-done
		p.conn.Close()
	}()

	var buf [recvBufferSize]byte
	for {
		n, _, err := p.conn.ReadFromUDP(buf[:])
		if err != nil {
			return
		}

		p.handleDatagram(buf, n)
	}
}

func (p *PositionReceiver) handleDatagram(buf [recvBufferSize]byte, n int) {
	if n > positionPayloadSize && bytes.HasPrefix(buf[:n], powerFolderSignature) {
		return
	}

	if n != positionPayloadSize {
		p.log.Warn("malformed position datagram", "length", n)
		return
	}

	var values [6]float32
	for i := range values {
		var bits = binary.BigEndian.Uint32(buf[i*4 : i*4+4])
		values[i] = math.Float32frombits(bits)
	}

	p.events <- reactor.Position{
		X: values[0], Y: values[1], Z: values[2],
		Roll: values[3], Pitch: values[4], Yaw: values[5],
	}

	var mirror = make([]byte, 0, recvBufferSize+1)
	mirror = append(mirror, 'P')
	mirror = append(mirror, buf[:]...)
	p.gui.Forward(mirror)
}
