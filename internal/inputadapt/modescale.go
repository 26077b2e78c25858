package inputadapt

import (
	"encoding/binary"
	"fmt"
	"math"
	"net"

	"github.com/kd2nrd/chanem/internal/chanlog"
	"github.com/kd2nrd/chanem/internal/reactor"
)

// numAutomaticModes is how many single-byte mode values select one of
// the automatic models directly; any other byte value selects manual
// with the "keep previous" sentinel.
const numAutomaticModes = 4

// ModeScaleReceiver listens for either a 1-byte mode-select datagram
// or a 4-byte scaling-coefficient datagram.
type ModeScaleReceiver struct {
	conn   *net.UDPConn
	events chan<- reactor.Event
	log    *chanlog.Logger
}

// ListenModeScale binds the mode/scale UDP port (default 1341).
func ListenModeScale(port int, events chan<- reactor.Event) (*ModeScaleReceiver, error) {
	var conn, err = net.ListenUDP("udp", &net.UDPAddr{Port: port})
	if err != nil {
		return nil, fmt.Errorf("inputadapt: bind mode/scale port %d: %w", port, err)
	}

	return &ModeScaleReceiver{conn: conn, events: events, log: chanlog.For("modescale-receiver")}, nil
}

// Run reads datagrams until the socket is closed.
func (m *ModeScaleReceiver) Run(done <-chan struct{}) {
	go func() {
		<-done
		m.conn.Close()
	}()

	var buf [recvBufferSize]byte
	for {
		n, _, err := m.conn.ReadFromUDP(buf[:])
		if err != nil {
			return
		}

		m.handleDatagram(buf[:n])
	}
}

func (m *ModeScaleReceiver) handleDatagram(payload []byte) {
	switch len(payload) {
	case 1:
		var v = payload[0]
		if int(v) < numAutomaticModes {
			m.events <- reactor.ModeChange{Mode: reactor.ModeIndex(v)}
		} else {
			m.events <- reactor.ModeChange{Mode: reactor.ModeManual, ManualDB: reactor.ManualKeepPrevious}
		}
	case 4:
		var bits = binary.BigEndian.Uint32(payload)
		m.events <- reactor.Scaling{Kappa: float64(math.Float32frombits(bits))}
	default:
		m.log.Warn("malformed mode/scale datagram", "length", len(payload))
	}
}
