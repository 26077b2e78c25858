package outputadapt

import (
	"fmt"
	"net"

	"github.com/kd2nrd/chanem/internal/chanlog"
	"github.com/kd2nrd/chanem/internal/tapsynth"
)

// GUIMirror forwards position, tap, mode-status and control-token
// traffic to the operator GUI. Send failures are warned and dropped;
// the next emission supersedes whatever was lost, so there is never a
// retry.
type GUIMirror struct {
	conn *net.UDPConn
	log  *chanlog.Logger
}

// DialGUI connects to the GUI's UDP listener at addr (host:port).
func DialGUI(addr string) (*GUIMirror, error) {
	var raddr, err = net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("outputadapt: resolve gui addr %s: %w", addr, err)
	}

	conn, err := net.DialUDP("udp", nil, raddr)
	if err != nil {
		return nil, fmt.Errorf("outputadapt: dial gui %s: %w", addr, err)
	}

	return &GUIMirror{conn: conn, log: chanlog.For("gui-mirror")}, nil
}

// SendTaps forwards a 'T'-prefixed copy of the tap vector. Implements
// reactor.GUISink.
func (g *GUIMirror) SendTaps(taps tapsynth.TapVector) {
	g.Forward(append([]byte{'T'}, taps.Bytes()...))
}

// Forward sends an arbitrary pre-framed payload (a 'P'-prefixed
// position mirror, an 'M'-prefixed mode status, or a 3-byte control
// token) to the GUI, warning and dropping on failure.
func (g *GUIMirror) Forward(payload []byte) {
	if _, err := g.conn.Write(payload); err != nil {
		g.log.Warn("gui send failed", "err", err)
	}
}

// Close releases the underlying socket.
func (g *GUIMirror) Close() error {
	return g.conn.Close()
}
