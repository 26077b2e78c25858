// Package outputadapt implements the two UDP sinks the Reactor and
// input adapters write to: the channel-emulator device and the
// operator GUI mirror.
package outputadapt

import (
	"fmt"
	"net"

	"github.com/kd2nrd/chanem/internal/tapsynth"
)

// EmulatorSink sends tap vectors to the channel emulator. A partial
// write is treated as fatal by the caller; UDP datagram writes are
// all-or-nothing at the socket layer, so this only guards against a
// connection that was never usable in the first place.
type EmulatorSink struct {
	conn *net.UDPConn
}

// DialEmulator connects to the emulator's UDP listener at host:port.
// A dial failure here is startup-fatal; callers should treat a
// non-nil error as reason to exit immediately.
func DialEmulator(host string, port int) (*EmulatorSink, error) {
	var addr = &net.UDPAddr{IP: net.ParseIP(host), Port: port}

	conn, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		return nil, fmt.Errorf("outputadapt: dial emulator %s:%d: %w", host, port, err)
	}

	return &EmulatorSink{conn: conn}, nil
}

// SendTaps writes the 164-byte tap payload. A short write is reported
// as an error rather than silently leaving the emulator holding a
// truncated buffer.
func (e *EmulatorSink) SendTaps(taps tapsynth.TapVector) error {
	var payload = taps.Bytes()

	n, err := e.conn.Write(payload)
	if err != nil {
		return fmt.Errorf("outputadapt: emulator send: %w", err)
	}
	if n != len(payload) {
		return fmt.Errorf("outputadapt: emulator short write: %d of %d bytes", n, len(payload))
	}

	return nil
}

// Close releases the underlying socket.
func (e *EmulatorSink) Close() error {
	return e.conn.Close()
}
