package inputadapt

import (
	"encoding/binary"
	"fmt"
	"os"
	"sync"

	"golang.org/x/sys/unix"
)

// Linux evdev event type/code constants this driver reads. Only the
// handful of buttons the spec's Reactor cares about are decoded;
// everything else (sticks, rumble feedback) is ignored.
const (
	evKey = 0x01
	evAbs = 0x03

	btnSouth = 0x130
	btnEast  = 0x131
	btnNorth = 0x133
	btnWest  = 0x134
	btnTL2   = 0x138
	btnTR2   = 0x139

	absHat0Y = 0x11
)

// inputEventSize is sizeof(struct input_event) on 64-bit Linux:
// 16 bytes of timeval, then 2+2+4 bytes of type/code/value.
const inputEventSize = 24

// gamepadEvdev reads a Linux evdev character device directly via
// read(2) and decodes raw input_event records, after one ioctl to
// confirm the node speaks evdev. A background goroutine owns the blocking read loop and publishes
// the latest button snapshot under a mutex; Poll only ever reads that
// snapshot, so it never blocks the caller's OS-thread-pinned loop.
type gamepadEvdev struct {
	mu    sync.Mutex
	state GamepadState
	err   error
}

// NewGamepadEvdev opens the evdev node at devicePath (typically
// /dev/input/by-id/usb-*-event-joystick) and starts decoding it.
func NewGamepadEvdev(devicePath string) (Gamepad, error) {
	f, err := os.Open(devicePath)
	if err != nil {
		return nil, fmt.Errorf("inputadapt: open evdev device %s: %w", devicePath, err)
	}

	if _, err := unix.IoctlGetInt(int(f.Fd()), unix.EVIOCGVERSION); err != nil {
		f.Close()
		return nil, fmt.Errorf("inputadapt: %s does not look like an evdev node: %w", devicePath, err)
	}

	var g = &gamepadEvdev{}
	go g.readLoop(f)

	return g, nil
}

func (g *gamepadEvdev) readLoop(f *os.File) {
	defer f.Close()

	var buf [inputEventSize]byte
	for {
		_, err := f.Read(buf[:])
		if err != nil {
			g.mu.Lock()
			g.err = fmt.Errorf("inputadapt: evdev read: %w", err)
			g.mu.Unlock()
			return
		}

		var evType = binary.LittleEndian.Uint16(buf[16:18])
		var code = binary.LittleEndian.Uint16(buf[18:20])
		var value = int32(binary.LittleEndian.Uint32(buf[20:24]))

		g.apply(evType, code, value)
	}
}

func (g *gamepadEvdev) apply(evType, code uint16, value int32) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch evType {
	case evKey:
		var pressed = value != 0
		switch code {
		case btnEast:
			g.state.East = pressed
		case btnWest:
			g.state.West = pressed
		case btnNorth:
			g.state.North = pressed
		case btnSouth:
			g.state.South = pressed
		case btnTL2:
			g.state.TriggerL = pressed
		case btnTR2:
			g.state.TriggerR = pressed
		}
	case evAbs:
		if code == absHat0Y {
			g.state.DPadUp = value < 0
			g.state.DPadDown = value > 0
		}
	}
}

func (g *gamepadEvdev) Poll() (GamepadState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.err != nil {
		return g.state, g.err
	}

	return g.state, nil
}
