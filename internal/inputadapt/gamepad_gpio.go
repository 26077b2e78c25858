package inputadapt

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// GPIOLineMap names the gpiocdev line offsets wired to each button on
// a bench test rig, used in place of a real gamepad when exercising
// this driver on hardware without USB/Bluetooth pads attached.
type GPIOLineMap struct {
	East, West, South, North int
	TriggerL, TriggerR       int
	DPadUp, DPadDown         int
}

type gamepadGPIO struct {
	lines map[string]*gpiocdev.Line
	order []string
}

// NewGamepadGPIO requests an input line, pulled up, for every offset
// in m on chip (typically "gpiochip0"). No debounce is configured on
// the lines. Each line reads
// active-low: a closed (grounded) button returns 0.
func NewGamepadGPIO(chip string, m GPIOLineMap) (Gamepad, error) {
	var offsets = map[string]int{
		"East": m.East, "West": m.West, "South": m.South, "North": m.North,
		"TriggerL": m.TriggerL, "TriggerR": m.TriggerR,
		"DPadUp": m.DPadUp, "DPadDown": m.DPadDown,
	}

	var g = &gamepadGPIO{lines: make(map[string]*gpiocdev.Line, len(offsets))}

	for name, offset := range offsets {
		line, err := gpiocdev.RequestLine(chip, offset, gpiocdev.AsInput, gpiocdev.WithPullUp)
		if err != nil {
			g.Close()
			return nil, fmt.Errorf("inputadapt: request gpio line %s (%d): %w", name, offset, err)
		}

		g.lines[name] = line
		g.order = append(g.order, name)
	}

	return g, nil
}

// Poll reads every configured line and assembles a GamepadState. A
// read error on any line fails the whole poll; the caller logs and
// retries on the next tick.
func (g *gamepadGPIO) Poll() (GamepadState, error) {
	var values = make(map[string]bool, len(g.lines))

	for _, name := range g.order {
		v, err := g.lines[name].Value()
		if err != nil {
			return GamepadState{}, fmt.Errorf("inputadapt: read gpio line %s: %w", name, err)
		}
		values[name] = v == 0 // active-low: grounded == pressed
	}

	return GamepadState{
		East: values["East"], West: values["West"],
		South: values["South"], North: values["North"],
		TriggerL: values["TriggerL"], TriggerR: values["TriggerR"],
		DPadUp: values["DPadUp"], DPadDown: values["DPadDown"],
	}, nil
}

// Close releases every requested GPIO line.
func (g *gamepadGPIO) Close() error {
	for _, line := range g.lines {
		line.Close()
	}
	return nil
}
