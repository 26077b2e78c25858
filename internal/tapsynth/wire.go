package tapsynth

import (
	"bytes"
	"encoding/binary"
)

// WireSize is the exact byte length of the emulator's tap payload:
// 41 big-endian i16 real values followed by 41 big-endian i16
// imaginary values.
const WireSize = NumTaps*2 + NumTaps*2

// Bytes serialises the tap vector to the emulator's wire format.
func (t TapVector) Bytes() []byte {
	var buf bytes.Buffer
	buf.Grow(WireSize)

	// binary.Write on a fixed-size array never errors.
	_ = binary.Write(&buf, binary.BigEndian, t.Real)
	_ = binary.Write(&buf, binary.BigEndian, t.Imag)

	return buf.Bytes()
}
