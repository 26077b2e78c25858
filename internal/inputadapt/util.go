package inputadapt

import "math"

// float32bits narrows a float64 to float32 and returns its raw IEEE
// 754 bit pattern, for big-endian wire encoding.
func float32bits(v float64) uint32 {
	return math.Float32bits(float32(v))
}
