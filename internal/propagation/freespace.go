package propagation

// FreeSpace returns the single direct-path loss for an ideal free-space
// channel: one path, zero delay, zero additional phase shift.
func FreeSpace(x, y, z float32) []Path {
	var dist = Distance(x, y, z)

	return []Path{{Loss: distToLoss(dist), Delay: 0, Phase: 0}}
}
