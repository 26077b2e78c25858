package propagation

// FlatEarthTwoRay returns the line-of-sight path plus a single ground
// reflection computed via the mirror-image trick (reflecting the
// station through the ground plane). No Fresnel coefficient is
// applied; this is deliberately the simple textbook two-ray model, not
// CE2R.
func FlatEarthTwoRay(x, y, z float32) []Path {
	var dLOS = Distance(x, y, z)
	var dNLOS = Distance(x, y, z+2*StationZ)

	var excessDelay = (dNLOS - dLOS) / SpeedOfLight

	return []Path{
		{Loss: distToLoss(dLOS), Delay: 0, Phase: 0},
		{Loss: distToLoss(dNLOS), Delay: excessDelay, Phase: 0},
	}
}
