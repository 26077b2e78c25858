// Package propagation implements the path-loss model engine: pure
// (aside from the nine-ray latch) mappings from station-relative
// geometry to a list of propagation paths.
//
// Formulas are ported from the reference x310-channel-emulator
// implementation (channel_models/src/lib.rs); see DESIGN.md for the
// grounding of each model.
package propagation

import "math"

// StationX, StationY, StationZ place the ground station in the local
// Cartesian frame every position sample is expressed relative to.
const (
	StationX = 0.0
	StationY = 0.0
	StationZ = 1.5
)

// SpeedOfLight is in metres/second.
const SpeedOfLight = 299_792_458.0

// Frequency is the fixed carrier this engine models, 2.45 GHz.
const Frequency = 2.45e9

// Lambda is the free-space wavelength at Frequency.
const Lambda = SpeedOfLight / Frequency

// AntennaSize is used only to derive FarFieldDistance.
const AntennaSize = 0.1 // metres

// FarFieldDistance is 2*A^2/lambda. Below this the ray-based models
// diverge and callers should substitute a pass-through path instead of
// evaluating distToLoss.
const FarFieldDistance = (2.0 * AntennaSize * AntennaSize) / Lambda

// earthRadius is the 4/3-earth effective radius used by CE2R, in metres.
const earthRadius = 4.0 / 3.0 * 6_378_000.0

// smoothingFactor controls how sharply the CE2R grazing-angle blend
// switches from the flat-earth to curved-earth expression around the
// s=10m boundary.
const smoothingFactor = 0.8

// groundSurfaceRoughness is the assumed standard deviation (metres) of
// the reflecting surface near the specular point, for suburban/urban
// ground. See DOI 10.1109/TVT.2017.2659651.
const groundSurfaceRoughness = 0.1

// Ground reflection constants for average ground, ISBN 978-0-471-98857-1.
const (
	groundRelativePermittivity = 15.0
	groundConductivity         = 0.005
)

// vacuumPermittivity is epsilon-0 in F/m.
const vacuumPermittivity = 8.8541878128e-12

// polarization selects which Fresnel reflection formula CE2R uses.
// Only Vertical is ever selected by this driver; Horizontal exists so
// the formula is reachable by changing a single constant, per spec.
type polarization int

const (
	polarizationVertical polarization = iota
	polarizationHorizontal
)

const activePolarization = polarizationVertical
