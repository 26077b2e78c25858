package propagation

import (
	"math"
	"math/cmplx"
)

// CurvedEarthTwoRay implements the closed-form two-ray model over a
// 4/3-earth, following DOI 10.1109/TVT.2016.2530306. All intermediate
// work happens in float64 (numerical stability near the horizon
// demands double precision); results are narrowed back to float32 to
// match the Path tuple type.
func CurvedEarthTwoRay(x, y, z float32) []Path {
	var r1 = Distance(x, y, z)
	var lossLOS = distToLoss(r1)

	var r1f64 = float64(r1)
	var zf64 = float64(z)

	var absHeightUAV = earthRadius + zf64
	var absHeightStation = earthRadius + StationZ

	// Ground-plane separation between the station and the point directly
	// below the UAV. Reuses Distance with the UAV's z replaced by the
	// station's so the vertical term drops out.
	var groundDist = float64(Distance(x, y, StationZ))

	var q float64
	if groundDist != 0 {
		q = math.Acos((absHeightUAV*absHeightUAV + absHeightStation*absHeightStation - r1f64*r1f64) /
			(2 * absHeightUAV * absHeightStation))
	}

	var d = earthRadius * q

	var m = d * d / (4 * earthRadius * (zf64 + StationZ))
	var c = (zf64 - StationZ) / (zf64 + StationZ)

	var b = 2 * math.Sqrt((m+1)/(3*m)) *
		math.Cos(math.Pi/3+math.Acos(3*c*math.Sqrt(3*m/((m+1)*(m+1)*(m+1)))/2)/3)
	b = clamp(b, -1, 1)

	var d1 = clamp(d*(1+b)/2, 0, d)
	var d2 = d - d1
	var theta1 = d1 / earthRadius

	var psi float64
	if groundDist > 0 {
		var psiCE = ((zf64 + StationZ) / d) * (1 - m*(1+b*b))
		var dStationReflection = StationZ * groundDist / (zf64 + StationZ)
		var psiFE = math.Atan(StationZ / dStationReflection)
		var fade = 0.5 + 0.5*math.Tanh((groundDist-10)/smoothingFactor)
		psi = psiCE*fade + psiFE*(1-fade)
	} else {
		psi = math.Pi / 2
	}

	var deltaR float64
	if groundDist != 0 {
		deltaR = (2 * d1 * d2 * psi * psi) / d
	} else {
		deltaR = math.Min(zf64, StationZ) + StationZ
	}

	var r2 = r1f64 + deltaR
	var alphaS = 1.0 / float64(distToLoss(float32(r2)))

	var l1 = math.Sqrt(absHeightUAV*absHeightUAV + earthRadius*earthRadius - 2*earthRadius*absHeightUAV*math.Cos(theta1))
	var l2 = math.Sqrt(absHeightStation*absHeightStation + earthRadius*earthRadius - 2*earthRadius*absHeightStation*math.Cos(q-theta1))

	var divergence = 1.0 / math.Sqrt(1+(2*l1*l2)/(earthRadius*math.Sin(psi)*(l1+l2)))

	var roughnessArg = 4 * math.Pi * groundSurfaceRoughness * math.Sin(psi) / float64(Lambda)
	var surfaceRoughnessFactor = math.Exp(-(roughnessArg * roughnessArg) / 2)

	var gammaF, additionalPhaseShift = fresnelReflection(psi)

	var amplitudeReflected = alphaS * gammaF * divergence * surfaceRoughnessFactor
	var lossNLOS = 1.0 / amplitudeReflected
	var deltaT = deltaR / SpeedOfLight

	return []Path{
		{Loss: lossLOS, Delay: 0, Phase: 0},
		{Loss: float32(lossNLOS), Delay: float32(deltaT), Phase: float32(additionalPhaseShift)},
	}
}

// fresnelReflection returns the magnitude and phase of the complex
// Fresnel reflection coefficient at grazing angle psi, for ground with
// relative permittivity groundRelativePermittivity and conductivity
// groundConductivity. Vertical polarization is the only one this
// driver ever selects; horizontal is reachable by flipping
// activePolarization.
func fresnelReflection(psi float64) (magnitude, phase float64) {
	var omega = 2 * math.Pi * Frequency
	var xr = groundConductivity / (omega * vacuumPermittivity)

	var epsMinusJX = complex(groundRelativePermittivity, -xr)
	var cosPsi = math.Cos(psi)
	var sinPsi = math.Sin(psi)

	var tmp1 = cmplx.Sqrt(epsMinusJX - complex(cosPsi*cosPsi, 0))

	var tmp2 complex128
	if activePolarization == polarizationHorizontal {
		tmp2 = complex(sinPsi, 0)
	} else {
		tmp2 = epsMinusJX * complex(sinPsi, 0)
	}

	var rho = (tmp2 - tmp1) / (tmp2 + tmp1)

	return cmplx.Abs(rho), cmplx.Phase(rho)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}
