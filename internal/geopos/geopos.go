// Package geopos converts WGS84 lat/lon/altitude samples into the
// station-relative local Cartesian frame the propagation engine
// works in. It exists only for the offline batch analysis tool;
// the live driver receives position samples already in that frame.
package geopos

import (
	"fmt"
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/tzneal/coordconv"
)

// degreesToRadians mirrors the teacher CLI's D2R helper.
func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// Station is the ground station's geodetic reference point. Every
// Local conversion is relative to it.
type Station struct {
	LatDeg, LonDeg float64
	AltMeters      float64
}

// Local is a station-relative Cartesian position, in the same frame
// propagation.Distance expects: x/y are UTM easting/northing offset
// from the station, z is the sample's altitude minus the station's
// altitude (no antenna height is added or removed).
type Local struct {
	X, Y, Z float32
}

// ToLocal converts a geodetic sample to the station-relative frame.
// Both points must fall in the same UTM zone; a station and remote
// point that straddle a zone boundary return an error rather than a
// silently wrong offset.
func ToLocal(station Station, latDeg, lonDeg, altMeters float64) (Local, error) {
	var stationUTM, err = toUTM(station.LatDeg, station.LonDeg)
	if err != nil {
		return Local{}, fmt.Errorf("geopos: station coordinates: %w", err)
	}

	var pointUTM, perr = toUTM(latDeg, lonDeg)
	if perr != nil {
		return Local{}, fmt.Errorf("geopos: sample coordinates: %w", perr)
	}

	if pointUTM.Zone != stationUTM.Zone || pointUTM.Hemisphere != stationUTM.Hemisphere {
		return Local{}, fmt.Errorf("geopos: sample (zone %d) and station (zone %d) are not in the same UTM zone",
			pointUTM.Zone, stationUTM.Zone)
	}

	return Local{
		X: float32(pointUTM.Easting - stationUTM.Easting),
		Y: float32(pointUTM.Northing - stationUTM.Northing),
		Z: float32(altMeters - station.AltMeters),
	}, nil
}

func toUTM(latDeg, lonDeg float64) (coordconv.UTMCoord, error) {
	var latlng = s2.LatLng{
		Lat: s1.Angle(degreesToRadians(latDeg)),
		Lng: s1.Angle(degreesToRadians(lonDeg)),
	}

	return coordconv.DefaultUTMConverter.ConvertFromGeodetic(latlng, 0)
}
