package models

import "math"

// CoordinateEpsilon is the box size (degrees, both axes) within which two
// coordinates are treated as the same location.
const CoordinateEpsilon = 0.01

type City struct {
	Name              string   `json:"name"`
	Latitude          float64  `json:"latitude"`
	Longitude         float64  `json:"longitude"`
	IsCurrentLocation bool     `json:"isCurrentLocation"`
	Weather           *Weather `json:"weather,omitempty"`
}

// SameLocation reports whether the given coordinates fall inside the city's
// identity box on both axes. Coordinates are the durable identity of a city;
// the name is display-only.
func (c City) SameLocation(lat, lon float64) bool {
	return math.Abs(c.Latitude-lat) < CoordinateEpsilon &&
		math.Abs(c.Longitude-lon) < CoordinateEpsilon
}
