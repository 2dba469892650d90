package geofence

import "math"

const earthRadiusMeters = 6371000.0

// DefaultRadiusMeters is the arrival threshold used when none is configured.
const DefaultRadiusMeters = 2000.0

// Coordinate is a WGS 84 latitude/longitude pair. A nil *Coordinate means
// the slot is unset.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Finite reports whether both fields are ordinary numbers (no NaN/Inf).
func (c Coordinate) Finite() bool {
	return !math.IsNaN(c.Lat) && !math.IsInf(c.Lat, 0) &&
		!math.IsNaN(c.Lng) && !math.IsInf(c.Lng, 0)
}

// Evaluator decides arrival against a circular threshold around the destination.
type Evaluator struct {
	radiusMeters float64
}

// NewEvaluator returns an evaluator with the given radius in meters.
// A non-positive radius falls back to DefaultRadiusMeters.
func NewEvaluator(radiusMeters float64) *Evaluator {
	if radiusMeters <= 0 {
		radiusMeters = DefaultRadiusMeters
	}
	return &Evaluator{radiusMeters: radiusMeters}
}

// HasArrived reports whether current is within the radius of destination.
// Returns false when either coordinate is unset; the threshold is inclusive.
func (e *Evaluator) HasArrived(current, destination *Coordinate) bool {
	if current == nil || destination == nil {
		return false
	}
	return Haversine(current.Lat, current.Lng, destination.Lat, destination.Lng) <= e.radiusMeters
}

// Haversine computes the great-circle distance in meters between two points.
// Error against a full geodesic is well under the meter at geofence scale.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
