package geo

// EarthRadius is the mean radius of the Earth in metres.
const EarthRadius = 6371e3

// Haversine returns the great-circle distance between a and b in metres.
func Haversine(a, b GeoPoint) float64 {
	return a.LatLng().Distance(b.LatLng()).Radians() * EarthRadius
}
