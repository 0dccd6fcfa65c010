package distance

// Calculator is the distance-calculator collaborator of spec.md §6. Two
// instances are always available to an Index: an approximate planar one
// (the default for queries) and a precise earth-model one (used when
// sizing the tile grid from graph bounds, and for queries when
// Index.SetApproximation(false) has been called).
type Calculator interface {
	// CalcDist returns the physical distance between two points, in metres.
	CalcDist(lat1, lon1, lat2, lon2 float64) float64

	// CalcNormalizedDist maps a physical distance (in metres) to the
	// calculator's order-preserving normalized representation.
	CalcNormalizedDist(distMeters float64) float64

	// CalcDenormalizedDist is the inverse of CalcNormalizedDist.
	CalcDenormalizedDist(normalized float64) float64

	// CalcNormalizedEdgeDistance returns the normalized distance from q to
	// the segment a→b (clamped to the segment, i.e. to the nearest of a, b
	// when the foot of the perpendicular falls outside it).
	CalcNormalizedEdgeDistance(qLat, qLon, aLat, aLon, bLat, bLon float64) float64

	// ValidEdgeDistance reports whether the foot of the perpendicular from q
	// onto the line through a,b lies within the closed segment a→b.
	ValidEdgeDistance(qLat, qLon, aLat, aLon, bLat, bLon float64) bool

	// IsCrossBoundary reports whether a segment between the two longitudes
	// crosses the antimeridian and should be excluded from rasterisation.
	IsCrossBoundary(lon1, lon2 float64) bool

	// CalcCircumference returns the circumference, in metres, of the
	// latitude circle at lat.
	CalcCircumference(lat float64) float64
}

// earthRadiusMeters is the mean earth radius used by both calculators.
const earthRadiusMeters = 6371000.0
