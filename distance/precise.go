package distance

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// Precise is the earth-model Calculator: CalcDist uses haversine great-
// circle distance (via github.com/paulmach/orb/geo), which is what graph
// bounds are sized from in tilegeom.PrepareAlgo. Segment-projection math
// (CalcNormalizedEdgeDistance, ValidEdgeDistance) reuses Planar's local
// tangent-plane projection: exact great-circle cross-track distance needs
// more geodesy than this corpus carries a library for, and the planar
// approximation is accurate at the tile scales this index operates on.
type Precise struct{}

var _ Calculator = Precise{}

func (Precise) CalcDist(lat1, lon1, lat2, lon2 float64) float64 {
	return geo.Distance(orb.Point{lon1, lat1}, orb.Point{lon2, lat2})
}

func (Precise) CalcNormalizedDist(distMeters float64) float64 {
	return distMeters * distMeters
}

func (Precise) CalcDenormalizedDist(normalized float64) float64 {
	return math.Sqrt(normalized)
}

func (Precise) CalcNormalizedEdgeDistance(qLat, qLon, aLat, aLon, bLat, bLon float64) float64 {
	return Planar{}.CalcNormalizedEdgeDistance(qLat, qLon, aLat, aLon, bLat, bLon)
}

func (Precise) ValidEdgeDistance(qLat, qLon, aLat, aLon, bLat, bLon float64) bool {
	return Planar{}.ValidEdgeDistance(qLat, qLon, aLat, aLon, bLat, bLon)
}

func (Precise) IsCrossBoundary(lon1, lon2 float64) bool {
	return math.Abs(lon1-lon2) > 180.0
}

func (Precise) CalcCircumference(lat float64) float64 {
	return circumference(lat)
}
