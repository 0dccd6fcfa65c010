package rasterize

import (
	"math"

	"github.com/nearedge/locidx/distance"
	"github.com/nearedge/locidx/graph"
	"github.com/nearedge/locidx/internal/ctree"
	"github.com/nearedge/locidx/tilegeom"
)

// representativeOffset places the tile-interior point the Rasteriser keys
// off of, per spec.md §4.4 step 4 ("tile origin plus 0.1·delta in each
// axis").
const representativeOffset = 0.1

// ProjectToTile floors (lat, lon) into the tile-coordinate grid defined by
// g (spec.md §4.4 step 2).
func ProjectToTile(g *tilegeom.Geometry, lat, lon float64) (x, y int) {
	x = int(math.Floor((lon - g.Bounds.MinLon) / g.DeltaLon))
	y = int(math.Floor((lat - g.Bounds.MinLat) / g.DeltaLat))
	return
}

// RasterizeEdge walks polyline segment by segment, skips any segment that
// crosses the antimeridian, enumerates every tile the remaining segments'
// Bresenham lines touch, and inserts edgeID into each touched tile's leaf
// of root (spec.md §4.4).
func RasterizeEdge(g *tilegeom.Geometry, calc distance.Calculator, polyline []graph.LatLon, root *ctree.Internal, edgeID int32) {
	for i := 0; i+1 < len(polyline); i++ {
		p1, p2 := polyline[i], polyline[i+1]
		if calc.IsCrossBoundary(p1.Lon, p2.Lon) {
			continue
		}

		x0, y0 := ProjectToTile(g, p1.Lat, p1.Lon)
		x1, y1 := ProjectToTile(g, p2.Lat, p2.Lon)

		for _, tile := range BresenhamLine(x0, y0, x1, y1) {
			repLat := g.Bounds.MinLat + (float64(tile.Y)+representativeOffset)*g.DeltaLat
			repLon := g.Bounds.MinLon + (float64(tile.X)+representativeOffset)*g.DeltaLon
			key := g.CreateReverseKey(repLat, repLon)
			ctree.AddEdgeToOneTile(root, g.Entries, g.Shifts, g.Masks, edgeID, key)
		}
	}
}
