package query

import (
	"math"

	"github.com/RoaringBitmap/roaring/roaring64"

	"github.com/nearedge/locidx/distance"
	"github.com/nearedge/locidx/flatstore"
	"github.com/nearedge/locidx/graph"
	"github.com/nearedge/locidx/tilegeom"
)

// equalNormedDelta is the normalized-distance threshold below which the
// refinement walk considers its current best good enough to stop
// expanding a seed early (spec.md §4.6.3 step 4).
const equalNormedDelta = 1e-4

// Engine is the Query Engine of spec.md §4.6–§4.7: it holds the built
// flatstore.Store and tilegeom.Geometry of one index generation, plus the
// graph and distance calculator needed to turn tile hits into physical
// answers.
type Engine struct {
	g               graph.Graph
	store           *flatstore.Store
	geom            *tilegeom.Geometry
	calc            distance.Calculator
	maxRegionSearch int
}

// NewEngine wires an Engine over an already-built store. maxRegionSearch
// bounds the number of expanding tile rings the seed search will examine
// before giving up (spec.md §4.6.1).
func NewEngine(g graph.Graph, store *flatstore.Store, geom *tilegeom.Geometry, calc distance.Calculator, maxRegionSearch int) *Engine {
	return &Engine{g: g, store: store, geom: geom, calc: calc, maxRegionSearch: maxRegionSearch}
}

// FindClosest runs the expanding-ring seed search followed by the
// per-seed breadth-first refinement walk, and returns the closest edge
// (by the Engine's distance calculator) passing filter.
func (e *Engine) FindClosest(lat, lon float64, filter graph.EdgeFilter) *Snap {
	if filter == nil {
		filter = graph.AllEdges
	}

	seeds := e.findSeeds(lat, lon, filter)
	if seeds.IsEmpty() {
		return &Snap{QueryLat: lat, QueryLon: lon}
	}

	best := e.refine(lat, lon, seeds, filter)
	if best == nil {
		return &Snap{QueryLat: lat, QueryLon: lon}
	}

	return &Snap{
		QueryLat: lat,
		QueryLon: lon,
		Edge:     best.edge,
		NodeID:   best.nodeID,
		WayIndex: best.wayIndex,
		Kind:     best.kind,
		Distance: e.calc.CalcDenormalizedDist(best.normDist),
		SnapLat:  best.snapLat,
		SnapLon:  best.snapLon,
		valid:    true,
	}
}

// findSeeds expands tile rings around (lat, lon), filling a set of
// candidate edge IDs from every ring's tiles, and stops once the region
// already covered is provably closer than any tile outside it (spec.md
// §4.6.1).
func (e *Engine) findSeeds(lat, lon float64, filter graph.EdgeFilter) *roaring64.Bitmap {
	seeds := roaring64.New()

	for k := 0; k < e.maxRegionSearch; k++ {
		for _, p := range e.ringPoints(lat, lon, k) {
			key := e.geom.CreateReverseKey(p.Lat, p.Lon)
			e.fillIDs(key, flatstore.StartPointer, 0, filter, seeds)
		}

		if seeds.IsEmpty() {
			continue
		}

		rMin := e.geom.CalculateRMin(lat, lon, k, e.calc)
		dMin := e.minSeedDistance(lat, lon, seeds)
		if dMin <= rMin {
			break
		}
	}

	return seeds
}

// ringPoints returns one representative lat/lon per tile on the square
// ring of Chebyshev radius k around (lat, lon), expressed in tile-size
// steps of the geometry's leaf grid.
func (e *Engine) ringPoints(lat, lon float64, k int) []graph.LatLon {
	if k == 0 {
		return []graph.LatLon{{Lat: lat, Lon: lon}}
	}

	dLat, dLon := e.geom.DeltaLat, e.geom.DeltaLon
	pts := make([]graph.LatLon, 0, 4*k)

	for dx := -k; dx <= k; dx++ {
		pts = append(pts,
			graph.LatLon{Lat: lat + float64(k)*dLat, Lon: lon + float64(dx)*dLon},
			graph.LatLon{Lat: lat - float64(k)*dLat, Lon: lon + float64(dx)*dLon},
		)
	}
	for dy := -(k - 1); dy <= k-1; dy++ {
		pts = append(pts,
			graph.LatLon{Lat: lat + float64(dy)*dLat, Lon: lon + float64(k)*dLon},
			graph.LatLon{Lat: lat + float64(dy)*dLat, Lon: lon - float64(k)*dLon},
		)
	}

	return pts
}

// fillIDs descends the flat tree along keyPart's bit chunks, starting at
// intPointer/depth, and adds every filter-accepted edge ID found in the
// reached leaf to seeds (spec.md §4.6.2).
func (e *Engine) fillIDs(keyPart uint64, intPointer, depth int, filter graph.EdgeFilter, seeds *roaring64.Bitmap) {
	entries := e.geom.Entries

	if depth == len(entries) {
		v := e.store.GetInt(intPointer)
		switch {
		case v < 0:
			e.acceptSeed(-(v + 1), filter, seeds)
		case v > 0:
			for o := intPointer + 1; o < int(v); o++ {
				e.acceptSeed(e.store.GetInt(o), filter, seeds)
			}
		}
		return
	}

	idx := int(keyPart & e.geom.Masks[depth])
	child := e.store.GetInt(intPointer + idx)
	if child > 0 {
		e.fillIDs(keyPart>>e.geom.Shifts[depth], int(child), depth+1, filter, seeds)
	}
}

func (e *Engine) acceptSeed(id int32, filter graph.EdgeFilter, seeds *roaring64.Bitmap) {
	state, ok := e.g.EdgeIteratorStateForKey(id * 2)
	if !ok || !filter(state) {
		return
	}
	seeds.Add(uint64(id))
}

// minSeedDistance returns the smallest physical distance from (lat, lon)
// to any endpoint of any edge currently in seeds.
func (e *Engine) minSeedDistance(lat, lon float64, seeds *roaring64.Bitmap) float64 {
	best := math.Inf(1)
	it := seeds.Iterator()
	for it.HasNext() {
		id := int32(it.Next())
		state, ok := e.g.EdgeIteratorStateForKey(id * 2)
		if !ok {
			continue
		}
		if bLat, bLon, ok := e.g.NodeLatLon(state.BaseNode()); ok {
			if d := e.calc.CalcDist(lat, lon, bLat, bLon); d < best {
				best = d
			}
		}
		if aLat, aLon, ok := e.g.NodeLatLon(state.AdjNode()); ok {
			if d := e.calc.CalcDist(lat, lon, aLat, aLon); d < best {
				best = d
			}
		}
	}
	return best
}

// refine runs one breadth-first walk per seed edge's base node, sharing a
// single visited-node set across all seeds so no node is examined twice,
// and returns the closest candidate found (spec.md §4.6.3).
func (e *Engine) refine(lat, lon float64, seeds *roaring64.Bitmap, filter graph.EdgeFilter) *candidate {
	visited := roaring64.New()
	var best *candidate

	it := seeds.Iterator()
	for it.HasNext() {
		id := int32(it.Next())
		state, ok := e.g.EdgeIteratorStateForKey(id * 2)
		if !ok {
			continue
		}
		e.walkFrom(lat, lon, state.BaseNode(), filter, visited, &best)
	}

	return best
}

func (e *Engine) walkFrom(lat, lon float64, start int32, filter graph.EdgeFilter, visited *roaring64.Bitmap, best **candidate) {
	if visited.Contains(uint64(start)) {
		return
	}

	queue := []int32{start}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if visited.Contains(uint64(n)) {
			continue
		}
		visited.Add(uint64(n))

		explorer := e.g.CreateEdgeExplorer(filter)
		edgeIt := explorer.SetBaseNode(n)

		// Peek the first incident edge so the TOWER candidate below can
		// carry a non-nil Snap.Edge (nil only for a node with no incident
		// edge passing filter); the same cursor position is then replayed through the
		// loop below like any other edge.
		var nodeEdge graph.EdgeIteratorState
		hasEdge := edgeIt.Next()
		if hasEdge {
			nodeEdge = edgeIt.Detach(false)
		}

		if nLat, nLon, ok := e.g.NodeLatLon(n); ok {
			nd := e.calc.CalcNormalizedDist(e.calc.CalcDist(lat, lon, nLat, nLon))
			considerCandidate(best, &candidate{normDist: nd, kind: TOWER, edge: nodeEdge, nodeID: n, snapLat: nLat, snapLon: nLon})
		}

		for hasEdge {
			e.walkEdge(lat, lon, n, edgeIt, best)

			adj := edgeIt.AdjNode()
			if !visited.Contains(uint64(adj)) {
				queue = append(queue, adj)
			}
			hasEdge = edgeIt.Next()
		}

		if *best != nil && (*best).normDist <= equalNormedDelta {
			return
		}
	}
}

// walkEdge walks the full base→adj polyline of the edge at edgeIt's
// current cursor segment by segment, skipping antimeridian-crossing
// segments, recording an EDGE candidate for any segment the query point
// projects onto and a TOWER/PILLAR candidate at the far endpoint
// otherwise (spec.md §4.6.3 steps 2-3).
func (e *Engine) walkEdge(lat, lon float64, base int32, edgeIt graph.EdgeIterator, best **candidate) {
	baseLat, baseLon, ok := e.g.NodeLatLon(base)
	if !ok {
		return
	}
	adj := edgeIt.AdjNode()
	adjLat, adjLon, ok := e.g.NodeLatLon(adj)
	if !ok {
		return
	}

	pillars := edgeIt.WayGeometry(graph.PillarOnly)
	seq := make([]graph.LatLon, 0, len(pillars)+2)
	seq = append(seq, graph.LatLon{Lat: baseLat, Lon: baseLon})
	seq = append(seq, pillars...)
	seq = append(seq, graph.LatLon{Lat: adjLat, Lon: adjLon})

	detached := edgeIt.Detach(false)

	for i := 0; i+1 < len(seq); i++ {
		a, b := seq[i], seq[i+1]
		if e.calc.IsCrossBoundary(a.Lon, b.Lon) {
			continue
		}

		if e.calc.ValidEdgeDistance(lat, lon, a.Lat, a.Lon, b.Lat, b.Lon) {
			nd := e.calc.CalcNormalizedEdgeDistance(lat, lon, a.Lat, a.Lon, b.Lat, b.Lon)
			sLat, sLon := segmentFoot(lat, lon, a, b)
			considerCandidate(best, &candidate{normDist: nd, kind: EDGE, edge: detached, nodeID: base, wayIndex: i, snapLat: sLat, snapLon: sLon})
			continue
		}

		kind := PILLAR
		node := adj
		if i == len(seq)-2 {
			kind = TOWER
		}
		nd := e.calc.CalcNormalizedDist(e.calc.CalcDist(lat, lon, b.Lat, b.Lon))
		considerCandidate(best, &candidate{normDist: nd, kind: kind, edge: detached, nodeID: node, wayIndex: i, snapLat: b.Lat, snapLon: b.Lon})
	}
}

func considerCandidate(best **candidate, next *candidate) {
	if *best == nil || next.normDist < (*best).normDist {
		*best = next
	}
}

// segmentFoot returns the closest point to (qLat, qLon) on the closed
// segment a→b, using a local equirectangular projection scaled by the
// segment's mean latitude. Segments at leaf-tile scale are short enough
// that this linear approximation is indistinguishable from a geodesic
// projection.
func segmentFoot(qLat, qLon float64, a, b graph.LatLon) (lat, lon float64) {
	cosLat := math.Cos((a.Lat + b.Lat) / 2 * math.Pi / 180)

	ax, ay := a.Lon*cosLat, a.Lat
	bx, by := b.Lon*cosLat, b.Lat
	qx, qy := qLon*cosLat, qLat

	dx, dy := bx-ax, by-ay
	lenSq := dx*dx + dy*dy

	t := 0.0
	if lenSq > 0 {
		t = ((qx-ax)*dx + (qy-ay)*dy) / lenSq
	}
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	return a.Lat + t*(b.Lat-a.Lat), a.Lon + t*(b.Lon-a.Lon)
}
