package query

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nearedge/locidx/distance"
	"github.com/nearedge/locidx/flatstore"
	"github.com/nearedge/locidx/graph"
	"github.com/nearedge/locidx/internal/ctree"
	"github.com/nearedge/locidx/internal/rasterize"
	"github.com/nearedge/locidx/internal/serialize"
	"github.com/nearedge/locidx/tilegeom"
)

// buildEngine rasterises every edge of g into a fresh flat store and
// returns a ready-to-query Engine, mirroring the construction pipeline
// spec.md §4 describes (minus the Index facade around it).
func buildEngine(t *testing.T, g *graph.MemGraph) *Engine {
	t.Helper()

	geom, err := tilegeom.PrepareAlgo(g.Bounds(), 25, g.NodeCount(), distance.Precise{})
	require.NoError(t, err)

	root := ctree.NewInternal(geom.Entries[0])

	it := g.AllEdges()
	for it.Next() {
		polyline := append([]graph.LatLon{}, func() graph.LatLon {
			lat, lon, _ := g.NodeLatLon(it.BaseNode())
			return graph.LatLon{Lat: lat, Lon: lon}
		}())
		polyline = append(polyline, it.WayGeometry(graph.PillarAndAdj)...)
		rasterize.RasterizeEdge(geom, distance.Planar{}, polyline, root, it.EdgeID())
	}

	store := flatstore.Create(64)
	serialize.Tree(store, root, flatstore.StartPointer)

	return NewEngine(g, store, geom, distance.Planar{}, 8)
}

// straightLineGraph builds a single edge along the diagonal from (0, 0) to
// (0.01, 0.01): distinct latitudes on both nodes keep graph.Bounds
// non-degenerate (graph.Bounds.Empty() rejects a zero-height rectangle).
func straightLineGraph(t *testing.T) *graph.MemGraph {
	t.Helper()
	g := graph.NewMemGraph()
	n0 := g.AddNode(0, 0)
	n1 := g.AddNode(0.01, 0.01)
	_, err := g.AddEdge(n0, n1, nil)
	require.NoError(t, err)
	return g
}

func TestFindClosestSnapsToEdgeInterior(t *testing.T) {
	g := straightLineGraph(t)
	e := buildEngine(t, g)

	// (0.005, 0.005) lies exactly on the diagonal's midpoint, so the
	// perpendicular foot coincides with the query point itself.
	snap := e.FindClosest(0.005, 0.005, nil)
	require.True(t, snap.Valid())
	require.Equal(t, EDGE, snap.Kind)
	require.InDelta(t, 0.005, snap.SnapLat, 1e-6)
	require.InDelta(t, 0.005, snap.SnapLon, 1e-6)
}

func TestFindClosestSnapsToTowerNode(t *testing.T) {
	g := straightLineGraph(t)
	e := buildEngine(t, g)

	// Just past the (0, 0) end of the edge, so the perpendicular foot falls
	// outside the segment and the tower node is the closest point.
	snap := e.FindClosest(-0.00001, -0.00001, nil)
	require.True(t, snap.Valid())
	require.Equal(t, TOWER, snap.Kind)
}

func TestFindClosestHonoursFilter(t *testing.T) {
	g := straightLineGraph(t)
	e := buildEngine(t, g)

	rejectAll := func(graph.EdgeIteratorState) bool { return false }
	snap := e.FindClosest(0.005, 0.005, rejectAll)
	require.False(t, snap.Valid())
}

func TestFindClosestOnEmptyGraphIsInvalid(t *testing.T) {
	g := graph.NewMemGraph()
	g.AddNode(0, 0)
	g.AddNode(0.01, 0.01)
	e := buildEngine(t, g)

	snap := e.FindClosest(0.005, 0.005, nil)
	require.False(t, snap.Valid())
}

func TestQueryBBoxVisitsEachEdgeOnce(t *testing.T) {
	g := straightLineGraph(t)
	e := buildEngine(t, g)

	counts := map[int32]int{}
	e.QueryBBox(graph.Bounds{MinLat: -0.001, MaxLat: 0.011, MinLon: -0.001, MaxLon: 0.011}, func(id int32) {
		counts[id]++
	})

	require.Equal(t, map[int32]int{0: 1}, counts)
}

func TestQueryBBoxExcludesDisjointEdges(t *testing.T) {
	g := straightLineGraph(t)
	e := buildEngine(t, g)

	counts := map[int32]int{}
	e.QueryBBox(graph.Bounds{MinLat: 10, MaxLat: 11, MinLon: 10, MaxLon: 11}, func(id int32) {
		counts[id]++
	})

	require.Empty(t, counts)
}
