package locidx

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nearedge/locidx/graph"
)

func newSingleEdgeGraph(t *testing.T) *graph.MemGraph {
	t.Helper()
	g := graph.NewMemGraph()
	n0 := g.AddNode(0.0000, 0.0000)
	n1 := g.AddNode(0.0010, 0.0010)
	_, err := g.AddEdge(n0, n1, nil)
	require.NoError(t, err)
	return g
}

// S1: single edge, query near the midpoint snaps to the edge interior.
func TestScenarioSingleEdgeSnap(t *testing.T) {
	g := newSingleEdgeGraph(t)
	idx, err := New(g, WithMinResolutionInMeter(10))
	require.NoError(t, err)
	require.NoError(t, idx.Prepare())

	snap, err := idx.FindClosest(0.0005, 0.0005, nil)
	require.NoError(t, err)
	require.True(t, snap.Valid())
	require.Equal(t, int32(0), snap.Edge.EdgeID())
	require.InDelta(t, 0, snap.Distance, 0.5)
}

// S2: a query essentially on top of a tower node snaps to it.
func TestScenarioSnapToTower(t *testing.T) {
	g := newSingleEdgeGraph(t)
	idx, err := New(g, WithMinResolutionInMeter(10))
	require.NoError(t, err)
	require.NoError(t, idx.Prepare())

	snap, err := idx.FindClosest(0.0000001, 0.0, nil)
	require.NoError(t, err)
	require.True(t, snap.Valid())
	require.Equal(t, int32(0), snap.NodeID)
}

// S3: a filter that rejects every edge yields an invalid snap.
func TestScenarioFilteredOutYieldsInvalidSnap(t *testing.T) {
	g := newSingleEdgeGraph(t)
	idx, err := New(g, WithMinResolutionInMeter(10))
	require.NoError(t, err)
	require.NoError(t, idx.Prepare())

	rejectAll := func(graph.EdgeIteratorState) bool { return false }
	snap, err := idx.FindClosest(0.0005, 0.0005, rejectAll)
	require.NoError(t, err)
	require.False(t, snap.Valid())
}

func TestPrepareTwiceIsLifecycleViolation(t *testing.T) {
	g := newSingleEdgeGraph(t)
	idx, err := New(g, WithMinResolutionInMeter(10))
	require.NoError(t, err)
	require.NoError(t, idx.Prepare())
	require.ErrorIs(t, idx.Prepare(), ErrLifecycleViolation)
}

func TestOperationsAfterCloseFail(t *testing.T) {
	g := newSingleEdgeGraph(t)
	idx, err := New(g, WithMinResolutionInMeter(10))
	require.NoError(t, err)
	require.NoError(t, idx.Prepare())
	require.NoError(t, idx.Close())

	_, err = idx.FindClosest(0, 0, nil)
	require.ErrorIs(t, err, ErrIndexClosed)
	require.NoError(t, idx.Close()) // idempotent
}

func TestLoadMissingFileReturnsFalseWithoutError(t *testing.T) {
	g := newSingleEdgeGraph(t)
	idx, err := New(g)
	require.NoError(t, err)

	found, err := idx.Load(filepath.Join(t.TempDir(), "missing.locidx"))
	require.NoError(t, err)
	require.False(t, found)
}

// S6: build, flush, reload, and confirm an equal snap comes back.
func TestPersistenceRoundTrip(t *testing.T) {
	g := newSingleEdgeGraph(t)
	path := filepath.Join(t.TempDir(), "index.locidx")

	built, err := New(g, WithMinResolutionInMeter(10))
	require.NoError(t, err)
	require.NoError(t, built.Prepare())
	require.NoError(t, built.Flush(path))

	before, err := built.FindClosest(0.0005, 0.0005, nil)
	require.NoError(t, err)

	reloaded, err := New(g, WithMinResolutionInMeter(10))
	require.NoError(t, err)
	found, err := reloaded.Load(path)
	require.NoError(t, err)
	require.True(t, found)

	after, err := reloaded.FindClosest(0.0005, 0.0005, nil)
	require.NoError(t, err)

	require.Equal(t, before.Valid(), after.Valid())
	require.Equal(t, before.Kind, after.Kind)
	require.InDelta(t, before.Distance, after.Distance, 1e-9)
}

func TestLoadRejectsChecksumMismatch(t *testing.T) {
	g := newSingleEdgeGraph(t)
	path := filepath.Join(t.TempDir(), "index.locidx")

	built, err := New(g)
	require.NoError(t, err)
	require.NoError(t, built.Prepare())
	require.NoError(t, built.Flush(path))

	changed := newSingleEdgeGraph(t)
	changed.AddNode(1, 1) // changes NodeCount, so the checksum no longer matches

	reloaded, err := New(changed)
	require.NoError(t, err)
	_, err = reloaded.Load(path)
	require.True(t, errors.Is(err, ErrChecksumMismatch))
}

func TestStatsReportsConstructionCounters(t *testing.T) {
	g := newSingleEdgeGraph(t)
	idx, err := New(g, WithMinResolutionInMeter(10))
	require.NoError(t, err)
	require.NoError(t, idx.Prepare())

	stats, err := idx.Stats()
	require.NoError(t, err)
	require.Equal(t, 2, stats.NodeCount)
	require.Equal(t, 1, stats.EdgeCount)
	require.Equal(t, 1, stats.Leafs)
	require.GreaterOrEqual(t, stats.Depth, 1)
}

func TestWithMaxRegionSearchRoundsUpToEven(t *testing.T) {
	o, err := resolveOptions([]Option{WithMaxRegionSearch(3)})
	require.NoError(t, err)
	require.Equal(t, 4, o.MaxRegionSearch)
}

func TestNewRejectsNilGraph(t *testing.T) {
	_, err := New(nil)
	require.ErrorIs(t, err, ErrInvalidConfiguration)
}
