package locidx

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/nearedge/locidx/distance"
	"github.com/nearedge/locidx/flatstore"
	"github.com/nearedge/locidx/graph"
	"github.com/nearedge/locidx/internal/ctree"
	"github.com/nearedge/locidx/internal/rasterize"
	"github.com/nearedge/locidx/internal/serialize"
	"github.com/nearedge/locidx/query"
	"github.com/nearedge/locidx/tilegeom"
)

// lifecycleState tracks the facade's unbuilt/live/closed transitions
// (spec.md §5).
type lifecycleState int

const (
	stateUnbuilt lifecycleState = iota
	stateLive
	stateClosed
)

// Index is the nearest-edge index facade (spec.md §4.7 "Index Facade"): it
// owns one generation of tilegeom.Geometry and flatstore.Store, and wires
// them into a query.Engine over the caller's graph.Graph.
type Index struct {
	g    graph.Graph
	opts IndexOptions

	approximate bool

	geom   *tilegeom.Geometry
	store  *flatstore.Store
	engine *query.Engine
	counts serialize.Counts

	state lifecycleState
}

// Stats reports diagnostic counters about a live index (spec.md §4.5
// "Counters size/leafs ... are maintained for logging"). Size and Leafs
// are zero after Load, since they are construction-time diagnostics and
// are not persisted to the on-disk header.
type Stats struct {
	NodeCount int
	EdgeCount int
	Size      int
	Leafs     int
	Depth     int
	TotalBits uint
}

// New configures an unbuilt Index over g. Call Prepare or Load to bring it
// live before querying it.
func New(g graph.Graph, opts ...Option) (*Index, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: graph is nil", ErrInvalidConfiguration)
	}
	o, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}
	return &Index{g: g, opts: o, approximate: o.Approximation}, nil
}

// Prepare runs the full construction pipeline: size the tile grid from the
// graph's bounds (spec.md §4.1), rasterise every edge into an in-memory
// construction tree (§4.3–§4.4), and serialise it into a fresh flat store
// (§4.5). It transitions the index unbuilt → live.
func (idx *Index) Prepare() error {
	if idx.state == stateClosed {
		return ErrIndexClosed
	}
	if idx.state != stateUnbuilt {
		return ErrLifecycleViolation
	}

	geom, err := tilegeom.PrepareAlgo(idx.g.Bounds(), idx.opts.MinResolutionInMeter, idx.g.NodeCount(), distance.Precise{})
	if err != nil {
		switch {
		case errors.Is(err, tilegeom.ErrInvalidGraphBounds):
			return fmt.Errorf("%w: %v", ErrInvalidGraphBounds, err)
		case errors.Is(err, tilegeom.ErrKeySpaceOverflow):
			return fmt.Errorf("%w: %v", ErrKeySpaceOverflow, err)
		default:
			return fmt.Errorf("%w: %v", ErrConstructionFailure, err)
		}
	}

	root := ctree.NewInternal(geom.Entries[0])

	it := idx.g.AllEdges()
	for it.Next() {
		baseLat, baseLon, ok := idx.g.NodeLatLon(it.BaseNode())
		if !ok {
			return fmt.Errorf("%w: base node %d has no coordinate (edge %d)", ErrConstructionFailure, it.BaseNode(), it.EdgeID())
		}

		polyline := make([]graph.LatLon, 0, 2)
		polyline = append(polyline, graph.LatLon{Lat: baseLat, Lon: baseLon})
		polyline = append(polyline, it.WayGeometry(graph.PillarAndAdj)...)

		rasterize.RasterizeEdge(geom, distance.Precise{}, polyline, root, it.EdgeID())
	}

	initialIntCap := flatstore.StartPointer + geom.Entries[0]
	if hint := idx.opts.SegmentSize / 4; hint > initialIntCap {
		initialIntCap = hint
	}
	store := flatstore.Create(initialIntCap)
	_, counts := serialize.Tree(store, root, flatstore.StartPointer)
	store.SetHeader(indexMagic, idx.graphChecksum(), int32(idx.opts.MinResolutionInMeter))

	idx.geom = geom
	idx.store = store
	idx.counts = counts
	idx.engine = idx.newEngine()
	idx.state = stateLive

	idx.opts.Logger.Printf(
		"locidx: prepared index size=%s leafs=%s bytes=%s depth=%d",
		humanize.Comma(int64(counts.Size)),
		humanize.Comma(int64(counts.Leafs)),
		humanize.Bytes(uint64(store.Len()*4)),
		geom.Depth(),
	)
	return nil
}

// Load reads a previously flushed store from path and, if found, validates
// its header against the current graph before going live. It returns
// (false, nil) without error when path does not exist, per spec.md §7.
func (idx *Index) Load(path string) (bool, error) {
	if idx.state == stateClosed {
		return false, ErrIndexClosed
	}
	if idx.state != stateUnbuilt {
		return false, ErrLifecycleViolation
	}

	store, found, err := flatstore.Load(path)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrConstructionFailure, err)
	}
	if !found {
		return false, nil
	}

	magic, checksum, minResolutionInMeter := store.Header()
	if magic != indexMagic {
		return false, ErrVersionMismatch
	}
	if checksum != idx.graphChecksum() {
		return false, ErrChecksumMismatch
	}

	geom, err := tilegeom.PrepareAlgo(idx.g.Bounds(), int(minResolutionInMeter), idx.g.NodeCount(), distance.Precise{})
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidGraphBounds, err)
	}

	idx.geom = geom
	idx.store = store
	idx.opts.MinResolutionInMeter = int(minResolutionInMeter)
	idx.engine = idx.newEngine()
	idx.state = stateLive
	return true, nil
}

// Flush persists the live store to path.
func (idx *Index) Flush(path string) error {
	if idx.state == stateClosed {
		return ErrIndexClosed
	}
	if idx.state != stateLive {
		return ErrLifecycleViolation
	}
	return idx.store.Flush(path)
}

// Close releases the store. It is idempotent; every operation after Close
// fails with ErrIndexClosed.
func (idx *Index) Close() error {
	if idx.state == stateClosed {
		return nil
	}
	if idx.store != nil {
		_ = idx.store.Close()
	}
	idx.state = stateClosed
	return nil
}

// FindClosest returns the edge closest to (lat, lon) passing filter (nil
// means graph.AllEdges), or a snap with Valid()==false if nothing matched
// within MaxRegionSearch rings.
func (idx *Index) FindClosest(lat, lon float64, filter graph.EdgeFilter) (*query.Snap, error) {
	if err := idx.requireLive(); err != nil {
		return nil, err
	}
	return idx.engine.FindClosest(lat, lon, filter), nil
}

// QueryBBox visits every edge ID whose tile intersects bbox, each exactly
// once (spec.md §4.7).
func (idx *Index) QueryBBox(bbox graph.Bounds, visitor func(edgeID int32)) error {
	if err := idx.requireLive(); err != nil {
		return err
	}
	idx.engine.QueryBBox(bbox, visitor)
	return nil
}

// SetApproximation switches the calculator FindClosest uses: planar
// (true, default) or precise earth-model (false). It takes effect
// immediately on a live index.
func (idx *Index) SetApproximation(approximate bool) error {
	if idx.state == stateClosed {
		return ErrIndexClosed
	}
	idx.approximate = approximate
	if idx.state == stateLive {
		idx.engine = idx.newEngine()
	}
	return nil
}

// Stats reports diagnostic counters about the live index.
func (idx *Index) Stats() (Stats, error) {
	if err := idx.requireLive(); err != nil {
		return Stats{}, err
	}
	return Stats{
		NodeCount: idx.g.NodeCount(),
		EdgeCount: idx.g.EdgeCount(),
		Size:      idx.counts.Size,
		Leafs:     idx.counts.Leafs,
		Depth:     idx.geom.Depth(),
		TotalBits: idx.geom.TotalBits(),
	}, nil
}

func (idx *Index) requireLive() error {
	switch idx.state {
	case stateClosed:
		return ErrIndexClosed
	case stateLive:
		return nil
	default:
		return ErrLifecycleViolation
	}
}

func (idx *Index) graphChecksum() int32 {
	return int32(idx.g.NodeCount()) ^ int32(idx.g.EdgeCount())
}

func (idx *Index) calculator() distance.Calculator {
	if idx.approximate {
		return distance.Planar{}
	}
	return distance.Precise{}
}

func (idx *Index) newEngine() *query.Engine {
	return query.NewEngine(idx.g, idx.store, idx.geom, idx.calculator(), idx.opts.MaxRegionSearch)
}
