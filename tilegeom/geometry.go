package tilegeom

import (
	"math"

	"github.com/nearedge/locidx/distance"
	"github.com/nearedge/locidx/graph"
	"github.com/nearedge/locidx/morton"
)

// Geometry holds the derived parameters of the spatial grid: the depth
// schedule of fan-outs (drawn from {16, 4}, non-increasing, always ending
// in 4, per spec.md §3), the matching per-level shifts/bitmasks, the
// per-leaf tile size in degrees, and the Morton encoder bound to the
// graph's bounds.
type Geometry struct {
	Bounds   graph.Bounds
	Entries  []int
	Shifts   []uint
	Masks    []uint64
	DeltaLat float64
	DeltaLon float64
	Encoder  *morton.Encoder
}

// PrepareAlgo derives a Geometry from bounds and a target minimum tile
// width (minResolutionMeter), so that the product of the fan-out schedule
// approximates (diagonal / minResolution)², capped so the schedule's bits
// fit a 64-bit key. precise is used to measure the graph diagonal in
// metres (the earth-model calculator, per spec.md §6).
func PrepareAlgo(bounds graph.Bounds, minResolutionMeter int, nodeCount int, precise distance.Calculator) (*Geometry, error) {
	if nodeCount == 0 || bounds.Empty() ||
		math.IsNaN(bounds.MinLat) || math.IsNaN(bounds.MaxLat) ||
		math.IsNaN(bounds.MinLon) || math.IsNaN(bounds.MaxLon) ||
		math.IsInf(bounds.MinLat, 0) || math.IsInf(bounds.MaxLat, 0) ||
		math.IsInf(bounds.MinLon, 0) || math.IsInf(bounds.MaxLon, 0) {
		return nil, ErrInvalidGraphBounds
	}

	maxDist := precise.CalcDist(bounds.MinLat, bounds.MinLon, bounds.MaxLat, bounds.MaxLon)
	if minResolutionMeter <= 0 {
		return nil, ErrInvalidGraphBounds
	}
	ratio := (maxDist / float64(minResolutionMeter))
	ratio *= ratio

	entries, bitsUsed, err := buildDepthSchedule(ratio)
	if err != nil {
		return nil, err
	}

	shifts := make([]uint, len(entries))
	masks := make([]uint64, len(entries))
	for i, e := range entries {
		shift, err := GetShift(e)
		if err != nil {
			return nil, err
		}
		shifts[i] = shift
		masks[i] = GetBitmask(shift)
	}

	encoder, err := morton.NewEncoder(bitsUsed, bounds)
	if err != nil {
		return nil, err
	}

	axisBits := bitsUsed / 2
	axisSize := float64(uint64(1) << axisBits)

	return &Geometry{
		Bounds:   bounds,
		Entries:  entries,
		Shifts:   shifts,
		Masks:    masks,
		DeltaLat: (bounds.MaxLat - bounds.MinLat) / axisSize,
		DeltaLon: (bounds.MaxLon - bounds.MinLon) / axisSize,
		Encoder:  encoder,
	}, nil
}

// buildDepthSchedule greedily picks 16-fan-out levels while the remaining
// tile-count ratio is large, then falls back to 4-fan-out levels, always
// leaving room for (and ending with) one trailing fan-out-4 level, and
// never exceeding 64 total key bits.
func buildDepthSchedule(ratio float64) (entries []int, bitsUsed uint, err error) {
	remaining := ratio
	for remaining > 1 {
		if bitsUsed+2 > 64 {
			break
		}
		useSixteen := remaining >= 16 && bitsUsed+4+2 <= 64
		if useSixteen {
			entries = append(entries, 16)
			bitsUsed += 4
			remaining /= 16
		} else {
			entries = append(entries, 4)
			bitsUsed += 2
			remaining /= 4
		}
	}
	if len(entries) == 0 {
		entries = append(entries, 4)
		bitsUsed = 2
	}
	if entries[len(entries)-1] != 4 {
		if bitsUsed+2 > 64 {
			return nil, 0, ErrKeySpaceOverflow
		}
		entries = append(entries, 4)
		bitsUsed += 2
	}
	if bitsUsed > 64 {
		return nil, 0, ErrKeySpaceOverflow
	}
	return entries, bitsUsed, nil
}

// GetShift returns round(log2(e)); e must be a positive power of two.
func GetShift(e int) (uint, error) {
	if e <= 0 {
		return 0, ErrInvalidGraphBounds
	}
	shift := uint(math.Round(math.Log2(float64(e))))
	if shift == 0 || (1<<shift) != e {
		return 0, ErrInvalidGraphBounds
	}
	return shift, nil
}

// GetBitmask returns (1<<shift)-1.
func GetBitmask(shift uint) uint64 {
	return (uint64(1) << shift) - 1
}

// CreateReverseKey returns the bit-reversed Morton key for (lat, lon),
// with level-0 occupying the least-significant bits (spec.md §9).
func (g *Geometry) CreateReverseKey(lat, lon float64) uint64 {
	return g.Encoder.ReverseKey(g.Encoder.Encode(lat, lon))
}

// CalculateRMin decodes the query key back to the centre of its leaf
// tile, forms a (2*padTiles+1)x(2*padTiles+1) rectangle of leaf tiles
// around it, and returns the minimum distance from (lat, lon) to that
// rectangle's four edges. padTiles=0 is the distance to the containing
// tile's own border.
func (g *Geometry) CalculateRMin(lat, lon float64, padTiles int, calc distance.Calculator) float64 {
	fKey := g.Encoder.Encode(lat, lon)
	originLat, originLon := g.Encoder.Decode(fKey)
	centerLat := originLat + g.DeltaLat/2
	centerLon := originLon + g.DeltaLon/2

	halfLat := (float64(padTiles) + 0.5) * g.DeltaLat
	halfLon := (float64(padTiles) + 0.5) * g.DeltaLon

	metersPerDegLat := calc.CalcCircumference(0) / 360.0
	metersPerDegLon := calc.CalcCircumference(lat) / 360.0

	distTop := (centerLat + halfLat - lat) * metersPerDegLat
	distBottom := (lat - (centerLat - halfLat)) * metersPerDegLat
	distRight := (centerLon + halfLon - lon) * metersPerDegLon
	distLeft := (lon - (centerLon - halfLon)) * metersPerDegLon

	return min4(distTop, distBottom, distLeft, distRight)
}

func min4(a, b, c, d float64) float64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	if d < m {
		m = d
	}
	return m
}

// TotalBits returns the sum of all per-level shifts (the Morton key width).
func (g *Geometry) TotalBits() uint {
	return g.Encoder.Bits()
}

// Depth returns the number of levels in the fan-out schedule.
func (g *Geometry) Depth() int {
	return len(g.Entries)
}
