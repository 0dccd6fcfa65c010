package morton

import (
	"errors"
	"math"

	"github.com/nearedge/locidx/graph"
)

// ErrInvalidBits is returned when bits is zero, odd, or exceeds 64.
var ErrInvalidBits = errors.New("morton: bits must be a positive even number <= 64")

// ErrDegenerateBounds is returned when bounds have zero or negative extent.
var ErrDegenerateBounds = errors.New("morton: bounds must have positive extent")

// Encoder interleaves latitude/longitude into a single Morton key over a
// fixed bounding rectangle, using bits/2 bits per axis.
type Encoder struct {
	bounds   graph.Bounds
	bits     uint
	axisBits uint
	axisSize float64 // 1<<axisBits, as a float64 for scaling
}

// NewEncoder builds an Encoder for bounds with the given total bit width
// (split evenly across lat and lon). bits must be even and in (0,64].
func NewEncoder(bits uint, bounds graph.Bounds) (*Encoder, error) {
	if bits == 0 || bits%2 != 0 || bits > 64 {
		return nil, ErrInvalidBits
	}
	if bounds.Empty() {
		return nil, ErrDegenerateBounds
	}
	axisBits := bits / 2
	return &Encoder{
		bounds:   bounds,
		bits:     bits,
		axisBits: axisBits,
		axisSize: float64(uint64(1) << axisBits),
	}, nil
}

// Bits returns the encoder's configured total bit width.
func (e *Encoder) Bits() uint { return e.bits }

// gridCoord maps (lat, lon) to per-axis grid coordinates in [0, 2^axisBits).
func (e *Encoder) gridCoord(lat, lon float64) (gx, gy uint64) {
	nx := (lon - e.bounds.MinLon) / (e.bounds.MaxLon - e.bounds.MinLon)
	ny := (lat - e.bounds.MinLat) / (e.bounds.MaxLat - e.bounds.MinLat)
	gx = clampGrid(nx, e.axisSize)
	gy = clampGrid(ny, e.axisSize)
	return
}

func clampGrid(norm, size float64) uint64 {
	if norm < 0 {
		norm = 0
	}
	if norm >= 1 {
		norm = math.Nextafter(1, 0)
	}
	return uint64(norm * size)
}

// Encode returns the forward Morton key for (lat, lon): bit 2i carries
// latitude grid-coordinate bit i, bit 2i+1 carries longitude bit i.
func (e *Encoder) Encode(lat, lon float64) uint64 {
	gx, gy := e.gridCoord(lat, lon)
	return interleave(gy, gx, e.axisBits)
}

// Decode returns the lat/lon of the origin (south-west corner) of the
// tile that key addresses.
func (e *Encoder) Decode(key uint64) (lat, lon float64) {
	gy, gx := deinterleave(key, e.axisBits)
	nx := float64(gx) / e.axisSize
	ny := float64(gy) / e.axisSize
	lon = e.bounds.MinLon + nx*(e.bounds.MaxLon-e.bounds.MinLon)
	lat = e.bounds.MinLat + ny*(e.bounds.MaxLat-e.bounds.MinLat)
	return
}

// ReverseKey bit-reverses key across the encoder's configured bit-width,
// so that level-0 of a hierarchical traversal occupies the least
// significant bits (spec.md §9).
func (e *Encoder) ReverseKey(key uint64) uint64 {
	return reverseBits(key, e.bits)
}

// interleave packs the low `bits` bits of a into even positions (0,2,4,...)
// and the low `bits` bits of b into odd positions (1,3,5,...).
func interleave(a, b uint64, bits uint) uint64 {
	var key uint64
	for i := uint(0); i < bits; i++ {
		key |= ((a >> i) & 1) << (2 * i)
		key |= ((b >> i) & 1) << (2*i + 1)
	}
	return key
}

// deinterleave is the inverse of interleave.
func deinterleave(key uint64, bits uint) (a, b uint64) {
	for i := uint(0); i < bits; i++ {
		a |= ((key >> (2 * i)) & 1) << i
		b |= ((key >> (2*i + 1)) & 1) << i
	}
	return
}

// reverseBits reverses the low n bits of v.
func reverseBits(v uint64, n uint) uint64 {
	var r uint64
	for i := uint(0); i < n; i++ {
		if v&(1<<i) != 0 {
			r |= 1 << (n - 1 - i)
		}
	}
	return r
}
