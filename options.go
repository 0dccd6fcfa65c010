package locidx

import (
	"fmt"
	"io"
	"log"
)

// defaultMinResolutionInMeter is the default leaf-tile target width
// (spec.md §6 configuration options).
const defaultMinResolutionInMeter = 300

// defaultMaxRegionSearch is the default number of expanding tile rings the
// seed search examines before giving up.
const defaultMaxRegionSearch = 4

// indexMagic identifies the on-disk layout version this build writes and
// reads (spec.md §3 file header).
const indexMagic = 0x4C4F4331 // "LOC1"

// Option configures an Index via functional arguments, in the same style
// bfs.Option and dijkstra.Option use. An invalid Option is recorded
// internally and surfaced as ErrInvalidConfiguration from New.
type Option func(*IndexOptions)

// IndexOptions holds the tunable parameters spec.md §6 names.
type IndexOptions struct {
	// MinResolutionInMeter is the target leaf-tile width in metres.
	MinResolutionInMeter int
	// MaxRegionSearch bounds the number of expanding tile rings the seed
	// search examines; coerced up to the nearest even value ≥ 2.
	MaxRegionSearch int
	// Approximation selects the planar (true) or precise (false)
	// calculator for queries. Bounds-sizing at Prepare time always uses
	// the precise calculator regardless of this setting.
	Approximation bool
	// SegmentSize, if positive, is a byte-size hint used to pre-size the
	// flat store's initial allocation (spec.md §6 "segmentSize: int bytes,
	// store-dependent"). Zero lets Prepare pick its own default capacity.
	SegmentSize int
	// Logger receives one summary line at the end of Prepare (size, leaf
	// count, store footprint). Defaults to a discarding logger, the way a
	// dependency-free library logs nothing unless a caller opts in.
	Logger *log.Logger

	err error
}

// DefaultOptions returns the configuration spec.md §6 names as defaults:
// 300m resolution, 4-ring region search, planar approximation enabled, no
// construction logging.
func DefaultOptions() IndexOptions {
	return IndexOptions{
		MinResolutionInMeter: defaultMinResolutionInMeter,
		MaxRegionSearch:      defaultMaxRegionSearch,
		Approximation:        true,
		Logger:               log.New(io.Discard, "", 0),
	}
}

// WithMinResolutionInMeter sets the target leaf-tile width. Values <= 0
// are rejected.
func WithMinResolutionInMeter(meters int) Option {
	return func(o *IndexOptions) {
		if meters <= 0 {
			o.err = fmt.Errorf("%w: MinResolutionInMeter must be positive (%d)", ErrInvalidConfiguration, meters)
			return
		}
		o.MinResolutionInMeter = meters
	}
}

// WithMaxRegionSearch sets the expanding-ring search bound. Values < 1 are
// rejected; odd values are rounded up to the next even number (spec.md §9
// "Even maxRegionSearch").
func WithMaxRegionSearch(rings int) Option {
	return func(o *IndexOptions) {
		if rings < 1 {
			o.err = fmt.Errorf("%w: MaxRegionSearch must be >= 1 (%d)", ErrInvalidConfiguration, rings)
			return
		}
		if rings%2 != 0 {
			rings++
		}
		o.MaxRegionSearch = rings
	}
}

// WithApproximation selects the default calculator used for queries.
func WithApproximation(approx bool) Option {
	return func(o *IndexOptions) {
		o.Approximation = approx
	}
}

// WithSegmentSize hints the initial flat-store allocation size, in bytes.
// Negative values are rejected.
func WithSegmentSize(bytes int) Option {
	return func(o *IndexOptions) {
		if bytes < 0 {
			o.err = fmt.Errorf("%w: SegmentSize must be >= 0 (%d)", ErrInvalidConfiguration, bytes)
			return
		}
		o.SegmentSize = bytes
	}
}

// WithLogger sets the logger Prepare emits its construction summary to. A
// nil logger is ignored.
func WithLogger(logger *log.Logger) Option {
	return func(o *IndexOptions) {
		if logger != nil {
			o.Logger = logger
		}
	}
}

func resolveOptions(opts []Option) (IndexOptions, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return IndexOptions{}, o.err
	}
	return o, nil
}
