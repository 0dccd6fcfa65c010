package flatstore

import (
	"bufio"
	"encoding/binary"
	"errors"
	"os"
)

// HeaderCells is the number of reserved 32-bit cells at the front of the
// store: magic, graph checksum, and minResolutionInMeter (spec.md §3).
const HeaderCells = 3

// StartPointer is the int-offset at which the root subtree begins
// (spec.md §3, §9): past the reserved header region.
const StartPointer = HeaderCells

// ErrClosed is returned by any operation on a closed Store.
var ErrClosed = errors.New("flatstore: store is closed")

// Store is a growable array of signed 32-bit integers, addressable by
// int-offset, with an optional on-disk backing file. It is not
// synchronised internally: spec.md §5 requires construction not to
// overlap queries, and treats concurrent reads of an already-built store
// as the caller's (or a future backing implementation's) responsibility.
type Store struct {
	ints   []int32
	path   string
	closed bool
}

// Create returns a new, empty Store with room for at least initialIntCap
// ints (including the header).
func Create(initialIntCap int) *Store {
	if initialIntCap < HeaderCells {
		initialIntCap = HeaderCells
	}
	s := &Store{ints: make([]int32, HeaderCells, initialIntCap)}
	return s
}

// Load reads an existing Store from path. It returns (nil, false, nil) if
// path does not exist, so callers can distinguish "no existing index" from
// a read failure, per spec.md §7 ("loadExisting returns a boolean 'found?'
// ... without raising when the backing file is simply absent").
func Load(path string) (*Store, bool, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, false, err
	}
	ints := make([]int32, n)
	if err := binary.Read(r, binary.LittleEndian, &ints); err != nil {
		return nil, false, err
	}
	return &Store{ints: ints, path: path}, true, nil
}

// Len returns the number of int32 cells currently allocated.
func (s *Store) Len() int { return len(s.ints) }

// EnsureCapacity grows the store so that offset intOffset is addressable,
// zero-filling any newly exposed cells.
func (s *Store) EnsureCapacity(intOffset int) {
	if intOffset < len(s.ints) {
		return
	}
	grown := make([]int32, intOffset+1)
	copy(grown, s.ints)
	s.ints = grown
}

// Append reserves n fresh cells at the end of the store and returns the
// int-offset of the first one.
func (s *Store) Append(n int) int {
	start := len(s.ints)
	s.ints = append(s.ints, make([]int32, n)...)
	return start
}

// GetInt reads the int32 at intOffset.
func (s *Store) GetInt(intOffset int) int32 {
	return s.ints[intOffset]
}

// SetInt writes v at intOffset, growing the store if necessary.
func (s *Store) SetInt(intOffset int, v int32) {
	s.EnsureCapacity(intOffset)
	s.ints[intOffset] = v
}

// Header returns the three header cells: magic, graph checksum, and
// minResolutionInMeter.
func (s *Store) Header() (magic, checksum, minResolutionInMeter int32) {
	return s.ints[0], s.ints[1], s.ints[2]
}

// SetHeader writes the three header cells.
func (s *Store) SetHeader(magic, checksum, minResolutionInMeter int32) {
	s.ints[0] = magic
	s.ints[1] = checksum
	s.ints[2] = minResolutionInMeter
}

// Flush writes the full contents of the store to path.
func (s *Store) Flush(path string) error {
	if s.closed {
		return ErrClosed
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := binary.Write(w, binary.LittleEndian, uint32(len(s.ints))); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, s.ints); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	s.path = path
	return nil
}

// Close releases the store. It is idempotent.
func (s *Store) Close() error {
	s.closed = true
	return nil
}
