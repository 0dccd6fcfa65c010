package tilegeom

import "errors"

// ErrInvalidGraphBounds indicates degenerate, non-finite, or empty bounds.
var ErrInvalidGraphBounds = errors.New("tilegeom: invalid graph bounds")

// ErrKeySpaceOverflow indicates the depth schedule would need more than 64
// key bits to reach the requested resolution.
var ErrKeySpaceOverflow = errors.New("tilegeom: depth schedule exceeds 64 key bits")
