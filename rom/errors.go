package rom

import (
	"errors"
	"fmt"
)

var (
	ErrNoSegments = errors.New("no loadable segments")
	ErrOverlap    = errors.New("overlapping segments")
	ErrTooLarge   = errors.New("image exceeds 32-bit offsets")
	ErrSecureArea = errors.New("secure area checksum mismatch")
	ErrTotalSize  = errors.New("total rom size mismatch")
	ErrPlacement  = errors.New("binary placement out of bounds")
)

// OverlapError reports a segment starting below the end of the segment
// placed before it.
type OverlapError struct {
	Module string
	// Segment is the program header index of the offending segment.
	Segment int
	Addr    uint64
	PrevEnd uint64
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("%s: segment %d at %#010x overlaps with segment ending at %#010x",
		e.Module, e.Segment, e.Addr, e.PrevEnd)
}

func (e *OverlapError) Is(target error) bool {
	return target == ErrOverlap
}
