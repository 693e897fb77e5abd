package rom

import (
	"fmt"
	"math"

	"github.com/wnxd/ndsrom/header"
	"github.com/wnxd/ndsrom/loader"
	"github.com/wnxd/ndsrom/logger"
)

// Arch is the machine both DS cores are built for.
const Arch = loader.ARCH_ARM

// Placement records where one binary landed in the image.
type Placement struct {
	FileOffset uint32
	EntryAddr  uint32
	LoadBase   uint32
	Size       uint32
}

func (p Placement) Core() header.Core {
	return header.Core{
		RomOffset: p.FileOffset,
		EntryAddr: p.EntryAddr,
		RAMAddr:   p.LoadBase,
		Size:      p.Size,
	}
}

// Extract appends the loadable segments of mod to sink as one flat stream,
// starting at the next 4-byte boundary. Address gaps between segments are
// zero-filled; memory-only tails are not stored.
func Extract(sink *Sink, mod loader.Module, perm logger.Permission) (Placement, error) {
	if err := loader.Check(mod, Arch); err != nil {
		return Placement{}, err
	}

	logger.Logf(perm, "loader", "%s: %s, entry %#08x, %d segments", mod.Name(), mod.Arch(), mod.EntryAddr(), len(mod.Regions()))

	// index is the program header number, kept for error reporting
	type selected struct {
		index int
		loader.Region
	}
	var regions []selected
	for i, r := range mod.Regions() {
		if !r.Loadable || r.Size == 0 || r.MemSize == 0 {
			continue
		}
		regions = append(regions, selected{i, r})
	}
	if len(regions) == 0 {
		return Placement{}, fmt.Errorf("%w: %s", ErrNoSegments, mod.Name())
	}

	if err := sink.Align(4); err != nil {
		return Placement{}, err
	}
	start := sink.Position()

	lastEnd := regions[0].Addr
	for _, r := range regions {
		if r.Addr < lastEnd {
			return Placement{}, &OverlapError{Module: mod.Name(), Segment: r.index, Addr: r.Addr, PrevEnd: lastEnd}
		}
		if gap := r.Addr - lastEnd; gap > 0 {
			if gap > math.MaxUint32 {
				return Placement{}, fmt.Errorf("%w: %s: gap of %#x bytes before segment %d", ErrTooLarge, mod.Name(), gap, r.index)
			}
			logger.Logf(perm, "rom", "%s: zero-filling %#x byte gap before %#010x", mod.Name(), gap, r.Addr)
			if err := sink.Zero(int64(gap)); err != nil {
				return Placement{}, err
			}
		}
		data, err := r.Bytes()
		if err != nil {
			return Placement{}, fmt.Errorf("%s: segment %d: %w", mod.Name(), r.index, err)
		}
		if _, err := sink.Write(data); err != nil {
			return Placement{}, err
		}
		lastEnd = r.End()
	}

	if sink.Position() > math.MaxUint32 {
		return Placement{}, fmt.Errorf("%w: %s ends at %#x", ErrTooLarge, mod.Name(), sink.Position())
	}
	p := Placement{
		FileOffset: uint32(start),
		EntryAddr:  uint32(mod.EntryAddr()),
		LoadBase:   uint32(regions[0].Addr),
		Size:       uint32(sink.Position() - start),
	}
	logger.Logf(perm, "rom", "%s: %d bytes at %#x, load %#010x, entry %#010x", mod.Name(), p.Size, p.FileOffset, p.LoadBase, p.EntryAddr)
	return p, nil
}
