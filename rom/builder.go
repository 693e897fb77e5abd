package rom

import (
	"fmt"

	"github.com/wnxd/ndsrom/header"
	"github.com/wnxd/ndsrom/loader"
	"github.com/wnxd/ndsrom/logger"
)

const (
	// ARM9Offset is where the ARM9 binary starts, right after the header
	// region.
	ARM9Offset = header.RegionSize

	// ARM7MinOffset is the lowest offset the ARM7 binary may start at.
	ARM7MinOffset = 0x8000

	// SecureAreaEnd bounds the secure area checksum.
	SecureAreaEnd = 0x8000
)

// Result describes a finished image.
type Result struct {
	Header *header.Header
	ARM9   Placement
	ARM7   Placement
	Size   int64
}

type Builder struct {
	config Config
}

func New(opts ...Option) *Builder {
	c := defaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return &Builder{config: c}
}

// newHeader returns the default header with the configured identification
// applied.
func (b *Builder) newHeader() (*header.Header, error) {
	h := header.Default()
	if b.config.Title != "" {
		if err := h.SetTitle(b.config.Title); err != nil {
			return nil, err
		}
	}
	if b.config.GameCode != "" {
		if err := h.SetGameCode(b.config.GameCode); err != nil {
			return nil, err
		}
	}
	if b.config.MakerCode != "" {
		if err := h.SetMakerCode(b.config.MakerCode); err != nil {
			return nil, err
		}
	}
	h.Region = b.config.Region
	h.Version = b.config.Version
	h.Autostart = b.config.Autostart
	return h, nil
}

// Build assembles a complete image into dst, which must be empty.
func (b *Builder) Build(dst Target, arm9, arm7 loader.Module) (*Result, error) {
	perm := b.config.Perm
	h, err := b.newHeader()
	if err != nil {
		return nil, err
	}

	sink := NewSink(dst)
	if err := sink.PadTo(ARM9Offset); err != nil {
		return nil, err
	}

	res := &Result{Header: h}
	if res.ARM9, err = Extract(sink, arm9, perm); err != nil {
		return nil, fmt.Errorf("arm9: %w", err)
	}

	if sink.Position() < ARM7MinOffset {
		logger.Logf(perm, "rom", "padding from %#x to %#x", sink.Position(), ARM7MinOffset)
		if err := sink.PadTo(ARM7MinOffset); err != nil {
			return nil, err
		}
	}

	if res.ARM7, err = Extract(sink, arm7, perm); err != nil {
		return nil, fmt.Errorf("arm7: %w", err)
	}

	h.ARM9 = res.ARM9.Core()
	h.ARM7 = res.ARM7.Core()

	if h.SecureAreaCRC, err = SecureAreaChecksum(sink, res.ARM9.FileOffset); err != nil {
		return nil, err
	}
	h.TotalROMSize = uint32(sink.End())
	res.Size = sink.End()

	data, err := h.Seal()
	if err != nil {
		return nil, err
	}
	if _, err := sink.WriteAt(data, 0); err != nil {
		return nil, err
	}
	logger.Logf(perm, "header", "secure area crc %#04x, header crc %#04x, total size %#x", h.SecureAreaCRC, h.HeaderCRC, h.TotalROMSize)
	return res, nil
}
