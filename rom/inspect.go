package rom

import (
	"fmt"
	"io"
	"os"

	"github.com/wnxd/ndsrom/header"
)

// Report is the outcome of checking an existing image.
type Report struct {
	Header   *header.Header
	FileSize int64
}

// Inspect parses the header of an image of the given size and checks the
// logo, header and secure area checksums, the total size and that both
// binaries lie inside the file.
func Inspect(r io.ReaderAt, size int64) (*Report, error) {
	buf := make([]byte, header.Size)
	if n, err := r.ReadAt(buf, 0); n < len(buf) {
		if err == nil || err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}
	h, err := header.Parse(buf)
	if err != nil {
		return nil, err
	}
	rep := &Report{Header: h, FileSize: size}
	if err := h.Verify(); err != nil {
		return rep, err
	}
	if int64(h.TotalROMSize) != size {
		return rep, fmt.Errorf("%w: header says %#x, file is %#x", ErrTotalSize, h.TotalROMSize, size)
	}
	for _, c := range []struct {
		name string
		core header.Core
	}{{"arm9", h.ARM9}, {"arm7", h.ARM7}} {
		if end := int64(c.core.RomOffset) + int64(c.core.Size); c.core.RomOffset < header.RegionSize || end > size {
			return rep, fmt.Errorf("%w: %s at %#x size %#x", ErrPlacement, c.name, c.core.RomOffset, c.core.Size)
		}
	}
	sum, err := SecureAreaChecksum(r, h.ARM9.RomOffset)
	if err != nil {
		return rep, err
	}
	if sum != h.SecureAreaCRC {
		return rep, fmt.Errorf("%w: computed %#04x, field is %#04x", ErrSecureArea, sum, h.SecureAreaCRC)
	}
	return rep, nil
}

func InspectFile(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return Inspect(f, info.Size())
}
