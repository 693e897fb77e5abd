package rom

import (
	"fmt"
	"io"

	"github.com/wnxd/ndsrom/crc"
)

// SecureAreaChecksum is the CRC-16 of [romOffset, SecureAreaEnd). A binary
// starting at or past SecureAreaEnd has an empty secure area, whose
// checksum is the CRC initial value.
func SecureAreaChecksum(r io.ReaderAt, romOffset uint32) (uint16, error) {
	acc := crc.New()
	var buf [4096]byte
	for off := int64(romOffset); off < SecureAreaEnd; {
		chunk := buf[:min(int64(len(buf)), SecureAreaEnd-off)]
		n, err := r.ReadAt(chunk, off)
		if n < len(chunk) {
			if err == nil || err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return 0, fmt.Errorf("secure area at %#x: %w", off, err)
		}
		acc = crc.Update(acc, chunk)
		off += int64(n)
	}
	return acc, nil
}
