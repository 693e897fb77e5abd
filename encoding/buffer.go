package encoding

import "io"

// Buffer is a growable byte slice usable as both io.ReaderAt and
// io.WriterAt. Writing past the end zero-fills the gap.
type Buffer []byte

func (buf *Buffer) ReadAt(b []byte, off int64) (n int, err error) {
	if off < 0 {
		return 0, ErrNegativeOffset
	}
	if off >= int64(len(*buf)) {
		return 0, io.EOF
	}
	n = copy(b, (*buf)[off:])
	if n < len(b) {
		err = io.EOF
	}
	return n, err
}

func (buf *Buffer) WriteAt(b []byte, off int64) (n int, err error) {
	if off < 0 {
		return 0, ErrNegativeOffset
	}
	if end := len(b) + int(off); end > len(*buf) {
		*buf = append(*buf, make([]byte, end-len(*buf))...)
	}
	return copy((*buf)[off:], b), nil
}

func (buf Buffer) Len() int {
	return len(buf)
}
