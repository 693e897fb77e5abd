package rom

import "io"

// Target is where an image is assembled. *os.File and *encoding.Buffer
// both qualify.
type Target interface {
	io.ReaderAt
	io.WriterAt
}

// Sink is a write cursor over a Target. Every byte between the start of
// the target and End has been written explicitly, padding included, so the
// result never depends on what the target held before.
type Sink struct {
	dst Target
	pos int64
	end int64
}

var zeros [4096]byte

func NewSink(dst Target) *Sink {
	return &Sink{dst: dst}
}

func (s *Sink) Position() int64 {
	return s.pos
}

func (s *Sink) End() int64 {
	return s.end
}

func (s *Sink) Write(b []byte) (int, error) {
	n, err := s.WriteAt(b, s.pos)
	s.pos += int64(n)
	return n, err
}

// WriteAt writes without moving the cursor.
func (s *Sink) WriteAt(b []byte, off int64) (int, error) {
	n, err := s.dst.WriteAt(b, off)
	if end := off + int64(n); end > s.end {
		s.end = end
	}
	return n, err
}

func (s *Sink) ReadAt(b []byte, off int64) (int, error) {
	return s.dst.ReadAt(b, off)
}

// Zero writes n zero bytes at the cursor.
func (s *Sink) Zero(n int64) error {
	for n > 0 {
		chunk := min(n, int64(len(zeros)))
		if _, err := s.Write(zeros[:chunk]); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

// PadTo zero-fills forward to off. It never moves the cursor backwards.
func (s *Sink) PadTo(off int64) error {
	if off <= s.pos {
		return nil
	}
	return s.Zero(off - s.pos)
}

// Align zero-fills forward to the next multiple of n.
func (s *Sink) Align(n int64) error {
	return s.PadTo(Align(s.pos, n))
}
