package loader

import "io"

// Region is one program segment. Size is the number of bytes present in
// the file; MemSize may be larger, the difference being zero-initialised
// memory that is never stored in the file.
type Region struct {
	Addr, Size uint64
	MemSize    uint64
	Loadable   bool
	io.ReaderAt
}

func (r Region) End() uint64 {
	return r.Addr + r.Size
}

func (r Region) Bytes() ([]byte, error) {
	b := make([]byte, r.Size)
	if r.Size == 0 {
		return b, nil
	}
	if _, err := r.ReadAt(b, 0); err != nil && err != io.EOF {
		return nil, err
	}
	return b, nil
}
