package encoding

import (
	"encoding/binary"
	"io"
)

type Stream interface {
	ByteOrder() binary.ByteOrder
	Offset() uint64
	Skip(int) error
	Read([]byte) (int, error)
	Write([]byte) (int, error)
}

type bufferStream struct {
	buf   *Buffer
	order binary.ByteOrder
	off   int64
}

func NewStream(buf *Buffer, order binary.ByteOrder) Stream {
	return &bufferStream{buf: buf, order: order}
}

func (bs *bufferStream) ByteOrder() binary.ByteOrder {
	return bs.order
}

func (bs *bufferStream) Offset() uint64 {
	return uint64(bs.off)
}

func (bs *bufferStream) Skip(n int) error {
	if n < 0 {
		return ErrNegativeSkip
	}
	bs.off += int64(n)
	return nil
}

func (bs *bufferStream) Read(b []byte) (int, error) {
	n, err := bs.buf.ReadAt(b, bs.off)
	bs.off += int64(n)
	if n < len(b) {
		if err == nil || err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return n, err
	}
	return n, nil
}

func (bs *bufferStream) Write(b []byte) (int, error) {
	n, err := bs.buf.WriteAt(b, bs.off)
	bs.off += int64(n)
	return n, err
}
