package encoding

import (
	"encoding/binary"

	"github.com/modern-go/reflect2"
)

func EncodeSize(val any) int {
	l, err := LayoutOf(val)
	if err != nil {
		return 0
	}
	return l.Size
}

func Encode(stream Stream, val any) error {
	l, err := LayoutOf(val)
	if err != nil {
		return err
	}
	return l.encode(stream, reflect2.PtrOf(val))
}

// Marshal encodes val into a new slice of exactly its layout size.
func Marshal(order binary.ByteOrder, val any) ([]byte, error) {
	l, err := LayoutOf(val)
	if err != nil {
		return nil, err
	}
	buf := make(Buffer, 0, l.Size)
	if err := l.encode(NewStream(&buf, order), reflect2.PtrOf(val)); err != nil {
		return nil, err
	}
	return buf, nil
}
