package encoding

import (
	"encoding/binary"
	"reflect"

	"github.com/modern-go/reflect2"
)

func Decode(stream Stream, val any) error {
	typ := reflect2.TypeOf(val)
	if typ == nil || typ.Kind() != reflect.Pointer || reflect2.IsNil(val) {
		return ErrNotPointer
	}
	l, err := layoutOf(typ.(reflect2.PtrType).Elem())
	if err != nil {
		return err
	}
	return l.decode(stream, reflect2.PtrOf(val))
}

func Unmarshal(order binary.ByteOrder, data []byte, val any) error {
	buf := Buffer(data)
	return Decode(NewStream(&buf, order), val)
}
