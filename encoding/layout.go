package encoding

import (
	"fmt"
	"reflect"
	"sync"
	"unsafe"

	"github.com/modern-go/reflect2"
)

type handler = func(Stream, unsafe.Pointer) error

// Field is one leaf entry of a record's wire layout.
type Field struct {
	Name   string
	Offset int
	Width  int
}

// Layout is the packed field table of a fixed-size record. Fields follow
// each other with no alignment padding, in declaration order.
type Layout struct {
	Fields []Field
	Size   int
	encode handler
	decode handler
}

var layouts sync.Map

func LayoutOf(val any) (*Layout, error) {
	typ := reflect2.TypeOf(val)
	if typ == nil {
		return nil, ErrUnsupportedType
	}
	if typ.Kind() == reflect.Pointer {
		typ = typ.(reflect2.PtrType).Elem()
	}
	return layoutOf(typ)
}

func layoutOf(typ reflect2.Type) (*Layout, error) {
	key := typ.RType()
	if v, ok := layouts.Load(key); ok {
		return v.(*Layout), nil
	}
	l := new(Layout)
	var err error
	l.encode, l.decode, l.Size, err = compile(typ, "", &l.Fields)
	if err != nil {
		return nil, err
	}
	v, _ := layouts.LoadOrStore(key, l)
	return v.(*Layout), nil
}

// Offset returns the byte offset of the named field. Nested struct fields
// are addressed with dotted names, e.g. "ARM9.Size".
func (l *Layout) Offset(name string) (int, bool) {
	for _, f := range l.Fields {
		if f.Name == name {
			return f.Offset, true
		}
	}
	return 0, false
}

func (l *Layout) Field(name string) (Field, bool) {
	for _, f := range l.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func compile(typ reflect2.Type, name string, fields *[]Field) (handler, handler, int, error) {
	switch typ.Kind() {
	case reflect.Bool, reflect.Int8, reflect.Uint8, reflect.Int16, reflect.Uint16, reflect.Int32, reflect.Uint32, reflect.Int64, reflect.Uint64:
		size := int(typ.Type1().Size())
		enc, dec := scalar(size)
		appendField(fields, name, size)
		return enc, dec, size, nil
	case reflect.Array:
		return compileArray(typ.(reflect2.ArrayType), name, fields)
	case reflect.Struct:
		return compileStruct(typ.(reflect2.StructType), name, fields)
	}
	return nil, nil, 0, fmt.Errorf("%w: %s (%s)", ErrUnsupportedType, typ.String(), name)
}

func appendField(fields *[]Field, name string, width int) {
	var offset int
	if n := len(*fields); n > 0 {
		last := (*fields)[n-1]
		offset = last.Offset + last.Width
	}
	*fields = append(*fields, Field{Name: name, Offset: offset, Width: width})
}

func compileArray(typ reflect2.ArrayType, name string, fields *[]Field) (handler, handler, int, error) {
	count := typ.Len()
	elem := typ.Elem()
	switch elem.Kind() {
	case reflect.Bool, reflect.Int8, reflect.Uint8:
		appendField(fields, name, count)
		enc := func(stream Stream, ptr unsafe.Pointer) error {
			_, err := stream.Write(unsafe.Slice((*byte)(ptr), count))
			return err
		}
		dec := func(stream Stream, ptr unsafe.Pointer) error {
			_, err := stream.Read(unsafe.Slice((*byte)(ptr), count))
			return err
		}
		return enc, dec, count, nil
	}
	var sub []Field
	elemEnc, elemDec, elemSize, err := compile(elem, name, &sub)
	if err != nil {
		return nil, nil, 0, err
	}
	appendField(fields, name, elemSize*count)
	stride := elem.Type1().Size()
	enc := func(stream Stream, ptr unsafe.Pointer) error {
		for i := 0; i < count; i++ {
			if err := elemEnc(stream, unsafe.Add(ptr, uintptr(i)*stride)); err != nil {
				return err
			}
		}
		return nil
	}
	dec := func(stream Stream, ptr unsafe.Pointer) error {
		for i := 0; i < count; i++ {
			if err := elemDec(stream, unsafe.Add(ptr, uintptr(i)*stride)); err != nil {
				return err
			}
		}
		return nil
	}
	return enc, dec, elemSize * count, nil
}

type structData struct {
	encode handler
	decode handler
	field  reflect2.StructField
}

func compileStruct(typ reflect2.StructType, name string, fields *[]Field) (handler, handler, int, error) {
	count := typ.NumField()
	data := make([]structData, 0, count)
	var size int
	for i := 0; i < count; i++ {
		field := typ.Field(i)
		if field.Tag().Get("encoding") == "ignore" {
			continue
		}
		fieldName := field.Name()
		if name != "" {
			fieldName = name + "." + fieldName
		}
		enc, dec, fieldSize, err := compile(field.Type(), fieldName, fields)
		if err != nil {
			return nil, nil, 0, err
		}
		size += fieldSize
		data = append(data, structData{enc, dec, field})
	}
	enc := func(stream Stream, ptr unsafe.Pointer) error {
		for _, d := range data {
			if err := d.encode(stream, d.field.UnsafeGet(ptr)); err != nil {
				return err
			}
		}
		return nil
	}
	dec := func(stream Stream, ptr unsafe.Pointer) error {
		for _, d := range data {
			if err := d.decode(stream, d.field.UnsafeGet(ptr)); err != nil {
				return err
			}
		}
		return nil
	}
	return enc, dec, size, nil
}

// scalar returns the handlers for a fixed-width integer, written in the
// stream's byte order.
func scalar(size int) (handler, handler) {
	enc := func(stream Stream, ptr unsafe.Pointer) error {
		var b [8]byte
		order := stream.ByteOrder()
		switch size {
		case 1:
			b[0] = *(*uint8)(ptr)
		case 2:
			order.PutUint16(b[:], *(*uint16)(ptr))
		case 4:
			order.PutUint32(b[:], *(*uint32)(ptr))
		default:
			order.PutUint64(b[:], *(*uint64)(ptr))
		}
		_, err := stream.Write(b[:size])
		return err
	}
	dec := func(stream Stream, ptr unsafe.Pointer) error {
		var b [8]byte
		if _, err := stream.Read(b[:size]); err != nil {
			return err
		}
		order := stream.ByteOrder()
		switch size {
		case 1:
			*(*uint8)(ptr) = b[0]
		case 2:
			*(*uint16)(ptr) = order.Uint16(b[:])
		case 4:
			*(*uint32)(ptr) = order.Uint32(b[:])
		default:
			*(*uint64)(ptr) = order.Uint64(b[:])
		}
		return nil
	}
	return enc, dec
}
