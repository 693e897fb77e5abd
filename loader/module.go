package loader

import "encoding/binary"

type Module interface {
	Name() string
	Arch() Arch
	ByteOrder() binary.ByteOrder
	Regions() []Region
	EntryAddr() uint64
}
