package test

import (
	"debug/elf"
	"encoding/binary"

	"github.com/wnxd/ndsrom/encoding"
)

// Segment describes one program header of a generated executable. A zero
// MemSize means the same as len(Data).
type Segment struct {
	Type    elf.ProgType
	Addr    uint64
	Data    []byte
	MemSize uint64
}

// Load is shorthand for a PT_LOAD segment.
func Load(addr uint64, data []byte) Segment {
	return Segment{Type: elf.PT_LOAD, Addr: addr, Data: data}
}

func (s Segment) memsz() uint64 {
	if s.MemSize == 0 {
		return uint64(len(s.Data))
	}
	return s.MemSize
}

// Payload returns n bytes of recognisable, non-zero filler.
func Payload(n int, seed byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = seed + byte(i*7) | 1
	}
	return b
}

func ident(class elf.Class) (id [elf.EI_NIDENT]byte) {
	copy(id[:], elf.ELFMAG)
	id[elf.EI_CLASS] = byte(class)
	id[elf.EI_DATA] = byte(elf.ELFDATA2LSB)
	id[elf.EI_VERSION] = byte(elf.EV_CURRENT)
	return id
}

// ELF returns a little-endian ELF32 executable with the given program
// headers and no section headers.
func ELF(machine elf.Machine, entry uint32, segs ...Segment) []byte {
	const phentsize = 32
	hdr := elf.Header32{
		Ident:     ident(elf.ELFCLASS32),
		Type:      uint16(elf.ET_EXEC),
		Machine:   uint16(machine),
		Version:   uint32(elf.EV_CURRENT),
		Entry:     entry,
		Phentsize: phentsize,
		Phnum:     uint16(len(segs)),
	}
	hdr.Ehsize = uint16(encoding.EncodeSize(&hdr))
	hdr.Phoff = uint32(hdr.Ehsize)

	var out encoding.Buffer
	stream := encoding.NewStream(&out, binary.LittleEndian)
	must(encoding.Encode(stream, &hdr))

	off := stream.Offset() + uint64(phentsize*len(segs))
	for _, s := range segs {
		must(encoding.Encode(stream, &elf.Prog32{
			Type:   uint32(s.Type),
			Off:    uint32(off),
			Vaddr:  uint32(s.Addr),
			Paddr:  uint32(s.Addr),
			Filesz: uint32(len(s.Data)),
			Memsz:  uint32(s.memsz()),
			Flags:  uint32(elf.PF_R | elf.PF_X),
			Align:  4,
		}))
		off += uint64(len(s.Data))
	}
	for _, s := range segs {
		stream.Write(s.Data)
	}
	return out
}

// ELF64 is like ELF but produces an ELF64 executable, for addresses that do
// not fit in 32 bits.
func ELF64(machine elf.Machine, entry uint64, segs ...Segment) []byte {
	const phentsize = 56
	hdr := elf.Header64{
		Ident:     ident(elf.ELFCLASS64),
		Type:      uint16(elf.ET_EXEC),
		Machine:   uint16(machine),
		Version:   uint32(elf.EV_CURRENT),
		Entry:     entry,
		Phentsize: phentsize,
		Phnum:     uint16(len(segs)),
	}
	hdr.Ehsize = uint16(encoding.EncodeSize(&hdr))
	hdr.Phoff = uint64(hdr.Ehsize)

	var out encoding.Buffer
	stream := encoding.NewStream(&out, binary.LittleEndian)
	must(encoding.Encode(stream, &hdr))

	off := stream.Offset() + uint64(phentsize*len(segs))
	for _, s := range segs {
		must(encoding.Encode(stream, &elf.Prog64{
			Type:   uint32(s.Type),
			Flags:  uint32(elf.PF_R | elf.PF_X),
			Off:    off,
			Vaddr:  s.Addr,
			Paddr:  s.Addr,
			Filesz: uint64(len(s.Data)),
			Memsz:  s.memsz(),
			Align:  4,
		}))
		off += uint64(len(s.Data))
	}
	for _, s := range segs {
		stream.Write(s.Data)
	}
	return out
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
