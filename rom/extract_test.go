package rom

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"github.com/wnxd/ndsrom/encoding"
	"github.com/wnxd/ndsrom/internal/test"
	"github.com/wnxd/ndsrom/loader"
	"github.com/wnxd/ndsrom/logger"
)

// mockModule is an in-memory loader.Module.
type mockModule struct {
	name    string
	arch    loader.Arch
	entry   uint64
	regions []loader.Region
}

func newMock(name string, entry uint64, regions ...loader.Region) *mockModule {
	return &mockModule{name: name, arch: loader.ARCH_ARM, entry: entry, regions: regions}
}

func (m *mockModule) Name() string                { return m.name }
func (m *mockModule) Arch() loader.Arch           { return m.arch }
func (m *mockModule) ByteOrder() binary.ByteOrder { return binary.LittleEndian }
func (m *mockModule) Regions() []loader.Region    { return m.regions }
func (m *mockModule) EntryAddr() uint64           { return m.entry }

func seg(addr uint64, data []byte) loader.Region {
	return loader.Region{
		Addr:     addr,
		Size:     uint64(len(data)),
		MemSize:  uint64(len(data)),
		Loadable: true,
		ReaderAt: bytes.NewReader(data),
	}
}

func bss(addr, size uint64) loader.Region {
	return loader.Region{Addr: addr, MemSize: size, Loadable: true, ReaderAt: bytes.NewReader(nil)}
}

func TestExtractSingleSegment(t *testing.T) {
	data := test.Payload(100, 3)
	buf := dirty(0)
	sink := NewSink(buf)
	test.DemandSuccess(t, sink.PadTo(0x4000))

	p, err := Extract(sink, newMock("arm9", 0x02000000, seg(0x02000000, data)), logger.Deny)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, p, Placement{FileOffset: 0x4000, EntryAddr: 0x02000000, LoadBase: 0x02000000, Size: 100})
	test.DemandEquality(t, sink.Position(), int64(0x4064))
	test.DemandEquality(t, string((*buf)[0x4000:0x4064]), string(data))
}

func TestExtractAlignsStart(t *testing.T) {
	for residue := int64(1); residue < 4; residue++ {
		buf := dirty(64)
		sink := NewSink(buf)
		test.DemandSuccess(t, sink.PadTo(16+residue))

		p, err := Extract(sink, newMock("m", 0, seg(0x100, []byte{1, 2, 3})), logger.Deny)
		test.DemandSuccess(t, err)
		test.DemandEquality(t, p.FileOffset, uint32(20), "residue", residue)
		for i := 16 + residue; i < 20; i++ {
			test.DemandEquality(t, (*buf)[i], byte(0), "residue", residue)
		}
	}
}

func TestExtractGapIsZeroFilled(t *testing.T) {
	a := test.Payload(8, 1)
	b := test.Payload(8, 2)
	buf := dirty(64)
	sink := NewSink(buf)

	mod := newMock("gap", 0x1000, seg(0x1000, a), seg(0x1010, b))
	p, err := Extract(sink, mod, logger.Deny)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, p.Size, uint32(24))
	test.DemandEquality(t, string((*buf)[0:8]), string(a))
	test.DemandEquality(t, string((*buf)[8:16]), string(make([]byte, 8)))
	test.DemandEquality(t, string((*buf)[16:24]), string(b))
}

func TestExtractMemoryTailNotStored(t *testing.T) {
	// the first segment reserves 0x20 bytes but only stores 0x10; the gap
	// is measured from the stored end
	first := seg(0x2000, test.Payload(0x10, 5))
	first.MemSize = 0x20
	second := seg(0x2020, test.Payload(4, 6))

	var buf encoding.Buffer
	p, err := Extract(NewSink(&buf), newMock("tail", 0x2000, first, second), logger.Deny)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, p.Size, uint32(0x24))
	test.DemandEquality(t, string(buf[0x10:0x20]), string(make([]byte, 0x10)))
}

func TestExtractSkipsUnselected(t *testing.T) {
	note := seg(0x0, []byte{9, 9, 9, 9})
	note.Loadable = false
	zeroMem := seg(0x3000, []byte{7, 7})
	zeroMem.MemSize = 0

	mod := newMock("skip", 0x3004,
		note,
		bss(0x2F00, 0x100),
		seg(0x3004, []byte{1, 2, 3, 4}),
		zeroMem,
		seg(0x3008, []byte{5, 6}),
	)

	var buf encoding.Buffer
	p, err := Extract(NewSink(&buf), mod, logger.Deny)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, p.LoadBase, uint32(0x3004))
	test.DemandEquality(t, p.Size, uint32(6))
	test.DemandEquality(t, string(buf), "\x01\x02\x03\x04\x05\x06")
}

func TestExtractEntryTruncated(t *testing.T) {
	var buf encoding.Buffer
	p, err := Extract(NewSink(&buf), newMock("wide", 0x1_0200_0010, seg(0x1_0200_0000, []byte{1, 2, 3, 4})), logger.Deny)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, p.EntryAddr, uint32(0x02000010))
	test.DemandEquality(t, p.LoadBase, uint32(0x02000000))
}

func TestExtractFailures(t *testing.T) {
	x86 := newMock("x86", 0, seg(0x1000, []byte{1}))
	x86.arch = loader.ARCH_X86

	tests := []struct {
		name string
		mod  loader.Module
		want error
	}{
		{"no segments", newMock("empty", 0), ErrNoSegments},
		{"only bss", newMock("bss", 0, bss(0x1000, 0x100)), ErrNoSegments},
		{"wrong arch", x86, loader.ErrArchMismatch},
		{"overlap", newMock("overlap", 0, seg(0x1000, make([]byte, 0x10)), seg(0x1008, make([]byte, 4))), ErrOverlap},
		{"out of order", newMock("order", 0, seg(0x2000, make([]byte, 4)), seg(0x1000, make([]byte, 4))), ErrOverlap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf encoding.Buffer
			_, err := Extract(NewSink(&buf), tt.mod, logger.Deny)
			if !errors.Is(err, tt.want) {
				t.Errorf("Extract() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestOverlapErrorDetail(t *testing.T) {
	var buf encoding.Buffer
	mod := newMock("arm9", 0, seg(0x1000, make([]byte, 0x10)), seg(0x1008, make([]byte, 4)))
	_, err := Extract(NewSink(&buf), mod, logger.Deny)

	var overlap *OverlapError
	if !errors.As(err, &overlap) {
		t.Fatalf("error %v is not an OverlapError", err)
	}
	test.DemandEquality(t, *overlap, OverlapError{Module: "arm9", Segment: 1, Addr: 0x1008, PrevEnd: 0x1010})
}

func TestOverlapErrorProgramHeaderIndex(t *testing.T) {
	var buf encoding.Buffer
	note := loader.Region{Addr: 0, Size: 4, MemSize: 4, ReaderAt: bytes.NewReader(make([]byte, 4))}
	mod := newMock("arm7", 0, note, bss(0x800, 0x10), seg(0x1000, make([]byte, 0x10)), seg(0x1008, make([]byte, 4)))
	_, err := Extract(NewSink(&buf), mod, logger.Deny)

	var overlap *OverlapError
	if !errors.As(err, &overlap) {
		t.Fatalf("error %v is not an OverlapError", err)
	}
	test.DemandEquality(t, overlap.Segment, 3)
	test.DemandEquality(t, overlap.Error(), "arm7: segment 3 at 0x00001008 overlaps with segment ending at 0x00001010")
}

func TestExtractHonoursDeny(t *testing.T) {
	logger.Clear()
	defer logger.Clear()

	img, err := loader.Load("arm9.elf", test.ELF(elf.EM_ARM, 0x02000000, test.Load(0x02000000, test.Payload(16, 1))))
	test.DemandSuccess(t, err)

	var buf encoding.Buffer
	_, err = Extract(NewSink(&buf), img, logger.Deny)
	test.DemandSuccess(t, err)

	var w strings.Builder
	logger.Write(&w)
	test.DemandEquality(t, w.String(), "")

	_, err = Extract(NewSink(&buf), img, logger.Allow)
	test.DemandSuccess(t, err)
	logger.Write(&w)
	if !strings.Contains(w.String(), "loader: arm9.elf: arm, entry 0x2000000, 1 segments") {
		t.Errorf("log = %q, want a loader entry for arm9.elf", w.String())
	}
}
