package header

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/wnxd/ndsrom/crc"
	"github.com/wnxd/ndsrom/encoding"
)

// https://problemkaputt.de/gbatek.htm#dscartridgeheader

const (
	// RegionSize is the space reserved for the header at the start of the
	// image. The ARM9 binary is placed right after it.
	RegionSize = 0x4000

	// the "older/faster MROM" ROMCTRL settings
	RomCtrl1Default uint32 = 0x00586000
	RomCtrl2Default uint32 = 0x001808F8
	RomCtrl3Default uint16 = 0x051E

	TitleDefault    = "HOMEBREW"
	GameCodeDefault = "####"
)

// Core holds where one CPU's binary is stored and where it is loaded.
type Core struct {
	RomOffset uint32
	EntryAddr uint32
	RAMAddr   uint32
	Size      uint32
}

// Header is the cartridge header. The field order is the on-cartridge
// order; the encoded form is packed little-endian.
type Header struct {
	Title             [12]byte
	GameCode          [4]byte
	MakerCode         [2]byte
	UnitCode          uint8
	EncryptionSeed    uint8
	Capacity          uint8
	Reserved1         [7]byte
	Reserved2         uint8
	Region            uint8
	Version           uint8
	Autostart         uint8
	ARM9              Core
	ARM7              Core
	FNTOffset         uint32
	FNTSize           uint32
	FATOffset         uint32
	FATSize           uint32
	ARM9OverlayOffset uint32
	ARM9OverlaySize   uint32
	ARM7OverlayOffset uint32
	ARM7OverlaySize   uint32
	RomCtrl1          uint32
	RomCtrl2          uint32
	IconTitleOffset   uint32
	SecureAreaCRC     uint16
	RomCtrl3          uint16
	ARM9AutoloadHook  uint32
	ARM7AutoloadHook  uint32
	SecureAreaDisable uint64
	TotalROMSize      uint32
	HeaderSize        uint32
	Reserved3         uint32
	Reserved4         uint64
	NANDROMEnd        uint16
	NANDRWStart       uint16
	Reserved5         [24]byte
	Reserved6         [16]byte
	Logo              [156]byte
	LogoCRC           uint16
	HeaderCRC         uint16
	DebugROMOffset    uint32
	DebugSize         uint32
	DebugRAMAddr      uint32
}

var (
	layout = mustLayout()

	// Size is the number of bytes the encoded header occupies.
	Size = layout.Size

	// ChecksumOffset is where HeaderCRC starts; the header checksum covers
	// every byte before it.
	ChecksumOffset = mustOffset("HeaderCRC")

	SecureAreaCRCOffset = mustOffset("SecureAreaCRC")
	TotalROMSizeOffset  = mustOffset("TotalROMSize")
	LogoOffset          = mustOffset("Logo")
)

func mustLayout() *encoding.Layout {
	l, err := encoding.LayoutOf(Header{})
	if err != nil {
		panic(err)
	}
	return l
}

func mustOffset(name string) int {
	off, ok := layout.Offset(name)
	if !ok {
		panic("header: no field " + name)
	}
	return off
}

// Default returns a header with the homebrew defaults devkitARM uses.
func Default() *Header {
	h := &Header{
		RomCtrl1:   RomCtrl1Default,
		RomCtrl2:   RomCtrl2Default,
		RomCtrl3:   RomCtrl3Default,
		HeaderSize: RegionSize,
		Logo:       Logo,
		LogoCRC:    LogoCRC,
	}
	copy(h.Title[:], TitleDefault)
	copy(h.GameCode[:], GameCodeDefault)
	return h
}

func (h *Header) SetTitle(title string) error {
	return setASCII(h.Title[:], "title", strings.ToUpper(title))
}

func (h *Header) SetGameCode(code string) error {
	return setASCII(h.GameCode[:], "game code", strings.ToUpper(code))
}

func (h *Header) SetMakerCode(code string) error {
	return setASCII(h.MakerCode[:], "maker code", strings.ToUpper(code))
}

func setASCII(dst []byte, field, s string) error {
	if len(s) > len(dst) {
		return fmt.Errorf("%w: %s %q is longer than %d bytes", ErrField, field, s, len(dst))
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7E {
			return fmt.Errorf("%w: %s %q is not printable ASCII", ErrField, field, s)
		}
	}
	clear(dst)
	copy(dst, s)
	return nil
}

func (h *Header) TitleString() string {
	return strings.TrimRight(string(h.Title[:]), "\x00")
}

func (h *Header) GameCodeString() string {
	return strings.TrimRight(string(h.GameCode[:]), "\x00")
}

func (h *Header) MakerCodeString() string {
	return strings.TrimRight(string(h.MakerCode[:]), "\x00")
}

func (h *Header) Bytes() ([]byte, error) {
	return encoding.Marshal(binary.LittleEndian, h)
}

// Seal computes HeaderCRC over every byte before it and returns the final
// encoding. SecureAreaCRC and TotalROMSize must already be set.
func (h *Header) Seal() ([]byte, error) {
	h.HeaderCRC = 0
	b, err := h.Bytes()
	if err != nil {
		return nil, err
	}
	h.HeaderCRC = crc.Checksum(b[:ChecksumOffset])
	binary.LittleEndian.PutUint16(b[ChecksumOffset:], h.HeaderCRC)
	return b, nil
}

func Parse(data []byte) (*Header, error) {
	if len(data) < Size {
		return nil, fmt.Errorf("%w: %d bytes, need %d", ErrShort, len(data), Size)
	}
	h := new(Header)
	if err := encoding.Unmarshal(binary.LittleEndian, data[:Size], h); err != nil {
		return nil, err
	}
	return h, nil
}

// Verify checks the logo and header checksums.
func (h *Header) Verify() error {
	if sum := crc.Checksum(h.Logo[:]); sum != h.LogoCRC {
		return fmt.Errorf("%w: logo is %#04x, field is %#04x", ErrLogoChecksum, sum, h.LogoCRC)
	}
	b, err := h.Bytes()
	if err != nil {
		return err
	}
	if sum := crc.Checksum(b[:ChecksumOffset]); sum != h.HeaderCRC {
		return fmt.Errorf("%w: header is %#04x, field is %#04x", ErrHeaderChecksum, sum, h.HeaderCRC)
	}
	return nil
}
