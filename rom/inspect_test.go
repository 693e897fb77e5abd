package rom

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/wnxd/ndsrom/encoding"
	"github.com/wnxd/ndsrom/header"
	"github.com/wnxd/ndsrom/internal/test"
	"github.com/wnxd/ndsrom/logger"
)

func buildSample(t *testing.T) encoding.Buffer {
	t.Helper()
	arm9 := newMock("arm9", 0x02000000, seg(0x02000000, test.Payload(100, 1)))
	arm7 := newMock("arm7", 0x02380000, seg(0x02380000, test.Payload(50, 2)))
	var buf encoding.Buffer
	_, err := New(WithLogger(logger.Deny)).Build(&buf, arm9, arm7)
	test.DemandSuccess(t, err)
	return buf
}

func TestInspectDetectsDamage(t *testing.T) {
	tests := []struct {
		name   string
		damage func(encoding.Buffer) encoding.Buffer
		want   error
	}{
		{
			name: "secure area byte",
			damage: func(b encoding.Buffer) encoding.Buffer {
				b[0x4010] ^= 0xFF
				return b
			},
			want: ErrSecureArea,
		},
		{
			name: "header byte",
			damage: func(b encoding.Buffer) encoding.Buffer {
				b[0x2C] ^= 0x01
				return b
			},
			want: header.ErrHeaderChecksum,
		},
		{
			name: "appended bytes",
			damage: func(b encoding.Buffer) encoding.Buffer {
				return append(b, 0, 0, 0, 0)
			},
			want: ErrTotalSize,
		},
		{
			name: "arm7 past end",
			damage: func(b encoding.Buffer) encoding.Buffer {
				binary.LittleEndian.PutUint32(b[0x3C:], 0x100)
				h, err := header.Parse(b)
				if err != nil {
					panic(err)
				}
				sealed, err := h.Seal()
				if err != nil {
					panic(err)
				}
				copy(b, sealed)
				return b
			},
			want: ErrPlacement,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := tt.damage(buildSample(t))
			_, err := Inspect(&buf, int64(buf.Len()))
			if !errors.Is(err, tt.want) {
				t.Errorf("Inspect() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestInspectShortFile(t *testing.T) {
	buf := make(encoding.Buffer, 0x20)
	_, err := Inspect(&buf, int64(buf.Len()))
	test.DemandFailure(t, err)
}
