package loader

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Image is an ELF executable held entirely in memory.
type Image struct {
	name    string
	arch    Arch
	order   binary.ByteOrder
	entry   uint64
	regions []Region
}

// Open reads the whole file and parses it as an ELF executable.
func Open(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Load(filepath.Base(path), data)
}

func Load(name string, data []byte) (*Image, error) {
	f, err := elf.NewFile(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFormat, name, err)
	}
	defer f.Close()

	img := &Image{
		name:  name,
		arch:  archOf(f.Machine),
		order: f.ByteOrder,
		entry: f.Entry,
	}
	src := bytes.NewReader(data)
	for i, p := range f.Progs {
		if p.Off > uint64(len(data)) || p.Filesz > uint64(len(data))-p.Off {
			return nil, fmt.Errorf("%w: %s: segment %d extends past end of file", ErrFormat, name, i)
		}
		if p.Paddr+p.Filesz < p.Paddr {
			return nil, fmt.Errorf("%w: %s: segment %d wraps the address space", ErrFormat, name, i)
		}
		img.regions = append(img.regions, Region{
			Addr:     p.Paddr,
			Size:     p.Filesz,
			MemSize:  p.Memsz,
			Loadable: p.Type == elf.PT_LOAD,
			ReaderAt: io.NewSectionReader(src, int64(p.Off), int64(p.Filesz)),
		})
	}
	return img, nil
}

func (img *Image) Name() string {
	return img.name
}

func (img *Image) Arch() Arch {
	return img.arch
}

func (img *Image) ByteOrder() binary.ByteOrder {
	return img.order
}

func (img *Image) EntryAddr() uint64 {
	return img.entry
}

func (img *Image) Regions() []Region {
	return img.regions
}

// Check fails with ErrArchMismatch unless the module targets arch.
func Check(mod Module, arch Arch) error {
	if mod.Arch() != arch {
		return fmt.Errorf("%w: %s targets %s, want %s", ErrArchMismatch, mod.Name(), mod.Arch(), arch)
	}
	return nil
}
