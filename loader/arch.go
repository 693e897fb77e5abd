package loader

import "debug/elf"

type Arch int

const (
	ARCH_UNKNOWN Arch = iota
	ARCH_ARM
	ARCH_ARM64
	ARCH_X86
	ARCH_X86_64
)

func (a Arch) String() string {
	switch a {
	case ARCH_ARM:
		return "arm"
	case ARCH_ARM64:
		return "arm64"
	case ARCH_X86:
		return "x86"
	case ARCH_X86_64:
		return "x86_64"
	}
	return "unknown"
}

func archOf(m elf.Machine) Arch {
	switch m {
	case elf.EM_ARM:
		return ARCH_ARM
	case elf.EM_AARCH64:
		return ARCH_ARM64
	case elf.EM_386:
		return ARCH_X86
	case elf.EM_X86_64:
		return ARCH_X86_64
	}
	return ARCH_UNKNOWN
}
