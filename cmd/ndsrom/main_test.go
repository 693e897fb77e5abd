package main

import (
	"debug/elf"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wnxd/ndsrom/internal/test"
)

func TestHelp(t *testing.T) {
	for _, argv := range [][]string{nil, {"-h"}, {"--help"}, {"-o", "x.nds", "--help"}} {
		var stdout, stderr strings.Builder
		code := run(argv, &stdout, &stderr)
		test.DemandEquality(t, code, 0, argv)
		test.DemandEquality(t, strings.Contains(stdout.String(), "Usage:"), true, argv)
	}
}

func TestMissingRequired(t *testing.T) {
	var stdout, stderr strings.Builder
	code := run([]string{"-o", "out.nds", "-9", "arm9.elf"}, &stdout, &stderr)
	test.DemandEquality(t, code, 1)
	test.DemandEquality(t, strings.Contains(stderr.String(), "-7"), true)
}

func TestUnknownFlag(t *testing.T) {
	var stdout, stderr strings.Builder
	code := run([]string{"-x"}, &stdout, &stderr)
	test.DemandEquality(t, code, 1)
	test.DemandEquality(t, stderr.Len() > 0, true)
}

func TestBuildAndInfo(t *testing.T) {
	t.Setenv("NDSROM_TITLE", "")
	t.Setenv("NDSROM_GAMECODE", "ENVC")
	t.Setenv("NDSROM_MAKER", "")
	t.Setenv("NDSROM_VERBOSE", "")

	dir := t.TempDir()
	arm9 := filepath.Join(dir, "arm9.elf")
	arm7 := filepath.Join(dir, "arm7.elf")
	out := filepath.Join(dir, "game.nds")
	test.DemandSuccess(t, os.WriteFile(arm9, test.ELF(elf.EM_ARM, 0x02000000, test.Load(0x02000000, test.Payload(100, 1))), 0o644))
	test.DemandSuccess(t, os.WriteFile(arm7, test.ELF(elf.EM_ARM, 0x02380000, test.Load(0x02380000, test.Payload(50, 2))), 0o644))

	var stdout, stderr strings.Builder
	code := run([]string{"-o", out, "-9", arm9, "-7", arm7, "-title", "demo"}, &stdout, &stderr)
	test.DemandEquality(t, code, 0, stderr.String())

	stdout.Reset()
	code = run([]string{"-info", out}, &stdout, &stderr)
	test.DemandEquality(t, code, 0, stderr.String())
	test.DemandEquality(t, strings.Contains(stdout.String(), "title:      DEMO\n"), true, stdout.String())
	test.DemandEquality(t, strings.Contains(stdout.String(), "game code:  ENVC\n"), true, stdout.String())
	test.DemandEquality(t, strings.Contains(stdout.String(), "total size: 0x8032\n"), true, stdout.String())
}

func TestBuildFailure(t *testing.T) {
	dir := t.TempDir()
	arm9 := filepath.Join(dir, "arm9.elf")
	out := filepath.Join(dir, "game.nds")
	test.DemandSuccess(t, os.WriteFile(arm9, test.ELF(elf.EM_386, 0x1000, test.Load(0x1000, []byte{1, 2, 3, 4})), 0o644))

	var stdout, stderr strings.Builder
	code := run([]string{"-o", out, "-9", arm9, "-7", arm9}, &stdout, &stderr)
	test.DemandEquality(t, code, 1)
	test.DemandEquality(t, strings.Contains(stderr.String(), "architecture mismatch"), true, stderr.String())
	_, err := os.Stat(out)
	test.DemandFailure(t, err)
}
