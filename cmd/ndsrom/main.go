package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/wnxd/ndsrom/config"
	"github.com/wnxd/ndsrom/logger"
	"github.com/wnxd/ndsrom/rom"
)

var version = "unknown"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type args struct {
	output string
	arm9   string
	arm7   string
	info   string
	flags  config.Config
}

func newFlagSet(a *args, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("ndsrom", flag.ContinueOnError)
	fs.SetOutput(stderr)
	for _, name := range []string{"o", "output"} {
		fs.StringVar(&a.output, name, "", "output NDS `file`")
	}
	for _, name := range []string{"9", "arm9-exe"} {
		fs.StringVar(&a.arm9, name, "", "ARM9 executable `file` (ELF)")
	}
	for _, name := range []string{"7", "arm7-exe"} {
		fs.StringVar(&a.arm7, name, "", "ARM7 executable `file` (ELF)")
	}
	fs.StringVar(&a.info, "info", "", "check an existing NDS `file` and print its header")
	fs.StringVar(&a.flags.Title, "title", "", "game title, up to 12 ASCII characters")
	fs.StringVar(&a.flags.GameCode, "code", "", "game code, up to 4 ASCII characters")
	fs.StringVar(&a.flags.MakerCode, "maker", "", "maker code, up to 2 ASCII characters")
	fs.BoolVar(&a.flags.Verbose, "v", false, "log every build step")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "ndsrom version %s\n\nUsage:\n  ndsrom -o <file.nds> -9 <arm9.elf> -7 <arm7.elf> [options]\n  ndsrom -info <file.nds>\n\nOptions:\n", version)
		fs.PrintDefaults()
	}
	return fs
}

func wantsHelp(argv []string) bool {
	if len(argv) == 0 {
		return true
	}
	for _, a := range argv {
		if a == "-h" || a == "--help" || a == "-help" {
			return true
		}
	}
	return false
}

func run(argv []string, stdout, stderr io.Writer) int {
	var a args
	fs := newFlagSet(&a, stderr)

	if wantsHelp(argv) {
		fs.SetOutput(stdout)
		fs.Usage()
		return 0
	}
	if err := fs.Parse(argv); err != nil {
		return 1
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected argument: %s\n", fs.Arg(0))
		return 1
	}

	cfg := config.FromEnv().Merge(a.flags)
	if cfg.Verbose {
		logger.SetEcho(stderr)
		defer logger.SetEcho(nil)
	}

	if a.info != "" {
		return info(a.info, stdout, stderr)
	}

	var missing []string
	if a.output == "" {
		missing = append(missing, "-o")
	}
	if a.arm9 == "" {
		missing = append(missing, "-9")
	}
	if a.arm7 == "" {
		missing = append(missing, "-7")
	}
	if len(missing) > 0 {
		fmt.Fprintf(stderr, "required option missing: %v\n", missing)
		return 1
	}

	_, err := rom.BuildFile(a.output, a.arm9, a.arm7, rom.WithConfig(cfg))
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 1
	}
	return 0
}

func info(path string, stdout, stderr io.Writer) int {
	rep, err := rom.InspectFile(path)
	if rep != nil {
		h := rep.Header
		fmt.Fprintf(stdout, "title:      %s\n", h.TitleString())
		fmt.Fprintf(stdout, "game code:  %s\n", h.GameCodeString())
		fmt.Fprintf(stdout, "maker code: %s\n", h.MakerCodeString())
		fmt.Fprintf(stdout, "arm9:       rom %#08x entry %#010x ram %#010x size %#x\n", h.ARM9.RomOffset, h.ARM9.EntryAddr, h.ARM9.RAMAddr, h.ARM9.Size)
		fmt.Fprintf(stdout, "arm7:       rom %#08x entry %#010x ram %#010x size %#x\n", h.ARM7.RomOffset, h.ARM7.EntryAddr, h.ARM7.RAMAddr, h.ARM7.Size)
		fmt.Fprintf(stdout, "secure crc: %#04x\n", h.SecureAreaCRC)
		fmt.Fprintf(stdout, "header crc: %#04x\n", h.HeaderCRC)
		fmt.Fprintf(stdout, "total size: %#x\n", h.TotalROMSize)
	}
	if err != nil {
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			fmt.Fprintf(stderr, "unable to open file: %v\n", err)
		} else {
			fmt.Fprintf(stderr, "ERROR: %v\n", err)
		}
		return 1
	}
	return 0
}
