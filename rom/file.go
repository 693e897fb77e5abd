package rom

import (
	"errors"
	"os"

	"github.com/wnxd/ndsrom/loader"
	"github.com/wnxd/ndsrom/logger"
)

// BuildFile loads both executables and writes the image to output,
// replacing anything already there. On failure the output file is removed
// so that no partial image is left behind.
func (b *Builder) BuildFile(output, arm9Path, arm7Path string) (res *Result, err error) {
	arm9, err := loader.Open(arm9Path)
	if err != nil {
		return nil, err
	}
	arm7, err := loader.Open(arm7Path)
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(output, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			res = nil
			if rerr := os.Remove(output); rerr != nil && !errors.Is(rerr, os.ErrNotExist) {
				logger.Logf(b.config.Perm, "rom", "removing %s: %v", output, rerr)
			}
		}
	}()

	if res, err = b.Build(f, arm9, arm7); err != nil {
		return nil, err
	}
	if err = f.Sync(); err != nil {
		return nil, err
	}
	logger.Logf(b.config.Perm, "rom", "wrote %s (%d bytes)", output, res.Size)
	return res, nil
}

// BuildFile is shorthand for New(opts...).BuildFile.
func BuildFile(output, arm9Path, arm7Path string, opts ...Option) (*Result, error) {
	return New(opts...).BuildFile(output, arm9Path, arm7Path)
}
