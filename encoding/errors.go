package encoding

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type")
	ErrNotPointer      = errors.New("decode target is not a pointer")
	ErrNegativeOffset  = errors.New("negative offset")
	ErrNegativeSkip    = errors.New("negative skip")
)
