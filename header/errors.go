package header

import "errors"

var (
	ErrField          = errors.New("invalid header field")
	ErrShort          = errors.New("header truncated")
	ErrLogoChecksum   = errors.New("logo checksum mismatch")
	ErrHeaderChecksum = errors.New("header checksum mismatch")
)
