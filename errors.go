package mio

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidHandle   = fmt.Errorf("%w: file handle is nil or closed", ErrInvalidArgument)
	ErrInvalidMode     = fmt.Errorf("%w: unrecognized open mode", ErrInvalidArgument)
	ErrNegativeSize    = fmt.Errorf("%w: size is negative", ErrInvalidArgument)
	ErrNilBuffer       = fmt.Errorf("%w: buffer is nil", ErrInvalidArgument)
	ErrWrongMode       = errors.New("operation not permitted in this open mode")
	ErrUnderlyingIO    = errors.New("underlying io failed")
	ErrFileIsLocked    = errors.New("the file is locked by another process")
	ErrMMapReadOnly    = errors.New("memory map io only supports read mode")
	ErrInvalidOptions  = errors.New("invalid options")
)

// ioError 包装底层 IO 错误，同时保留 ErrUnderlyingIO 和原始错误
func ioError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUnderlyingIO, op, err)
}
