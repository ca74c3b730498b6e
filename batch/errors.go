package batch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

type ErrorKind string

const (
	NotFound   ErrorKind = "not_found"
	Permission ErrorKind = "permission"
	Encoding   ErrorKind = "encoding"
	Archive    ErrorKind = "archive"
	ReadFailed ErrorKind = "read"
)

// FileError describes why a password list could not be read. It never
// carries the contents of the file.
type FileError struct {
	Path string
	Kind ErrorKind
	Err  error
}

func (e *FileError) Error() string {
	switch e.Kind {
	case NotFound:
		return fmt.Sprintf("%s: file not found", e.Path)
	case Permission:
		return fmt.Sprintf("%s: permission denied", e.Path)
	case Encoding:
		return fmt.Sprintf("%s: not valid UTF-8 (%s)", e.Path, e.Err)
	case Archive:
		return fmt.Sprintf("%s: cannot unpack archive (%s)", e.Path, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
}

func (e *FileError) Unwrap() error {
	return e.Err
}

func classify(path string, err error) *FileError {
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr
	}

	kind := ReadFailed
	switch {
	case errors.Is(err, fs.ErrNotExist):
		kind = NotFound
	case errors.Is(err, fs.ErrPermission) || os.IsPermission(err):
		kind = Permission
	}

	return &FileError{Path: path, Kind: kind, Err: err}
}
