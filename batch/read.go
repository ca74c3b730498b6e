// Package batch reads password lists for bulk checking and summarises the
// results.
package batch

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"code.cloudfoundry.org/archiver/extractor"
	"code.cloudfoundry.org/lager"
	"github.com/hashicorp/go-multierror"

	"github.com/pwaudit/pwaudit/mimetype"
)

var bom = []byte("\xef\xbb\xbf")

type Reader struct {
	tempDir string
}

// NewReader returns a Reader that unpacks archives below tempDir. An empty
// tempDir uses the system default.
func NewReader(tempDir string) *Reader {
	return &Reader{tempDir: tempDir}
}

// Read is NewReader("").Read.
func Read(logger lager.Logger, path string) ([]string, error) {
	return NewReader("").Read(logger, path)
}

// Read returns the passwords listed in path, one per line with surrounding
// whitespace and blank lines dropped. path may be a plain or gzipped text
// file, a zip or gzipped tar archive, or a directory. Failures are returned
// as *FileError; for archives and directories the readable files still
// contribute their passwords alongside a multierror of the failures.
func (r *Reader) Read(logger lager.Logger, path string) ([]string, error) {
	logger = logger.Session("read-batch", lager.Data{"path": path})
	logger.Debug("starting")
	defer logger.Debug("done")

	info, err := os.Stat(path)
	if err != nil {
		logger.Error("failed", err)
		return nil, classify(path, err)
	}

	if info.IsDir() {
		return r.readDir(logger, path, path)
	}

	mime, isArchive := mimetype.IsArchive(path)
	switch {
	case !isArchive:
		return readFile(path, path)
	case mime == mimetype.Gzip:
		return readGzip(path)
	case mimetype.IsExtractable(mime):
		return r.readArchive(logger, path)
	default:
		return nil, &FileError{Path: path, Kind: Archive, Err: fmt.Errorf("unsupported archive type %s", mime)}
	}
}

func (r *Reader) readArchive(logger lager.Logger, path string) ([]string, error) {
	dest, err := ioutil.TempDir(r.tempDir, "pwaudit-batch")
	if err != nil {
		return nil, &FileError{Path: path, Kind: ReadFailed, Err: err}
	}
	defer os.RemoveAll(dest)

	if err := extractor.NewDetectable().Extract(path, dest); err != nil {
		logger.Error("extract-failed", err)
		return nil, &FileError{Path: path, Kind: Archive, Err: err}
	}

	return r.readDir(logger, dest, path)
}

// readDir reads every regular file below dir in lexical order. display
// replaces dir in reported paths.
func (r *Reader) readDir(logger lager.Logger, dir, display string) ([]string, error) {
	var (
		passwords []string
		result    *multierror.Error
	)

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		name := displayName(dir, display, path)

		if err != nil {
			result = multierror.Append(result, classify(name, err))
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !info.Mode().IsRegular() {
			return nil
		}

		logger.Debug("reading-entry", lager.Data{"entry": name})

		var found []string
		if mime, isArchive := mimetype.IsArchive(path); isArchive && mime == mimetype.Gzip {
			found, err = readGzip(path)
		} else {
			found, err = readFile(path, name)
		}
		if err != nil {
			result = multierror.Append(result, relabel(err, name))
			return nil
		}

		passwords = append(passwords, found...)
		return nil
	})
	if err != nil {
		result = multierror.Append(result, classify(display, err))
	}

	return passwords, result.ErrorOrNil()
}

func displayName(dir, display, path string) string {
	rel, err := filepath.Rel(dir, path)
	if err != nil || rel == "." {
		return display
	}
	return filepath.Join(display, rel)
}

func relabel(err error, name string) error {
	fileErr := classify(name, err)
	fileErr.Path = name
	return fileErr
}

func readFile(path, name string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, classify(name, err)
	}
	defer file.Close()

	return parse(name, file)
}

func readGzip(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, classify(path, err)
	}
	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return nil, &FileError{Path: path, Kind: Archive, Err: err}
	}
	defer gz.Close()

	return parse(path, gz)
}

func parse(name string, r io.Reader) ([]string, error) {
	contents, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, &FileError{Path: name, Kind: ReadFailed, Err: err}
	}

	contents = bytes.TrimPrefix(contents, bom)

	var passwords []string
	for i, line := range bytes.Split(contents, []byte("\n")) {
		if !utf8.Valid(line) {
			return nil, &FileError{Path: name, Kind: Encoding, Err: fmt.Errorf("line %d", i+1)}
		}

		password := strings.TrimSpace(string(line))
		if password == "" {
			continue
		}
		passwords = append(passwords, password)
	}

	return passwords, nil
}
