// Package files provides the file-opening layer for feed and reference-data
// files: extension-based decompression and feed-file discovery.
package files

import (
	"archive/zip"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	apperrors "fmdcli/internal/errors"
)

// Open returns a raw byte stream for the given feed file. Compression is
// selected by extension: .gz and .zip archives are unwrapped transparently,
// anything else is opened as-is. Closing the returned stream releases every
// underlying resource.
func Open(path string) (io.ReadCloser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return openGzip(path)
	case ".zip":
		return openZip(path)
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, apperrors.NewStorageError(fmt.Sprintf("failed to open feed file %q", path), err)
		}
		return f, nil
	}
}

func openGzip(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to open feed file %q", path), err)
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to decompress %q", path), err)
	}
	return &compoundCloser{Reader: gz, closers: []io.Closer{gz, f}}, nil
}

func openZip(path string) (io.ReadCloser, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to open archive %q", path), err)
	}
	for _, entry := range archive.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			archive.Close()
			return nil, apperrors.NewStorageError(fmt.Sprintf("failed to read %q from archive %q", entry.Name, path), err)
		}
		return &compoundCloser{Reader: rc, closers: []io.Closer{rc, archive}}, nil
	}
	archive.Close()
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("archive %q contains no files", path), nil)
}

// compoundCloser reads from Reader and closes every underlying resource
// exactly once, in order.
type compoundCloser struct {
	io.Reader
	closers []io.Closer
	closed  bool
}

func (c *compoundCloser) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	var first error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// feedExtensions are the file shapes Discover recognizes as feed files.
var feedExtensions = []string{".csv", ".csv.gz", ".csv.zip"}

// Discover lists the feed files in dir, sorted by name so date-stamped files
// process in chronological order.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to list feed directory %q", dir), err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := strings.ToLower(entry.Name())
		for _, ext := range feedExtensions {
			if strings.HasSuffix(name, ext) {
				paths = append(paths, filepath.Join(dir, entry.Name()))
				break
			}
		}
	}

	sort.Strings(paths)
	return paths, nil
}
