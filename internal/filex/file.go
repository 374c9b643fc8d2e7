// Package filex holds small file helpers for the CLI: preparing the
// database location and reading files picked for upload.
package filex

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
)

// MaxUploadSize caps files read by ReadUpload.
const MaxUploadSize = 10 << 20

var ErrTooLarge = errors.New("file too large")

// EnsureParentDir creates the directory that will hold path.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

// Upload is a file read from disk, ready for a multipart part.
type Upload struct {
	Name        string
	ContentType string
	Data        []byte
}

// ReadUpload reads path and sniffs its content type. Files over
// MaxUploadSize are refused without being read.
func ReadUpload(path string) (Upload, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return Upload{}, err
	}
	if fi.IsDir() {
		return Upload{}, fmt.Errorf("%s is a directory", path)
	}
	if fi.Size() > MaxUploadSize {
		return Upload{}, fmt.Errorf("%s: %w (%d bytes)", path, ErrTooLarge, fi.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Upload{}, err
	}
	return Upload{
		Name:        filepath.Base(path),
		ContentType: http.DetectContentType(data),
		Data:        data,
	}, nil
}
