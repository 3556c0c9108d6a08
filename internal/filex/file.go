// Package filex has file helpers for the client: the local data directory
// and reading images picked for upload.
package filex

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/batiknft/internal/common"
)

// MaxImageSize is the largest image accepted for upload, in bytes.
const MaxImageSize = 5_000_000

// EnsureDir creates dir (relative paths are resolved against the working
// directory) and returns its absolute path.
func EnsureDir(dir string) (string, error) {
	if !filepath.IsAbs(dir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		dir = filepath.Join(cwd, dir)
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// Image is an upload candidate read fully into memory.
type Image struct {
	Name        string
	ContentType string
	Data        []byte
}

// ReadImage loads path and checks it is an image no larger than maxSize.
// Anything else fails with common.ErrUploadRejected.
func ReadImage(path string, maxSize int64) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if int64(len(data)) > maxSize {
		return nil, fmt.Errorf("%w: %s is larger than %d bytes", common.ErrUploadRejected, filepath.Base(path), maxSize)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", common.ErrUploadRejected, filepath.Base(path))
	}

	ct := http.DetectContentType(data)
	if !strings.HasPrefix(ct, "image/") {
		return nil, fmt.Errorf("%w: %s is %s, not an image", common.ErrUploadRejected, filepath.Base(path), ct)
	}

	return &Image{Name: filepath.Base(path), ContentType: ct, Data: data}, nil
}
