// Package security provides path and size guards for files polycue writes and
// reads back.
package security

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ErrSizeLimit is returned by LimitedReader once its budget is spent.
var ErrSizeLimit = errors.New("decompression size limit exceeded")

// ValidateFilePath validates a file name to be written under, or read from an
// archive into, baseDir. It rejects traversal and absolute paths.
func ValidateFilePath(filePath, baseDir string) error {
	if filePath == "" {
		return fmt.Errorf("empty file path")
	}

	// Check for dangerous patterns
	if strings.Contains(filePath, "..") {
		return fmt.Errorf("file path contains directory traversal (..) - not allowed")
	}

	if filepath.IsAbs(filePath) {
		return fmt.Errorf("absolute paths are not allowed: %s", filePath)
	}

	// A "." base has no prefix to compare against once joined
	if filepath.Clean(baseDir) == "." {
		if !filepath.IsLocal(filePath) {
			return fmt.Errorf("file path would escape base directory")
		}
		return nil
	}

	// Ensure the final path would be within baseDir
	finalPath := filepath.Join(baseDir, filePath)
	cleanFinal := filepath.Clean(finalPath)
	cleanBase := filepath.Clean(baseDir)

	if !strings.HasPrefix(cleanFinal, cleanBase+string(filepath.Separator)) &&
		cleanFinal != cleanBase {
		return fmt.Errorf("file path would escape base directory")
	}

	return nil
}

// LimitedReader wraps an io.Reader and limits the total bytes that can be read.
// Unlike io.LimitReader it fails loudly instead of reporting EOF.
type LimitedReader struct {
	R         io.Reader
	Remaining int64
}

// Read implements io.Reader with size limits.
func (l *LimitedReader) Read(p []byte) (int, error) {
	if l.Remaining <= 0 {
		return 0, ErrSizeLimit
	}
	if int64(len(p)) > l.Remaining {
		p = p[:l.Remaining]
	}
	n, err := l.R.Read(p)
	l.Remaining -= int64(n)
	return n, err
}

// NewLimitedReader creates a new LimitedReader with the specified size limit.
func NewLimitedReader(r io.Reader, maxBytes int64) *LimitedReader {
	return &LimitedReader{
		R:         r,
		Remaining: maxBytes,
	}
}
