// Package filex provides small filesystem helpers for the client: data
// directory setup and photo loading for story submissions.
package filex

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// MaxImageSize caps photos accepted for upload; the remote API rejects
// larger payloads.
const MaxImageSize = 1 << 20

// EnsureSubdDir creates dirName under the current working directory if it
// does not exist yet and returns its absolute path.
func EnsureSubdDir(dirName string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}

	dir := filepath.Join(cwd, dirName)

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// ReadImage loads an image file for upload and reports its MIME type,
// derived from the file extension. Files that are not images or exceed
// MaxImageSize are rejected.
func ReadImage(path string) ([]byte, string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, "", err
	}
	if fi.Size() > MaxImageSize {
		return nil, "", fmt.Errorf("image %s is larger than %d bytes", path, MaxImageSize)
	}

	mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, "", fmt.Errorf("%s is not a supported image file", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	return data, mimeType, nil
}
