// Package export writes rendered frames to image files.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

var ErrUnsupportedFormat = errors.New("export: unsupported image format")

// ResourceError reports a failed write. The frame being saved is never
// modified.
type ResourceError struct {
	Op   string
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("export: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

type encoder func(io.Writer, image.Image) error

var encoders = map[string]encoder{
	".png":  png.Encode,
	".bmp":  bmp.Encode,
	".tif":  encodeTIFF,
	".tiff": encodeTIFF,
}

func encodeTIFF(w io.Writer, img image.Image) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
}

// Formats lists the accepted extensions.
func Formats() []string {
	return []string{".png", ".bmp", ".tif", ".tiff"}
}

// ParseFormat turns "tiff", ".TIFF" or "" into a known extension. An
// empty value means PNG.
func ParseFormat(s string) (string, error) {
	ext := strings.ToLower(strings.TrimSpace(s))
	if ext == "" {
		return ".png", nil
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	if !slices.Contains(Formats(), ext) {
		return "", fmt.Errorf("%w: %q (want one of %s)", ErrUnsupportedFormat, s, strings.Join(Formats(), ", "))
	}
	return ext, nil
}

// SaveToFile encodes img by the extension of path. A path without an
// extension gets PNG.
func SaveToFile(path string, img image.Image) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		ext = ".png"
	}
	enc, ok := encoders[ext]
	if !ok {
		return &ResourceError{Op: "encode", Path: path, Err: fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)}
	}

	f, err := os.Create(path)
	if err != nil {
		return &ResourceError{Op: "create", Path: path, Err: err}
	}
	if err := enc(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return &ResourceError{Op: "encode", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &ResourceError{Op: "close", Path: path, Err: err}
	}
	return nil
}
