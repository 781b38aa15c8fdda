package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"
)

const filenamePrefix = "ai-generated-"

// Filename names a download after the moment it was made, in Unix
// milliseconds.
func Filename(now time.Time) string {
	return fmt.Sprintf("%s%d.png", filenamePrefix, now.UnixMilli())
}

// EncodePNG writes img to w as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if img == nil {
		return fmt.Errorf("encode png: no image")
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// PNGBytes returns img encoded as PNG.
func PNGBytes(img image.Image) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := EncodePNG(buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Save writes img into dir under Filename(now) and returns the path.
func Save(dir string, img image.Image, now time.Time) (string, error) {
	data, err := PNGBytes(img)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	path := filepath.Join(dir, Filename(now))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
