// Package image provides image loading and validation for photos and
// reference rasters.
package image

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// MaxUploadBytes bounds how much of a stream Decode will read.
const MaxUploadBytes = 16 << 20

var (
	// ErrInvalidImage reports input that cannot be turned into pixels.
	ErrInvalidImage = errors.New("invalid image")

	// ErrUnsupportedFormat reports a file extension outside SupportedFormats.
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// Decoded is an image together with the format name reported by the decoder.
type Decoded struct {
	Image  image.Image
	Format string
	Path   string
}

// Width returns the image width in pixels.
func (d *Decoded) Width() int {
	if d == nil || d.Image == nil {
		return 0
	}
	return d.Image.Bounds().Dx()
}

// Height returns the image height in pixels.
func (d *Decoded) Height() int {
	if d == nil || d.Image == nil {
		return 0
	}
	return d.Image.Bounds().Dy()
}

// Load opens and decodes the image at path.
func Load(path string) (*Decoded, error) {
	if !IsSupportedFormat(path) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	d, err := Decode(file)
	if err != nil {
		return nil, err
	}
	d.Path = path
	return d, nil
}

// Decode reads at most MaxUploadBytes from r and decodes them.
func Decode(r io.Reader) (*Decoded, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return DecodeBytes(data)
}

// DecodeBytes decodes an in-memory upload.
func DecodeBytes(data []byte) (*Decoded, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidImage)
	}
	if len(data) > MaxUploadBytes {
		return nil, fmt.Errorf("%w: larger than %d bytes", ErrInvalidImage, MaxUploadBytes)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode: %v", ErrInvalidImage, err)
	}
	if err := Validate(img); err != nil {
		return nil, err
	}
	return &Decoded{Image: img, Format: format}, nil
}

// Validate rejects nil and zero-area images.
func Validate(img image.Image) error {
	if img == nil {
		return fmt.Errorf("%w: nil image", ErrInvalidImage)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return fmt.Errorf("%w: empty bounds %v", ErrInvalidImage, b)
	}
	return nil
}

// SupportedFormats returns the list of supported image formats.
func SupportedFormats() []string {
	return []string{".png", ".jpg", ".jpeg", ".bmp", ".tiff", ".tif"}
}

// IsSupportedFormat checks if the given path has a supported image format.
func IsSupportedFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range SupportedFormats() {
		if ext == format {
			return true
		}
	}
	return false
}
