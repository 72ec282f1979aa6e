package visual

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/nfnt/resize"
)

const (
	// MaxImageDim caps both dimensions of saved graphics.
	MaxImageDim = 12000

	jpegQuality = 95
)

// Cap shrinks img so neither dimension exceeds MaxImageDim, keeping its aspect ratio.
func Cap(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dx() <= MaxImageDim && b.Dy() <= MaxImageDim {
		return img
	}
	return resize.Thumbnail(MaxImageDim, MaxImageDim, img, resize.Bilinear)
}

// SavePNG writes img as PNG, creating parent directories as needed.
func SavePNG(img image.Image, path string) error {
	return save(path, func(w io.Writer) error {
		return png.Encode(w, Cap(img))
	})
}

// SaveJPEG writes img as JPEG, creating parent directories as needed.
func SaveJPEG(img image.Image, path string) error {
	return save(path, func(w io.Writer) error {
		return jpeg.Encode(w, Cap(img), &jpeg.Options{Quality: jpegQuality})
	})
}

// Save picks the encoder from the file extension. Anything other than
// .jpg or .jpeg is written as PNG.
func Save(img image.Image, path string) error {
	switch filepath.Ext(path) {
	case ".jpg", ".jpeg", ".JPG", ".JPEG":
		return SaveJPEG(img, path)
	default:
		return SavePNG(img, path)
	}
}

func save(path string, encode func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- output path chosen by the user
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := encode(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

// LinkOrCopy hard-links src to dest, copying the file when a link cannot be
// made (for example across filesystems).
func LinkOrCopy(src, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.Link(src, dest); err == nil {
		return nil
	}
	return copyFile(src, dest)
}

func copyFile(src, dest string) error {
	in, err := os.Open(src) // #nosec G304 -- source is a discovered input image
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dest) // #nosec G304 -- output path chosen by the user
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to copy %s to %s: %w", src, dest, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", dest, err)
	}
	return nil
}
