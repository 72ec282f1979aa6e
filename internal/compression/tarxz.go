// Package compression bundles colorsort output directories into .tar.xz archives.
package compression

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ulikunitz/xz"

	"github.com/jmylchreest/colorsort/internal/security"
)

// MaxExtractSize caps the bytes written for any single archive entry.
const MaxExtractSize = 512 * 1024 * 1024

// Entry describes one file in an archive.
type Entry struct {
	Name string
	Size int64
}

// WriteTarXz archives every regular file below srcDir into destPath. Entry
// names are slash-separated paths relative to srcDir. destPath may live
// inside srcDir; it is never archived into itself.
func WriteTarXz(srcDir, destPath string) (err error) {
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("failed to create archive directory: %w", err)
	}

	out, err := os.Create(destPath) // #nosec G304 -- archive path chosen by the user
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	defer func() {
		if closeErr := out.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("failed to close archive: %w", closeErr)
		}
	}()

	xzw, err := xz.NewWriter(out)
	if err != nil {
		return fmt.Errorf("failed to create xz writer: %w", err)
	}
	tw := tar.NewWriter(xzw)

	absDest, err := filepath.Abs(destPath)
	if err != nil {
		return fmt.Errorf("failed to resolve archive path: %w", err)
	}

	walkErr := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if abs, err := filepath.Abs(path); err == nil && abs == absDest {
			return nil
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		return addFile(tw, path, filepath.ToSlash(rel))
	})
	if walkErr != nil {
		return fmt.Errorf("failed to archive %s: %w", srcDir, walkErr)
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("failed to finish tar stream: %w", err)
	}
	if err := xzw.Close(); err != nil {
		return fmt.Errorf("failed to finish xz stream: %w", err)
	}
	return nil
}

func addFile(tw *tar.Writer, path, name string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	header, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	header.Name = name

	if err := tw.WriteHeader(header); err != nil {
		return err
	}

	f, err := os.Open(path) // #nosec G304 -- walking the user's output directory
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	_, err = io.Copy(tw, f)
	return err
}

// ListTarXz returns the regular-file entries of a .tar.xz archive in stored order.
func ListTarXz(path string) ([]Entry, error) {
	var entries []Entry
	err := walkTarXz(path, func(header *tar.Header, _ io.Reader) error {
		entries = append(entries, Entry{Name: header.Name, Size: header.Size})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ExtractTarXz unpacks a .tar.xz archive into destDir. Entries that would
// escape destDir are rejected.
func ExtractTarXz(path, destDir string) ([]string, error) {
	var written []string
	err := walkTarXz(path, func(header *tar.Header, r io.Reader) error {
		if err := security.ValidateFilePath(header.Name, destDir); err != nil {
			return fmt.Errorf("unsafe entry %q: %w", header.Name, err)
		}

		target := filepath.Join(destDir, filepath.FromSlash(header.Name))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", header.Name, err)
		}

		out, err := os.Create(target) // #nosec G304 -- validated against destDir above
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", target, err)
		}
		_, copyErr := io.Copy(out, security.NewLimitedReader(r, MaxExtractSize))
		closeErr := out.Close()

		if copyErr != nil {
			return fmt.Errorf("failed to extract %s: %w", header.Name, copyErr)
		}
		if closeErr != nil {
			return fmt.Errorf("failed to close %s: %w", target, closeErr)
		}

		written = append(written, target)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return written, nil
}

func walkTarXz(path string, fn func(*tar.Header, io.Reader) error) error {
	f, err := os.Open(path) // #nosec G304 -- archive path chosen by the user
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer func() { _ = f.Close() }()

	xzr, err := xz.NewReader(f)
	if err != nil {
		return fmt.Errorf("failed to create xz reader: %w", err)
	}
	tr := tar.NewReader(xzr)

	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read tar archive: %w", err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}
		if err := fn(header, tr); err != nil {
			return err
		}
	}
}
