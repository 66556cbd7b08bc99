// Package archive writes rendered pages either into a zip archive or
// into a plain output directory.
package archive

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentic-research/bzldoc/internal/render"
)

// WriteZip writes all pages into a single zip archive at path, in page
// order. Nothing is left behind when writing fails.
func WriteZip(path string, pages []render.Page) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	zw := zip.NewWriter(f)
	for _, page := range pages {
		w, werr := zw.Create(page.Name)
		if werr != nil {
			return fmt.Errorf("archive %s: %w", page.Name, werr)
		}
		if _, werr := w.Write(page.Content); werr != nil {
			return fmt.Errorf("archive %s: %w", page.Name, werr)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize archive: %w", err)
	}
	return nil
}

// WriteDir writes each page as a file under dir, creating intermediate
// directories as needed.
func WriteDir(dir string, pages []render.Page) error {
	for _, page := range pages {
		dest := filepath.Join(dir, page.Name)
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return fmt.Errorf("write %s: %w", page.Name, err)
		}
		if err := os.WriteFile(dest, page.Content, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", page.Name, err)
		}
	}
	return nil
}
