// Package archive enumerates stylesheets inside directory trees and zip
// archives.
package archive

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"
)

// WalkFunc is called for every stylesheet visited by Walk. Name is the
// slash separated path relative to the walked directory or archive root.
// If an error is returned, processing stops.
type WalkFunc func(name string, data []byte) error

// IsStylesheet reports whether name looks like a stylesheet.
func IsStylesheet(name string) bool {
	return strings.EqualFold(path.Ext(name), ".css")
}

// WalkZip visits stylesheets stored in the zip archive under pattern prefix
// in natural name order. Archives with absolute entries or entries
// containing ".." are rejected.
func WalkZip(ctx context.Context, archive, pattern string, walkFn WalkFunc) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	files := make(map[string]*zip.File)
	names := make([]string, 0, len(r.File))
	for _, f := range r.File {
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() || !strings.HasPrefix(name, pattern) || !IsStylesheet(name) {
			continue
		}
		files[name] = f
		names = append(names, name)
	}
	sort.Sort(natural.StringSlice(names))

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := readZipFile(files[name])
		if err != nil {
			return fmt.Errorf("zip entry %q: %w", name, err)
		}
		if err := walkFn(name, data); err != nil {
			return err
		}
	}
	return nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// WalkDir visits stylesheets under dir. Entries of each directory are
// visited in natural order, symbolic links are not followed.
func WalkDir(ctx context.Context, dir string, walkFn WalkFunc) error {
	return walkDir(ctx, dir, "", walkFn)
}

func walkDir(ctx context.Context, root, rel string, walkFn WalkFunc) error {
	entries, err := os.ReadDir(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return err
	}
	sort.Slice(entries, func(i, j int) bool {
		return natural.Less(entries[i].Name(), entries[j].Name())
	})
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := path.Join(rel, e.Name())
		switch {
		case e.IsDir():
			if err := walkDir(ctx, root, name, walkFn); err != nil {
				return err
			}
		case e.Type()&fs.ModeType == 0 && IsStylesheet(name):
			data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(name)))
			if err != nil {
				return err
			}
			if err := walkFn(name, data); err != nil {
				return err
			}
		}
	}
	return nil
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
