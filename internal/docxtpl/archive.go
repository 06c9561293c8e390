package docxtpl

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrBadContainer marks a source container that is missing, unreadable, or
// structurally corrupt. Filesystem failures while writing extracted entries
// are plain errors; only source-side problems carry this marker.
var ErrBadContainer = errors.New("bad container")

// Unpack extracts the zip-structured container at src into destDir,
// preserving entry relative paths exactly. The input file is never mutated.
func Unpack(src, destDir string) error {
	reader, err := zip.OpenReader(src)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", ErrBadContainer, src, err)
	}
	defer reader.Close()

	for _, entry := range reader.File {
		if err := extractEntry(entry, destDir); err != nil {
			return err
		}
	}
	return nil
}

func extractEntry(entry *zip.File, destDir string) error {
	target, err := securePath(destDir, entry.Name)
	if err != nil {
		return err
	}

	if entry.FileInfo().IsDir() {
		return os.MkdirAll(target, 0o755)
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create entry directory: %w", err)
	}

	rc, err := entry.Open()
	if err != nil {
		return fmt.Errorf("%w: open entry %s: %w", ErrBadContainer, entry.Name, err)
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create entry %s: %w", entry.Name, err)
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return fmt.Errorf("extract entry %s: %w", entry.Name, err)
	}
	return out.Close()
}

// securePath rejects entry names that would escape destDir.
func securePath(destDir, name string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(name))
	if filepath.IsAbs(cleaned) || strings.HasPrefix(cleaned, ".."+string(os.PathSeparator)) || cleaned == ".." {
		return "", fmt.Errorf("%w: entry %q escapes extraction directory", ErrBadContainer, name)
	}
	return filepath.Join(destDir, cleaned), nil
}

// Repack assembles a fresh deflate-compressed container at destPath from
// every file under srcDir, each at its original relative path. A
// pre-existing destination is removed first; on a write failure the
// destination must be treated as invalid by the caller.
func Repack(srcDir, destPath string) error {
	if err := os.Remove(destPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove existing destination %s: %w", destPath, err)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("create destination %s: %w", destPath, err)
	}
	writer := zip.NewWriter(out)

	err = filepath.WalkDir(srcDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return fmt.Errorf("relativize %s: %w", path, err)
		}
		header, err := writer.Create(filepath.ToSlash(rel))
		if err != nil {
			return fmt.Errorf("create archive entry %s: %w", rel, err)
		}
		in, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		defer in.Close()
		if _, err := io.Copy(header, in); err != nil {
			return fmt.Errorf("write archive entry %s: %w", rel, err)
		}
		return nil
	})
	if err != nil {
		writer.Close()
		out.Close()
		return err
	}

	if err := writer.Close(); err != nil {
		out.Close()
		return fmt.Errorf("finalize container: %w", err)
	}
	return out.Close()
}
