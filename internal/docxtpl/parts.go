package docxtpl

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// markupDir is the container subtree that holds the document's textual
// markup parts (document body, headers, footers, drawings).
const markupDir = "word"

// Part is one textual markup entry of an unpacked container.
type Part struct {
	// RelPath is the slash-separated path relative to the container root.
	RelPath string
	// Text is the decoded content.
	Text string
}

// ScanParts walks the markup subtree of an unpacked container and returns
// the parts eligible for substitution. Files that do not carry the markup
// extension, or that do not decode as valid UTF-8, are opaque: images and
// embedded objects legitimately live under word/, so they are skipped, never
// reported as errors. Results are ordered by path for determinism.
func ScanParts(root string) ([]Part, error) {
	wordRoot := filepath.Join(root, markupDir)
	if _, err := os.Stat(wordRoot); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat markup subtree: %w", err)
	}

	var parts []Part
	err := filepath.WalkDir(wordRoot, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), ".xml") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read part %s: %w", path, err)
		}
		if !utf8.Valid(data) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("relativize part %s: %w", path, err)
		}
		parts = append(parts, Part{
			RelPath: filepath.ToSlash(rel),
			Text:    string(data),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return parts, nil
}
