package docxtpl

import (
	"fmt"
	"os"
	"path/filepath"
)

// FillStats reports what a FillTree pass did.
type FillStats struct {
	PartsScanned int
	PartsChanged int
	Replacements int
}

// FillTree substitutes fields into every textual markup part of an unpacked
// container rooted at root. Only parts with at least one replacement are
// rewritten; everything else stays byte-identical on disk.
func FillTree(root string, fields *FieldMap) (FillStats, error) {
	parts, err := ScanParts(root)
	if err != nil {
		return FillStats{}, err
	}

	stats := FillStats{PartsScanned: len(parts)}
	for _, part := range parts {
		replaced, count := Substitute(part.Text, fields)
		if count == 0 {
			continue
		}
		path := filepath.Join(root, filepath.FromSlash(part.RelPath))
		if err := os.WriteFile(path, []byte(replaced), 0o644); err != nil {
			return stats, fmt.Errorf("rewrite part %s: %w", part.RelPath, err)
		}
		stats.PartsChanged++
		stats.Replacements += count
	}
	return stats, nil
}
