package docxtpl_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bunkerlab/internal/docxtpl"
)

func unpackIntoTemp(t *testing.T, data []byte) string {
	t.Helper()
	dir := t.TempDir()
	src := writeDocx(t, dir, "template.docx", data)
	workDir := filepath.Join(dir, "unpacked")
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := docxtpl.Unpack(src, workDir); err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	return workDir
}

func TestScanPartsClassifiesTextualAndOpaque(t *testing.T) {
	data := buildDocx(t, documentWithRuns(paragraph("body")), map[string][]byte{
		"word/header1.xml":      []byte(`<w:hdr>header</w:hdr>`),
		"word/media/blob.xml":   {0xFF, 0xFE, 0x00, 0x01}, // xml extension, not UTF-8
		"word/media/image1.png": {0x89, 0x50},
		"docProps/core.xml":     []byte(`<cp/>`), // outside word/, ignored
	})
	workDir := unpackIntoTemp(t, data)

	parts, err := docxtpl.ScanParts(workDir)
	if err != nil {
		t.Fatalf("ScanParts: %v", err)
	}

	got := map[string]bool{}
	for _, part := range parts {
		got[part.RelPath] = true
	}
	if !got["word/document.xml"] || !got["word/header1.xml"] {
		t.Fatalf("expected textual parts, got %v", got)
	}
	if got["word/media/blob.xml"] {
		t.Fatal("non-decodable part must be classified opaque, not textual")
	}
	if got["word/media/image1.png"] || got["docProps/core.xml"] {
		t.Fatalf("unexpected parts scanned: %v", got)
	}
}

func TestFillTreeRewritesOnlyChangedParts(t *testing.T) {
	data := buildDocx(t, documentWithRuns(paragraph("Vessel {{NAME}}")), map[string][]byte{
		"word/header1.xml": []byte(`<w:hdr>static header</w:hdr>`),
	})
	workDir := unpackIntoTemp(t, data)

	headerPath := filepath.Join(workDir, "word", "header1.xml")
	headerBefore, err := os.Stat(headerPath)
	if err != nil {
		t.Fatalf("stat header: %v", err)
	}
	headerContentBefore, _ := os.ReadFile(headerPath)

	fields := fieldMap(t, map[string]string{"NAME": "MV TEST"})
	stats, err := docxtpl.FillTree(workDir, fields)
	if err != nil {
		t.Fatalf("FillTree: %v", err)
	}
	if stats.PartsScanned != 2 {
		t.Fatalf("expected 2 scanned parts, got %d", stats.PartsScanned)
	}
	if stats.PartsChanged != 1 || stats.Replacements != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	body, err := os.ReadFile(filepath.Join(workDir, "word", "document.xml"))
	if err != nil {
		t.Fatalf("read document: %v", err)
	}
	if !strings.Contains(string(body), "Vessel MV TEST") {
		t.Fatalf("substitution missing: %s", body)
	}

	headerContentAfter, _ := os.ReadFile(headerPath)
	if !bytes.Equal(headerContentBefore, headerContentAfter) {
		t.Fatal("unchanged part was rewritten with different content")
	}
	headerAfter, _ := os.Stat(headerPath)
	if !headerAfter.ModTime().Equal(headerBefore.ModTime()) {
		t.Fatal("unchanged part was rewritten on disk")
	}
}

func TestFillTreeNoTokensIsNoOp(t *testing.T) {
	data := buildDocx(t, documentWithRuns(paragraph("nothing to fill")), nil)
	workDir := unpackIntoTemp(t, data)

	fields := fieldMap(t, map[string]string{"NAME": "MV TEST", "DATE": "28-MAY-2025"})
	stats, err := docxtpl.FillTree(workDir, fields)
	if err != nil {
		t.Fatalf("FillTree: %v", err)
	}
	if stats.PartsChanged != 0 || stats.Replacements != 0 {
		t.Fatalf("expected no changes, got %+v", stats)
	}
}

func TestInventoryListsKeysAcrossSplitRuns(t *testing.T) {
	body := paragraph("Vessel: {{NAME}}") +
		`<w:p><w:r><w:t>{{DA</w:t></w:r><w:r><w:t>TE}}</w:t></w:r></w:p>` +
		paragraph("degraded {SEAL}}")
	data := buildDocx(t, documentWithRuns(body), map[string][]byte{
		"word/header1.xml": []byte(`<w:hdr xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:p><w:r><w:t>{{number}}</w:t></w:r></w:p></w:hdr>`),
	})
	dir := t.TempDir()
	src := writeDocx(t, dir, "template.docx", data)

	keys, err := docxtpl.Inventory(src)
	if err != nil {
		t.Fatalf("Inventory: %v", err)
	}

	want := []string{"DATE", "NAME", "NUMBER", "SEAL"}
	if len(keys) != len(want) {
		t.Fatalf("unexpected keys: %v", keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("unexpected keys: got %v want %v", keys, want)
		}
	}
}

func TestInventoryMissingTemplate(t *testing.T) {
	if _, err := docxtpl.Inventory(filepath.Join(t.TempDir(), "absent.docx")); err == nil {
		t.Fatal("expected error for missing template")
	}
}
