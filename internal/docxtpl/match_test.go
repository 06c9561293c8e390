package docxtpl_test

import (
	"strings"
	"testing"

	"bunkerlab/internal/docxtpl"
)

func fieldMap(t *testing.T, pairs map[string]string) *docxtpl.FieldMap {
	t.Helper()
	m, err := docxtpl.FieldMapFrom(pairs)
	if err != nil {
		t.Fatalf("FieldMapFrom: %v", err)
	}
	return m
}

func TestSubstitutePlainToken(t *testing.T) {
	fields := fieldMap(t, map[string]string{"NAME": "MV TEST"})

	out, n := docxtpl.Substitute("<w:t>Vessel: {{NAME}}</w:t>", fields)
	if n != 1 {
		t.Fatalf("expected 1 replacement, got %d", n)
	}
	if out != "<w:t>Vessel: MV TEST</w:t>" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestSubstituteCaseInsensitiveKey(t *testing.T) {
	fields := fieldMap(t, map[string]string{"name": "MV TEST"})

	for _, token := range []string{"{{NAME}}", "{{Name}}", "{{nAmE}}"} {
		out, n := docxtpl.Substitute(token, fields)
		if n != 1 || out != "MV TEST" {
			t.Fatalf("token %q: got %q (n=%d)", token, out, n)
		}
	}
}

func TestSubstituteSplitAcrossRuns(t *testing.T) {
	fields := fieldMap(t, map[string]string{"NAME": "MV TEST"})

	cases := map[string]string{
		"tags around key":  `{{<w:r><w:t>NAME</w:t></w:r>}}`,
		"tags inside key":  `{{NA</w:t></w:r><w:r><w:t>ME}}`,
		"tags everywhere":  `{{</w:t></w:r><w:r w:rsidR="00AB1234"><w:t>NA</w:t></w:r><w:r><w:t>ME</w:t></w:r><w:r><w:t>}}`,
		"whitespace inside": "{{ \n NAME\t}}",
	}
	for name, input := range cases {
		out, n := docxtpl.Substitute(input, fields)
		if n != 1 {
			t.Fatalf("%s: expected 1 replacement in %q, got %d (out %q)", name, input, n, out)
		}
		if !strings.Contains(out, "MV TEST") {
			t.Fatalf("%s: value missing from %q", name, out)
		}
		if strings.Contains(out, "{{") || strings.Contains(out, "}}") {
			t.Fatalf("%s: delimiters left behind in %q", name, out)
		}
	}
}

func TestSubstituteDegradedSingleBrace(t *testing.T) {
	fields := fieldMap(t, map[string]string{"DATE": "28-MAY-2025"})

	out, n := docxtpl.Substitute("Issued {DATE}}", fields)
	if n != 1 || out != "Issued 28-MAY-2025" {
		t.Fatalf("got %q (n=%d)", out, n)
	}
}

func TestSubstituteDoesNotCrossUnrelatedContent(t *testing.T) {
	fields := fieldMap(t, map[string]string{"NAME": "X"})

	// The opening braces and the key are separated by literal text, not
	// markup fragments; this must not match.
	input := "{{ other words NAME }}"
	out, n := docxtpl.Substitute(input, fields)
	if n != 0 || out != input {
		t.Fatalf("expected no replacement, got %q (n=%d)", out, n)
	}
}

func TestSubstituteLiteralValueAndKeySafety(t *testing.T) {
	fields := fieldMap(t, map[string]string{"DENS": `0.86 (a|b) [c] $1 \d+`})

	out, n := docxtpl.Substitute("{{DENS}}", fields)
	if n != 1 {
		t.Fatalf("expected 1 replacement, got %d", n)
	}
	if out != `0.86 (a|b) [c] $1 \d+` {
		t.Fatalf("value was not inserted literally: %q", out)
	}
}

func TestSubstituteEarlierValueVisibleToLaterKey(t *testing.T) {
	// The first key's value contains the second key's token; the later pass
	// must substitute inside the already-substituted text. Key order is
	// longest-first, so LONGKEY runs before DATE.
	fields := fieldMap(t, map[string]string{
		"LONGKEY": "prefix {{DATE}} suffix",
		"DATE":    "28-MAY-2025",
	})

	out, n := docxtpl.Substitute("{{LONGKEY}}", fields)
	if n != 2 {
		t.Fatalf("expected 2 replacements, got %d (out %q)", n, out)
	}
	if out != "prefix 28-MAY-2025 suffix" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestSubstituteNoTokens(t *testing.T) {
	fields := fieldMap(t, map[string]string{"NAME": "MV TEST"})
	input := "<w:t>No placeholders here</w:t>"

	out, n := docxtpl.Substitute(input, fields)
	if n != 0 || out != input {
		t.Fatalf("expected untouched text, got %q (n=%d)", out, n)
	}
}

func TestSubstituteMultipleOccurrences(t *testing.T) {
	fields := fieldMap(t, map[string]string{"FUEL": "LSMGO DMA"})

	out, n := docxtpl.Substitute("{{FUEL}} and again {{FUEL}}", fields)
	if n != 2 {
		t.Fatalf("expected 2 replacements, got %d", n)
	}
	if out != "LSMGO DMA and again LSMGO DMA" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestFieldMapOrderingLongestFirst(t *testing.T) {
	m := docxtpl.NewFieldMap()
	for _, key := range []string{"DATE", "DATE_RECEIVED", "NAME", "DATE_TEST"} {
		if err := m.Set(key, key); err != nil {
			t.Fatalf("Set(%s): %v", key, err)
		}
	}

	want := []string{"DATE_RECEIVED", "DATE_TEST", "DATE", "NAME"}
	got := m.Keys()
	if len(got) != len(want) {
		t.Fatalf("unexpected key count: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order: got %v want %v", got, want)
		}
	}

	// DATE inside DATE_RECEIVED's token must not fire early: substituting
	// {{DATE_RECEIVED}} consumes the whole token.
	fields := fieldMap(t, map[string]string{"DATE": "D", "DATE_RECEIVED": "R"})
	out, n := docxtpl.Substitute("{{DATE_RECEIVED}} {{DATE}}", fields)
	if n != 2 || out != "R D" {
		t.Fatalf("overlapping keys mishandled: %q (n=%d)", out, n)
	}
}

func TestFieldMapRejectsDuplicatesAndEmptyKeys(t *testing.T) {
	m := docxtpl.NewFieldMap()
	if err := m.Set("Name", "a"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := m.Set("NAME", "b"); err == nil {
		t.Fatal("expected case-insensitive duplicate to be rejected")
	}
	if err := m.Set("  ", "c"); err == nil {
		t.Fatal("expected empty key to be rejected")
	}

	if _, err := docxtpl.FieldMapFrom(map[string]string{"a": "1", "A": "2"}); err == nil {
		t.Fatal("expected FieldMapFrom to reject colliding keys")
	}
}
