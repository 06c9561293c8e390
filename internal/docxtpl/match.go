package docxtpl

import (
	"regexp"
	"strings"
)

// Word processors split a placeholder's text across formatting runs, so the
// raw XML may read {{<w:r ...><w:t>NA</w:t></w:r><w:r><w:t>ME</w:t></w:r>}}
// instead of {{NAME}}. The patterns below tolerate tag fragments and
// whitespace around the key and tag fragments between its characters. Tags
// may not contain braces, which keeps a match from crossing into unrelated
// content.
const (
	gapFragment   = `(?:</?[^<>{}]+>|\s)*`
	innerFragment = `(?:</?[^<>{}]+>)*`
)

type placeholderPatterns struct {
	// delimited matches the strict {{KEY}} form.
	delimited *regexp.Regexp
	// degraded matches {KEY}}, tolerating a dropped opening brace.
	degraded *regexp.Regexp
}

func patternsFor(key string) placeholderPatterns {
	body := keyBody(key)
	return placeholderPatterns{
		delimited: regexp.MustCompile(`(?i)\{\{` + gapFragment + body + gapFragment + `\}\}`),
		degraded:  regexp.MustCompile(`(?i)\{` + gapFragment + body + gapFragment + `\}\}`),
	}
}

// keyBody escapes the key and allows tag fragments between its characters.
func keyBody(key string) string {
	runes := []rune(key)
	parts := make([]string, 0, len(runes)*2)
	for i, r := range runes {
		if i > 0 {
			parts = append(parts, innerFragment)
		}
		parts = append(parts, regexp.QuoteMeta(string(r)))
	}
	return strings.Join(parts, "")
}

// Substitute replaces every placeholder occurrence of every key in fields
// within text. Keys are processed one at a time, strict form before degraded
// form, against the progressively updated content: a later key's token
// appearing inside an earlier key's substituted value is found and replaced.
// Values are inserted literally. Returns the new text and the number of
// replacements made.
func Substitute(text string, fields *FieldMap) (string, int) {
	total := 0
	for _, key := range fields.Keys() {
		value, _ := fields.Value(key)
		patterns := patternsFor(key)
		text = replaceLiteral(patterns.delimited, text, value, &total)
		text = replaceLiteral(patterns.degraded, text, value, &total)
	}
	return text, total
}

func replaceLiteral(re *regexp.Regexp, text, value string, count *int) string {
	return re.ReplaceAllStringFunc(text, func(string) string {
		*count++
		return value
	})
}
