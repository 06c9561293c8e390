package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DateLayout is the analysis date format operators type, e.g. 28-May-2025.
const DateLayout = "02-Jan-2006"

var upper = cases.Upper(language.English)

// Field describes one answer the operator supplies for a report.
type Field struct {
	Name    string
	Prompt  string
	Example string
	// Validate rejects malformed raw input; nil means free text.
	Validate func(raw string) error
}

// Fields returns the collected fields for the kind, in interview order.
// Both kinds collect the same thirteen answers; they differ only in the
// derived and laboratory values added on top.
func Fields(kind Kind) []Field {
	return []Field{
		{Name: "NAME", Prompt: "Vessel name"},
		{Name: "DATE", Prompt: "Analysis date", Example: "28-May-2025", Validate: ValidateDate},
		{Name: "DATE_RECEIVED", Prompt: "Date sample received", Example: "29-May-2025", Validate: ValidateDate},
		{Name: "LOCATION", Prompt: "Bunkering location"},
		{Name: "SEAL", Prompt: "Seal number (from BDN)"},
		{Name: "NUMBER", Prompt: "Report number (6 digits)", Example: "280525", Validate: ValidateReportNumber},
		{Name: "BARGE", Prompt: "Barge name"},
		{Name: "DENS", Prompt: "Density (from BDN)"},
		{Name: "VISC", Prompt: "Viscosity (from BDN)"},
		{Name: "FLASH", Prompt: "Flash point (from BDN)"},
		{Name: "POUR", Prompt: "Pour point (from BDN)", Example: "10.5", Validate: ValidateNumeric},
		{Name: "CARBON", Prompt: "Carbon residue (from BDN)"},
		{Name: "SULPH", Prompt: "Sulphur content (from BDN)"},
	}
}

// FieldByName looks a field up in the kind's collection order.
func FieldByName(kind Kind, name string) (Field, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for _, f := range Fields(kind) {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Normalize strips surrounding whitespace and upper-cases the answer, the
// form every stored value takes.
func Normalize(raw string) string {
	return upper.String(strings.TrimSpace(raw))
}

// ValidateDate accepts dates in DateLayout, matching the month name
// case-insensitively.
func ValidateDate(raw string) error {
	if _, err := parseDate(raw); err != nil {
		return fmt.Errorf("date must look like 28-May-2025")
	}
	return nil
}

// ValidateReportNumber accepts exactly six ASCII digits.
func ValidateReportNumber(raw string) error {
	raw = strings.TrimSpace(raw)
	if len(raw) != 6 {
		return fmt.Errorf("report number must be exactly 6 digits, e.g. 280525")
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return fmt.Errorf("report number must be exactly 6 digits, e.g. 280525")
		}
	}
	return nil
}

// ValidateNumeric accepts any value strconv can parse as a float.
func ValidateNumeric(raw string) error {
	if _, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err != nil {
		return fmt.Errorf("value must be a number, e.g. 10.5")
	}
	return nil
}

// parseDate parses DateLayout tolerating any month-name casing, so
// "28-MAY-2025" and "28-may-2025" resolve like "28-May-2025".
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return t, nil
	}
	parts := strings.Split(raw, "-")
	if len(parts) == 3 {
		parts[1] = cases.Title(language.English).String(strings.ToLower(parts[1]))
		if t, err := time.Parse(DateLayout, strings.Join(parts, "-")); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse date %q: want %s", raw, DateLayout)
}
