package report

import (
	"fmt"
	"slices"
	"strings"
)

// Kind selects one of the two report templates.
type Kind string

const (
	KindMDO Kind = "MDO"
	KindHFO Kind = "HFO"
)

// GradeMDO is the only fuel grade an MDO report carries.
const GradeMDO = "LSMGO DMA"

// HFOGrades lists the fuel grades an HFO report may carry.
var HFOGrades = []string{"LSFO RMG-180", "LSFO RMG-380"}

// Kinds returns the supported report kinds.
func Kinds() []Kind {
	return []Kind{KindMDO, KindHFO}
}

// ParseKind resolves a user-supplied kind name, case-insensitively.
func ParseKind(raw string) (Kind, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(KindMDO):
		return KindMDO, nil
	case string(KindHFO):
		return KindHFO, nil
	default:
		return "", fmt.Errorf("unknown report kind %q (want MDO or HFO)", raw)
	}
}

// Grades returns the fuel grades valid for the kind.
func Grades(kind Kind) []string {
	switch kind {
	case KindMDO:
		return []string{GradeMDO}
	case KindHFO:
		return slices.Clone(HFOGrades)
	default:
		return nil
	}
}

// ValidateGrade checks that grade belongs to the kind. The empty grade is
// accepted for MDO, where only one grade exists.
func ValidateGrade(kind Kind, grade string) (string, error) {
	switch kind {
	case KindMDO:
		if grade == "" || grade == GradeMDO {
			return GradeMDO, nil
		}
		return "", fmt.Errorf("MDO reports carry grade %q, not %q", GradeMDO, grade)
	case KindHFO:
		if slices.Contains(HFOGrades, grade) {
			return grade, nil
		}
		return "", fmt.Errorf("HFO grade must be one of %s, got %q",
			strings.Join(HFOGrades, " or "), grade)
	default:
		return "", fmt.Errorf("unknown report kind %q", kind)
	}
}
