package report

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"bunkerlab/internal/docxtpl"
)

// Generator produces the laboratory values that are not read from the BDN.
// A nil source uses the process-wide generator; tests inject a seeded one.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator wraps rng. Pass nil for non-deterministic output.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

func (g *Generator) intN(n int) int {
	if g == nil || g.rng == nil {
		return rand.IntN(n)
	}
	return g.rng.IntN(n)
}

func (g *Generator) float64() float64 {
	if g == nil || g.rng == nil {
		return rand.Float64()
	}
	return g.rng.Float64()
}

func (g *Generator) intBetween(lo, hi int) int {
	return lo + g.intN(hi-lo+1)
}

func (g *Generator) floatBetween(lo, hi float64) float64 {
	return lo + g.float64()*(hi-lo)
}

// Build validates and normalizes the collected answers and assembles the
// complete substitution map for the kind: answers, the fuel grade, the
// derived test date and cloud point, and the synthetic laboratory values.
func (g *Generator) Build(kind Kind, grade string, answers map[string]string) (*docxtpl.FieldMap, error) {
	grade, err := ValidateGrade(kind, grade)
	if err != nil {
		return nil, err
	}

	fields := docxtpl.NewFieldMap()
	if err := fields.Set("FUEL", grade); err != nil {
		return nil, err
	}

	for _, spec := range Fields(kind) {
		raw, ok := answers[spec.Name]
		if !ok {
			return nil, fmt.Errorf("missing answer for %s", spec.Name)
		}
		if spec.Validate != nil {
			if err := spec.Validate(raw); err != nil {
				return nil, fmt.Errorf("%s: %w", spec.Name, err)
			}
		}
		if err := fields.Set(spec.Name, Normalize(raw)); err != nil {
			return nil, err
		}
	}
	for name := range answers {
		if _, ok := FieldByName(kind, name); !ok {
			return nil, fmt.Errorf("unexpected answer %q for %s report", name, kind)
		}
	}

	if err := g.derive(kind, fields); err != nil {
		return nil, err
	}
	if err := g.synthesize(kind, fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// derive fills the values computed from answers: the test date is one day
// after receipt, and MDO reports carry a cloud point two degrees below the
// pour point.
func (g *Generator) derive(kind Kind, fields *docxtpl.FieldMap) error {
	rawReceived, _ := fields.Value("DATE_RECEIVED")
	received, err := parseDate(rawReceived)
	if err != nil {
		return err
	}
	tested := received.AddDate(0, 0, 1).Format(DateLayout)
	if err := fields.Set("DATE_TEST", Normalize(tested)); err != nil {
		return err
	}

	if kind == KindMDO {
		rawPour, _ := fields.Value("POUR")
		pour, err := strconv.ParseFloat(rawPour, 64)
		if err != nil {
			return fmt.Errorf("POUR: %w", err)
		}
		if err := fields.Set("CLOUD", fmt.Sprintf("%.1f", pour-2)); err != nil {
			return err
		}
	}
	return nil
}

// synthesize fills the laboratory values the BDN does not carry. Ranges are
// fixed per fuel kind.
func (g *Generator) synthesize(kind Kind, fields *docxtpl.FieldMap) error {
	if err := fields.Set("SAMPLE", strconv.Itoa(g.intBetween(400000, 900000))); err != nil {
		return err
	}
	if err := fields.Set("ASH", fmt.Sprintf("%.3f", g.floatBetween(0.001, 0.011))); err != nil {
		return err
	}
	switch kind {
	case KindMDO:
		return fields.Set("CETANE", fmt.Sprintf("%.1f", g.floatBetween(42.0, 62.0)))
	case KindHFO:
		if err := fields.Set("VANAD", strconv.Itoa(g.intBetween(220, 300))); err != nil {
			return err
		}
		return fields.Set("SEDIM", fmt.Sprintf("%.3f", g.floatBetween(0.040, 0.088)))
	}
	return nil
}

// TestDate exposes the receipt-to-test derivation for reuse by front ends
// that preview derived values.
func TestDate(received time.Time) string {
	return Normalize(received.AddDate(0, 0, 1).Format(DateLayout))
}
