// Package interview models the report questionnaire as an explicit state
// machine. Transitions are pure: Next never mutates its inputs, so a front
// end can replay or abandon a session freely. The package knows nothing
// about terminals; cmd/bunkerlab renders the steps.
package interview

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"bunkerlab/internal/docxtpl"
	"bunkerlab/internal/report"
)

// State identifies where the questionnaire stands.
type State int

const (
	// StateKind asks which report to produce.
	StateKind State = iota
	// StateGrade asks for the HFO fuel grade.
	StateGrade
	// StateCollect walks the kind's field list.
	StateCollect
	// StateDone accepts no further input.
	StateDone
)

func (s State) String() string {
	switch s {
	case StateKind:
		return "kind"
	case StateGrade:
		return "grade"
	case StateCollect:
		return "collect"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Accumulator carries everything gathered so far.
type Accumulator struct {
	Kind    report.Kind
	Grade   string
	Answers map[string]string
	// fieldIndex points at the next field to collect.
	fieldIndex int
}

// Step tells the front end what to ask next. Options being non-empty means
// the answer must be one of them; otherwise free text is expected. Err holds
// the validation failure that caused a re-prompt.
type Step struct {
	Prompt  string
	Example string
	Options []string
	Err     error
}

// ErrDone is returned when input arrives after the questionnaire finished.
var ErrDone = errors.New("interview already complete")

// Start opens a session at the kind question.
func Start() (State, Accumulator, Step) {
	return StateKind, Accumulator{}, kindStep(nil)
}

// Next consumes one answer and returns the follow-up state and step. On
// invalid input the state is unchanged and the step repeats the question
// with Err set.
func Next(state State, acc Accumulator, input string) (State, Accumulator, Step, error) {
	switch state {
	case StateKind:
		kind, err := report.ParseKind(input)
		if err != nil {
			return StateKind, acc, kindStep(err), nil
		}
		acc.Kind = kind
		if kind == report.KindMDO {
			acc.Grade = report.GradeMDO
			return StateCollect, acc, fieldStep(acc, nil), nil
		}
		return StateGrade, acc, gradeStep(nil), nil

	case StateGrade:
		grade, err := report.ValidateGrade(acc.Kind, report.Normalize(input))
		if err != nil {
			return StateGrade, acc, gradeStep(err), nil
		}
		acc.Grade = grade
		return StateCollect, acc, fieldStep(acc, nil), nil

	case StateCollect:
		specs := report.Fields(acc.Kind)
		if acc.fieldIndex >= len(specs) {
			return StateDone, acc, Step{}, nil
		}
		spec := specs[acc.fieldIndex]
		if spec.Validate != nil {
			if err := spec.Validate(input); err != nil {
				return StateCollect, acc, fieldStep(acc, err), nil
			}
		}
		if strings.TrimSpace(input) == "" {
			return StateCollect, acc, fieldStep(acc, fmt.Errorf("%s must not be empty", spec.Name)), nil
		}
		acc.Answers = withAnswer(acc.Answers, spec.Name, input)
		acc.fieldIndex++
		if acc.fieldIndex == len(specs) {
			return StateDone, acc, Step{}, nil
		}
		return StateCollect, acc, fieldStep(acc, nil), nil

	case StateDone:
		return StateDone, acc, Step{}, ErrDone

	default:
		return state, acc, Step{}, fmt.Errorf("unknown interview state %v", state)
	}
}

// Fields assembles the completed field map. Valid only once StateDone is
// reached.
func (acc Accumulator) Fields(gen *report.Generator) (*docxtpl.FieldMap, error) {
	if len(acc.Answers) != len(report.Fields(acc.Kind)) {
		return nil, errors.New("interview not complete")
	}
	return gen.Build(acc.Kind, acc.Grade, acc.Answers)
}

func kindStep(err error) Step {
	options := make([]string, 0, 2)
	for _, k := range report.Kinds() {
		options = append(options, string(k))
	}
	return Step{Prompt: "Fuel type to fill analyses for", Options: options, Err: err}
}

func gradeStep(err error) Step {
	return Step{Prompt: "HFO grade", Options: report.Grades(report.KindHFO), Err: err}
}

func fieldStep(acc Accumulator, err error) Step {
	spec := report.Fields(acc.Kind)[acc.fieldIndex]
	return Step{Prompt: spec.Prompt, Example: spec.Example, Err: err}
}

// withAnswer copies the answer map before insertion so earlier accumulator
// values stay untouched.
func withAnswer(answers map[string]string, name, value string) map[string]string {
	out := maps.Clone(answers)
	if out == nil {
		out = make(map[string]string, 16)
	}
	out[name] = value
	return out
}
