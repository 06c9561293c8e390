package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"bunkerlab/internal/report"
)

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var (
		kindFlag     string
		gradeFlag    string
		valuesFlag   string
		fieldFlags   []string
		templateFlag string
		outputFlag   string
		noInput      bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Fill a report template and convert it to PDF",
		Long: `Generate fills the template for the chosen report kind with the supplied
field values, derives the dependent values, and converts the rendered
document to PDF. Values come from --values and --field; any missing ones
are collected interactively unless --no-input is set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := report.ParseKind(kindFlag)
			if err != nil {
				return err
			}

			answers, err := loadAnswers(valuesFlag, fieldFlags)
			if err != nil {
				return err
			}

			grade := report.Normalize(gradeFlag)
			if err := completeAnswers(kind, &grade, answers, noInput); err != nil {
				return err
			}

			fields, err := report.NewGenerator(nil).Build(kind, grade, answers)
			if err != nil {
				return err
			}

			p, cfg, err := ctx.newPipeline()
			if err != nil {
				return err
			}

			templatePath := strings.TrimSpace(templateFlag)
			if templatePath == "" {
				name := cfg.Templates.MDO
				if kind == report.KindHFO {
					name = cfg.Templates.HFO
				}
				templatePath = cfg.TemplatePath(name)
			}

			outputPath := strings.TrimSpace(outputFlag)
			if outputPath == "" {
				outputPath = filepath.Join(cfg.Paths.OutputDir,
					fmt.Sprintf("%s-%s.docx", kind, answers["NUMBER"]))
			}

			result, err := runGeneration(cmd, p, templatePath, outputPath, fields)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Document: %s\n", result.DocxPath)
			fmt.Fprintf(out, "PDF:      %s\n", result.PDFPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&kindFlag, "kind", "k", "", "Report kind: MDO or HFO")
	cmd.Flags().StringVarP(&gradeFlag, "grade", "g", "", "Fuel grade (HFO only)")
	cmd.Flags().StringVar(&valuesFlag, "values", "", "TOML file with field values")
	cmd.Flags().StringArrayVarP(&fieldFlags, "field", "f", nil, "Field value as NAME=value (repeatable)")
	cmd.Flags().StringVar(&templateFlag, "template", "", "Template path (defaults per kind from config)")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Rendered document path")
	cmd.Flags().BoolVar(&noInput, "no-input", false, "Fail instead of prompting for missing fields")
	_ = cmd.MarkFlagRequired("kind")

	return cmd
}

// loadAnswers merges the values file with --field overrides. Keys are
// upper-cased; values stay raw until report validation normalizes them.
func loadAnswers(valuesPath string, fieldFlags []string) (map[string]string, error) {
	answers := make(map[string]string)

	if valuesPath = strings.TrimSpace(valuesPath); valuesPath != "" {
		data, err := os.ReadFile(valuesPath)
		if err != nil {
			return nil, fmt.Errorf("read values file: %w", err)
		}
		var fromFile map[string]string
		if err := toml.Unmarshal(data, &fromFile); err != nil {
			return nil, fmt.Errorf("parse values file %s: %w", valuesPath, err)
		}
		for key, value := range fromFile {
			answers[strings.ToUpper(strings.TrimSpace(key))] = value
		}
	}

	for _, entry := range fieldFlags {
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("field %q: want NAME=value", entry)
		}
		answers[strings.ToUpper(strings.TrimSpace(key))] = value
	}

	return answers, nil
}

// completeAnswers fills the gaps in the answer set with a form, or rejects
// the run when prompting is disabled.
func completeAnswers(kind report.Kind, grade *string, answers map[string]string, noInput bool) error {
	var missing []report.Field
	for _, spec := range report.Fields(kind) {
		if strings.TrimSpace(answers[spec.Name]) == "" {
			missing = append(missing, spec)
		}
	}
	needGrade := kind == report.KindHFO && *grade == ""

	if len(missing) == 0 && !needGrade {
		return nil
	}
	if noInput {
		names := make([]string, 0, len(missing)+1)
		if needGrade {
			names = append(names, "GRADE")
		}
		for _, spec := range missing {
			names = append(names, spec.Name)
		}
		return fmt.Errorf("missing values for %s", strings.Join(names, ", "))
	}

	inputs := make([]huh.Field, 0, len(missing)+1)
	if needGrade {
		options := make([]huh.Option[string], 0, len(report.HFOGrades))
		for _, g := range report.HFOGrades {
			options = append(options, huh.NewOption(g, g))
		}
		inputs = append(inputs, huh.NewSelect[string]().
			Title("HFO grade").
			Options(options...).
			Value(grade))
	}

	collected := make([]string, len(missing))
	for i, spec := range missing {
		input := huh.NewInput().
			Title(spec.Prompt).
			Placeholder(spec.Example).
			Value(&collected[i])
		if validate := spec.Validate; validate != nil {
			input = input.Validate(validate)
		} else {
			input = input.Validate(requireNonEmpty(spec.Name))
		}
		inputs = append(inputs, input)
	}

	if err := huh.NewForm(huh.NewGroup(inputs...)).Run(); err != nil {
		return err
	}
	for i, spec := range missing {
		answers[spec.Name] = collected[i]
	}
	return nil
}

func requireNonEmpty(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s must not be empty", name)
		}
		return nil
	}
}
