package main

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"bunkerlab/internal/interview"
	"bunkerlab/internal/report"
)

func newInterviewCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interview",
		Short: "Collect report fields interactively and generate the document",
		RunE: func(cmd *cobra.Command, args []string) error {
			state, acc, step := interview.Start()
			for state != interview.StateDone {
				input, err := askStep(step)
				if err != nil {
					return err
				}
				state, acc, step, err = interview.Next(state, acc, input)
				if err != nil {
					return err
				}
			}

			fields, err := acc.Fields(report.NewGenerator(nil))
			if err != nil {
				return err
			}

			p, cfg, err := ctx.newPipeline()
			if err != nil {
				return err
			}

			templateName := cfg.Templates.MDO
			if acc.Kind == report.KindHFO {
				templateName = cfg.Templates.HFO
			}
			outputPath := filepath.Join(cfg.Paths.OutputDir,
				fmt.Sprintf("%s-%s.docx", acc.Kind, acc.Answers["NUMBER"]))

			result, err := runGeneration(cmd, p, cfg.TemplatePath(templateName), outputPath, fields)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Document: %s\n", result.DocxPath)
			fmt.Fprintf(out, "PDF:      %s\n", result.PDFPath)
			return nil
		},
	}
	return cmd
}

// askStep renders one questionnaire step. Selection steps become a select
// field, free-text steps an input; validation failures surface as the step
// description on the re-prompt.
func askStep(step interview.Step) (string, error) {
	var answer string

	description := ""
	if step.Err != nil {
		description = step.Err.Error()
	}

	var field huh.Field
	if len(step.Options) > 0 {
		options := make([]huh.Option[string], 0, len(step.Options))
		for _, opt := range step.Options {
			options = append(options, huh.NewOption(opt, opt))
		}
		field = huh.NewSelect[string]().
			Title(step.Prompt).
			Description(description).
			Options(options...).
			Value(&answer)
	} else {
		field = huh.NewInput().
			Title(step.Prompt).
			Description(description).
			Placeholder(step.Example).
			Value(&answer)
	}

	if err := huh.NewForm(huh.NewGroup(field)).Run(); err != nil {
		return "", err
	}
	return answer, nil
}
