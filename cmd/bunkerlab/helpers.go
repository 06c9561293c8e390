package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bunkerlab/internal/docxtpl"
	"bunkerlab/internal/pipeline"
)

// runGeneration warns about template placeholders the field map does not
// cover, then runs the pipeline.
func runGeneration(cmd *cobra.Command, p *pipeline.Pipeline, templatePath, outputPath string, fields *docxtpl.FieldMap) (pipeline.Result, error) {
	if keys, err := docxtpl.Inventory(templatePath); err == nil {
		var uncovered []string
		for _, key := range keys {
			if _, ok := fields.Value(key); !ok {
				uncovered = append(uncovered, key)
			}
		}
		if len(uncovered) > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: template placeholders without values: %s\n",
				strings.Join(uncovered, ", "))
		}
	}

	return p.Generate(cmd.Context(), pipeline.Request{
		TemplatePath: templatePath,
		OutputPath:   outputPath,
		Fields:       fields,
	})
}
