package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bunkerlab/internal/docxtpl"
	"bunkerlab/internal/report"
)

func newKeysCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "keys <template.docx>",
		Short: "List the placeholder keys a template contains",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := docxtpl.Inventory(args[0])
			if err != nil {
				return fmt.Errorf("inventory template: %w", err)
			}
			if len(keys) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No placeholders found")
				return nil
			}

			rows := make([][]string, 0, len(keys))
			for _, key := range keys {
				rows = append(rows, []string{key, keySource(key)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Key", "Source"}, rows))
			return nil
		},
	}
}

// keySource labels how each placeholder is filled: answered by the operator,
// derived from an answer, or synthesized.
func keySource(key string) string {
	if _, ok := report.FieldByName(report.KindMDO, key); ok {
		return "collected"
	}
	switch strings.ToUpper(key) {
	case "FUEL", "DATE_TEST", "CLOUD":
		return "derived"
	case "SAMPLE", "ASH", "CETANE", "VANAD", "SEDIM":
		return "synthetic"
	default:
		return "unknown"
	}
}
