package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/conris/resept/internal/transfer"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the whole database as one JSON document",
	Long: `Export every recipe, every note and the settings blob as a single
JSON document, suitable for backup or for moving to another machine.

Writes to stdout by default; use -o to write a file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := getStore(cmd.Context())
		if err != nil {
			return err
		}
		doc, err := transfer.Export(cmd.Context(), store)
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode export: %w", err)
		}
		data = append(data, '\n')

		if exportOutput == "" {
			_, err = os.Stdout.Write(data)
			return err
		}
		if err := os.WriteFile(exportOutput, data, 0o600); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Exported %d recipes, %d notes to %s\n",
			len(doc.Recipes), len(doc.Notes), exportOutput)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
}
