package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/conris/resept/internal/transfer"
)

var (
	importInput  string
	importDryRun bool
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Merge an exported document into the database",
	Long: `Import a document produced by 'resept export'.

This is a merge, not a replace:
  - records sharing an id with an existing record are overwritten by the
    imported copy
  - new ids are created
  - existing records absent from the document are left untouched
  - a settings blob in the document replaces the current settings

Reads from stdin by default, or use -i for file input. A malformed
document is rejected before anything is written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var raw []byte
		var err error
		if importInput == "" {
			raw, err = io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
		} else {
			raw, err = os.ReadFile(importInput)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", importInput, err)
			}
		}

		store, err := getStore(cmd.Context())
		if err != nil {
			return err
		}
		result, err := transfer.Import(cmd.Context(), store, raw, transfer.Options{DryRun: importDryRun})
		if err != nil {
			return err
		}

		prefix := "Imported"
		if importDryRun {
			prefix = "Would import"
		}
		fmt.Printf("%s: %d recipes created, %d updated; %d notes created, %d updated\n",
			prefix, result.RecipesCreated, result.RecipesUpdated,
			result.NotesCreated, result.NotesUpdated)
		if result.SettingsReplaced {
			fmt.Println("Settings replaced.")
		}
		return nil
	},
}

func init() {
	importCmd.Flags().StringVarP(&importInput, "input", "i", "", "input file (default stdin)")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "preview changes without applying them")
}
