package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Read and write user preferences",
}

var settingsGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print all settings, or one key",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := getStore(cmd.Context())
		if err != nil {
			return err
		}
		settings, err := store.GetSettings(cmd.Context())
		if err != nil {
			return err
		}
		if len(args) == 1 {
			value, ok := settings[args[0]]
			if !ok {
				return fmt.Errorf("no setting %q", args[0])
			}
			out, err := json.Marshal(value)
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}
		out, err := json.MarshalIndent(settings, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one setting",
	Long: `Set one setting. The value is parsed as JSON when possible
(numbers, booleans, objects), otherwise stored as a plain string.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := getStore(cmd.Context())
		if err != nil {
			return err
		}
		settings, err := store.GetSettings(cmd.Context())
		if err != nil {
			return err
		}

		var value any
		if err := json.Unmarshal([]byte(args[1]), &value); err != nil {
			value = args[1]
		}
		settings[args[0]] = value

		if err := store.PutSettings(cmd.Context(), settings); err != nil {
			return err
		}
		fmt.Printf("Set %s\n", args[0])
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}
