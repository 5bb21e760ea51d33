package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/conris/resept/internal/types"
)

var shoppingCmd = &cobra.Command{
	Use:   "shopping",
	Short: "Manage the shopping list",
}

var shoppingAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add an item to the top of the list",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		adapter := shoppingAdapter()
		items, err := adapter.Read(cmd.Context())
		if err != nil {
			return err
		}
		item := types.ShoppingItem{ID: uuid.NewString(), Text: strings.Join(args, " ")}
		// Newest first.
		items = append([]types.ShoppingItem{item}, items...)
		if err := adapter.Write(cmd.Context(), items); err != nil {
			return err
		}
		fmt.Printf("Added %s\n", item.Text)
		return nil
	},
}

var shoppingListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the shopping list",
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := shoppingAdapter().Read(cmd.Context())
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Println("Shopping list is empty.")
			return nil
		}
		for _, item := range items {
			box := "[ ]"
			if item.Done {
				box = "[x]"
			}
			fmt.Printf("%s %-36s  %s\n", box, item.ID, item.Text)
		}
		return nil
	},
}

var shoppingDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Toggle an item's done mark",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		adapter := shoppingAdapter()
		items, err := adapter.Read(cmd.Context())
		if err != nil {
			return err
		}
		found := false
		for i := range items {
			if items[i].ID == args[0] {
				items[i].Done = !items[i].Done
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("no item with id %s", args[0])
		}
		return adapter.Write(cmd.Context(), items)
	},
}

var shoppingClearDone bool

var shoppingClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the list (or just the checked-off items with --done)",
	RunE: func(cmd *cobra.Command, args []string) error {
		adapter := shoppingAdapter()
		if !shoppingClearDone {
			return adapter.Write(cmd.Context(), nil)
		}
		items, err := adapter.Read(cmd.Context())
		if err != nil {
			return err
		}
		kept := items[:0]
		for _, item := range items {
			if !item.Done {
				kept = append(kept, item)
			}
		}
		return adapter.Write(cmd.Context(), kept)
	},
}

func init() {
	shoppingClearCmd.Flags().BoolVar(&shoppingClearDone, "done", false, "remove only checked-off items")

	shoppingCmd.AddCommand(shoppingAddCmd)
	shoppingCmd.AddCommand(shoppingListCmd)
	shoppingCmd.AddCommand(shoppingDoneCmd)
	shoppingCmd.AddCommand(shoppingClearCmd)
}
