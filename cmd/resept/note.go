package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/conris/resept/internal/storage"
	"github.com/conris/resept/internal/types"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage notes",
}

var notePinFlag bool

var noteAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a note",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := getStore(cmd.Context())
		if err != nil {
			return err
		}
		now := types.NowMillis()
		note := &types.Note{
			ID:        uuid.NewString(),
			Text:      strings.Join(args, " "),
			Pinned:    notePinFlag,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := store.PutNote(cmd.Context(), note); err != nil {
			return err
		}
		fmt.Printf("Added note %s\n", note.ID)
		return nil
	},
}

var noteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes, pinned first",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := getStore(cmd.Context())
		if err != nil {
			return err
		}
		notes, err := store.GetAllNotes(cmd.Context())
		if err != nil {
			return err
		}
		if len(notes) == 0 {
			fmt.Println("No notes.")
			return nil
		}
		for _, n := range notes {
			marker := " "
			if n.Pinned {
				marker = "📌"
			}
			fmt.Printf("%s %-36s  %s\n", marker, n.ID, truncate(n.Text, 60))
		}
		return nil
	},
}

var notePinCmd = &cobra.Command{
	Use:   "pin <id>",
	Short: "Toggle a note's pinned flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := getStore(cmd.Context())
		if err != nil {
			return err
		}
		note, err := store.GetNote(cmd.Context(), args[0])
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no note with id %s", args[0])
		}
		if err != nil {
			return err
		}
		note.Pinned = !note.Pinned
		note.UpdatedAt = types.NowMillis()
		if err := store.PutNote(cmd.Context(), note); err != nil {
			return err
		}
		if note.Pinned {
			fmt.Println("Pinned.")
		} else {
			fmt.Println("Unpinned.")
		}
		return nil
	},
}

var noteDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := getStore(cmd.Context())
		if err != nil {
			return err
		}
		if err := store.DeleteNote(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	},
}

func init() {
	noteAddCmd.Flags().BoolVar(&notePinFlag, "pin", false, "pin the note")

	noteCmd.AddCommand(noteAddCmd)
	noteCmd.AddCommand(noteListCmd)
	noteCmd.AddCommand(notePinCmd)
	noteCmd.AddCommand(noteDeleteCmd)
}
