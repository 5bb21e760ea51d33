// resept is a local-first personal store for recipes, notes and a
// shopping list.
package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/conris/resept/internal/config"
	"github.com/conris/resept/internal/debug"
	"github.com/conris/resept/internal/shopping"
	"github.com/conris/resept/internal/storage"
	"github.com/conris/resept/internal/storage/sqlite"
)

var (
	dbPath       string
	shoppingPath string
	verboseFlag  bool

	// openStore is swapped out by tests to inject an isolated store
	// instead of the process-wide one.
	openStore = func(ctx context.Context, path string) (storage.Storage, error) {
		return sqlite.Open(ctx, path)
	}

	// Process-wide store handle, lazily opened once and reused.
	storeMutex  sync.Mutex
	storeHandle storage.Storage
)

// getStore opens the database on first use and reuses the handle after.
func getStore(ctx context.Context) (storage.Storage, error) {
	storeMutex.Lock()
	defer storeMutex.Unlock()
	if storeHandle != nil {
		return storeHandle, nil
	}
	debug.Logf("opening database at %s\n", dbPath)
	s, err := openStore(ctx, dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	storeHandle = s
	return storeHandle, nil
}

func closeStore() {
	storeMutex.Lock()
	defer storeMutex.Unlock()
	if storeHandle != nil {
		if err := storeHandle.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
		}
		storeHandle = nil
	}
}

func shoppingAdapter() *shopping.Adapter {
	return shopping.New(shoppingPath)
}

var rootCmd = &cobra.Command{
	Use:   "resept",
	Short: "Personal recipe, note and shopping list store",
	Long: `resept keeps your recipes, notes and shopping list in a local
database. No accounts, no sync, no network: one SQLite file plus a small
shopping-list blob, both under ~/.resept by default.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		debug.SetVerbose(verboseFlag)
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		// Flags beat config; only fill in what the user didn't set.
		if dbPath == "" {
			dbPath = cfg.DBPath
		}
		if shoppingPath == "" {
			shoppingPath = cfg.ShoppingPath
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the database file (default ~/.resept/resept.db)")
	rootCmd.PersistentFlags().StringVar(&shoppingPath, "shopping", "", "path to the shopping list file (default ~/.resept/shopping.json)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(recipeCmd)
	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(shoppingCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(settingsCmd)
}

func main() {
	defer closeStore()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		closeStore()
		os.Exit(1)
	}
}
