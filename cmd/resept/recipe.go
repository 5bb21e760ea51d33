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

var recipeCmd = &cobra.Command{
	Use:   "recipe",
	Short: "Manage recipes",
}

var (
	recipeTitle      string
	recipeChapter    string
	recipeServings   int
	recipeDifficulty string
	recipePrep       int
	recipeCook       int
	recipeThemes     []string
	recipeTags       []string
	recipeNotes      string
	recipeFavorite   bool
)

var recipeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new recipe",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := getStore(cmd.Context())
		if err != nil {
			return err
		}

		now := types.NowMillis()
		themes := recipeThemes
		if themes == nil {
			themes = []string{}
		}
		recipe := &types.Recipe{
			ID:          uuid.NewString(),
			Title:       recipeTitle,
			Chapter:     recipeChapter,
			Themes:      themes,
			Servings:    recipeServings,
			Time:        types.RecipeTime{Prep: recipePrep, Cook: recipeCook, Total: recipePrep + recipeCook, Unit: types.TimeUnitMinutes},
			Difficulty:  types.Difficulty(recipeDifficulty),
			Ingredients: []types.Ingredient{},
			Steps:       []types.Step{},
			Notes:       recipeNotes,
			Tags:        recipeTags,
			Favorite:    recipeFavorite,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := store.PutRecipe(cmd.Context(), recipe); err != nil {
			return err
		}
		fmt.Printf("Added recipe %s (%s)\n", recipe.Title, recipe.ID)
		return nil
	},
}

var recipeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recipes, most recently updated first",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := getStore(cmd.Context())
		if err != nil {
			return err
		}
		recipes, err := store.GetAllRecipes(cmd.Context())
		if err != nil {
			return err
		}
		if len(recipes) == 0 {
			fmt.Println("No recipes.")
			return nil
		}
		for _, r := range recipes {
			marker := " "
			if r.Favorite {
				marker = "*"
			}
			fmt.Printf("%s %-36s  %-24s  %s\n", marker, r.ID, truncate(r.Title, 24), r.Chapter)
		}
		return nil
	},
}

var recipeShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a recipe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := getStore(cmd.Context())
		if err != nil {
			return err
		}
		recipe, err := store.GetRecipe(cmd.Context(), args[0])
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no recipe with id %s", args[0])
		}
		if err != nil {
			return err
		}
		printRecipe(recipe)
		return nil
	},
}

var recipeDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recipe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := getStore(cmd.Context())
		if err != nil {
			return err
		}
		if err := store.DeleteRecipe(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	},
}

var recipeFavoriteCmd = &cobra.Command{
	Use:   "favorite <id>",
	Short: "Toggle a recipe's favorite flag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := getStore(cmd.Context())
		if err != nil {
			return err
		}
		recipe, err := store.GetRecipe(cmd.Context(), args[0])
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("no recipe with id %s", args[0])
		}
		if err != nil {
			return err
		}
		recipe.Favorite = !recipe.Favorite
		recipe.UpdatedAt = types.NowMillis()
		if err := store.PutRecipe(cmd.Context(), recipe); err != nil {
			return err
		}
		if recipe.Favorite {
			fmt.Printf("Marked %s as favorite\n", recipe.Title)
		} else {
			fmt.Printf("Unmarked %s as favorite\n", recipe.Title)
		}
		return nil
	},
}

func printRecipe(r *types.Recipe) {
	fmt.Printf("%s\n", r.Title)
	fmt.Printf("  id:         %s\n", r.ID)
	fmt.Printf("  chapter:    %s\n", r.Chapter)
	if len(r.Themes) > 0 {
		fmt.Printf("  themes:     %s\n", strings.Join(r.Themes, ", "))
	}
	fmt.Printf("  servings:   %d\n", r.Servings)
	fmt.Printf("  time:       %d %s (prep %d, cook %d)\n", r.Time.Total, r.Time.Unit, r.Time.Prep, r.Time.Cook)
	fmt.Printf("  difficulty: %s\n", r.Difficulty)
	if len(r.Ingredients) > 0 {
		fmt.Println("  ingredients:")
		for _, ing := range r.Ingredients {
			line := "    -"
			if ing.Qty != nil {
				line += fmt.Sprintf(" %g %s", *ing.Qty, ing.Unit)
			}
			line += " " + ing.Item
			if ing.Optional {
				line += " (optional)"
			}
			fmt.Println(line)
		}
	}
	if len(r.Steps) > 0 {
		fmt.Println("  steps:")
		for i, step := range r.Steps {
			fmt.Printf("    %d. %s\n", i+1, step.Text)
		}
	}
	if r.Notes != "" {
		fmt.Printf("  notes:      %s\n", r.Notes)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func init() {
	recipeAddCmd.Flags().StringVar(&recipeTitle, "title", "", "recipe title (required)")
	recipeAddCmd.Flags().StringVar(&recipeChapter, "chapter", "", "chapter grouping label")
	recipeAddCmd.Flags().IntVar(&recipeServings, "servings", 4, "number of servings")
	recipeAddCmd.Flags().StringVar(&recipeDifficulty, "difficulty", string(types.DifficultyMedium), "easy, medium or hard")
	recipeAddCmd.Flags().IntVar(&recipePrep, "prep", 0, "prep time in minutes")
	recipeAddCmd.Flags().IntVar(&recipeCook, "cook", 0, "cook time in minutes")
	recipeAddCmd.Flags().StringSliceVar(&recipeThemes, "theme", nil, "theme tag (repeatable)")
	recipeAddCmd.Flags().StringSliceVar(&recipeTags, "tag", nil, "free-form tag (repeatable)")
	recipeAddCmd.Flags().StringVar(&recipeNotes, "notes", "", "free-text notes")
	recipeAddCmd.Flags().BoolVar(&recipeFavorite, "favorite", false, "mark as favorite")
	_ = recipeAddCmd.MarkFlagRequired("title")

	recipeCmd.AddCommand(recipeAddCmd)
	recipeCmd.AddCommand(recipeListCmd)
	recipeCmd.AddCommand(recipeShowCmd)
	recipeCmd.AddCommand(recipeDeleteCmd)
	recipeCmd.AddCommand(recipeFavoriteCmd)
}
