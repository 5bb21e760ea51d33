// Package types defines core data structures for the resept store.
package types

import (
	"fmt"
	"time"
)

// Difficulty is the cooking difficulty of a recipe.
type Difficulty string

// Recipe difficulty constants
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// IsValid checks if the difficulty is a valid value
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Ingredient is one line of a recipe's ingredient list.
type Ingredient struct {
	Qty      *float64 `json:"qty"` // nil = quantity absent ("salt to taste")
	Unit     string   `json:"unit"`
	Item     string   `json:"item"`
	Note     string   `json:"note,omitempty"`
	Optional bool     `json:"optional,omitempty"`
}

// Step is one instruction of a recipe.
type Step struct {
	Text  string `json:"text"`
	Timer int    `json:"timer,omitempty"` // seconds, 0 = no timer
}

// RecipeTime holds the prep/cook breakdown in minutes. Total is a cached
// display value set by the caller and is not required to equal Prep+Cook.
type RecipeTime struct {
	Prep  int    `json:"prep"`
	Cook  int    `json:"cook"`
	Total int    `json:"total"`
	Unit  string `json:"unit"`
}

// TimeUnitMinutes is the only unit RecipeTime is ever stored with.
const TimeUnitMinutes = "min"

// Recipe is a single stored recipe. ID is assigned by the caller and is
// immutable once stored; it is the sole identity key.
type Recipe struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Chapter     string       `json:"chapter"`
	Themes      []string     `json:"themes"`
	Servings    int          `json:"servings"`
	Time        RecipeTime   `json:"time"`
	Difficulty  Difficulty   `json:"difficulty"`
	Image       string       `json:"image,omitempty"` // inline-encoded bitmap (data URL); opaque to the store
	Ingredients []Ingredient `json:"ingredients"`
	Steps       []Step       `json:"steps"`
	Notes       string       `json:"notes,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
	Favorite    bool         `json:"favorite,omitempty"`
	CreatedAt   int64        `json:"createdAt"` // unix milliseconds
	UpdatedAt   int64        `json:"updatedAt"` // unix milliseconds; refreshed by the caller on every mutation
}

// Validate checks if the recipe has valid field values
func (r *Recipe) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("id is required")
	}
	if r.Title == "" {
		return fmt.Errorf("title is required")
	}
	if r.Servings <= 0 {
		return fmt.Errorf("servings must be positive (got %d)", r.Servings)
	}
	if !r.Difficulty.IsValid() {
		return fmt.Errorf("invalid difficulty: %s", r.Difficulty)
	}
	if r.CreatedAt <= 0 {
		return fmt.Errorf("createdAt is required")
	}
	if r.UpdatedAt < r.CreatedAt {
		return fmt.Errorf("updatedAt must not precede createdAt")
	}
	return nil
}

// Note is a free-form pinnable note.
type Note struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Pinned    bool   `json:"pinned"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

// Validate checks if the note has valid field values
func (n *Note) Validate() error {
	if n.ID == "" {
		return fmt.Errorf("id is required")
	}
	if n.CreatedAt <= 0 {
		return fmt.Errorf("createdAt is required")
	}
	if n.UpdatedAt < n.CreatedAt {
		return fmt.Errorf("updatedAt must not precede createdAt")
	}
	return nil
}

// ShoppingItem is one entry of the shopping list. The list carries no
// timestamps; ordering is whatever order it was written in.
type ShoppingItem struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// Settings is the single user-preferences document. The store treats it as
// an opaque blob and overwrites it wholesale on save.
type Settings map[string]any

// NowMillis returns the current time as unix milliseconds, the timestamp
// unit used throughout the store and the export document.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
