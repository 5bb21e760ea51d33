package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func validRecipe() *Recipe {
	qty := 2.5
	return &Recipe{
		ID:         "r1",
		Title:      "Soup",
		Chapter:    "Mains",
		Themes:     []string{"winter", "comfort"},
		Servings:   4,
		Time:       RecipeTime{Prep: 10, Cook: 30, Total: 40, Unit: TimeUnitMinutes},
		Difficulty: DifficultyEasy,
		Ingredients: []Ingredient{
			{Qty: &qty, Unit: "dl", Item: "stock"},
			{Qty: nil, Unit: "", Item: "salt", Note: "to taste", Optional: true},
		},
		Steps:     []Step{{Text: "Boil.", Timer: 1800}, {Text: "Serve."}},
		CreatedAt: 100,
		UpdatedAt: 200,
	}
}

func TestRecipeValidate(t *testing.T) {
	require.NoError(t, validRecipe().Validate())

	cases := map[string]func(*Recipe){
		"empty id":              func(r *Recipe) { r.ID = "" },
		"empty title":           func(r *Recipe) { r.Title = "" },
		"zero servings":         func(r *Recipe) { r.Servings = 0 },
		"negative servings":     func(r *Recipe) { r.Servings = -1 },
		"unknown difficulty":    func(r *Recipe) { r.Difficulty = "trivial" },
		"missing createdAt":     func(r *Recipe) { r.CreatedAt = 0 },
		"updatedAt before crea": func(r *Recipe) { r.UpdatedAt = r.CreatedAt - 1 },
	}
	for name, mutate := range cases {
		r := validRecipe()
		mutate(r)
		require.Error(t, r.Validate(), name)
	}
}

func TestNoteValidate(t *testing.T) {
	n := &Note{ID: "n1", Text: "x", CreatedAt: 5, UpdatedAt: 5}
	require.NoError(t, n.Validate())

	require.Error(t, (&Note{Text: "x", CreatedAt: 5, UpdatedAt: 5}).Validate())
	require.Error(t, (&Note{ID: "n1", CreatedAt: 5, UpdatedAt: 4}).Validate())
	require.Error(t, (&Note{ID: "n1", UpdatedAt: 5}).Validate())
}

func TestRecipeJSONFieldNames(t *testing.T) {
	// The JSON form is the interchange format and must keep these exact
	// key names for old exports to stay readable.
	raw, err := json.Marshal(validRecipe())
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	for _, key := range []string{"id", "title", "chapter", "themes", "servings", "time", "difficulty", "ingredients", "steps", "createdAt", "updatedAt"} {
		require.Contains(t, m, key)
	}

	tm := m["time"].(map[string]any)
	require.Equal(t, "min", tm["unit"])

	// Absent quantity serializes as null, not 0.
	ings := m["ingredients"].([]any)
	second := ings[1].(map[string]any)
	require.Nil(t, second["qty"])

	// Unset optionals stay off the wire.
	require.NotContains(t, m, "image")
	require.NotContains(t, m, "favorite")
	require.NotContains(t, m, "tags")
}

func TestSortNotes(t *testing.T) {
	notes := []*Note{
		{ID: "a", Pinned: false, UpdatedAt: 500},
		{ID: "b", Pinned: true, UpdatedAt: 100},
		{ID: "c", Pinned: false, UpdatedAt: 300},
		{ID: "d", Pinned: true, UpdatedAt: 400},
	}
	SortNotes(notes)

	got := make([]string, len(notes))
	for i, n := range notes {
		got[i] = n.ID
	}
	require.Equal(t, []string{"d", "b", "a", "c"}, got)
}

func TestSortNotesStable(t *testing.T) {
	// Equal keys keep their incoming order.
	notes := []*Note{
		{ID: "first", Pinned: true, UpdatedAt: 100},
		{ID: "second", Pinned: true, UpdatedAt: 100},
	}
	SortNotes(notes)
	require.Equal(t, "first", notes[0].ID)
	require.Equal(t, "second", notes[1].ID)
}
