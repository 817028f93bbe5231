package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipebook/backend/internal/model"
	"github.com/pageza/recipebook/backend/internal/testhelpers"
)

func TestNewApp(t *testing.T) {
	app := NewApp()
	assert.Equal(t, name, app.Name)

	var names []string
	for _, c := range app.Commands {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"migrate", "seed", "export"}, names)
}

func TestSeedReferencesIsIdempotent(t *testing.T) {
	st := testhelpers.NewSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, seedReferences(ctx, st, DefaultCuisines, DefaultTags))
	require.NoError(t, seedReferences(ctx, st, []string{"Italian", "Korean"}, []string{"vegan"}))

	cuisines, err := st.ListCuisines(ctx)
	require.NoError(t, err)
	assert.Len(t, cuisines, len(DefaultCuisines)+1)

	tags, err := st.ListTags(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, len(DefaultTags))
}

func TestExportRecipes(t *testing.T) {
	st := testhelpers.NewSQLiteStore(t)
	ctx := context.Background()
	cuisines, tags := testhelpers.SeedReferences(t, st)

	id, err := st.InsertRecipe(ctx, &model.Recipe{
		Name:         "Tiramisu",
		Cuisine:      cuisines["Italian"].Ref(),
		Ingredients:  []model.Ingredient{{Name: "Mascarpone"}},
		Instructions: []string{"Layer", "Chill"},
		Tags:         []model.TagRef{tags["vegetarian"].Ref()},
		Reviews:      []model.Review{},
	})
	require.NoError(t, err)
	require.NoError(t, st.AppendReview(ctx, id, &model.Review{
		ID: st.NewID(), User: "ana", Rating: 5, Comment: "Classic", Date: time.Now().UTC(),
	}))

	body, err := exportRecipes(ctx, st)
	require.NoError(t, err)

	var exported []map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &exported))
	require.Len(t, exported, 1)
	assert.Equal(t, id, exported[0]["_id"])
	assert.Equal(t, "Tiramisu", exported[0]["name"])
	assert.Len(t, exported[0]["reviews"], 1)

	out := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, writeExport(out, body))
	written, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, body, written)
}

func TestExportKey(t *testing.T) {
	at := time.Date(2024, 3, 9, 14, 5, 7, 0, time.FixedZone("CET", 3600))
	assert.Equal(t, "exports/recipes-20240309T130507Z.json", exportKey(at))
}
