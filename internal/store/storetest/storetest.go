// Package storetest holds the behaviour every store.Store implementation
// must share. Backends call Run from their own tests.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipebook/backend/internal/model"
	"github.com/pageza/recipebook/backend/internal/store"
)

// Factory returns an empty store for one subtest.
type Factory func(t *testing.T) store.Store

type fixture struct {
	store    store.Store
	italian  model.Cuisine
	mexican  model.Cuisine
	veggie   model.Tag
	quick    model.Tag
	spicy    model.Tag
	ctx      context.Context
	recipeAt int
}

func setup(t *testing.T, newStore Factory) *fixture {
	t.Helper()
	f := &fixture{store: newStore(t), ctx: context.Background()}

	c, err := f.store.UpsertCuisine(f.ctx, "Italian")
	require.NoError(t, err)
	f.italian = *c
	c, err = f.store.UpsertCuisine(f.ctx, "Mexican")
	require.NoError(t, err)
	f.mexican = *c

	for name, dst := range map[string]*model.Tag{"vegetarian": &f.veggie, "quick": &f.quick, "spicy": &f.spicy} {
		tag, err := f.store.UpsertTag(f.ctx, name)
		require.NoError(t, err)
		*dst = *tag
	}
	return f
}

func (f *fixture) recipe(name string, cuisine model.Cuisine, ingredients []string, tags ...model.Tag) *model.Recipe {
	f.recipeAt++
	r := &model.Recipe{
		Name:         name,
		Cuisine:      cuisine.Ref(),
		PrepTime:     float64(10 * f.recipeAt),
		CookTime:     20,
		Servings:     4,
		Instructions: []string{"Prepare", "Cook"},
		Reviews:      []model.Review{},
	}
	for _, ing := range ingredients {
		r.Ingredients = append(r.Ingredients, model.Ingredient{Name: ing})
	}
	for _, tag := range tags {
		r.Tags = append(r.Tags, tag.Ref())
	}
	return r
}

func (f *fixture) insert(t *testing.T, r *model.Recipe) string {
	t.Helper()
	id, err := f.store.InsertRecipe(f.ctx, r)
	require.NoError(t, err)
	require.NotEmpty(t, id)
	return id
}

func (f *fixture) review(user string, rating float64) *model.Review {
	return &model.Review{
		ID:      f.store.NewID(),
		User:    user,
		Rating:  rating,
		Comment: "comment from " + user,
		Date:    time.Now().UTC().Truncate(time.Millisecond),
	}
}

// Run exercises newStore against the shared store contract.
func Run(t *testing.T, newStore Factory) {
	t.Run("References", func(t *testing.T) { testReferences(t, newStore) })
	t.Run("RecipeLifecycle", func(t *testing.T) { testRecipeLifecycle(t, newStore) })
	t.Run("UnknownIDs", func(t *testing.T) { testUnknownIDs(t, newStore) })
	t.Run("Reviews", func(t *testing.T) { testReviews(t, newStore) })
	t.Run("ListFilters", func(t *testing.T) { testListFilters(t, newStore) })
	t.Run("AllRecipes", func(t *testing.T) { testAllRecipes(t, newStore) })
}

func testReferences(t *testing.T, newStore Factory) {
	f := setup(t, newStore)

	again, err := f.store.UpsertCuisine(f.ctx, "Italian")
	require.NoError(t, err)
	assert.Equal(t, f.italian, *again, "upsert must be idempotent by name")

	found, err := f.store.FindCuisineByName(f.ctx, "Mexican")
	require.NoError(t, err)
	assert.Equal(t, f.mexican, *found)

	_, err = f.store.FindCuisineByName(f.ctx, "italian")
	assert.ErrorIs(t, err, store.ErrNotFound, "names match exactly")

	tags, err := f.store.FindTagsByNames(f.ctx, []string{"quick", "missing", "spicy"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []model.Tag{f.quick, f.spicy}, tags)

	cuisines, err := f.store.ListCuisines(f.ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []model.Cuisine{f.italian, f.mexican}, cuisines)

	allTags, err := f.store.ListTags(f.ctx)
	require.NoError(t, err)
	assert.Len(t, allTags, 3)
}

func testRecipeLifecycle(t *testing.T, newStore Factory) {
	f := setup(t, newStore)

	in := f.recipe("Margherita", f.italian, []string{"Dough", "Tomato", "Basil"}, f.veggie, f.quick)
	id := f.insert(t, in)

	got, err := f.store.GetRecipe(f.ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, in.Name, got.Name)
	assert.Equal(t, in.Cuisine, got.Cuisine)
	assert.Equal(t, in.PrepTime, got.PrepTime)
	assert.Equal(t, in.Ingredients, got.Ingredients)
	assert.Equal(t, in.Instructions, got.Instructions)
	assert.Equal(t, in.Tags, got.Tags)
	assert.NotNil(t, got.Reviews)
	assert.Empty(t, got.Reviews)

	review := f.review("ana", 5)
	require.NoError(t, f.store.AppendReview(f.ctx, id, review))

	replacement := f.recipe("Marinara", f.mexican, []string{"Tomato"}, f.spicy)
	require.NoError(t, f.store.ReplaceRecipe(f.ctx, id, replacement))

	got, err = f.store.GetRecipe(f.ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Marinara", got.Name)
	assert.Equal(t, f.mexican.Ref(), got.Cuisine)
	assert.Equal(t, []model.Ingredient{{Name: "Tomato"}}, got.Ingredients)
	assert.Equal(t, []model.TagRef{f.spicy.Ref()}, got.Tags)
	require.Len(t, got.Reviews, 1, "replace keeps reviews")
	assert.Equal(t, review.ID, got.Reviews[0].ID)

	require.NoError(t, f.store.DeleteRecipe(f.ctx, id))
	_, err = f.store.GetRecipe(f.ctx, id)
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, f.store.DeleteRecipe(f.ctx, id), store.ErrNotFound)
	assert.ErrorIs(t, f.store.RemoveReview(f.ctx, id, review.ID), store.ErrNotFound)
}

func testUnknownIDs(t *testing.T, newStore Factory) {
	f := setup(t, newStore)
	r := f.recipe("Tacos", f.mexican, []string{"Tortilla"}, f.spicy)

	for _, id := range []string{"not-an-id", f.store.NewID()} {
		_, err := f.store.GetRecipe(f.ctx, id)
		assert.ErrorIs(t, err, store.ErrNotFound, id)
		assert.ErrorIs(t, f.store.ReplaceRecipe(f.ctx, id, r), store.ErrNotFound, id)
		assert.ErrorIs(t, f.store.DeleteRecipe(f.ctx, id), store.ErrNotFound, id)
		assert.ErrorIs(t, f.store.AppendReview(f.ctx, id, f.review("bo", 3)), store.ErrNotFound, id)
		assert.ErrorIs(t, f.store.ReplaceReview(f.ctx, id, f.store.NewID(), f.review("bo", 3)), store.ErrNotFound, id)
		assert.ErrorIs(t, f.store.RemoveReview(f.ctx, id, f.store.NewID()), store.ErrNotFound, id)
	}
}

func testReviews(t *testing.T, newStore Factory) {
	f := setup(t, newStore)
	id := f.insert(t, f.recipe("Ramen", f.italian, []string{"Noodles"}, f.quick))

	first := f.review("ana", 4)
	second := f.review("bo", 2)
	third := f.review("cy", 5)
	for _, r := range []*model.Review{first, second, third} {
		require.NoError(t, f.store.AppendReview(f.ctx, id, r))
	}

	updated := &model.Review{
		ID:      second.ID,
		User:    "bo",
		Rating:  3,
		Comment: "better the second time",
		Date:    second.Date.Add(time.Hour),
	}
	require.NoError(t, f.store.ReplaceReview(f.ctx, id, second.ID, updated))

	got, err := f.store.GetRecipe(f.ctx, id)
	require.NoError(t, err)
	require.Len(t, got.Reviews, 3)
	assert.Equal(t, []string{first.ID, second.ID, third.ID},
		[]string{got.Reviews[0].ID, got.Reviews[1].ID, got.Reviews[2].ID}, "replace keeps position")
	assert.Equal(t, "better the second time", got.Reviews[1].Comment)
	assert.Equal(t, float64(3), got.Reviews[1].Rating)
	assert.WithinDuration(t, updated.Date, got.Reviews[1].Date, time.Millisecond)

	missing := f.store.NewID()
	assert.ErrorIs(t, f.store.ReplaceReview(f.ctx, id, missing, f.review("dee", 1)), store.ErrReviewNotFound)
	assert.ErrorIs(t, f.store.ReplaceReview(f.ctx, id, "bad-review-id", f.review("dee", 1)), store.ErrReviewNotFound)
	assert.ErrorIs(t, f.store.RemoveReview(f.ctx, id, missing), store.ErrReviewNotFound)

	require.NoError(t, f.store.RemoveReview(f.ctx, id, first.ID))
	assert.ErrorIs(t, f.store.RemoveReview(f.ctx, id, first.ID), store.ErrReviewNotFound)

	got, err = f.store.GetRecipe(f.ctx, id)
	require.NoError(t, err)
	require.Len(t, got.Reviews, 2)
	assert.Equal(t, second.ID, got.Reviews[0].ID)
	assert.Equal(t, third.ID, got.Reviews[1].ID)
}

func names(summaries []model.RecipeSummary) []string {
	out := make([]string, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, s.Name)
	}
	return out
}

func testListFilters(t *testing.T, newStore Factory) {
	f := setup(t, newStore)

	f.insert(t, f.recipe("Margherita Pizza", f.italian, []string{"Dough", "Tomato Sauce", "Mozzarella"}, f.veggie, f.quick))
	f.insert(t, f.recipe("Spicy Arrabbiata", f.italian, []string{"Penne", "Tomato", "Chili"}, f.veggie, f.spicy))
	f.insert(t, f.recipe("Beef Tacos", f.mexican, []string{"Tortilla", "Beef", "Chili Flakes"}, f.spicy))
	f.insert(t, f.recipe("Pie (a.b)", f.mexican, []string{"Flour"}))

	tests := []struct {
		name   string
		filter model.RecipeFilter
		want   []string
	}{
		{name: "no filter", want: []string{"Margherita Pizza", "Spicy Arrabbiata", "Beef Tacos", "Pie (a.b)"}},
		{name: "tags intersect", filter: model.RecipeFilter{Tags: []string{"quick", "spicy"}},
			want: []string{"Margherita Pizza", "Spicy Arrabbiata", "Beef Tacos"}},
		{name: "tag names are exact", filter: model.RecipeFilter{Tags: []string{"Spicy"}}, want: []string{}},
		{name: "cuisine substring ignores case", filter: model.RecipeFilter{Cuisine: "ITAL"},
			want: []string{"Margherita Pizza", "Spicy Arrabbiata"}},
		{name: "ingredients all match", filter: model.RecipeFilter{Ingredients: []string{"tomato", "chili"}},
			want: []string{"Spicy Arrabbiata"}},
		{name: "ingredient substring", filter: model.RecipeFilter{Ingredients: []string{"chili"}},
			want: []string{"Spicy Arrabbiata", "Beef Tacos"}},
		{name: "name substring", filter: model.RecipeFilter{Name: "taco"}, want: []string{"Beef Tacos"}},
		{name: "name metacharacters are literal", filter: model.RecipeFilter{Name: "(a.b)"}, want: []string{"Pie (a.b)"}},
		{name: "dot does not match any character", filter: model.RecipeFilter{Name: "pi.za"}, want: []string{}},
		{name: "underscore does not match any character", filter: model.RecipeFilter{Name: "pi_za"}, want: []string{}},
		{name: "percent is literal", filter: model.RecipeFilter{Name: "%"}, want: []string{}},
		{name: "filters compose", filter: model.RecipeFilter{Cuisine: "mex", Tags: []string{"spicy"}, Name: "beef"},
			want: []string{"Beef Tacos"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.store.ListRecipes(f.ctx, tt.filter)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, names(got))
		})
	}

	got, err := f.store.ListRecipes(f.ctx, model.RecipeFilter{Name: "Margherita"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.NotEmpty(t, got[0].ID)
	assert.Equal(t, model.NameOnly{Name: "Italian"}, got[0].Cuisine)
	assert.Equal(t, []model.NameOnly{{Name: "vegetarian"}, {Name: "quick"}}, got[0].Tags)
}

func testAllRecipes(t *testing.T, newStore Factory) {
	f := setup(t, newStore)

	id := f.insert(t, f.recipe("Risotto", f.italian, []string{"Rice"}, f.veggie))
	require.NoError(t, f.store.AppendReview(f.ctx, id, f.review("ana", 5)))
	f.insert(t, f.recipe("Mole", f.mexican, []string{"Chocolate"}))

	all, err := f.store.AllRecipes(f.ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	byID := map[string]model.RecipeExport{}
	for _, r := range all {
		byID[r.ID] = r
	}
	require.Contains(t, byID, id)
	assert.Equal(t, "Risotto", byID[id].Name)
	assert.Len(t, byID[id].Reviews, 1)
}
