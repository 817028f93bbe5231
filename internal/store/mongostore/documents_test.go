package mongostore

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pageza/recipebook/backend/internal/model"
)

func TestLooseNumberDecoding(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  float64
	}{
		{name: "double", value: 12.5, want: 12.5},
		{name: "int32", value: int32(20), want: 20},
		{name: "int64", value: int64(45), want: 45},
		{name: "numeric string", value: "10", want: 10},
		{name: "padded string", value: " 4 ", want: 4},
		{name: "empty string", value: "", want: 0},
		{name: "word", value: "a while", want: 0},
		{name: "string NaN", value: "NaN", want: 0},
		{name: "stored NaN", value: math.NaN(), want: 0},
		{name: "stored infinity", value: math.Inf(1), want: 0},
		{name: "null", value: nil, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := bson.Marshal(bson.M{"_id": primitive.NewObjectID(), "name": "Soup", "prepTime": tt.value})
			require.NoError(t, err)

			var summary summaryDocument
			require.NoError(t, bson.Unmarshal(data, &summary))
			assert.Equal(t, tt.want, summary.toModel().PrepTime)

			var recipe recipeDocument
			require.NoError(t, bson.Unmarshal(data, &recipe))
			assert.Equal(t, tt.want, recipe.toModel().PrepTime)
		})
	}
}

func TestLegacyRecipeDocument(t *testing.T) {
	cuisine := primitive.NewObjectID()
	reviewID := primitive.NewObjectID()
	data, err := bson.Marshal(bson.M{
		"_id":          primitive.NewObjectID(),
		"name":         "Ratatouille",
		"cuisine":      bson.M{"_id": cuisine, "name": "French"},
		"prepTime":     "20",
		"cookTime":     "45",
		"servings":     "4",
		"ingredients":  bson.A{bson.M{"name": "Aubergine"}},
		"instructions": bson.A{"Slice", "Bake"},
		"tags":         bson.A{},
		"reviews": bson.A{bson.M{
			"review_id": reviewID,
			"user":      "ana",
			"rating":    "5",
			"comment":   "Classic",
			"date":      time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC),
		}},
	})
	require.NoError(t, err)

	var doc recipeDocument
	require.NoError(t, bson.Unmarshal(data, &doc))
	recipe := doc.toModel()

	assert.Equal(t, 20.0, recipe.PrepTime)
	assert.Equal(t, 45.0, recipe.CookTime)
	assert.Equal(t, 4.0, recipe.Servings)
	require.Len(t, recipe.Reviews, 1)
	assert.Equal(t, 5.0, recipe.Reviews[0].Rating)
	assert.Equal(t, reviewID.Hex(), recipe.Reviews[0].ID)
}

func TestNumbersWrittenAsDoubles(t *testing.T) {
	doc, err := newRecipeDocument(&model.Recipe{
		Name:     "Soup",
		Cuisine:  model.CuisineRef{ID: primitive.NewObjectID().Hex(), Name: "French"},
		PrepTime: 15,
	})
	require.NoError(t, err)

	data, err := bson.Marshal(doc)
	require.NoError(t, err)

	raw := bson.Raw(data).Lookup("prepTime")
	f, ok := raw.DoubleOK()
	require.True(t, ok, "prepTime stored as %s", raw.Type)
	assert.Equal(t, 15.0, f)
}
