package mongostore

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pageza/recipebook/backend/internal/model"
)

type refDocument struct {
	ID   primitive.ObjectID `bson:"_id"`
	Name string             `bson:"name"`
}

type reviewDocument struct {
	ReviewID primitive.ObjectID `bson:"review_id"`
	User     string             `bson:"user"`
	Rating   looseNumber        `bson:"rating"`
	Comment  string             `bson:"comment"`
	Date     time.Time          `bson:"date"`
}

type recipeDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Cuisine      refDocument        `bson:"cuisine"`
	PrepTime     looseNumber        `bson:"prepTime"`
	CookTime     looseNumber        `bson:"cookTime"`
	Servings     looseNumber        `bson:"servings"`
	Ingredients  []model.Ingredient `bson:"ingredients"`
	Instructions []string           `bson:"instructions"`
	Tags         []refDocument      `bson:"tags"`
	Reviews      []reviewDocument   `bson:"reviews"`
}

type nameDocument struct {
	Name string `bson:"name"`
}

// summaryDocument mirrors the listing projection.
type summaryDocument struct {
	ID       primitive.ObjectID `bson:"_id"`
	Name     string             `bson:"name"`
	Cuisine  nameDocument       `bson:"cuisine"`
	Tags     []nameDocument     `bson:"tags"`
	PrepTime looseNumber        `bson:"prepTime"`
}

func parseID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

func toRefDocument(id, name string) (refDocument, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return refDocument{}, fmt.Errorf("invalid reference id %q: %w", id, err)
	}
	return refDocument{ID: oid, Name: name}, nil
}

// newRecipeDocument builds the stored form of recipe. Reviews are not
// copied; callers decide whether the document carries them.
func newRecipeDocument(recipe *model.Recipe) (*recipeDocument, error) {
	cuisine, err := toRefDocument(recipe.Cuisine.ID, recipe.Cuisine.Name)
	if err != nil {
		return nil, err
	}

	tags := make([]refDocument, 0, len(recipe.Tags))
	for _, t := range recipe.Tags {
		doc, err := toRefDocument(t.ID, t.Name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, doc)
	}

	ingredients := recipe.Ingredients
	if ingredients == nil {
		ingredients = []model.Ingredient{}
	}
	instructions := recipe.Instructions
	if instructions == nil {
		instructions = []string{}
	}

	return &recipeDocument{
		Name:         recipe.Name,
		Cuisine:      cuisine,
		PrepTime:     looseNumber(recipe.PrepTime),
		CookTime:     looseNumber(recipe.CookTime),
		Servings:     looseNumber(recipe.Servings),
		Ingredients:  ingredients,
		Instructions: instructions,
		Tags:         tags,
		Reviews:      []reviewDocument{},
	}, nil
}

func newReviewDocument(review *model.Review) (*reviewDocument, error) {
	oid, ok := parseID(review.ID)
	if !ok {
		return nil, fmt.Errorf("invalid review id %q", review.ID)
	}
	return &reviewDocument{
		ReviewID: oid,
		User:     review.User,
		Rating:   looseNumber(review.Rating),
		Comment:  review.Comment,
		Date:     review.Date,
	}, nil
}

func (d *recipeDocument) toModel() *model.Recipe {
	recipe := &model.Recipe{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Cuisine:      model.CuisineRef{ID: d.Cuisine.ID.Hex(), Name: d.Cuisine.Name},
		PrepTime:     float64(d.PrepTime),
		CookTime:     float64(d.CookTime),
		Servings:     float64(d.Servings),
		Ingredients:  d.Ingredients,
		Instructions: d.Instructions,
		Tags:         make([]model.TagRef, 0, len(d.Tags)),
		Reviews:      make([]model.Review, 0, len(d.Reviews)),
	}
	if recipe.Ingredients == nil {
		recipe.Ingredients = []model.Ingredient{}
	}
	if recipe.Instructions == nil {
		recipe.Instructions = []string{}
	}
	for _, t := range d.Tags {
		recipe.Tags = append(recipe.Tags, model.TagRef{ID: t.ID.Hex(), Name: t.Name})
	}
	for _, r := range d.Reviews {
		recipe.Reviews = append(recipe.Reviews, model.Review{
			ID:      r.ReviewID.Hex(),
			User:    r.User,
			Rating:  float64(r.Rating),
			Comment: r.Comment,
			Date:    r.Date,
		})
	}
	return recipe
}

func (d *summaryDocument) toModel() model.RecipeSummary {
	tags := make([]model.NameOnly, 0, len(d.Tags))
	for _, t := range d.Tags {
		tags = append(tags, model.NameOnly{Name: t.Name})
	}
	return model.RecipeSummary{
		ID:       d.ID.Hex(),
		Name:     d.Name,
		Cuisine:  model.NameOnly{Name: d.Cuisine.Name},
		Tags:     tags,
		PrepTime: float64(d.PrepTime),
	}
}
