package sqlstore

import (
	"time"

	"github.com/google/uuid"

	"github.com/pageza/recipebook/backend/internal/model"
)

// CuisineRow is a row of the cuisines reference table.
type CuisineRow struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key"`
	Name string    `gorm:"size:255;not null;uniqueIndex"`
}

func (CuisineRow) TableName() string { return "cuisines" }

// TagRow is a row of the tags reference table.
type TagRow struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key"`
	Name string    `gorm:"size:255;not null;uniqueIndex"`
}

func (TagRow) TableName() string { return "tags" }

// RecipeRow keeps the scalar recipe fields and the cuisine snapshot.
// Ingredients, tag snapshots and reviews live in child tables.
type RecipeRow struct {
	ID           uuid.UUID              `gorm:"type:uuid;primary_key"`
	CreatedAt    time.Time              `gorm:"index"`
	UpdatedAt    time.Time
	Name         string                 `gorm:"size:255;not null"`
	CuisineID    uuid.UUID              `gorm:"type:uuid;not null"`
	CuisineName  string                 `gorm:"size:255;not null"`
	PrepTime     float64                `gorm:"type:float"`
	CookTime     float64                `gorm:"type:float"`
	Servings     float64                `gorm:"type:float"`
	Instructions model.JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'"`
	Ingredients  []IngredientRow        `gorm:"foreignKey:RecipeID"`
	Tags         []RecipeTagRow         `gorm:"foreignKey:RecipeID"`
	Reviews      []ReviewRow            `gorm:"foreignKey:RecipeID"`
}

func (RecipeRow) TableName() string { return "recipes" }

// IngredientRow is one ingredient at Position within its recipe.
type IngredientRow struct {
	ID       uint      `gorm:"primaryKey"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;index"`
	Position int       `gorm:"not null"`
	Name     string    `gorm:"size:255;not null"`
}

func (IngredientRow) TableName() string { return "recipe_ingredients" }

// RecipeTagRow is a tag snapshot at Position within its recipe.
type RecipeTagRow struct {
	ID       uint      `gorm:"primaryKey"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;index"`
	Position int       `gorm:"not null"`
	TagID    uuid.UUID `gorm:"type:uuid;not null"`
	TagName  string    `gorm:"size:255;not null;index"`
}

func (RecipeTagRow) TableName() string { return "recipe_tags" }

// ReviewRow is a review. Seq keeps insertion order and survives in-place
// replacement of the review.
type ReviewRow struct {
	Seq      uint      `gorm:"primaryKey;autoIncrement"`
	ReviewID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;index"`
	User     string    `gorm:"column:reviewer;size:255;not null"`
	Rating   float64   `gorm:"type:float;not null"`
	Comment  string    `gorm:"type:text;not null"`
	Date     time.Time `gorm:"not null"`
}

func (ReviewRow) TableName() string { return "recipe_reviews" }

// Models lists every table for auto-migration.
func Models() []interface{} {
	return []interface{}{
		&CuisineRow{},
		&TagRow{},
		&RecipeRow{},
		&IngredientRow{},
		&RecipeTagRow{},
		&ReviewRow{},
	}
}

func (r *RecipeRow) toModel() *model.Recipe {
	recipe := &model.Recipe{
		ID:           r.ID.String(),
		Name:         r.Name,
		Cuisine:      model.CuisineRef{ID: r.CuisineID.String(), Name: r.CuisineName},
		PrepTime:     r.PrepTime,
		CookTime:     r.CookTime,
		Servings:     r.Servings,
		Ingredients:  make([]model.Ingredient, 0, len(r.Ingredients)),
		Instructions: []string(r.Instructions),
		Tags:         make([]model.TagRef, 0, len(r.Tags)),
		Reviews:      make([]model.Review, 0, len(r.Reviews)),
	}
	if recipe.Instructions == nil {
		recipe.Instructions = []string{}
	}
	for _, ing := range r.Ingredients {
		recipe.Ingredients = append(recipe.Ingredients, model.Ingredient{Name: ing.Name})
	}
	for _, t := range r.Tags {
		recipe.Tags = append(recipe.Tags, model.TagRef{ID: t.TagID.String(), Name: t.TagName})
	}
	for _, rv := range r.Reviews {
		recipe.Reviews = append(recipe.Reviews, model.Review{
			ID:      rv.ReviewID.String(),
			User:    rv.User,
			Rating:  rv.Rating,
			Comment: rv.Comment,
			Date:    rv.Date,
		})
	}
	return recipe
}

func (r *RecipeRow) toSummary() model.RecipeSummary {
	tags := make([]model.NameOnly, 0, len(r.Tags))
	for _, t := range r.Tags {
		tags = append(tags, model.NameOnly{Name: t.TagName})
	}
	return model.RecipeSummary{
		ID:       r.ID.String(),
		Name:     r.Name,
		Cuisine:  model.NameOnly{Name: r.CuisineName},
		Tags:     tags,
		PrepTime: r.PrepTime,
	}
}
