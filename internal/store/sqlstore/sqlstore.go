// Package sqlstore implements store.Store on a relational database through
// GORM (PostgreSQL in production, SQLite locally and in tests).
//
// The embedded arrays of the document model are split into child tables,
// so the cascade from a recipe to its reviews, ingredients and tag
// snapshots is done explicitly in DeleteRecipe.
package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipebook/backend/internal/model"
	"github.com/pageza/recipebook/backend/internal/store"
)

// Store is a GORM backed store.Store.
type Store struct {
	db *gorm.DB
}

var _ store.Store = (*Store)(nil)

// New wraps an open GORM handle. The schema must already exist; see
// database.RunMigrations.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle.
func (s *Store) DB() *gorm.DB { return s.db }

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) NewID() string {
	return uuid.New().String()
}

func parseID(id string) (uuid.UUID, bool) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, false
	}
	return uid, true
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching term as a literal,
// lower-cased substring.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}

func byPosition(db *gorm.DB) *gorm.DB { return db.Order("position") }

func bySeq(db *gorm.DB) *gorm.DB { return db.Order("seq") }

func (s *Store) ListRecipes(ctx context.Context, f model.RecipeFilter) ([]model.RecipeSummary, error) {
	query := s.db.WithContext(ctx).Model(&RecipeRow{}).Preload("Tags", byPosition)

	if len(f.Tags) > 0 {
		query = query.Where(
			"EXISTS (SELECT 1 FROM recipe_tags rt WHERE rt.recipe_id = recipes.id AND rt.tag_name IN ?)",
			f.Tags,
		)
	}
	if f.Cuisine != "" {
		query = query.Where(`LOWER(recipes.cuisine_name) LIKE ? ESCAPE '\'`, containsPattern(f.Cuisine))
	}
	for _, term := range f.Ingredients {
		query = query.Where(
			`EXISTS (SELECT 1 FROM recipe_ingredients ri WHERE ri.recipe_id = recipes.id AND LOWER(ri.name) LIKE ? ESCAPE '\')`,
			containsPattern(term),
		)
	}
	if f.Name != "" {
		query = query.Where(`LOWER(recipes.name) LIKE ? ESCAPE '\'`, containsPattern(f.Name))
	}

	var rows []RecipeRow
	if err := query.Order("recipes.created_at, recipes.id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}

	summaries := make([]model.RecipeSummary, 0, len(rows))
	for i := range rows {
		summaries = append(summaries, rows[i].toSummary())
	}
	return summaries, nil
}

func (s *Store) loadRecipes(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Ingredients", byPosition).
		Preload("Tags", byPosition).
		Preload("Reviews", bySeq)
}

func (s *Store) GetRecipe(ctx context.Context, id string) (*model.Recipe, error) {
	uid, ok := parseID(id)
	if !ok {
		return nil, store.ErrNotFound
	}

	var row RecipeRow
	err := s.loadRecipes(ctx).First(&row, "id = ?", uid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recipe: %w", err)
	}
	return row.toModel(), nil
}

func (s *Store) AllRecipes(ctx context.Context) ([]model.RecipeExport, error) {
	var rows []RecipeRow
	if err := s.loadRecipes(ctx).Order("created_at, id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}

	out := make([]model.RecipeExport, 0, len(rows))
	for i := range rows {
		r := rows[i].toModel()
		out = append(out, model.RecipeExport{ID: r.ID, Recipe: *r})
	}
	return out, nil
}

// newRecipeRow builds the row and child rows for recipe under id.
func newRecipeRow(id uuid.UUID, recipe *model.Recipe) (*RecipeRow, error) {
	cuisineID, ok := parseID(recipe.Cuisine.ID)
	if !ok {
		return nil, fmt.Errorf("invalid cuisine id %q", recipe.Cuisine.ID)
	}

	row := &RecipeRow{
		ID:           id,
		Name:         recipe.Name,
		CuisineID:    cuisineID,
		CuisineName:  recipe.Cuisine.Name,
		PrepTime:     recipe.PrepTime,
		CookTime:     recipe.CookTime,
		Servings:     recipe.Servings,
		Instructions: model.JSONBStringArray(recipe.Instructions),
	}
	for i, ing := range recipe.Ingredients {
		row.Ingredients = append(row.Ingredients, IngredientRow{RecipeID: id, Position: i, Name: ing.Name})
	}
	for i, t := range recipe.Tags {
		tagID, ok := parseID(t.ID)
		if !ok {
			return nil, fmt.Errorf("invalid tag id %q", t.ID)
		}
		row.Tags = append(row.Tags, RecipeTagRow{RecipeID: id, Position: i, TagID: tagID, TagName: t.Name})
	}
	return row, nil
}

func (s *Store) InsertRecipe(ctx context.Context, recipe *model.Recipe) (string, error) {
	row, err := newRecipeRow(uuid.New(), recipe)
	if err != nil {
		return "", err
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return "", fmt.Errorf("failed to insert recipe: %w", err)
	}
	return row.ID.String(), nil
}

func (s *Store) ReplaceRecipe(ctx context.Context, id string, recipe *model.Recipe) error {
	uid, ok := parseID(id)
	if !ok {
		return store.ErrNotFound
	}
	row, err := newRecipeRow(uid, recipe)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&RecipeRow{}).Where("id = ?", uid).Updates(map[string]interface{}{
			"name":         row.Name,
			"cuisine_id":   row.CuisineID,
			"cuisine_name": row.CuisineName,
			"prep_time":    row.PrepTime,
			"cook_time":    row.CookTime,
			"servings":     row.Servings,
			"instructions": row.Instructions,
			"updated_at":   time.Now(),
		})
		if res.Error != nil {
			return fmt.Errorf("failed to update recipe: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return store.ErrNotFound
		}

		if err := tx.Where("recipe_id = ?", uid).Delete(&IngredientRow{}).Error; err != nil {
			return fmt.Errorf("failed to clear ingredients: %w", err)
		}
		if err := tx.Where("recipe_id = ?", uid).Delete(&RecipeTagRow{}).Error; err != nil {
			return fmt.Errorf("failed to clear tags: %w", err)
		}
		if len(row.Ingredients) > 0 {
			if err := tx.Create(&row.Ingredients).Error; err != nil {
				return fmt.Errorf("failed to write ingredients: %w", err)
			}
		}
		if len(row.Tags) > 0 {
			if err := tx.Create(&row.Tags).Error; err != nil {
				return fmt.Errorf("failed to write tags: %w", err)
			}
		}
		return nil
	})
}

func (s *Store) DeleteRecipe(ctx context.Context, id string) error {
	uid, ok := parseID(id)
	if !ok {
		return store.ErrNotFound
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, child := range []interface{}{&ReviewRow{}, &IngredientRow{}, &RecipeTagRow{}} {
			if err := tx.Where("recipe_id = ?", uid).Delete(child).Error; err != nil {
				return fmt.Errorf("failed to delete recipe children: %w", err)
			}
		}
		res := tx.Delete(&RecipeRow{}, "id = ?", uid)
		if res.Error != nil {
			return fmt.Errorf("failed to delete recipe: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return store.ErrNotFound
		}
		return nil
	})
}

func recipeExists(tx *gorm.DB, id uuid.UUID) (bool, error) {
	var n int64
	if err := tx.Model(&RecipeRow{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("failed to look up recipe: %w", err)
	}
	return n > 0, nil
}

func (s *Store) AppendReview(ctx context.Context, recipeID string, review *model.Review) error {
	uid, ok := parseID(recipeID)
	if !ok {
		return store.ErrNotFound
	}
	rid, ok := parseID(review.ID)
	if !ok {
		return fmt.Errorf("invalid review id %q", review.ID)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := recipeExists(tx, uid)
		if err != nil {
			return err
		}
		if !exists {
			return store.ErrNotFound
		}
		row := ReviewRow{
			ReviewID: rid,
			RecipeID: uid,
			User:     review.User,
			Rating:   review.Rating,
			Comment:  review.Comment,
			Date:     review.Date,
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to add review: %w", err)
		}
		return nil
	})
}

func (s *Store) ReplaceReview(ctx context.Context, recipeID, reviewID string, review *model.Review) error {
	uid, ok := parseID(recipeID)
	if !ok {
		return store.ErrNotFound
	}
	rid, ok := parseID(reviewID)
	if !ok {
		return s.reviewMiss(ctx, uid)
	}

	res := s.db.WithContext(ctx).Model(&ReviewRow{}).
		Where("recipe_id = ? AND review_id = ?", uid, rid).
		Updates(map[string]interface{}{
			"reviewer": review.User,
			"rating":   review.Rating,
			"comment":  review.Comment,
			"date":     review.Date,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update review: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return s.reviewMiss(ctx, uid)
	}
	return nil
}

func (s *Store) RemoveReview(ctx context.Context, recipeID, reviewID string) error {
	uid, ok := parseID(recipeID)
	if !ok {
		return store.ErrNotFound
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := recipeExists(tx, uid)
		if err != nil {
			return err
		}
		if !exists {
			return store.ErrNotFound
		}
		rid, ok := parseID(reviewID)
		if !ok {
			return store.ErrReviewNotFound
		}
		res := tx.Where("recipe_id = ? AND review_id = ?", uid, rid).Delete(&ReviewRow{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete review: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return store.ErrReviewNotFound
		}
		return nil
	})
}

// reviewMiss tells a missing recipe apart from a missing review.
func (s *Store) reviewMiss(ctx context.Context, recipeID uuid.UUID) error {
	exists, err := recipeExists(s.db.WithContext(ctx), recipeID)
	if err != nil {
		return err
	}
	if !exists {
		return store.ErrNotFound
	}
	return store.ErrReviewNotFound
}

func (s *Store) FindCuisineByName(ctx context.Context, name string) (*model.Cuisine, error) {
	var row CuisineRow
	err := s.db.WithContext(ctx).First(&row, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up cuisine: %w", err)
	}
	return &model.Cuisine{ID: row.ID.String(), Name: row.Name}, nil
}

func (s *Store) FindTagsByNames(ctx context.Context, names []string) ([]model.Tag, error) {
	if len(names) == 0 {
		return []model.Tag{}, nil
	}
	var rows []TagRow
	if err := s.db.WithContext(ctx).Where("name IN ?", names).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to look up tags: %w", err)
	}
	tags := make([]model.Tag, 0, len(rows))
	for _, r := range rows {
		tags = append(tags, model.Tag{ID: r.ID.String(), Name: r.Name})
	}
	return tags, nil
}

func (s *Store) ListCuisines(ctx context.Context) ([]model.Cuisine, error) {
	var rows []CuisineRow
	if err := s.db.WithContext(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list cuisines: %w", err)
	}
	out := make([]model.Cuisine, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.Cuisine{ID: r.ID.String(), Name: r.Name})
	}
	return out, nil
}

func (s *Store) ListTags(ctx context.Context) ([]model.Tag, error) {
	var rows []TagRow
	if err := s.db.WithContext(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	out := make([]model.Tag, 0, len(rows))
	for _, r := range rows {
		out = append(out, model.Tag{ID: r.ID.String(), Name: r.Name})
	}
	return out, nil
}

var onNameConflict = clause.OnConflict{
	Columns:   []clause.Column{{Name: "name"}},
	DoNothing: true,
}

func (s *Store) UpsertCuisine(ctx context.Context, name string) (*model.Cuisine, error) {
	db := s.db.WithContext(ctx)
	if err := db.Clauses(onNameConflict).Create(&CuisineRow{ID: uuid.New(), Name: name}).Error; err != nil {
		return nil, fmt.Errorf("failed to upsert cuisine %q: %w", name, err)
	}
	return s.FindCuisineByName(ctx, name)
}

func (s *Store) UpsertTag(ctx context.Context, name string) (*model.Tag, error) {
	db := s.db.WithContext(ctx)
	if err := db.Clauses(onNameConflict).Create(&TagRow{ID: uuid.New(), Name: name}).Error; err != nil {
		return nil, fmt.Errorf("failed to upsert tag %q: %w", name, err)
	}

	var row TagRow
	if err := db.First(&row, "name = ?", name).Error; err != nil {
		return nil, fmt.Errorf("failed to read tag %q: %w", name, err)
	}
	return &model.Tag{ID: row.ID.String(), Name: row.Name}, nil
}
