// Package mongostore implements store.Store on MongoDB. Recipes keep their
// cuisine, tags and reviews embedded, so deleting a recipe removes its
// reviews with it.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pageza/recipebook/backend/internal/model"
	"github.com/pageza/recipebook/backend/internal/store"
)

// Collection names.
const (
	RecipesCollection  = "recipes"
	CuisinesCollection = "cuisines"
	TagsCollection     = "tags"
)

// Store is a MongoDB backed store.Store.
type Store struct {
	client   *mongo.Client
	recipes  *mongo.Collection
	cuisines *mongo.Collection
	tags     *mongo.Collection
}

var _ store.Store = (*Store)(nil)

// New wraps an already connected client.
func New(client *mongo.Client, dbName string) *Store {
	db := client.Database(dbName)
	return &Store{
		client:   client,
		recipes:  db.Collection(RecipesCollection),
		cuisines: db.Collection(CuisinesCollection),
		tags:     db.Collection(TagsCollection),
	}
}

// EnsureIndexes creates the unique name indexes of the reference collections.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	unique := mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := s.cuisines.Indexes().CreateOne(ctx, unique); err != nil {
		return fmt.Errorf("failed to create cuisines index: %w", err)
	}
	if _, err := s.tags.Indexes().CreateOne(ctx, unique); err != nil {
		return fmt.Errorf("failed to create tags index: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) NewID() string {
	return primitive.NewObjectID().Hex()
}

// containsPattern matches term as a literal, case-insensitive substring.
func containsPattern(term string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
}

func buildFilter(f model.RecipeFilter) bson.M {
	filter := bson.M{}
	if len(f.Tags) > 0 {
		filter["tags.name"] = bson.M{"$in": f.Tags}
	}
	if f.Cuisine != "" {
		filter["cuisine.name"] = containsPattern(f.Cuisine)
	}
	if len(f.Ingredients) > 0 {
		patterns := make([]primitive.Regex, 0, len(f.Ingredients))
		for _, term := range f.Ingredients {
			patterns = append(patterns, containsPattern(term))
		}
		filter["ingredients.name"] = bson.M{"$all": patterns}
	}
	if f.Name != "" {
		filter["name"] = containsPattern(f.Name)
	}
	return filter
}

func (s *Store) ListRecipes(ctx context.Context, f model.RecipeFilter) ([]model.RecipeSummary, error) {
	opts := options.Find().SetProjection(bson.M{
		"_id":          1,
		"name":         1,
		"cuisine.name": 1,
		"tags.name":    1,
		"prepTime":     1,
	})

	cursor, err := s.recipes.Find(ctx, buildFilter(f), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}

	var docs []summaryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode recipes: %w", err)
	}

	summaries := make([]model.RecipeSummary, 0, len(docs))
	for i := range docs {
		summaries = append(summaries, docs[i].toModel())
	}
	return summaries, nil
}

func (s *Store) GetRecipe(ctx context.Context, id string) (*model.Recipe, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, store.ErrNotFound
	}

	var doc recipeDocument
	err := s.recipes.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recipe: %w", err)
	}
	return doc.toModel(), nil
}

func (s *Store) AllRecipes(ctx context.Context) ([]model.RecipeExport, error) {
	cursor, err := s.recipes.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}

	var docs []recipeDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode recipes: %w", err)
	}

	out := make([]model.RecipeExport, 0, len(docs))
	for i := range docs {
		r := docs[i].toModel()
		out = append(out, model.RecipeExport{ID: r.ID, Recipe: *r})
	}
	return out, nil
}

func (s *Store) InsertRecipe(ctx context.Context, recipe *model.Recipe) (string, error) {
	doc, err := newRecipeDocument(recipe)
	if err != nil {
		return "", err
	}

	res, err := s.recipes.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to insert recipe: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (s *Store) ReplaceRecipe(ctx context.Context, id string, recipe *model.Recipe) error {
	oid, ok := parseID(id)
	if !ok {
		return store.ErrNotFound
	}
	doc, err := newRecipeDocument(recipe)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{
		"name":         doc.Name,
		"cuisine":      doc.Cuisine,
		"prepTime":     doc.PrepTime,
		"cookTime":     doc.CookTime,
		"servings":     doc.Servings,
		"ingredients":  doc.Ingredients,
		"instructions": doc.Instructions,
		"tags":         doc.Tags,
	}}

	res, err := s.recipes.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("failed to update recipe: %w", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteRecipe(ctx context.Context, id string) error {
	oid, ok := parseID(id)
	if !ok {
		return store.ErrNotFound
	}

	res, err := s.recipes.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) AppendReview(ctx context.Context, recipeID string, review *model.Review) error {
	oid, ok := parseID(recipeID)
	if !ok {
		return store.ErrNotFound
	}
	doc, err := newReviewDocument(review)
	if err != nil {
		return err
	}

	res, err := s.recipes.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$push": bson.M{"reviews": doc}},
	)
	if err != nil {
		return fmt.Errorf("failed to add review: %w", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) ReplaceReview(ctx context.Context, recipeID, reviewID string, review *model.Review) error {
	oid, ok := parseID(recipeID)
	if !ok {
		return store.ErrNotFound
	}
	rid, ok := parseID(reviewID)
	if !ok {
		return s.reviewMiss(ctx, oid)
	}

	doc, err := newReviewDocument(review)
	if err != nil {
		return err
	}
	doc.ReviewID = rid

	res, err := s.recipes.UpdateOne(ctx,
		bson.M{"_id": oid, "reviews.review_id": rid},
		bson.M{"$set": bson.M{"reviews.$": doc}},
	)
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}
	if res.MatchedCount == 0 {
		return s.reviewMiss(ctx, oid)
	}
	return nil
}

func (s *Store) RemoveReview(ctx context.Context, recipeID, reviewID string) error {
	oid, ok := parseID(recipeID)
	if !ok {
		return store.ErrNotFound
	}
	rid, ok := parseID(reviewID)
	if !ok {
		return s.reviewMiss(ctx, oid)
	}

	res, err := s.recipes.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$pull": bson.M{"reviews": bson.M{"review_id": rid}}},
	)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	if res.ModifiedCount == 0 {
		return store.ErrReviewNotFound
	}
	return nil
}

// reviewMiss tells a missing recipe apart from a missing review.
func (s *Store) reviewMiss(ctx context.Context, recipeID primitive.ObjectID) error {
	n, err := s.recipes.CountDocuments(ctx, bson.M{"_id": recipeID}, options.Count().SetLimit(1))
	if err != nil {
		return fmt.Errorf("failed to look up recipe: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return store.ErrReviewNotFound
}

func (s *Store) FindCuisineByName(ctx context.Context, name string) (*model.Cuisine, error) {
	var doc refDocument
	err := s.cuisines.FindOne(ctx, bson.M{"name": name}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up cuisine: %w", err)
	}
	return &model.Cuisine{ID: doc.ID.Hex(), Name: doc.Name}, nil
}

func (s *Store) FindTagsByNames(ctx context.Context, names []string) ([]model.Tag, error) {
	docs, err := s.findRefs(ctx, s.tags, bson.M{"name": bson.M{"$in": names}})
	if err != nil {
		return nil, fmt.Errorf("failed to look up tags: %w", err)
	}
	tags := make([]model.Tag, 0, len(docs))
	for _, d := range docs {
		tags = append(tags, model.Tag{ID: d.ID.Hex(), Name: d.Name})
	}
	return tags, nil
}

func (s *Store) ListCuisines(ctx context.Context) ([]model.Cuisine, error) {
	docs, err := s.findRefs(ctx, s.cuisines, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list cuisines: %w", err)
	}
	out := make([]model.Cuisine, 0, len(docs))
	for _, d := range docs {
		out = append(out, model.Cuisine{ID: d.ID.Hex(), Name: d.Name})
	}
	return out, nil
}

func (s *Store) ListTags(ctx context.Context) ([]model.Tag, error) {
	docs, err := s.findRefs(ctx, s.tags, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	out := make([]model.Tag, 0, len(docs))
	for _, d := range docs {
		out = append(out, model.Tag{ID: d.ID.Hex(), Name: d.Name})
	}
	return out, nil
}

func (s *Store) findRefs(ctx context.Context, coll *mongo.Collection, filter bson.M) ([]refDocument, error) {
	cursor, err := coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []refDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *Store) UpsertCuisine(ctx context.Context, name string) (*model.Cuisine, error) {
	doc, err := s.upsertRef(ctx, s.cuisines, name)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert cuisine %q: %w", name, err)
	}
	return &model.Cuisine{ID: doc.ID.Hex(), Name: doc.Name}, nil
}

func (s *Store) UpsertTag(ctx context.Context, name string) (*model.Tag, error) {
	doc, err := s.upsertRef(ctx, s.tags, name)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert tag %q: %w", name, err)
	}
	return &model.Tag{ID: doc.ID.Hex(), Name: doc.Name}, nil
}

func (s *Store) upsertRef(ctx context.Context, coll *mongo.Collection, name string) (*refDocument, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc refDocument
	err := coll.FindOneAndUpdate(ctx,
		bson.M{"name": name},
		bson.M{"$setOnInsert": bson.M{"name": name}},
		opts,
	).Decode(&doc)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}
