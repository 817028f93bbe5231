package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported JSONBStringArray source %T", value)
	}

	return json.Unmarshal(bytes, a)
}

// Number is a numeric request field that also accepts numeric strings,
// which is what HTML form clients send.
type Number float64

// UnmarshalJSON accepts a JSON number, a numeric string, "" or null.
func (n *Number) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*n = 0
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*n = 0
			return nil
		}
	}
	f, err := ParseNumber(raw)
	if err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// ParseNumber parses a decimal number, rejecting NaN and infinities since
// they cannot be written back out as JSON.
func ParseNumber(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return f, nil
}

// Float64 returns n as a float64.
func (n Number) Float64() float64 { return float64(n) }

// Ingredient is a single recipe ingredient.
type Ingredient struct {
	Name string `json:"name" bson:"name"`
}

// CuisineRef is the cuisine snapshot stored inside a recipe.
type CuisineRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// TagRef is a tag snapshot stored inside a recipe.
type TagRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Recipe is the full recipe document. The identifier is never rendered
// by the detail endpoint; see RecipeExport for the id-carrying form.
type Recipe struct {
	ID           string       `json:"-"`
	Name         string       `json:"name"`
	Cuisine      CuisineRef   `json:"cuisine"`
	PrepTime     float64      `json:"prepTime"`
	CookTime     float64      `json:"cookTime"`
	Servings     float64      `json:"servings"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions []string     `json:"instructions"`
	Tags         []TagRef     `json:"tags"`
	Reviews      []Review     `json:"reviews"`
}

// RecipeExport is a recipe together with its identifier.
type RecipeExport struct {
	ID string `json:"_id"`
	Recipe
}

// Review is a user review embedded in a recipe.
type Review struct {
	ID      string    `json:"review_id"`
	User    string    `json:"user"`
	Rating  float64   `json:"rating"`
	Comment string    `json:"comment"`
	Date    time.Time `json:"date"`
}

// NameOnly is the projection of a reference snapshot used by search results.
type NameOnly struct {
	Name string `json:"name"`
}

// RecipeSummary is the listing projection of a recipe.
type RecipeSummary struct {
	ID       string     `json:"_id"`
	Name     string     `json:"name"`
	Cuisine  NameOnly   `json:"cuisine"`
	Tags     []NameOnly `json:"tags"`
	PrepTime float64    `json:"prepTime"`
}

// RecipeFilter holds the listing filters. Zero values mean "no filter".
type RecipeFilter struct {
	Tags        []string
	Cuisine     string
	Ingredients []string
	Name        string
}

// Cuisine is an entry of the cuisines reference collection.
type Cuisine struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Tag is an entry of the tags reference collection.
type Tag struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Ref returns the snapshot embedded into recipes.
func (c Cuisine) Ref() CuisineRef { return CuisineRef{ID: c.ID, Name: c.Name} }

// Ref returns the snapshot embedded into recipes.
func (t Tag) Ref() TagRef { return TagRef{ID: t.ID, Name: t.Name} }
