package wardrobe

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Category is the five-way classification of a clothing item.
type Category string

const (
	CategoryTop       Category = "top"
	CategoryBottom    Category = "bottom"
	CategoryOuterwear Category = "outerwear"
	CategoryShoes     Category = "shoes"
	CategoryOnePiece  Category = "one-piece"
)

// Valid reports whether c is one of the five known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryTop, CategoryBottom, CategoryOuterwear, CategoryShoes, CategoryOnePiece:
		return true
	}
	return false
}

// Labels are the fine-grained garment names the classifier chooses between.
var Labels = []string{
	"t-shirt", "shirt", "blouse", "sweater", "cardigan", "hoodie",
	"jeans", "pants", "shorts", "skirt",
	"dress", "jumpsuit",
	"jacket", "coat", "blazer",
	"sneakers", "boots", "sandals", "heels",
}

var labelCategories = map[string]Category{
	"t-shirt":  CategoryTop,
	"shirt":    CategoryTop,
	"blouse":   CategoryTop,
	"sweater":  CategoryTop,
	"cardigan": CategoryTop,
	"hoodie":   CategoryTop,
	"jeans":    CategoryBottom,
	"pants":    CategoryBottom,
	"shorts":   CategoryBottom,
	"skirt":    CategoryBottom,
	"jacket":   CategoryOuterwear,
	"coat":     CategoryOuterwear,
	"blazer":   CategoryOuterwear,
	"sneakers": CategoryShoes,
	"boots":    CategoryShoes,
	"sandals":  CategoryShoes,
	"heels":    CategoryShoes,
}

// CategoryForLabel maps a garment label to its category. Anything unrecognised,
// dresses and jumpsuits included, is a one-piece.
func CategoryForLabel(label string) Category {
	if c, ok := labelCategories[strings.ToLower(strings.TrimSpace(label))]; ok {
		return c
	}
	return CategoryOnePiece
}

// DefaultColors is stored when dominant color extraction fails.
var DefaultColors = []string{"#ffffff", "#000000"}

// Item is a tagged clothing item. Only id, filename, category and colors are public.
type Item struct {
	ID          uuid.UUID `json:"id"`
	Filename    string    `json:"filename"`
	Category    Category  `json:"category"`
	Colors      []string  `json:"colors"`
	StorageKey  string    `json:"-"`
	MimeType    string    `json:"-"`
	StyleVector []float32 `json:"-"`
	CreatedAt   time.Time `json:"-"`
}
