package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// RawProduct is one element of the upstream product array. Every field is
// optional; nil means the field was missing, null, or of the wrong type.
type RawProduct struct {
	Title              *string
	Price              *float64
	DiscountPercentage *float64
	Tags               []string
	IsNew              *bool
	Description        *string
}

// Product is the normalized record handed to the agent. Nil pointers encode
// as JSON null.
type Product struct {
	Title       *string  `json:"title"`
	Price       *float64 `json:"price"`
	Discount    *float64 `json:"discount"`
	Category    string   `json:"category"`
	IsNew       *bool    `json:"isNew"`
	Description *string  `json:"description"`
}

// Normalize projects a RawProduct onto a Product.
func Normalize(raw RawProduct) Product {
	return Product{
		Title:       raw.Title,
		Price:       raw.Price,
		Discount:    raw.DiscountPercentage,
		Category:    strings.Join(raw.Tags, ", "),
		IsNew:       raw.IsNew,
		Description: raw.Description,
	}
}

// NormalizeAll maps every RawProduct in order. The result is never nil.
func NormalizeAll(raws []RawProduct) []Product {
	products := make([]Product, 0, len(raws))
	for _, raw := range raws {
		products = append(products, Normalize(raw))
	}
	return products
}

// Decode parses a JSON array of product objects. Only the document shape can
// fail; individual fields that are missing or mistyped decode as absent.
func Decode(data []byte) ([]RawProduct, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("expected a JSON array of products: %w", err)
	}
	if items == nil {
		return nil, errors.New("expected a JSON array of products, got null")
	}

	raws := make([]RawProduct, 0, len(items))
	for i, item := range items {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(item, &obj); err != nil {
			return nil, fmt.Errorf("product %d is not an object: %w", i, err)
		}
		raws = append(raws, decodeRaw(obj))
	}
	return raws, nil
}

func decodeRaw(obj map[string]json.RawMessage) RawProduct {
	raw := RawProduct{
		Title:              field[string](obj, "title"),
		Price:              field[float64](obj, "price"),
		DiscountPercentage: field[float64](obj, "discountPercentage"),
		IsNew:              field[bool](obj, "isNew"),
		Description:        field[string](obj, "description"),
	}
	// Fall back to the misspelled key some clients of this API read.
	if raw.DiscountPercentage == nil {
		raw.DiscountPercentage = field[float64](obj, "dicountPercentage")
	}
	raw.Tags = stringElements(obj, "tags")
	return raw
}

// stringElements returns the string elements of an array field. Null and
// non-string elements are skipped; a missing or non-array field yields nil.
func stringElements(obj map[string]json.RawMessage, key string) []string {
	items := field[[]json.RawMessage](obj, key)
	if items == nil {
		return nil
	}
	var out []string
	for _, item := range *items {
		var s *string
		if err := json.Unmarshal(item, &s); err != nil || s == nil {
			continue
		}
		out = append(out, *s)
	}
	return out
}

func field[T any](obj map[string]json.RawMessage, key string) *T {
	data, ok := obj[key]
	if !ok {
		return nil
	}
	var v *T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	return v
}
