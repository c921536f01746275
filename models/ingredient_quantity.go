package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultBaseQuantity is used when a declared ingredient carries no usable quantity
const DefaultBaseQuantity = 50.0

var quantityPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)`)

// DeclaredIngredient is one entry of a dish's ingredient list. Quantities are
// relative to a 100-serving baseline.
type DeclaredIngredient struct {
	Name     string   `json:"name" yaml:"name" binding:"required"`
	Quantity *float64 `json:"quantity" yaml:"quantity"`
	Unit     *string  `json:"unit" yaml:"unit"`
}

type DeclaredIngredients []DeclaredIngredient

// UnmarshalJSON accepts {"name":"大米","quantity":100}, {"name":"大米","quantity":"100g"}
// and a bare "大米". A quantity that carries no number is left nil.
func (d *DeclaredIngredient) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*d = DeclaredIngredient{Name: name}
		return nil
	}

	var raw struct {
		Name     string          `json:"name"`
		Quantity json.RawMessage `json:"quantity"`
		Unit     *string         `json:"unit"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("declared ingredient: %w", err)
	}
	d.Name = strings.TrimSpace(raw.Name)
	d.Unit = raw.Unit
	d.Quantity = nil

	q := bytes.TrimSpace(raw.Quantity)
	if len(q) == 0 || bytes.Equal(q, []byte("null")) {
		return nil
	}
	if q[0] == '"' {
		var s string
		if err := json.Unmarshal(q, &s); err != nil {
			return err
		}
		if v, unit, ok := ParseQuantity(s); ok {
			d.Quantity = &v
			if d.Unit == nil && unit != "" {
				d.Unit = &unit
			}
		}
		return nil
	}
	var v float64
	if err := json.Unmarshal(q, &v); err != nil {
		return fmt.Errorf("declared ingredient %q: quantity: %w", d.Name, err)
	}
	d.Quantity = &v
	return nil
}

// BaseQuantity returns the declared quantity or DefaultBaseQuantity.
func (d DeclaredIngredient) BaseQuantity() float64 {
	if d.Quantity == nil {
		return DefaultBaseQuantity
	}
	return *d.Quantity
}

// ParseQuantity pulls the first number out of strings like "100g" or "1.5 kg".
// The text after the number is returned as the unit.
func ParseQuantity(s string) (float64, string, bool) {
	loc := quantityPattern.FindStringIndex(s)
	if loc == nil {
		return 0, "", false
	}
	v, err := strconv.ParseFloat(s[loc[0]:loc[1]], 64)
	if err != nil {
		return 0, "", false
	}
	return v, strings.TrimSpace(s[loc[1]:]), true
}

// ResolvedQuantity is an ingredient amount scaled to a recipe's servings
type ResolvedQuantity struct {
	Quantity float64            `json:"quantity"`
	Unit     string             `json:"unit"`
	Category IngredientCategory `json:"category,omitempty"`
}

// IngredientQuantities maps ingredient name to its scaled amount
type IngredientQuantities map[string]ResolvedQuantity
