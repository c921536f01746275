package services

import (
	_ "embed"
	"fmt"

	"venus-recipe/models"

	"github.com/goccy/go-yaml"
)

//go:embed templates.yaml
var templatesYAML []byte

// DefaultQuantity is one line of a slot's fallback quantity template
type DefaultQuantity struct {
	Name     string                    `yaml:"name"`
	Quantity float64                   `yaml:"quantity"`
	Unit     string                    `yaml:"unit"`
	Category models.IngredientCategory `yaml:"category"`
}

// FallbackDish is a canned dish the selector can persist when a slot runs dry
type FallbackDish struct {
	Name        string           `yaml:"name"`
	Ingredients []string         `yaml:"ingredients"`
	Nutrition   models.Nutrition `yaml:"nutrition"`
}

// DishCount bounds how many dishes a slot gets per day
type DishCount struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Templates is the static meal-planning data shipped with the binary
type Templates struct {
	Defaults       map[string][]DefaultQuantity `yaml:"defaults"`
	FallbackDishes map[string][]FallbackDish    `yaml:"fallback_dishes"`
	DishCounts     map[string]DishCount         `yaml:"dish_counts"`
}

// LoadTemplates parses the embedded templates and checks that every slot is covered
func LoadTemplates() (*Templates, error) {
	var t Templates
	if err := yaml.Unmarshal(templatesYAML, &t); err != nil {
		return nil, fmt.Errorf("failed to parse meal templates: %w", err)
	}
	for _, slot := range models.MealSlots {
		key := string(slot)
		if len(t.Defaults[key]) == 0 {
			return nil, fmt.Errorf("meal templates: no default quantities for %s", slot)
		}
		if len(t.FallbackDishes[key]) == 0 {
			return nil, fmt.Errorf("meal templates: no fallback dishes for %s", slot)
		}
		c, ok := t.DishCounts[key]
		if !ok || c.Min < 1 || c.Max < c.Min {
			return nil, fmt.Errorf("meal templates: bad dish count for %s", slot)
		}
	}
	return &t, nil
}

// MustLoadTemplates panics if the embedded file is broken
func MustLoadTemplates() *Templates {
	t, err := LoadTemplates()
	if err != nil {
		panic(err)
	}
	return t
}

// DefaultsFor returns the slot's template; unknown slots use lunch
func (t *Templates) DefaultsFor(slot models.MealSlot) []DefaultQuantity {
	if d, ok := t.Defaults[string(slot)]; ok {
		return d
	}
	return t.Defaults[string(models.SlotLunch)]
}

func (t *Templates) FallbacksFor(slot models.MealSlot) []FallbackDish {
	if d, ok := t.FallbackDishes[string(slot)]; ok {
		return d
	}
	return t.FallbackDishes[string(models.SlotLunch)]
}

func (t *Templates) DishCountFor(slot models.MealSlot) DishCount {
	if c, ok := t.DishCounts[string(slot)]; ok {
		return c
	}
	return DishCount{Min: 1, Max: 1}
}
