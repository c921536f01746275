package store

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"sort"

	"venus-recipe/models"

	"github.com/goccy/go-yaml"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed seed.yaml
var seedYAML []byte

type seedIngredient struct {
	Name string  `yaml:"name"`
	Unit string  `yaml:"unit"`
	Kcal float64 `yaml:"kcal"`
}

type seedDish struct {
	Name        string                     `yaml:"name"`
	Ingredients models.DeclaredIngredients `yaml:"ingredients"`
}

type seedFile struct {
	Campuses   []models.Campus `yaml:"campuses"`
	Categories []struct {
		Name string          `yaml:"name"`
		Slot models.MealSlot `yaml:"slot"`
	} `yaml:"categories"`
	Ingredients map[string][]seedIngredient `yaml:"ingredients"`
	Dishes      map[string][]seedDish       `yaml:"dishes"`
}

// Seed loads the starter catalog. Rows that already exist are left alone,
// so it is safe to run on every start.
func Seed(ctx context.Context, db *gorm.DB, log *slog.Logger) error {
	var data seedFile
	if err := yaml.Unmarshal(seedYAML, &data); err != nil {
		return fmt.Errorf("failed to parse seed data: %w", err)
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ignore := clause.OnConflict{DoNothing: true}

		for i := range data.Campuses {
			if err := tx.Clauses(ignore).Create(&data.Campuses[i]).Error; err != nil {
				return fmt.Errorf("seed campus %s: %w", data.Campuses[i].Code, err)
			}
		}

		for _, c := range data.Categories {
			row := models.DishCategory{Name: c.Name, MealSlot: c.Slot}
			if err := tx.Clauses(ignore).Create(&row).Error; err != nil {
				return fmt.Errorf("seed category %s: %w", c.Name, err)
			}
		}

		for _, category := range models.IngredientCategories {
			for _, ing := range data.Ingredients[string(category)] {
				unit := ing.Unit
				if unit == "" {
					unit = "g"
				}
				row := models.Ingredient{Name: ing.Name, Category: category, Unit: unit, CaloriesPer100: ing.Kcal}
				if err := tx.Clauses(ignore).Create(&row).Error; err != nil {
					return fmt.Errorf("seed ingredient %s: %w", ing.Name, err)
				}
			}
		}

		categoryNames := make([]string, 0, len(data.Dishes))
		for name := range data.Dishes {
			categoryNames = append(categoryNames, name)
		}
		sort.Strings(categoryNames)

		created := 0
		for _, categoryName := range categoryNames {
			var category models.DishCategory
			if err := tx.Where("name = ?", categoryName).Take(&category).Error; err != nil {
				return fmt.Errorf("seed dishes: category %s: %w", categoryName, err)
			}
			for _, d := range data.Dishes[categoryName] {
				var count int64
				if err := tx.Model(&models.Dish{}).
					Where("name = ? AND category_id = ?", d.Name, category.ID).
					Count(&count).Error; err != nil {
					return err
				}
				if count > 0 {
					continue
				}
				dish := models.Dish{
					Name:        d.Name,
					CategoryID:  category.ID,
					Description: d.Name + " - 适合幼儿园营养餐",
					Ingredients: datatypes.NewJSONType(d.Ingredients),
					Active:      true,
				}
				if err := tx.Omit(clause.Associations).Create(&dish).Error; err != nil {
					return fmt.Errorf("seed dish %s: %w", d.Name, err)
				}
				created++
			}
		}

		log.InfoContext(ctx, "Seed data loaded",
			"campuses", len(data.Campuses),
			"categories", len(data.Categories),
			"new_dishes", created,
		)
		return nil
	})
}
