package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"venus-recipe/apperrors"
	"venus-recipe/models"

	"github.com/go-playground/validator/v10"
)

// Input structs carry gin's `binding` tags. The services re-check them with
// the same rules so callers other than the HTTP layer get identical errors.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	ConfigureValidator(v)
	return v
}

// ConfigureValidator reports fields by their JSON names and adds the domain
// tags meal_slot and ingredient_category. gin's validator gets the same setup.
func ConfigureValidator(v *validator.Validate) {
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("meal_slot", func(fl validator.FieldLevel) bool {
		return models.MealSlot(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("ingredient_category", func(fl validator.FieldLevel) bool {
		return models.IngredientCategory(fl.Field().String()).Valid()
	})
}

func validateInput(message string, in interface{}) error {
	if err := validate.Struct(in); err != nil {
		return ValidationError(message, err)
	}
	return nil
}

// ValidationError turns a validator or JSON decoding failure into a
// validation AppError listing every offending field.
func ValidationError(message string, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewValidationError(message, err.Error())
	}
	violations := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		violations = append(violations, describeFieldError(fe))
	}
	return apperrors.NewValidationError(message, violations...)
}

func describeFieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "meal_slot":
		return fmt.Sprintf("%s must be one of %s", field, joinSlots())
	case "ingredient_category":
		return fmt.Sprintf("%s %q is not a known ingredient category", field, fe.Value())
	case "datetime":
		return field + " must use YYYY-MM-DD format"
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("%s failed %s=%s", field, fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}

func joinSlots() string {
	names := make([]string, len(models.MealSlots))
	for i, s := range models.MealSlots {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
