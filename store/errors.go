package store

import (
	"errors"
	"strings"

	"venus-recipe/apperrors"

	"gorm.io/gorm"
)

func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// translate maps gorm errors onto the application error kinds
func translate(err error, resource string, id interface{}) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.NewNotFoundError(resource, id)
	case isDuplicate(err):
		return apperrors.NewConflictError(resource + " already exists").WithContext("key", id)
	default:
		return apperrors.NewDatabaseError(err).WithContext("resource", resource)
	}
}
