package repository

import (
	"errors"

	"gorm.io/gorm"
)

// NewGormStore builds a Store on a relational database.
func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Users:       NewUserRepository(db),
		Projects:    NewProjectRepository(db),
		Assignments: NewAssignmentRepository(db),
	}
}

// translateGormError maps GORM errors onto the repository sentinels. The
// connection must be opened with TranslateError for duplicates to surface.
func translateGormError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
