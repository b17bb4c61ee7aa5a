package service

import (
	"errors"

	"gorm.io/gorm"
)

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// notFoundOr maps a missing row to ErrNotFound and leaves other errors alone.
func notFoundOr(err error) error {
	if isNotFound(err) {
		return ErrNotFound
	}
	return err
}
