package database

import (
	"context"
	"errors"
	"fmt"

	"artshare/internal/http-api/models"
	"artshare/internal/middleware/auth"

	"gorm.io/gorm"
)

// AdminSpec describes the administrator account to ensure.
type AdminSpec struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	Surname   string
}

// EnsureAdmin creates the admin account when missing, or promotes an existing
// account with that username. It reports whether a row was created.
func EnsureAdmin(ctx context.Context, db *gorm.DB, spec AdminSpec) (bool, error) {
	created := false
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Account
		err := tx.Where("username = ?", spec.Username).First(&existing).Error
		switch {
		case err == nil:
			if existing.Role == models.RoleAdmin {
				return nil
			}
			return tx.Model(&existing).Update("role", models.RoleAdmin).Error
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		hash, err := auth.HashPassword(spec.Password)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
		account := &models.Account{
			Username:  spec.Username,
			Email:     spec.Email,
			Password:  hash,
			FirstName: orDefault(spec.FirstName, "Site"),
			Surname:   orDefault(spec.Surname, "Admin"),
			Role:      models.RoleAdmin,
		}
		if err := tx.Create(account).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("ensure admin %q: %w", spec.Username, err)
	}
	return created, nil
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
