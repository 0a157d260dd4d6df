package repositories

import (
	"errors"
	"fmt"
	"strings"

	"enibar/internal/database"
	"enibar/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// lastUserManagerGuard matches a row only if changing it cannot strip the last
// manage_users holder: either the admin does not hold the right, or someone
// else does too. Arguments: login, false, true.
const lastUserManagerGuard = "((SELECT manage_users FROM admins WHERE login = ?) = ? OR (SELECT COUNT(*) FROM admins WHERE manage_users = ?) > 1)"

// GORMAdminRepository is a GORM implementation of AdminRepository.
type GORMAdminRepository struct {
	db         *gorm.DB
	bcryptCost int
}

// NewGORMAdminRepository creates a new instance of GORMAdminRepository.
func NewGORMAdminRepository(db *gorm.DB, bcryptCost int) *GORMAdminRepository {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &GORMAdminRepository{
		db:         db,
		bcryptCost: bcryptCost,
	}
}

// Add creates an admin without any right.
func (r *GORMAdminRepository) Add(login, password string) error {
	return r.AddWithRights(login, password, models.Rights{})
}

// AddWithRights creates an admin holding rights in a single insert.
func (r *GORMAdminRepository) AddWithRights(login, password string, rights models.Rights) error {
	if strings.TrimSpace(login) == "" || password == "" {
		return ErrEmptyCredentials
	}
	hash, err := r.hash(password)
	if err != nil {
		return err
	}
	if err := r.db.Create(&models.Admin{Login: login, Password: hash, Rights: rights}).Error; err != nil {
		return fmt.Errorf("failed to create admin %s: %w", login, err)
	}
	return nil
}

// Remove deletes an admin unless it is the last one holding manage_users.
func (r *GORMAdminRepository) Remove(login string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := lockAdmins(tx); err != nil {
			return err
		}
		res := tx.Where("login = ?", login).Where(lastUserManagerGuard, login, false, true).Delete(&models.Admin{})
		if res.Error != nil {
			return statementError("remove", login, res.Error)
		}
		if res.RowsAffected == 0 {
			return rejected(tx, login)
		}
		return nil
	})
}

// GetList returns every admin login.
func (r *GORMAdminRepository) GetList() ([]string, error) {
	var logins []string
	if err := r.db.Model(&models.Admin{}).Order("login").Pluck("login", &logins).Error; err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	return logins, nil
}

// GetRights returns the rights of login. An unknown login has no right.
func (r *GORMAdminRepository) GetRights(login string) (models.Rights, error) {
	var admin models.Admin
	if err := r.db.Take(&admin, "login = ?", login).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Rights{}, nil
		}
		return models.Rights{}, fmt.Errorf("failed to get rights of %s: %w", login, err)
	}
	return admin.Rights, nil
}

// SetRights overwrites the rights of login. Revoking manage_users from its
// last holder is rejected with ErrLastUserManager.
func (r *GORMAdminRepository) SetRights(login string, rights models.Rights) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := lockAdmins(tx); err != nil {
			return err
		}
		query := tx.Model(&models.Admin{}).Where("login = ?", login)
		if !rights.ManageUsers {
			query = query.Where(lastUserManagerGuard, login, false, true)
		}
		res := query.Updates(map[string]interface{}{
			"manage_users":    rights.ManageUsers,
			"manage_notes":    rights.ManageNotes,
			"manage_products": rights.ManageProducts,
		})
		if res.Error != nil {
			return statementError("set rights of", login, res.Error)
		}
		if res.RowsAffected == 0 {
			return rejected(tx, login)
		}
		return nil
	})
}

// ChangePassword re-hashes and stores a new password.
func (r *GORMAdminRepository) ChangePassword(login, password string) error {
	if password == "" {
		return ErrEmptyCredentials
	}
	hash, err := r.hash(password)
	if err != nil {
		return err
	}
	res := r.db.Model(&models.Admin{}).Where("login = ?", login).Update("password", hash)
	if res.Error != nil {
		return fmt.Errorf("failed to change password of %s: %w", login, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrAdminNotFound
	}
	return nil
}

// IsAuthorized reports whether password matches the stored hash of login.
func (r *GORMAdminRepository) IsAuthorized(login, password string) (bool, error) {
	var admin models.Admin
	if err := r.db.Select("login", "password").Take(&admin, "login = ?", login).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get admin %s: %w", login, err)
	}
	err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, fmt.Errorf("failed to verify password of %s: %w", login, err)
	}
	return true, nil
}

// Exists reports whether login is a known admin.
func (r *GORMAdminRepository) Exists(login string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Admin{}).Where("login = ?", login).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to look up admin %s: %w", login, err)
	}
	return count > 0, nil
}

// Count returns the number of admins.
func (r *GORMAdminRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}
	return count, nil
}

func (r *GORMAdminRepository) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), r.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// lockAdmins makes concurrent guarded statements on admins run one after the
// other, so each guard counts the managers the previous one left. SQLite
// already serializes writers.
func lockAdmins(tx *gorm.DB) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	if err := tx.Exec("LOCK TABLE admins IN SHARE ROW EXCLUSIVE MODE").Error; err != nil {
		return fmt.Errorf("failed to lock admins: %w", err)
	}
	return nil
}

// rejected tells a guarded statement that matched nothing because the login
// is unknown apart from one blocked by the manage_users guard.
func rejected(tx *gorm.DB, login string) error {
	var count int64
	if err := tx.Model(&models.Admin{}).Where("login = ?", login).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to look up admin %s: %w", login, err)
	}
	if count == 0 {
		return ErrAdminNotFound
	}
	return ErrLastUserManager
}

// statementError maps the database trigger's rejection to ErrLastUserManager.
func statementError(action, login string, err error) error {
	if strings.Contains(err.Error(), database.TriggerMessage) {
		return ErrLastUserManager
	}
	return fmt.Errorf("failed to %s admin %s: %w", action, login, err)
}
