package repositories

import "enibar/internal/models"

// AdminRepository defines the interface for admin account data access.
type AdminRepository interface {
	Add(login, password string) error
	AddWithRights(login, password string, rights models.Rights) error
	Remove(login string) error
	GetList() ([]string, error)
	GetRights(login string) (models.Rights, error)
	SetRights(login string, rights models.Rights) error
	ChangePassword(login, password string) error
	IsAuthorized(login, password string) (bool, error)
	Exists(login string) (bool, error)
	Count() (int64, error)
}
