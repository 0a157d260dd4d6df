package repositories

import "errors"

var (
	ErrEmptyName          = errors.New("name must not be blank")
	ErrEmptyCredentials   = errors.New("login and password must not be empty")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrDescriptorNotFound = errors.New("price descriptor not found")
	ErrPriceNotFound      = errors.New("price not found")
	ErrPanelNotFound      = errors.New("panel not found")
	ErrAdminNotFound      = errors.New("admin not found")
	// ErrLastUserManager is returned when a statement would leave no admin
	// holding the manage_users right.
	ErrLastUserManager = errors.New("at least one admin must keep the manage_users right")
)
