package services

import (
	"fmt"
	"log"
	"time"

	"enibar/internal/models"
	"enibar/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

// AdminService handles admin accounts, authentication and authorization.
type AdminService struct {
	repo       repositories.AdminRepository
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
}

// NewAdminService creates a new AdminService. An empty jwtSecret makes every
// token operation fail with ErrMissingJWTSecret.
func NewAdminService(repo repositories.AdminRepository, jwtSecret string, tokenDuration time.Duration) *AdminService {
	if tokenDuration <= 0 {
		tokenDuration = 12 * time.Hour
	}
	return &AdminService{
		repo:       repo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: tokenDuration,
	}
}

// Add creates an admin without any right.
func (s *AdminService) Add(login, password string) error {
	return s.repo.Add(login, password)
}

// Remove deletes an admin. The last admin holding manage_users cannot be removed.
func (s *AdminService) Remove(login string) error {
	return s.repo.Remove(login)
}

// GetList returns every admin login.
func (s *AdminService) GetList() ([]string, error) {
	return s.repo.GetList()
}

// GetRights returns the rights of an admin.
func (s *AdminService) GetRights(login string) (models.Rights, error) {
	return s.repo.GetRights(login)
}

// SetRights overwrites the rights of an admin.
func (s *AdminService) SetRights(login string, rights models.Rights) error {
	return s.repo.SetRights(login, rights)
}

// ChangePassword sets a new password for an admin.
func (s *AdminService) ChangePassword(login, password string) error {
	return s.repo.ChangePassword(login, password)
}

// IsAuthorized reports whether password is the password of login.
func (s *AdminService) IsAuthorized(login, password string) (bool, error) {
	return s.repo.IsAuthorized(login, password)
}

// HasRight reports whether login currently holds right. Rights are read from
// the database on every call so revocations apply to live tokens.
func (s *AdminService) HasRight(login, right string) (bool, error) {
	rights, err := s.repo.GetRights(login)
	if err != nil {
		return false, err
	}
	return rights.Has(right), nil
}

// Login authenticates an admin and returns a JWT token if successful.
func (s *AdminService) Login(login, password string) (string, error) {
	if len(s.jwtSecret) == 0 {
		return "", ErrMissingJWTSecret
	}
	ok, err := s.repo.IsAuthorized(login, password)
	if err != nil {
		return "", fmt.Errorf("failed to authenticate %s: %w", login, err)
	}
	if !ok {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"login": login,
		"jti":   uuid.NewString(),
		"exp":   now.Add(s.tokenDurat).Unix(),
		"iat":   now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AdminService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	if len(s.jwtSecret) == 0 {
		return nil, ErrMissingJWTSecret
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		if login, _ := claims["login"].(string); login == "" {
			return nil, fmt.Errorf("%w: missing login", ErrInvalidToken)
		}
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// Authenticate validates tokenString and returns its login. Tokens of removed
// admins are rejected with ErrUnknownAdmin.
func (s *AdminService) Authenticate(tokenString string) (string, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return "", err
	}
	login := claims["login"].(string)

	exists, err := s.repo.Exists(login)
	if err != nil {
		return "", fmt.Errorf("failed to look up admin %s: %w", login, err)
	}
	if !exists {
		return "", ErrUnknownAdmin
	}
	return login, nil
}

// EnsureBootstrapAdmin creates an admin with every right when there is none
// yet, so a fresh database can be administered. An empty password is replaced
// by a random one, which is logged once.
func (s *AdminService) EnsureBootstrapAdmin(login, password string) error {
	count, err := s.repo.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if password == "" {
		password = uuid.NewString()
		log.Printf("Generated password for bootstrap admin %s: %s", login, password)
	}
	rights := models.Rights{ManageUsers: true, ManageNotes: true, ManageProducts: true}
	if err := s.repo.AddWithRights(login, password, rights); err != nil {
		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}
	log.Printf("Created bootstrap admin %s", login)
	return nil
}
