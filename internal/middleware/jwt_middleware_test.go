package middleware_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"enibar/internal/middleware"
	"enibar/internal/models"
	"enibar/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAdminRepository is a mock implementation of repositories.AdminRepository
type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) Add(login, password string) error {
	args := m.Called(login, password)
	return args.Error(0)
}

func (m *MockAdminRepository) AddWithRights(login, password string, rights models.Rights) error {
	args := m.Called(login, password, rights)
	return args.Error(0)
}

func (m *MockAdminRepository) Remove(login string) error {
	args := m.Called(login)
	return args.Error(0)
}

func (m *MockAdminRepository) GetList() ([]string, error) {
	args := m.Called()
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAdminRepository) GetRights(login string) (models.Rights, error) {
	args := m.Called(login)
	return args.Get(0).(models.Rights), args.Error(1)
}

func (m *MockAdminRepository) SetRights(login string, rights models.Rights) error {
	args := m.Called(login, rights)
	return args.Error(0)
}

func (m *MockAdminRepository) ChangePassword(login, password string) error {
	args := m.Called(login, password)
	return args.Error(0)
}

func (m *MockAdminRepository) IsAuthorized(login, password string) (bool, error) {
	args := m.Called(login, password)
	return args.Bool(0), args.Error(1)
}

func (m *MockAdminRepository) Exists(login string) (bool, error) {
	args := m.Called(login)
	return args.Bool(0), args.Error(1)
}

func (m *MockAdminRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func newTestApp(t *testing.T) (*fiber.App, *MockAdminRepository, *services.AdminService) {
	repo := new(MockAdminRepository)
	adminService := services.NewAdminService(repo, "test_jwt_secret", time.Hour)

	app := fiber.New()
	protected := app.Group("/", middleware.AuthRequired(adminService))
	protected.Get("/me", func(c *fiber.Ctx) error {
		return c.SendString(middleware.CurrentLogin(c))
	})
	protected.Get("/catalog", middleware.RequireRight(adminService, models.RightManageProducts), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app, repo, adminService
}

func tokenFor(t *testing.T, repo *MockAdminRepository, adminService *services.AdminService, login string) string {
	repo.On("IsAuthorized", login, "pw").Return(true, nil).Once()
	token, err := adminService.Login(login, "pw")
	require.NoError(t, err)
	return token
}

func get(t *testing.T, app *fiber.App, path, authorization string) *http.Response {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAuthRequired(t *testing.T) {
	app, repo, adminService := newTestApp(t)
	token := tokenFor(t, repo, adminService, "barman")
	repo.On("Exists", "barman").Return(true, nil)

	assert.Equal(t, http.StatusUnauthorized, get(t, app, "/me", "").StatusCode)
	assert.Equal(t, http.StatusUnauthorized, get(t, app, "/me", "Token "+token).StatusCode)
	assert.Equal(t, http.StatusUnauthorized, get(t, app, "/me", "Bearer ").StatusCode)
	assert.Equal(t, http.StatusUnauthorized, get(t, app, "/me", "Bearer garbage").StatusCode)

	resp := get(t, app, "/me", "Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "barman", string(body))
}

func TestAuthRequired_RemovedAdmin(t *testing.T) {
	app, repo, adminService := newTestApp(t)
	token := tokenFor(t, repo, adminService, "former")
	repo.On("Exists", "former").Return(false, nil).Once()

	resp := get(t, app, "/me", "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	repo.AssertExpectations(t)
}

func TestAuthRequired_LookupFailure(t *testing.T) {
	app, repo, adminService := newTestApp(t)
	token := tokenFor(t, repo, adminService, "barman")
	repo.On("Exists", "barman").Return(false, errors.New("database error")).Once()

	resp := get(t, app, "/me", "Bearer "+token)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	repo.AssertExpectations(t)
}

func TestRequireRight(t *testing.T) {
	app, repo, adminService := newTestApp(t)
	token := tokenFor(t, repo, adminService, "barman")
	repo.On("Exists", "barman").Return(true, nil)

	repo.On("GetRights", "barman").Return(models.Rights{ManageNotes: true}, nil).Once()
	assert.Equal(t, http.StatusForbidden, get(t, app, "/catalog", "Bearer "+token).StatusCode)

	repo.On("GetRights", "barman").Return(models.Rights{ManageProducts: true}, nil).Once()
	assert.Equal(t, http.StatusNoContent, get(t, app, "/catalog", "Bearer "+token).StatusCode)

	repo.On("GetRights", "barman").Return(models.Rights{}, errors.New("database error")).Once()
	assert.Equal(t, http.StatusInternalServerError, get(t, app, "/catalog", "Bearer "+token).StatusCode)
	repo.AssertExpectations(t)
}
