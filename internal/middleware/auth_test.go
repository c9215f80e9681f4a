package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"pennywise/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, id uuid.UUID, token *string) error {
	args := m.Called(ctx, id, token)
	return args.Error(0)
}

func newContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func tokenFor(userID uuid.UUID) *jwt.Token {
	return &jwt.Token{Claims: jwt.MapClaims{"user_id": userID.String()}}
}

func errorType(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	errType, _ := body["errorType"].(string)
	return errType
}

func TestLoadUser(t *testing.T) {
	userID := uuid.New()

	t.Run("attaches the user without credentials", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		token := "stored-refresh-token"
		mockRepo.On("FindByID", mock.Anything, userID).Return(&model.User{
			ID:           userID,
			Email:        "test@example.com",
			PasswordHash: "hash",
			RefreshToken: &token,
		}, nil)

		c, _ := newContext(t)
		c.Set("user", tokenFor(userID))

		var seen *model.User
		err := LoadUser(mockRepo)(func(c echo.Context) error {
			seen = CurrentUser(c)
			return c.NoContent(http.StatusOK)
		})(c)

		assert.NoError(t, err)
		assert.NotNil(t, seen)
		assert.Equal(t, userID, seen.ID)
		assert.Empty(t, seen.PasswordHash)
		assert.Nil(t, seen.RefreshToken)
		mockRepo.AssertExpectations(t)
	})

	t.Run("inactive user passes the authentication gate", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(&model.User{
			ID:       userID,
			IsActive: false,
		}, nil)

		c, rec := newContext(t)
		c.Set("user", tokenFor(userID))

		err := LoadUser(mockRepo)(okHandler)(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("deleted account", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)

		c, rec := newContext(t)
		c.Set("user", tokenFor(userID))

		err := LoadUser(mockRepo)(okHandler)(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "ACCOUNT_INACTIVE", errorType(t, rec))
	})

	t.Run("missing token in context", func(t *testing.T) {
		c, rec := newContext(t)

		err := LoadUser(new(MockUserRepository))(okHandler)(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "ACCESS_TOKEN_REQUIRED", errorType(t, rec))
	})
}

func TestRequireSubscription(t *testing.T) {
	future := time.Now().Add(24 * time.Hour)
	past := time.Now().Add(-24 * time.Hour)

	tests := []struct {
		name         string
		user         *model.User
		expectedCode int
		expectedType string
	}{
		{
			name:         "active user within the window",
			user:         &model.User{Role: model.RoleUser, IsActive: true, ExpiresAt: &future},
			expectedCode: http.StatusOK,
		},
		{
			name:         "inactive user",
			user:         &model.User{Role: model.RoleUser, IsActive: false},
			expectedCode: http.StatusForbidden,
			expectedType: "SUBSCRIPTION_REQUIRED",
		},
		{
			name:         "lapsed window",
			user:         &model.User{Role: model.RoleUser, IsActive: true, ExpiresAt: &past},
			expectedCode: http.StatusForbidden,
			expectedType: "SUBSCRIPTION_REQUIRED",
		},
		{
			name:         "admin bypasses the gate",
			user:         &model.User{Role: model.RoleAdmin, IsActive: false},
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext(t)
			c.Set("currentUser", tt.user)

			err := RequireSubscription()(okHandler)(c)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.expectedType != "" {
				assert.Equal(t, tt.expectedType, errorType(t, rec))
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	t.Run("admin passes", func(t *testing.T) {
		c, rec := newContext(t)
		c.Set("currentUser", &model.User{Role: model.RoleAdmin})

		err := RequireAdmin()(okHandler)(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("regular user is rejected", func(t *testing.T) {
		c, rec := newContext(t)
		c.Set("currentUser", &model.User{Role: model.RoleUser, IsActive: true})

		err := RequireAdmin()(okHandler)(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "FORBIDDEN", errorType(t, rec))
	})
}
