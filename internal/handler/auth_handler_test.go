package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kanny/internal/auth"
	"kanny/internal/config"
	"kanny/internal/handler"
	"kanny/internal/model"
	"kanny/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByFirebaseUID(ctx context.Context, uid string) (*model.User, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(ctx context.Context, userID uuid.UUID) (*auth.TokenPair, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.TokenPair), args.Error(1)
}

func (m *MockTokenIssuer) Redeem(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.TokenPair), args.Error(1)
}

func (m *MockTokenIssuer) Revoke(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

func setupAuthRouter(users *MockUserRepository, tokens *MockTokenIssuer) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		AppEnv:          "test",
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
	authService := service.NewAuthService(users, tokens, nil)
	authHandler := handler.NewAuthHandler(authService, cfg)

	router := gin.New()
	router.POST("/auth/signup", authHandler.Signup)
	router.POST("/auth/login", authHandler.Login)
	router.POST("/auth/refresh", authHandler.Refresh)
	router.POST("/auth/logout", authHandler.Logout)
	return router
}

func postJSON(router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func refreshCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "refreshToken" {
			return cookie
		}
	}
	return nil
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	// Arrange
	mockUsers := new(MockUserRepository)
	mockTokens := new(MockTokenIssuer)
	router := setupAuthRouter(mockUsers, mockTokens)

	mockUsers.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, nil)
	mockUsers.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
	mockTokens.On("Issue", mock.Anything, mock.AnythingOfType("uuid.UUID")).
		Return(&auth.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"}, nil)

	// Act
	w := postJSON(router, "/auth/signup", gin.H{
		"email":    "new@example.com",
		"name":     "New User",
		"password": "password123",
	})

	// Assert
	assert.Equal(t, http.StatusCreated, w.Code)

	var response handler.AuthResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "access-token", response.AccessToken)
	assert.Equal(t, "new@example.com", response.User.Email)
	assert.NotContains(t, w.Body.String(), "passwordHash")

	cookie := refreshCookie(w)
	assert.NotNil(t, cookie)
	assert.Equal(t, "refresh-token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	mockUsers.AssertExpectations(t)
}

func TestAuthHandler_Signup_MissingFields(t *testing.T) {
	// Arrange
	router := setupAuthRouter(new(MockUserRepository), new(MockTokenIssuer))

	// Act
	w := postJSON(router, "/auth/signup", gin.H{"email": "new@example.com"})

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Email, password, and name are required")
}

func TestAuthHandler_Signup_DuplicateEmail(t *testing.T) {
	// Arrange
	mockUsers := new(MockUserRepository)
	router := setupAuthRouter(mockUsers, new(MockTokenIssuer))

	existing := &model.User{ID: uuid.New(), Email: "taken@example.com"}
	mockUsers.On("FindByEmail", mock.Anything, "taken@example.com").Return(existing, nil)

	// Act
	w := postJSON(router, "/auth/signup", gin.H{
		"email":    "taken@example.com",
		"name":     "Someone",
		"password": "password123",
	})

	// Assert
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "user with this email already exists")
}

func TestAuthHandler_Login_Success(t *testing.T) {
	// Arrange
	mockUsers := new(MockUserRepository)
	mockTokens := new(MockTokenIssuer)
	router := setupAuthRouter(mockUsers, mockTokens)

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	assert.NoError(t, err)
	hashed := string(hash)
	user := &model.User{ID: uuid.New(), Email: "user@example.com", PasswordHash: &hashed, Name: "User"}
	mockUsers.On("FindByEmail", mock.Anything, "user@example.com").Return(user, nil)
	mockTokens.On("Issue", mock.Anything, user.ID).
		Return(&auth.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"}, nil)

	// Act
	w := postJSON(router, "/auth/login", gin.H{
		"email":    "user@example.com",
		"password": "password123",
	})

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, refreshCookie(w))

	var response handler.AuthResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "access-token", response.AccessToken)
	assert.Equal(t, user.ID, response.User.ID)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	// Arrange
	mockUsers := new(MockUserRepository)
	router := setupAuthRouter(mockUsers, new(MockTokenIssuer))

	hash, err := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.MinCost)
	assert.NoError(t, err)
	hashed := string(hash)
	user := &model.User{ID: uuid.New(), Email: "user@example.com", PasswordHash: &hashed}
	mockUsers.On("FindByEmail", mock.Anything, "user@example.com").Return(user, nil)

	// Act
	w := postJSON(router, "/auth/login", gin.H{
		"email":    "user@example.com",
		"password": "incorrect",
	})

	// Assert
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid email or password")
	assert.Nil(t, refreshCookie(w))
}

func TestAuthHandler_Login_FederatedOnly(t *testing.T) {
	// Arrange
	mockUsers := new(MockUserRepository)
	router := setupAuthRouter(mockUsers, new(MockTokenIssuer))

	uid := "fb-uid"
	user := &model.User{ID: uuid.New(), Email: "google@example.com", FirebaseUID: &uid}
	mockUsers.On("FindByEmail", mock.Anything, "google@example.com").Return(user, nil)

	// Act
	w := postJSON(router, "/auth/login", gin.H{
		"email":    "google@example.com",
		"password": "anything",
	})

	// Assert: the client is told to use Google sign-in instead
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "please sign in with Google")
}

func TestAuthHandler_Refresh_NoCookie(t *testing.T) {
	// Arrange
	router := setupAuthRouter(new(MockUserRepository), new(MockTokenIssuer))

	// Act
	req, _ := http.NewRequest(http.MethodPost, "/auth/refresh", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "No refresh token provided")
}

func TestAuthHandler_Refresh_RotatesCookie(t *testing.T) {
	// Arrange
	mockTokens := new(MockTokenIssuer)
	router := setupAuthRouter(new(MockUserRepository), mockTokens)

	mockTokens.On("Redeem", mock.Anything, "old-refresh").
		Return(&auth.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil)

	// Act
	req, _ := http.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "refreshToken", Value: "old-refresh"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Assert: response carries the new access token and the rotated cookie
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "new-access")

	cookie := refreshCookie(w)
	assert.NotNil(t, cookie)
	assert.Equal(t, "new-refresh", cookie.Value)
}

func TestAuthHandler_Refresh_InvalidToken(t *testing.T) {
	// Arrange
	mockTokens := new(MockTokenIssuer)
	router := setupAuthRouter(new(MockUserRepository), mockTokens)

	mockTokens.On("Redeem", mock.Anything, "replayed").Return(nil, auth.ErrInvalidRefreshToken)

	// Act
	req, _ := http.NewRequest(http.MethodPost, "/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "refreshToken", Value: "replayed"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid refresh token")
}

func TestAuthHandler_Logout_AlwaysSucceeds(t *testing.T) {
	// Arrange
	mockTokens := new(MockTokenIssuer)
	router := setupAuthRouter(new(MockUserRepository), mockTokens)

	mockTokens.On("Revoke", mock.Anything, "some-refresh").Return(auth.ErrInvalidRefreshToken)

	// Act
	req, _ := http.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "refreshToken", Value: "some-refresh"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Assert: a failed revocation still logs the client out
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Logged out successfully")

	cookie := refreshCookie(w)
	assert.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestAuthHandler_Logout_NoCookie(t *testing.T) {
	// Arrange
	mockTokens := new(MockTokenIssuer)
	router := setupAuthRouter(new(MockUserRepository), mockTokens)

	// Act
	req, _ := http.NewRequest(http.MethodPost, "/auth/logout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	mockTokens.AssertNotCalled(t, "Revoke", mock.Anything, mock.Anything)
}
