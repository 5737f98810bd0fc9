package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"novelhub/internal/microservices/http-api/dto"
	"novelhub/internal/microservices/http-api/handler"
	"novelhub/internal/microservices/http-api/models"
	"novelhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupAuthRouter(svc *MockAuthService, userID int64, role string) *gin.Engine {
	r := setupRouter()
	h := handler.NewAuthHandler(svc)
	api := r.Group("/api")
	h.RegisterRoutes(api, func(c *gin.Context) { c.Next() })
	h.RegisterSessionRoutes(api.Group("", mockAuthMiddleware(userID, role)))
	return r
}

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBuffer(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegister_Success(t *testing.T) {
	mockAuthService := new(MockAuthService)
	r := setupAuthRouter(mockAuthService, 0, "")

	reqBody := dto.RegisterRequest{
		Username:             "testuser",
		Email:                "test@example.com",
		Password:             "password123",
		PasswordConfirmation: "password123",
	}
	user := &models.User{ID: 12, Username: "testuser", Email: "test@example.com", Role: models.RoleUser}
	mockAuthService.On("Register", mock.Anything, reqBody).Return(user, "signed.jwt.token", nil)

	w := postJSON(r, "/api/register", reqBody)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp dto.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "signed.jwt.token", resp.Token)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(86400), resp.ExpiresIn)
	assert.Equal(t, int64(12), resp.User.ID)
	assert.Equal(t, models.RoleUser, resp.User.Role)
	mockAuthService.AssertExpectations(t)
}

func TestRegister_InvalidBody(t *testing.T) {
	mockAuthService := new(MockAuthService)
	r := setupAuthRouter(mockAuthService, 0, "")

	w := postJSON(r, "/api/register", gin.H{"username": "ab", "email": "not-an-email"})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	mockAuthService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestRegister_Conflict(t *testing.T) {
	mockAuthService := new(MockAuthService)
	r := setupAuthRouter(mockAuthService, 0, "")

	mockAuthService.On("Register", mock.Anything, mock.Anything).Return(nil, "", service.ErrEmailInUse)

	w := postJSON(r, "/api/register", dto.RegisterRequest{
		Username:             "testuser",
		Email:                "test@example.com",
		Password:             "password123",
		PasswordConfirmation: "password123",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "email already in use")
}

func TestLogin(t *testing.T) {
	mockAuthService := new(MockAuthService)
	r := setupAuthRouter(mockAuthService, 0, "")

	good := dto.LoginRequest{Email: "reader@example.com", Password: "password123"}
	bad := dto.LoginRequest{Email: "reader@example.com", Password: "wrong-password"}
	mockAuthService.On("Login", mock.Anything, good).Return(&models.User{ID: 3, Username: "reader"}, "tok", nil)
	mockAuthService.On("Login", mock.Anything, bad).Return(nil, "", service.ErrInvalidCredentials)

	w := postJSON(r, "/api/login", good)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"token":"tok"`)

	w = postJSON(r, "/api/login", bad)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"unauthorized: invalid credentials"}`, w.Body.String())
}

func TestLogout(t *testing.T) {
	mockAuthService := new(MockAuthService)
	r := setupAuthRouter(mockAuthService, 3, models.RoleUser)

	mockAuthService.On("Logout", mock.Anything, mock.MatchedBy(func(c *service.AuthClaims) bool {
		return c.UserID == 3
	})).Return(nil)

	w := postJSON(r, "/api/logout", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	mockAuthService.AssertExpectations(t)
}

func TestCheckSession(t *testing.T) {
	mockAuthService := new(MockAuthService)
	r := setupAuthRouter(mockAuthService, 3, models.RoleUser)

	mockAuthService.On("CheckSession", mock.Anything, int64(3)).Return(&models.User{ID: 3, Username: "reader"}, nil)

	req, _ := http.NewRequest(http.MethodGet, "/api/check-session", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"reader"`)
}

func TestVerifyAdmin(t *testing.T) {
	for role, want := range map[string]string{
		models.RoleAdmin: `{"is_admin":true}`,
		models.RoleUser:  `{"is_admin":false}`,
	} {
		r := setupAuthRouter(new(MockAuthService), 1, role)
		w := postJSON(r, "/api/verify-admin", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, want, w.Body.String())
	}
}

func TestUserHandler(t *testing.T) {
	svc := new(MockUserService)
	r := setupRouter()
	handler.NewUserHandler(svc).RegisterRoutes(r.Group("/api"))

	svc.On("List", mock.Anything).Return([]models.User{{ID: 1, Username: "admin"}, {ID: 2, Username: "reader"}}, nil)
	svc.On("ChangeRole", mock.Anything, int64(2), models.RoleAdmin).Return(&models.User{ID: 2, Role: models.RoleAdmin}, nil)
	svc.On("Delete", mock.Anything, int64(9)).Return(service.ErrUserNotFound)

	req, _ := http.NewRequest(http.MethodGet, "/api/users", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"reader"`)

	w = postJSON(r, "/api/users/role", gin.H{"userId": 2, "role": "admin"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = postJSON(r, "/api/users/role", gin.H{"userId": 2, "role": "owner"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = postJSON(r, "/api/delete-users", gin.H{"userId": 9})
	assert.Equal(t, http.StatusNotFound, w.Code)

	svc.AssertNumberOfCalls(t, "ChangeRole", 1)
}
