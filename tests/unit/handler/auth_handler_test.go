package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"taxpadi/internal/domain"
	"taxpadi/internal/handler"
	"taxpadi/internal/service"
	"taxpadi/mocks"
)

func TestAuthHandler_Login_Success(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)
	h := handler.NewAuthHandler(mockAuth, new(mocks.MockRegistrationService), new(mocks.MockPasswordResetService))

	tokenPair := &service.TokenPair{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		ExpiresAt:    time.Now().Add(15 * time.Minute),
	}

	mockAuth.On("Login", mock.Anything, service.LoginInput{
		Email:    "user@test.com",
		Password: "password123",
	}).Return(tokenPair, nil)

	body, _ := json.Marshal(map[string]string{
		"email":    "user@test.com",
		"password": "password123",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Login(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	mockAuth.AssertExpectations(t)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	mockAuth := new(mocks.MockAuthService)
	h := handler.NewAuthHandler(mockAuth, new(mocks.MockRegistrationService), new(mocks.MockPasswordResetService))

	mockAuth.On("Login", mock.Anything, mock.AnythingOfType("service.LoginInput")).
		Return(nil, domain.ErrInvalidCredentials)

	body, _ := json.Marshal(map[string]string{
		"email":    "user@test.com",
		"password": "wrongpassword",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "INVALID_CREDENTIALS", resp.Error.Code)
}

func TestAuthHandler_Register_Success(t *testing.T) {
	mockReg := new(mocks.MockRegistrationService)
	h := handler.NewAuthHandler(new(mocks.MockAuthService), mockReg, new(mocks.MockPasswordResetService))

	out := &service.RegisterOutput{
		User:   &domain.User{Email: "new@test.com"},
		Tokens: &service.TokenPair{AccessToken: "access"},
	}
	mockReg.On("Register", mock.Anything, mock.AnythingOfType("service.RegisterInput")).Return(out, nil)

	body, _ := json.Marshal(map[string]string{
		"email":     "new@test.com",
		"password":  "password123",
		"full_name": "New User",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Register(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockReg.AssertExpectations(t)
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	mockReg := new(mocks.MockRegistrationService)
	h := handler.NewAuthHandler(new(mocks.MockAuthService), mockReg, new(mocks.MockPasswordResetService))

	mockReg.On("Register", mock.Anything, mock.AnythingOfType("service.RegisterInput")).
		Return(nil, domain.ErrDuplicateEmail)

	body, _ := json.Marshal(map[string]string{
		"email":     "taken@test.com",
		"password":  "password123",
		"full_name": "Dup User",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Register(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_VerifyEmail_MissingToken(t *testing.T) {
	h := handler.NewAuthHandler(new(mocks.MockAuthService), new(mocks.MockRegistrationService), new(mocks.MockPasswordResetService))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/auth/verify-email", nil)

	h.VerifyEmail(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_ForgotPassword_AlwaysOK(t *testing.T) {
	mockReset := new(mocks.MockPasswordResetService)
	h := handler.NewAuthHandler(new(mocks.MockAuthService), new(mocks.MockRegistrationService), mockReset)

	mockReset.On("ForgotPassword", mock.Anything, service.ForgotPasswordInput{Email: "ghost@test.com"}).
		Return(nil)

	body, _ := json.Marshal(map[string]string{"email": "ghost@test.com"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/auth/forgot-password", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.ForgotPassword(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockReset.AssertExpectations(t)
}
