// internal/handlers/auth_test.go
package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/baghaus/marketplace-backend/internal/config"
	"github.com/baghaus/marketplace-backend/internal/handlers"
	"github.com/baghaus/marketplace-backend/internal/middleware"
	"github.com/baghaus/marketplace-backend/internal/services"
	"github.com/baghaus/marketplace-backend/internal/utils"
)

func setupAuthRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("test-secret-key")

	db := newHandlerTestDB(t)
	cfg := &config.Config{
		JWT: config.JWTConfig{
			SecretKey:      "test-secret-key",
			AccessTokenTTL: 24,
		},
	}
	authHandler := handlers.NewAuthHandler(services.NewAuthService(db, cfg), services.NewUserService(db))

	r := gin.New()
	r.Use(gin.Recovery())

	auth := r.Group("/v1/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.PUT("/password", middleware.AuthRequired(), authHandler.ChangePassword)
	}

	return r, db
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	r, _ := setupAuthRouter(t)

	recorder := performRequest(r, http.MethodPost, "/v1/auth/register", "", gin.H{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "secret123",
		"address":  "12 Harbor Lane",
	})
	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "access_token")

	recorder = performRequest(r, http.MethodPost, "/v1/auth/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "access_token")
}

func TestRegisterDuplicateReturns409(t *testing.T) {
	r, _ := setupAuthRouter(t)

	body := gin.H{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "secret123",
		"address":  "12 Harbor Lane",
	}

	recorder := performRequest(r, http.MethodPost, "/v1/auth/register", "", body)
	assert.Equal(t, http.StatusCreated, recorder.Code)

	recorder = performRequest(r, http.MethodPost, "/v1/auth/register", "", body)
	assert.Equal(t, http.StatusConflict, recorder.Code)
}

func TestRegisterShortPasswordReturns400(t *testing.T) {
	r, _ := setupAuthRouter(t)

	recorder := performRequest(r, http.MethodPost, "/v1/auth/register", "", gin.H{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "short",
		"address":  "12 Harbor Lane",
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestLoginWrongPasswordReturns400(t *testing.T) {
	r, db := setupAuthRouter(t)
	seedHandlerUser(t, db, "alice@example.com", "Alice")

	recorder := performRequest(r, http.MethodPost, "/v1/auth/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestChangePasswordRequiresAuth(t *testing.T) {
	r, _ := setupAuthRouter(t)

	recorder := performRequest(r, http.MethodPut, "/v1/auth/password", "", gin.H{
		"current_password": "secret123",
		"new_password":     "newsecret123",
	})
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestChangePassword(t *testing.T) {
	r, db := setupAuthRouter(t)
	seedHandlerUser(t, db, "alice@example.com", "Alice")
	token := bearerToken(t, "alice@example.com", "Alice", false)

	recorder := performRequest(r, http.MethodPut, "/v1/auth/password", token, gin.H{
		"current_password": "secret123",
		"new_password":     "newsecret123",
	})
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = performRequest(r, http.MethodPost, "/v1/auth/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "newsecret123",
	})
	assert.Equal(t, http.StatusOK, recorder.Code)
}
