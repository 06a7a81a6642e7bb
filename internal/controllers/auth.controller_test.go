package controllers

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

	"bora/internal/mocks"
	"bora/internal/models"
	"bora/internal/utils"
)

func setupAuthRouter(store *mocks.MockStore, images *mocks.MockImageStorage) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewAuthController(store, images)
	router := gin.New()
	router.POST("/auth/register", controller.Register)
	router.POST("/auth/sign-in", controller.SignIn)
	return router
}

func TestRegisterCreatesUser(t *testing.T) {
	store := new(mocks.MockStore)
	images := new(mocks.MockImageStorage)
	store.UserRepo.On("FindByEmail", "ana@example.com").Return(nil, nil)
	store.UserRepo.On("FindByCPF", "12345678901").Return(nil, nil)
	store.UserRepo.On("Create", mock.Anything).Return(nil)
	images.On("DefaultAvatarImage").Return("default-avatar.jpg")
	router := setupAuthRouter(store, images)

	payload, _ := json.Marshal(gin.H{
		"name":     "Ana",
		"email":    "ana@example.com",
		"cpf":      "12345678901",
		"password": "secret1",
	})
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusCreated, recorder.Code)
	store.AssertExpectations(t)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := new(mocks.MockStore)
	images := new(mocks.MockImageStorage)
	store.UserRepo.On("FindByEmail", "ana@example.com").
		Return(&models.User{ID: "user-1", Email: "ana@example.com"}, nil)
	router := setupAuthRouter(store, images)

	payload, _ := json.Marshal(gin.H{
		"name":     "Ana",
		"email":    "ana@example.com",
		"cpf":      "12345678901",
		"password": "secret1",
	})
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusConflict, recorder.Code)
	store.UserRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestRegisterRejectsShortCPF(t *testing.T) {
	store := new(mocks.MockStore)
	router := setupAuthRouter(store, new(mocks.MockImageStorage))

	payload, _ := json.Marshal(gin.H{
		"name":     "Ana",
		"email":    "ana@example.com",
		"cpf":      "123",
		"password": "secret1",
	})
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestSignIn(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	hash, err := utils.HashPassword("secret1")
	assert.NoError(t, err)

	store := new(mocks.MockStore)
	store.UserRepo.On("FindByEmail", "ana@example.com").
		Return(&models.User{ID: "user-1", Email: "ana@example.com", Password: hash}, nil)
	router := setupAuthRouter(store, new(mocks.MockImageStorage))

	payload, _ := json.Marshal(gin.H{"email": "ana@example.com", "password": "secret1"})
	req := httptest.NewRequest(http.MethodPost, "/auth/sign-in", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Data.Token)
}

func TestSignInWrongPassword(t *testing.T) {
	hash, err := utils.HashPassword("secret1")
	assert.NoError(t, err)

	store := new(mocks.MockStore)
	store.UserRepo.On("FindByEmail", "ana@example.com").
		Return(&models.User{ID: "user-1", Email: "ana@example.com", Password: hash}, nil)
	router := setupAuthRouter(store, new(mocks.MockImageStorage))

	payload, _ := json.Marshal(gin.H{"email": "ana@example.com", "password": "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/auth/sign-in", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestSignInDeactivatedAccount(t *testing.T) {
	hash, err := utils.HashPassword("secret1")
	assert.NoError(t, err)

	store := new(mocks.MockStore)
	user := &models.User{ID: "user-1", Email: "ana@example.com", Password: hash}
	deactivatedAt := time.Now()
	user.DeletedAt = &deactivatedAt
	store.UserRepo.On("FindByEmail", "ana@example.com").Return(user, nil)
	router := setupAuthRouter(store, new(mocks.MockImageStorage))

	payload, _ := json.Marshal(gin.H{"email": "ana@example.com", "password": "secret1"})
	req := httptest.NewRequest(http.MethodPost, "/auth/sign-in", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestSignInUnknownUser(t *testing.T) {
	store := new(mocks.MockStore)
	store.UserRepo.On("FindByEmail", "ghost@example.com").Return(nil, nil)
	router := setupAuthRouter(store, new(mocks.MockImageStorage))

	payload, _ := json.Marshal(gin.H{"email": "ghost@example.com", "password": "secret1"})
	req := httptest.NewRequest(http.MethodPost, "/auth/sign-in", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
