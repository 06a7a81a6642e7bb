package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bora/internal/models"
	"bora/internal/repository"
	"bora/internal/storage"
	"bora/internal/utils"
)

type AuthController struct {
	store  repository.Store
	images storage.ImageStorage
}

func NewAuthController(store repository.Store, images storage.ImageStorage) *AuthController {
	return &AuthController{store: store, images: images}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	CPF      string `json:"cpf" binding:"required,len=11"`
	Password string `json:"password" binding:"required,min=6"`
}

type signInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register godoc
// @Summary Register a new user account
// @Tags auth
// @Accept json
// @Produce json
// @Param user body registerRequest true "Account data"
// @Success 201 {object} map[string]interface{} "Account created"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 409 {object} map[string]interface{} "E-mail or CPF already in use"
// @Router /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	existing, err := ac.store.Users().FindByEmail(req.Email)
	if err == nil && existing == nil {
		existing, err = ac.store.Users().FindByCPF(req.CPF)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to register user",
			"error":   err.Error(),
		})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{
			"status":  "error",
			"message": "The e-mail or CPF already belongs to another user",
			"error":   "Account already exists",
		})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to register user",
			"error":   err.Error(),
		})
		return
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		CPF:      req.CPF,
		Password: hash,
		Avatar:   ac.images.DefaultAvatarImage(),
	}
	if err := ac.store.Users().Create(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to register user",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "User registered successfully",
		"data":    user,
	})
}

// SignIn godoc
// @Summary Authenticate and receive a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body signInRequest true "Credentials"
// @Success 200 {object} map[string]interface{} "Token issued"
// @Failure 401 {object} map[string]interface{} "Wrong password"
// @Failure 403 {object} map[string]interface{} "Account deactivated"
// @Failure 404 {object} map[string]interface{} "User not found"
// @Router /auth/sign-in [post]
func (ac *AuthController) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	user, err := ac.store.Users().FindByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to sign in",
			"error":   err.Error(),
		})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "User not found",
			"error":   "No account associated with this e-mail",
		})
		return
	}
	if !user.IsActive() {
		c.JSON(http.StatusForbidden, gin.H{
			"status":  "error",
			"message": "This account was deactivated and cannot be used",
			"error":   "Account deactivated",
		})
		return
	}
	if !utils.CheckPassword(user.Password, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Invalid credentials",
			"error":   "Wrong e-mail or password",
		})
		return
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to sign in",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Signed in successfully",
		"data": gin.H{
			"token": token,
			"user":  user,
		},
	})
}
