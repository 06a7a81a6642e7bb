package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bora/internal/models"
	"bora/internal/repository"
	"bora/internal/storage"
	"bora/internal/utils"
)

type UserController struct {
	store  repository.Store
	images storage.ImageStorage
}

func NewUserController(store repository.Store, images storage.ImageStorage) *UserController {
	return &UserController{store: store, images: images}
}

func (uc *UserController) GetProfile(c *gin.Context) {
	user, err := uc.store.Users().FindByID(currentUserID(c))
	if err != nil || user == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "User not found",
			"error":   "No user exists with the provided ID",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "User retrieved successfully",
		"data":    user,
	})
}

func (uc *UserController) GetAchievements(c *gin.Context) {
	grants, err := uc.store.Achievements().ListGrantsByUser(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve achievements",
			"error":   err.Error(),
		})
		return
	}

	achievements := make([]gin.H, 0, len(grants))
	for _, grant := range grants {
		achievements = append(achievements, gin.H{
			"name":      grant.Achievement.Name,
			"criterion": grant.Achievement.Criterion,
			"grantedAt": grant.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Achievements retrieved successfully",
		"data":    achievements,
	})
}

func (uc *UserController) GetPreferences(c *gin.Context) {
	preferences, err := uc.store.Preferences().ListByUser(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to retrieve preferences",
			"error":   err.Error(),
		})
		return
	}

	response := make([]gin.H, 0, len(preferences))
	for _, preference := range preferences {
		response = append(response, gin.H{
			"typeId":          preference.TypeID,
			"typeName":        preference.Type.Name,
			"typeDescription": preference.Type.Description,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Preferences retrieved successfully",
		"data":    response,
	})
}

type definePreferencesRequest struct {
	TypeIDs []string `json:"typeIds" binding:"required,dive,uuid"`
}

// DefinePreferences stores the caller's preferred activity types. Unknown
// type ids are rejected; duplicates (in the request or already stored) are
// skipped so the call is idempotent.
func (uc *UserController) DefinePreferences(c *gin.Context) {
	var req definePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	userID := currentUserID(c)
	for _, typeID := range req.TypeIDs {
		activityType, err := uc.store.ActivityTypes().FindByID(typeID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Failed to define preferences",
				"error":   err.Error(),
			})
			return
		}
		if activityType == nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"status":  "error",
				"message": "One or more type ids are invalid",
				"error":   "Unknown activity type: " + typeID,
			})
			return
		}
	}

	for _, typeID := range req.TypeIDs {
		existing, err := uc.store.Preferences().FindByUserAndType(userID, typeID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Failed to define preferences",
				"error":   err.Error(),
			})
			return
		}
		if existing != nil {
			continue
		}
		preference := &models.Preference{UserID: userID, TypeID: typeID}
		if err := uc.store.Preferences().Create(preference); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Failed to define preferences",
				"error":   err.Error(),
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Preferences defined successfully",
		"data":    nil,
	})
}

func (uc *UserController) UpdateAvatar(c *gin.Context) {
	upload, err := formUpload(c, "avatar")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to read uploaded file",
			"error":   err.Error(),
		})
		return
	}
	if upload == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "An avatar file is required",
			"error":   "Missing multipart field: avatar",
		})
		return
	}
	if !storage.IsAllowedImageType(upload.ContentType) {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Avatar must be a PNG or JPEG file",
			"error":   "Unsupported content type: " + upload.ContentType,
		})
		return
	}

	url, err := uc.images.UploadImage(upload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to upload avatar",
			"error":   err.Error(),
		})
		return
	}

	userID := currentUserID(c)
	if err := uc.store.Users().UpdateAvatar(userID, url); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to update avatar",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Avatar updated successfully",
		"data":    gin.H{"avatar": url},
	})
}

type updateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=6"`
}

func (uc *UserController) UpdateUser(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	user, err := uc.store.Users().FindByID(currentUserID(c))
	if err != nil || user == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "User not found",
			"error":   "No user exists with the provided ID",
		})
		return
	}

	if req.Email != nil && *req.Email != user.Email {
		existing, err := uc.store.Users().FindByEmail(*req.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Failed to update user",
				"error":   err.Error(),
			})
			return
		}
		if existing != nil {
			c.JSON(http.StatusConflict, gin.H{
				"status":  "error",
				"message": "An account with this e-mail already exists",
				"error":   "E-mail already in use",
			})
			return
		}
		user.Email = *req.Email
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Failed to update user",
				"error":   err.Error(),
			})
			return
		}
		user.Password = hash
	}

	if err := uc.store.Users().Update(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to update user",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "User updated successfully",
		"data":    user,
	})
}

func (uc *UserController) DeactivateUser(c *gin.Context) {
	user, err := uc.store.Users().FindByID(currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to deactivate user",
			"error":   err.Error(),
		})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "User not found",
			"error":   "No user exists with the provided ID",
		})
		return
	}
	if !user.IsActive() {
		c.JSON(http.StatusForbidden, gin.H{
			"status":  "error",
			"message": "This account was deactivated and cannot be used",
			"error":   "Account already deactivated",
		})
		return
	}

	if err := uc.store.Users().Deactivate(user.ID, time.Now()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to deactivate user",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Account deactivated successfully",
		"data":    nil,
	})
}
