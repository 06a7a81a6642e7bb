package controllers

import (
	"github.com/gin-gonic/gin"

	"bora/internal/apperr"
	"bora/internal/storage"
)

// currentUserID returns the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) string {
	value, _ := c.Get("user_id")
	userID, _ := value.(string)
	return userID
}

// respondServiceError maps a typed service error to its HTTP status. Anything
// without a kind is an internal failure.
func respondServiceError(c *gin.Context, message string, err error) {
	c.JSON(apperr.HTTPStatus(err), gin.H{
		"status":  "error",
		"message": message,
		"error":   err.Error(),
	})
}

// formUpload extracts an optional multipart file as a storage upload. A
// missing file yields (nil, nil); the caller treats it as "no image supplied".
func formUpload(c *gin.Context, field string) (*storage.Upload, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	return &storage.Upload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Reader:      file,
	}, nil
}
