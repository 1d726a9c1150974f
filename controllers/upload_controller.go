package controllers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/snapfix-api/services"
	"github.com/kendall-kelly/snapfix-api/utils"
)

// UploadPhoto handles POST /api/uploads - stores a booking photo (multipart field "photo")
// and returns its storage key, to be sent as the booking's photoKey, plus a preview URL
func UploadPhoto(c *gin.Context) {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		respondError(c, http.StatusBadRequest, "A photo file is required in the \"photo\" field", "MISSING_FILE")
		return
	}

	imageService := services.GetImageService()
	if imageService == nil {
		respondInternalError(c, errors.New("image service not configured"))
		return
	}

	key, err := imageService.UploadImage(c.Request.Context(), fileHeader)
	if err != nil {
		var uploadErr *utils.FileUploadError
		if errors.As(err, &uploadErr) {
			respondError(c, http.StatusBadRequest, uploadErr.Message, uploadErr.Code)
			return
		}
		respondInternalError(c, err)
		return
	}

	url, err := imageService.GetImageURL(c.Request.Context(), key)
	if err != nil {
		respondInternalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"key": key,
		"url": url,
	})
}

// GetUploadedImage handles GET /api/uploads/:filename - serves locally stored photos
func GetUploadedImage(c *gin.Context) {
	filename := c.Param("filename")

	if filename == "" {
		respondError(c, http.StatusBadRequest, "Filename is required", "INVALID_FILENAME")
		return
	}

	// Prevent directory traversal
	if strings.Contains(filename, "..") || strings.Contains(filename, "/") || strings.Contains(filename, "\\") {
		respondError(c, http.StatusBadRequest, "Invalid filename", "INVALID_FILENAME")
		return
	}

	if !utils.IsAllowedImage(filename) {
		respondError(c, http.StatusBadRequest, "Only PNG and JPEG images are supported", "INVALID_FILE_TYPE")
		return
	}

	filePath := filepath.Join(utils.UploadDir, filename)
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		respondError(c, http.StatusNotFound, "Image not found", "FILE_NOT_FOUND")
		return
	}

	c.Header("Content-Type", utils.ContentTypeFor(filename))
	c.Header("Cache-Control", "public, max-age=86400")
	c.File(filePath)
}
