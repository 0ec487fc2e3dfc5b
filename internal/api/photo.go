package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutriday/backend/internal/service"
)

// PhotoHandler handles meal photo uploads
type PhotoHandler struct {
	photos service.IPhotoService
}

// NewPhotoHandler creates a new PhotoHandler instance
func NewPhotoHandler(photos service.IPhotoService) *PhotoHandler {
	return &PhotoHandler{photos: photos}
}

// RegisterRoutes registers the photo upload routes
func (h *PhotoHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/photos", h.Upload)
}

// Upload stores a base64-encoded meal photo and returns its public URL.
func (h *PhotoHandler) Upload(c *gin.Context) {
	var req struct {
		ImageBase64 string `json:"imageBase64" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	url, err := h.photos.UploadMealPhoto(c.Request.Context(), req.ImageBase64)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}
