package controllers

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/thekingpuff/kingpuff-api/internal/slug"
)

// UploadController stores flavor images uploaded from the admin panel.
type UploadController interface {
	UploadFlavorImage(c *gin.Context)
}

type uploadController struct {
	uploadsDir string
}

// NewUploadController creates a new instance of UploadController
func NewUploadController(uploadsDir string) *uploadController {
	return &uploadController{uploadsDir: uploadsDir}
}

// UploadFlavorImage godoc
// @Summary Upload a flavor image
// @Description Stores the image under sabores/{vaperId}/{slug} and
// @Description returns the public URL to put on the flavor
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file"
// @Param vaperId formData string true "Product ID"
// @Param sabor formData string false "Flavor name (used for the slug)"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/protected/admin/uploads/flavors [post]
func (uc *uploadController) UploadFlavorImage(ctx *gin.Context) {
	vaperID := ctx.PostForm("vaperId")
	if vaperID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "vaperId is required"})
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	// Slug from the flavor name, falling back to the file name.
	name := ctx.PostForm("sabor")
	if name == "" {
		name = file.Filename
	}
	filename := slug.Make(name) + filepath.Ext(file.Filename)

	relative := filepath.Join("sabores", slug.Make(vaperID), filename)
	dest := filepath.Join(uc.uploadsDir, relative)

	if err := ctx.SaveUploadedFile(file, dest); err != nil {
		log.WithError(err).Error("Failed to store flavor image")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"url": "/uploads/" + filepath.ToSlash(relative)})
}
