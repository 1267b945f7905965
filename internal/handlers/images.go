package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"eshop_back_end/internal/services"
)

// Clés du contexte gin posées par les middlewares d'upload.
const (
	CtxUploadedImage  = "uploadedImage"
	CtxUploadedCover  = "uploadedImageCover"
	CtxUploadedImages = "uploadedImages"
)

func imageObjectName(folder string) string {
	return fmt.Sprintf("%s/%s-%s-%d.jpeg", folder, folder, uuid.NewString(), time.Now().UnixMilli())
}

// ResizeSingleImage traite un champ image multipart optionnel :
// redimensionnement puis upload MinIO, URL posée dans le contexte.
func ResizeSingleImage(field, folder string, width, height, quality int) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile(field)
		if err != nil {
			// Image optionnelle : on laisse passer sans fichier.
			c.Next()
			return
		}

		data, err := services.ResizeImage(file, width, height, quality)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		url, err := services.UploadImage(c.Request.Context(), imageObjectName(folder), data)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur stockage image"})
			c.Abort()
			return
		}

		c.Set(CtxUploadedImage, url)
		c.Next()
	}
}

// ResizeProductImages traite la cover (obligatoire pour la fiche) et
// jusqu'à cinq images de galerie.
func ResizeProductImages() gin.HandlerFunc {
	const maxGalleryImages = 5

	return func(c *gin.Context) {
		form, err := c.MultipartForm()
		if err != nil {
			// Pas de multipart : création par JSON pur, images déjà en URL.
			c.Next()
			return
		}

		if covers := form.File["imageCover"]; len(covers) > 0 {
			data, err := services.ResizeImage(covers[0], 2000, 1333, 95)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				c.Abort()
				return
			}
			url, err := services.UploadImage(c.Request.Context(), imageObjectName("products"), data)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur stockage image"})
				c.Abort()
				return
			}
			c.Set(CtxUploadedCover, url)
		}

		gallery := form.File["images"]
		if len(gallery) > maxGalleryImages {
			gallery = gallery[:maxGalleryImages]
		}

		urls := make([]string, 0, len(gallery))
		for _, file := range gallery {
			data, err := services.ResizeImage(file, 2000, 1333, 95)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				c.Abort()
				return
			}
			url, err := services.UploadImage(c.Request.Context(), imageObjectName("products"), data)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur stockage image"})
				c.Abort()
				return
			}
			urls = append(urls, url)
		}
		if len(urls) > 0 {
			c.Set(CtxUploadedImages, urls)
		}

		c.Next()
	}
}
