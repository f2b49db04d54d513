package admin

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tamaq_back_end/internal/services"
)

// UploadFoodImage pousse une image de plat dans MinIO et retourne son
// URL publique, à placer ensuite dans le champ image du plat.
func UploadFoodImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fichier image requis"})
		return
	}

	url, err := services.UploadFoodImage(c.Request.Context(), file)
	if err != nil {
		log.Printf("❌ Erreur upload image: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de l'upload de l'image"})
		return
	}

	log.Printf("🪣 Image uploadée: %s", url)
	c.JSON(http.StatusCreated, gin.H{"url": url})
}

// GetSignedImageURL retourne une URL présignée temporaire pour un objet
func GetSignedImageURL(c *gin.Context) {
	object := c.Query("object")
	if object == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "object requis"})
		return
	}

	url, err := services.GenerateSignedURL(c.Request.Context(), object, time.Hour)
	if err != nil {
		log.Printf("❌ Erreur URL présignée: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération de l'URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
