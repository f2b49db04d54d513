package handlers

import (
	"log"
	"net/http"
	"time"

	"tamaq_back_end/internal/cache"
	"tamaq_back_end/internal/database"
	"tamaq_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// GetAllCategories retourne les catégories, cache Redis d'abord
func GetAllCategories(c *gin.Context) {
	ctx := c.Request.Context()

	if cats, ok := cache.GetCachedCategories(ctx); ok {
		c.JSON(http.StatusOK, cats)
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT id, name, description, created_at FROM categories`).
		WithContext(ctx).Iter()

	cats := []models.Category{}
	var cat models.Category
	for iter.Scan(&cat.ID, &cat.Name, &cat.Description, &cat.CreatedAt) {
		cats = append(cats, cat)
	}
	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur récupération catégories: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	cache.SetCachedCategories(ctx, cats)
	c.JSON(http.StatusOK, cats)
}

// CreateCategory — admin
func CreateCategory(c *gin.Context) {
	var input struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	cat := models.Category{
		ID:          gocql.TimeUUID(),
		Name:        input.Name,
		Description: input.Description,
		CreatedAt:   time.Now().UTC(),
	}

	if err := session.Query(`INSERT INTO categories (id, name, description, created_at) VALUES (?, ?, ?, ?)`,
		cat.ID, cat.Name, cat.Description, cat.CreatedAt).
		WithContext(c.Request.Context()).Exec(); err != nil {
		log.Printf("❌ Erreur création catégorie: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création de la catégorie"})
		return
	}

	cache.InvalidateCatalog(c.Request.Context())

	log.Printf("✅ Catégorie créée: %s", cat.Name)
	c.JSON(http.StatusCreated, cat)
}

// UpdateCategory — admin
func UpdateCategory(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID invalide"})
		return
	}

	var input struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var createdAt time.Time
	if err := session.Query(`SELECT created_at FROM categories WHERE id = ?`, id).
		WithContext(c.Request.Context()).Scan(&createdAt); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Catégorie non trouvée"})
		return
	}

	if err := session.Query(`UPDATE categories SET name = ?, description = ? WHERE id = ?`,
		input.Name, input.Description, id).
		WithContext(c.Request.Context()).Exec(); err != nil {
		log.Printf("❌ Erreur mise à jour catégorie: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour"})
		return
	}

	cache.InvalidateCatalog(c.Request.Context())

	c.JSON(http.StatusOK, models.Category{ID: id, Name: input.Name, Description: input.Description, CreatedAt: createdAt})
}

// DeleteCategory — admin. Les plats rattachés ne sont pas supprimés.
func DeleteCategory(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID invalide"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(`DELETE FROM categories WHERE id = ?`, id).
		WithContext(c.Request.Context()).Exec(); err != nil {
		log.Printf("❌ Erreur suppression catégorie: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la suppression"})
		return
	}

	cache.InvalidateCatalog(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"message": "Catégorie supprimée"})
}
