package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tamaq_back_end/internal/cache"
	"tamaq_back_end/internal/database"
	"tamaq_back_end/internal/models"
	"tamaq_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// GetAllFood retourne la carte complète, depuis le cache Redis si
// possible, sinon depuis ScyllaDB (et remplit le cache).
func GetAllFood(c *gin.Context) {
	ctx := c.Request.Context()

	if foods, ok := cache.GetCachedFoodList(ctx); ok {
		c.JSON(http.StatusOK, foods)
		return
	}

	foods, err := loadAllFood(c)
	if err != nil {
		log.Printf("❌ Erreur récupération plats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	cache.SetCachedFoodList(ctx, foods)
	c.JSON(http.StatusOK, foods)
}

func loadAllFood(c *gin.Context) ([]models.Food, error) {
	session, err := database.GetCatalogSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT id, name, description, image, price, category_id, created_at, updated_at FROM food`).
		WithContext(c.Request.Context()).Iter()

	foods := []models.Food{}
	var f models.Food
	for iter.Scan(&f.ID, &f.Name, &f.Description, &f.Image, &f.Price, &f.CategoryID, &f.CreatedAt, &f.UpdatedAt) {
		foods = append(foods, f)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return foods, nil
}

// GetFoodByID — lecture d'un plat via le prepared statement
func GetFoodByID(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID invalide"})
		return
	}

	stmt := database.GetPreparedGetFoodByID()
	if stmt == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var f models.Food
	if err := stmt.Bind(id).WithContext(c.Request.Context()).Scan(
		&f.ID, &f.Name, &f.Description, &f.Image, &f.Price, &f.CategoryID, &f.CreatedAt, &f.UpdatedAt); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plat non trouvé"})
		return
	}

	c.JSON(http.StatusOK, f)
}

// SearchFood filtre la carte. Le texte libre passe par Elasticsearch
// quand il est disponible ; les filtres structurés (catégorie, prix)
// sont appliqués côté CQL puis en mémoire.
func SearchFood(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	categoryID := c.Query("categoryId")
	minPriceStr := c.Query("minPrice")
	maxPriceStr := c.Query("maxPrice")

	// Recherche full-text pure : Elastic d'abord
	if name != "" && categoryID == "" && minPriceStr == "" && maxPriceStr == "" {
		if results, err := services.SearchFood(name); err == nil {
			c.JSON(http.StatusOK, results)
			return
		}
		// Elastic absent ou index vide : on retombe sur le filtre CQL
		log.Println("⚠️ Recherche Elastic indisponible, repli sur ScyllaDB")
	}

	foods, err := loadAllFood(c)
	if err != nil {
		log.Printf("❌ Erreur recherche plats: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	var catID gocql.UUID
	if categoryID != "" {
		catID, err = gocql.ParseUUID(categoryID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "categoryId invalide"})
			return
		}
	}

	minPrice := -1.0
	if minPriceStr != "" {
		if minPrice, err = strconv.ParseFloat(minPriceStr, 64); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "minPrice invalide"})
			return
		}
	}
	maxPrice := -1.0
	if maxPriceStr != "" {
		if maxPrice, err = strconv.ParseFloat(maxPriceStr, 64); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "maxPrice invalide"})
			return
		}
	}

	lowered := strings.ToLower(name)
	filtered := []models.Food{}
	for _, f := range foods {
		if categoryID != "" && f.CategoryID != catID {
			continue
		}
		if minPrice >= 0 && f.Price < minPrice {
			continue
		}
		if maxPrice >= 0 && f.Price > maxPrice {
			continue
		}
		if lowered != "" &&
			!strings.Contains(strings.ToLower(f.Name), lowered) &&
			!strings.Contains(strings.ToLower(f.Description), lowered) {
			continue
		}
		filtered = append(filtered, f)
	}

	c.JSON(http.StatusOK, filtered)
}

// CreateFood — admin. Indexe le plat dans Elastic et purge le cache.
func CreateFood(c *gin.Context) {
	var input struct {
		Name        string  `json:"name" binding:"required"`
		Description string  `json:"description"`
		Image       string  `json:"image"`
		Price       float64 `json:"price" binding:"required"`
		CategoryID  string  `json:"category_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	categoryID, err := gocql.ParseUUID(input.CategoryID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category_id invalide"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	now := time.Now().UTC()
	f := models.Food{
		ID:          gocql.TimeUUID(),
		Name:        input.Name,
		Description: input.Description,
		Image:       input.Image,
		Price:       input.Price,
		CategoryID:  categoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := session.Query(`INSERT INTO food (id, name, description, image, price, category_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.Name, f.Description, f.Image, f.Price, f.CategoryID, f.CreatedAt, f.UpdatedAt).
		WithContext(c.Request.Context()).Exec(); err != nil {
		log.Printf("❌ Erreur création plat: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création du plat"})
		return
	}

	services.IndexFood(f)
	cache.InvalidateCatalog(c.Request.Context())

	log.Printf("✅ Plat créé: %s", f.Name)
	c.JSON(http.StatusCreated, f)
}

// UpdateFood — admin, mise à jour complète du plat
func UpdateFood(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID invalide"})
		return
	}

	var input struct {
		Name        string  `json:"name" binding:"required"`
		Description string  `json:"description"`
		Image       string  `json:"image"`
		Price       float64 `json:"price" binding:"required"`
		CategoryID  string  `json:"category_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	categoryID, err := gocql.ParseUUID(input.CategoryID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category_id invalide"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var createdAt time.Time
	if err := session.Query(`SELECT created_at FROM food WHERE id = ?`, id).
		WithContext(c.Request.Context()).Scan(&createdAt); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plat non trouvé"})
		return
	}

	f := models.Food{
		ID:          id,
		Name:        input.Name,
		Description: input.Description,
		Image:       input.Image,
		Price:       input.Price,
		CategoryID:  categoryID,
		CreatedAt:   createdAt,
		UpdatedAt:   time.Now().UTC(),
	}

	if err := session.Query(`UPDATE food SET name = ?, description = ?, image = ?, price = ?, category_id = ?, updated_at = ? WHERE id = ?`,
		f.Name, f.Description, f.Image, f.Price, f.CategoryID, f.UpdatedAt, f.ID).
		WithContext(c.Request.Context()).Exec(); err != nil {
		log.Printf("❌ Erreur mise à jour plat: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour du plat"})
		return
	}

	services.IndexFood(f)
	cache.InvalidateCatalog(c.Request.Context())

	c.JSON(http.StatusOK, f)
}

// DeleteFood — admin. Retire aussi le plat de l'index Elastic.
func DeleteFood(c *gin.Context) {
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

	if err := session.Query(`DELETE FROM food WHERE id = ?`, id).
		WithContext(c.Request.Context()).Exec(); err != nil {
		log.Printf("❌ Erreur suppression plat: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la suppression du plat"})
		return
	}

	services.RemoveFoodFromIndex(id.String())
	cache.InvalidateCatalog(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"message": "Plat supprimé"})
}
