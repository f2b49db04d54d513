package handlers

import (
	"log"
	"net/http"
	"time"

	"tamaq_back_end/internal/database"
	"tamaq_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// CreateDurableCart crée un panier durable `active` pour un utilisateur
func CreateDurableCart(c *gin.Context) {
	var input struct {
		UserEmail string `json:"userEmail" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	now := time.Now().UTC()
	cart := models.Cart{
		ID:        gocql.TimeUUID(),
		UserEmail: input.UserEmail,
		Status:    models.CartActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := session.Query(`INSERT INTO carts (id, user_email, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		cart.ID, cart.UserEmail, string(cart.Status), cart.CreatedAt, cart.UpdatedAt).
		WithContext(c.Request.Context()).Exec(); err != nil {
		log.Printf("❌ Erreur création panier durable: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création du panier"})
		return
	}

	c.JSON(http.StatusCreated, cart)
}

// GetActiveCart retourne le dernier panier non complété de l'utilisateur
func GetActiveCart(c *gin.Context) {
	userEmail := c.Query("userEmail")
	if userEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userEmail requis"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT id, user_email, status, created_at, updated_at FROM carts WHERE user_email = ? ALLOW FILTERING`,
		userEmail).WithContext(c.Request.Context()).Iter()

	var (
		cart   models.Cart
		latest *models.Cart
		status string
	)
	for iter.Scan(&cart.ID, &cart.UserEmail, &status, &cart.CreatedAt, &cart.UpdatedAt) {
		cart.Status = models.CartStatus(status)
		if cart.Status == models.CartCompleted {
			continue
		}
		if latest == nil || cart.CreatedAt.After(latest.CreatedAt) {
			copied := cart
			latest = &copied
		}
	}
	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur récupération panier durable: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	if latest == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Aucun panier actif"})
		return
	}
	c.JSON(http.StatusOK, latest)
}

// UpdateCartStatus complète ou réactive un panier durable
func UpdateCartStatus(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID invalide"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}
	if input.Status != string(models.CartActive) && input.Status != string(models.CartCompleted) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut de panier inconnu"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(`UPDATE carts SET status = ?, updated_at = ? WHERE id = ?`,
		input.Status, time.Now().UTC(), id).
		WithContext(c.Request.Context()).Exec(); err != nil {
		log.Printf("❌ Erreur mise à jour panier durable: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Panier mis à jour"})
}

// GetCartItems liste les lignes d'un panier durable
func GetCartItems(c *gin.Context) {
	cartID, err := gocql.ParseUUID(c.Query("cartId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cartId invalide"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT id, cart_id, food_id, quantity, created_at, updated_at FROM cart_items WHERE cart_id = ? ALLOW FILTERING`,
		cartID).WithContext(c.Request.Context()).Iter()

	items := []models.CartItem{}
	var item models.CartItem
	for iter.Scan(&item.ID, &item.CartID, &item.FoodID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt) {
		items = append(items, item)
	}
	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur récupération lignes panier: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// CreateCartItem ajoute une ligne à un panier durable
func CreateCartItem(c *gin.Context) {
	var input struct {
		CartID   string `json:"cartId" binding:"required"`
		FoodID   string `json:"foodId" binding:"required"`
		Quantity int    `json:"quantity" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	cartID, err := gocql.ParseUUID(input.CartID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cartId invalide"})
		return
	}
	foodID, err := gocql.ParseUUID(input.FoodID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "foodId invalide"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	now := time.Now().UTC()
	item := models.CartItem{
		ID:        gocql.TimeUUID(),
		CartID:    cartID,
		FoodID:    foodID,
		Quantity:  input.Quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := session.Query(`INSERT INTO cart_items (id, cart_id, food_id, quantity, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		item.ID, item.CartID, item.FoodID, item.Quantity, item.CreatedAt, item.UpdatedAt).
		WithContext(c.Request.Context()).Exec(); err != nil {
		log.Printf("❌ Erreur création ligne panier: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création de la ligne"})
		return
	}

	c.JSON(http.StatusCreated, item)
}

// UpdateCartItem change la quantité d'une ligne durable
func UpdateCartItem(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID invalide"})
		return
	}

	var input struct {
		Quantity int `json:"quantity" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(`UPDATE cart_items SET quantity = ?, updated_at = ? WHERE id = ?`,
		input.Quantity, time.Now().UTC(), id).
		WithContext(c.Request.Context()).Exec(); err != nil {
		log.Printf("❌ Erreur mise à jour ligne panier: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Ligne mise à jour"})
}

// DeleteCartItem retire une ligne d'un panier durable
func DeleteCartItem(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID invalide"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(`DELETE FROM cart_items WHERE id = ?`, id).
		WithContext(c.Request.Context()).Exec(); err != nil {
		log.Printf("❌ Erreur suppression ligne panier: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la suppression"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Ligne supprimée"})
}
