package handlers

import (
	"log"
	"net/http"

	"tamaq_back_end/internal/cart"
	"tamaq_back_end/internal/models"

	"github.com/gin-gonic/gin"
)

// CartHandler expose le panier de session. Le Store est construit une
// fois au démarrage et passé par référence — pas d'état global ici.
type CartHandler struct {
	Store *cart.Store
}

func NewCartHandler(store *cart.Store) *CartHandler {
	return &CartHandler{Store: store}
}

func cartUserEmail(c *gin.Context) string {
	return c.GetString("email")
}

// GetCart retourne les lignes du panier avec les totaux
func (h *CartHandler) GetCart(c *gin.Context) {
	email := cartUserEmail(c)

	items, err := h.Store.Get(c.Request.Context(), email)
	if err != nil {
		log.Printf("❌ Erreur lecture panier de %s: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture du panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":  items,
		"totals": cart.ComputeTotals(items),
	})
}

// AddToCart ajoute une ligne ou incrémente la quantité existante
func (h *CartHandler) AddToCart(c *gin.Context) {
	email := cartUserEmail(c)

	var input struct {
		FoodID string  `json:"id" binding:"required"`
		Name   string  `json:"name" binding:"required"`
		Price  float64 `json:"price"`
		Image  string  `json:"image"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}
	if input.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prix invalide"})
		return
	}

	items, err := h.Store.Add(c.Request.Context(), email, models.CartLineItem{
		FoodID: input.FoodID,
		Name:   input.Name,
		Price:  input.Price,
		Image:  input.Image,
	})
	if err != nil {
		log.Printf("❌ Erreur ajout au panier de %s: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour du panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":  items,
		"totals": cart.ComputeTotals(items),
	})
}

// UpdateCartQuantity fixe la quantité d'une ligne (0 = suppression)
func (h *CartHandler) UpdateCartQuantity(c *gin.Context) {
	email := cartUserEmail(c)

	var input struct {
		FoodID   string `json:"id" binding:"required"`
		Quantity *int   `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	items, err := h.Store.UpdateQuantity(c.Request.Context(), email, input.FoodID, *input.Quantity)
	if err != nil {
		log.Printf("❌ Erreur quantité panier de %s: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour du panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":  items,
		"totals": cart.ComputeTotals(items),
	})
}

// RemoveFromCart supprime une ligne. Id absent : réponse OK inchangée.
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	email := cartUserEmail(c)
	foodID := c.Param("foodId")

	items, err := h.Store.Remove(c.Request.Context(), email, foodID)
	if err != nil {
		log.Printf("❌ Erreur suppression ligne panier de %s: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour du panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":  items,
		"totals": cart.ComputeTotals(items),
	})
}

// ClearCart vide entièrement le panier
func (h *CartHandler) ClearCart(c *gin.Context) {
	email := cartUserEmail(c)

	if err := h.Store.Clear(c.Request.Context(), email); err != nil {
		log.Printf("❌ Erreur vidage panier de %s: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur vidage du panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Panier vidé 🛒"})
}

// CartCount retourne la somme des quantités, pour le badge
func (h *CartHandler) CartCount(c *gin.Context) {
	email := cartUserEmail(c)

	count, err := h.Store.ItemCount(c.Request.Context(), email)
	if err != nil {
		log.Printf("❌ Erreur comptage panier de %s: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture du panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}
