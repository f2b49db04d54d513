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

func scanDeliveries(iter *gocql.Iter) ([]models.Delivery, error) {
	deliveries := []models.Delivery{}
	var (
		d      models.Delivery
		status string
	)
	for iter.Scan(&d.ID, &d.OrderID, &d.UserEmail, &d.DeliveryAddress, &status, &d.CreatedAt, &d.UpdatedAt) {
		d.DeliveryStatus = models.DeliveryStatus(status)
		deliveries = append(deliveries, d)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return deliveries, nil
}

// GetDeliveries liste les livraisons par commande ou par utilisateur
func GetDeliveries(c *gin.Context) {
	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	ctx := c.Request.Context()

	if orderIDStr := c.Query("orderId"); orderIDStr != "" {
		orderID, err := gocql.ParseUUID(orderIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderId invalide"})
			return
		}
		iter := session.Query(`SELECT id, order_id, user_email, delivery_address, delivery_status, created_at, updated_at
			FROM deliveries WHERE order_id = ? ALLOW FILTERING`, orderID).WithContext(ctx).Iter()
		deliveries, err := scanDeliveries(iter)
		if err != nil {
			log.Printf("❌ Erreur récupération livraisons: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
			return
		}
		c.JSON(http.StatusOK, deliveries)
		return
	}

	userEmail := c.Query("userEmail")
	if userEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "orderId ou userEmail requis"})
		return
	}

	iter := session.Query(`SELECT id, order_id, user_email, delivery_address, delivery_status, created_at, updated_at
		FROM deliveries WHERE user_email = ? ALLOW FILTERING`, userEmail).WithContext(ctx).Iter()
	deliveries, err := scanDeliveries(iter)
	if err != nil {
		log.Printf("❌ Erreur récupération livraisons: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}
	c.JSON(http.StatusOK, deliveries)
}

// GetDeliveriesByEmail — historique de livraison d'un utilisateur
func GetDeliveriesByEmail(c *gin.Context) {
	email := c.Param("email")

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT id, order_id, user_email, delivery_address, delivery_status, created_at, updated_at
		FROM deliveries WHERE user_email = ? ALLOW FILTERING`, email).
		WithContext(c.Request.Context()).Iter()
	deliveries, err := scanDeliveries(iter)
	if err != nil {
		log.Printf("❌ Erreur récupération livraisons: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}
	c.JSON(http.StatusOK, deliveries)
}

// CreateDelivery ouvre une livraison `pending` pour une commande
func CreateDelivery(c *gin.Context) {
	var input struct {
		OrderID         string `json:"orderId" binding:"required"`
		UserEmail       string `json:"userEmail" binding:"required,email"`
		DeliveryAddress string `json:"deliveryAddress" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	orderID, err := gocql.ParseUUID(input.OrderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "orderId invalide"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	now := time.Now().UTC()
	d := models.Delivery{
		ID:              gocql.TimeUUID(),
		OrderID:         orderID,
		UserEmail:       input.UserEmail,
		DeliveryAddress: input.DeliveryAddress,
		DeliveryStatus:  models.DeliveryPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := session.Query(`INSERT INTO deliveries (id, order_id, user_email, delivery_address, delivery_status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.OrderID, d.UserEmail, d.DeliveryAddress, string(d.DeliveryStatus), d.CreatedAt, d.UpdatedAt).
		WithContext(c.Request.Context()).Exec(); err != nil {
		log.Printf("❌ Erreur création livraison: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création de la livraison"})
		return
	}

	c.JSON(http.StatusCreated, d)
}

// UpdateDelivery fait avancer le statut ou corrige l'adresse
func UpdateDelivery(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID invalide"})
		return
	}

	var input struct {
		DeliveryStatus  *string `json:"deliveryStatus"`
		DeliveryAddress *string `json:"deliveryAddress"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}
	if input.DeliveryStatus == nil && input.DeliveryAddress == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Au moins un champ à modifier est requis"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var (
		d      models.Delivery
		status string
	)
	if err := session.Query(`SELECT id, order_id, user_email, delivery_address, delivery_status, created_at, updated_at
		FROM deliveries WHERE id = ?`, id).
		WithContext(c.Request.Context()).Scan(
		&d.ID, &d.OrderID, &d.UserEmail, &d.DeliveryAddress, &status, &d.CreatedAt, &d.UpdatedAt); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Livraison non trouvée"})
		return
	}
	d.DeliveryStatus = models.DeliveryStatus(status)

	if input.DeliveryStatus != nil {
		newStatus, err := models.ParseDeliveryStatus(*input.DeliveryStatus)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Statut de livraison inconnu"})
			return
		}
		d.DeliveryStatus = newStatus
	}
	if input.DeliveryAddress != nil {
		d.DeliveryAddress = *input.DeliveryAddress
	}
	d.UpdatedAt = time.Now().UTC()

	if err := session.Query(`UPDATE deliveries SET delivery_status = ?, delivery_address = ?, updated_at = ? WHERE id = ?`,
		string(d.DeliveryStatus), d.DeliveryAddress, d.UpdatedAt, id).
		WithContext(c.Request.Context()).Exec(); err != nil {
		log.Printf("❌ Erreur mise à jour livraison: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour"})
		return
	}

	c.JSON(http.StatusOK, d)
}

// DeleteDelivery supprime une livraison
func DeleteDelivery(c *gin.Context) {
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

	if err := session.Query(`DELETE FROM deliveries WHERE id = ?`, id).
		WithContext(c.Request.Context()).Exec(); err != nil {
		log.Printf("❌ Erreur suppression livraison: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la suppression"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Livraison supprimée"})
}
