package handlers

import (
	"log"
	"net/http"
	"time"

	"tamaq_back_end/internal/database"
	"tamaq_back_end/internal/models"
	"tamaq_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

// CreateOrder crée une commande directement (hors checkout). Le statut
// par défaut est `pending` ; tout statut fourni doit être connu.
func CreateOrder(c *gin.Context) {
	var input struct {
		UserEmail       string  `json:"userEmail" binding:"required,email"`
		CartID          string  `json:"cartId" binding:"required"`
		DeliveryAddress string  `json:"deliveryAddress" binding:"required"`
		PaymentMethod   string  `json:"paymentMethod" binding:"required"`
		Status          string  `json:"status"`
		TotalPrice      float64 `json:"totalPrice" binding:"required"`
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

	method, err := models.ParsePaymentMethod(input.PaymentMethod)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Moyen de paiement inconnu"})
		return
	}

	status := models.StatusPending
	if input.Status != "" {
		if status, err = models.ParseOrderStatus(input.Status); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Statut de commande inconnu"})
			return
		}
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	now := time.Now().UTC()
	order := models.Order{
		ID:              gocql.TimeUUID(),
		UserEmail:       input.UserEmail,
		CartID:          cartID,
		DeliveryAddress: input.DeliveryAddress,
		PaymentMethod:   method,
		Status:          status,
		TotalPrice:      input.TotalPrice,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := session.Query(`INSERT INTO orders (id, user_email, cart_id, delivery_address, payment_method, status, total_price, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.UserEmail, order.CartID, order.DeliveryAddress,
		string(order.PaymentMethod), string(order.Status), order.TotalPrice,
		order.CreatedAt, order.UpdatedAt).
		WithContext(c.Request.Context()).Exec(); err != nil {
		log.Printf("❌ Erreur création commande: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création de la commande"})
		return
	}

	log.Printf("✅ Commande créée: %s pour %s", order.ID, order.UserEmail)
	c.JSON(http.StatusCreated, order)
}

// GetOrders liste les commandes d'un utilisateur, filtrables par statut
func GetOrders(c *gin.Context) {
	userEmail := c.Query("userEmail")
	if userEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userEmail requis"})
		return
	}

	statusFilter := c.Query("status")
	if statusFilter != "" {
		if _, err := models.ParseOrderStatus(statusFilter); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Statut de commande inconnu"})
			return
		}
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT id, user_email, cart_id, delivery_address, payment_method, status, total_price, created_at, updated_at
		FROM orders WHERE user_email = ? ALLOW FILTERING`, userEmail).
		WithContext(c.Request.Context()).Iter()

	orders := []models.Order{}
	var (
		o              models.Order
		method, status string
	)
	for iter.Scan(&o.ID, &o.UserEmail, &o.CartID, &o.DeliveryAddress, &method, &status, &o.TotalPrice, &o.CreatedAt, &o.UpdatedAt) {
		o.PaymentMethod = models.PaymentMethod(method)
		o.Status = models.OrderStatus(status)
		if statusFilter != "" && status != statusFilter {
			continue
		}
		orders = append(orders, o)
	}
	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur récupération commandes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GetAllOrders — admin, toutes les commandes
func GetAllOrders(c *gin.Context) {
	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT id, user_email, cart_id, delivery_address, payment_method, status, total_price, created_at, updated_at FROM orders`).
		WithContext(c.Request.Context()).Iter()

	orders := []models.Order{}
	var (
		o              models.Order
		method, status string
	)
	for iter.Scan(&o.ID, &o.UserEmail, &o.CartID, &o.DeliveryAddress, &method, &status, &o.TotalPrice, &o.CreatedAt, &o.UpdatedAt) {
		o.PaymentMethod = models.PaymentMethod(method)
		o.Status = models.OrderStatus(status)
		orders = append(orders, o)
	}
	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur récupération commandes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"total":  len(orders),
	})
}

// GetOrderByID — détail d'une commande
func GetOrderByID(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID invalide"})
		return
	}

	order, err := loadOrder(c, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande non trouvée"})
		return
	}

	c.JSON(http.StatusOK, order)
}

func loadOrder(c *gin.Context, id gocql.UUID) (*models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, err
	}

	var (
		o              models.Order
		method, status string
	)
	if err := session.Query(`SELECT id, user_email, cart_id, delivery_address, payment_method, status, total_price, created_at, updated_at
		FROM orders WHERE id = ?`, id).
		WithContext(c.Request.Context()).Scan(
		&o.ID, &o.UserEmail, &o.CartID, &o.DeliveryAddress, &method, &status,
		&o.TotalPrice, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	o.PaymentMethod = models.PaymentMethod(method)
	o.Status = models.OrderStatus(status)
	return &o, nil
}

// UpdateOrder modifie une commande champ par champ : statut, adresse
// de livraison ou moyen de paiement. Au moins un champ est requis et
// les enums sont validés avant toute écriture.
func UpdateOrder(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID invalide"})
		return
	}

	var input struct {
		Status          *string `json:"status"`
		DeliveryAddress *string `json:"deliveryAddress"`
		PaymentMethod   *string `json:"paymentMethod"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}
	if input.Status == nil && input.DeliveryAddress == nil && input.PaymentMethod == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Au moins un champ à modifier est requis"})
		return
	}

	order, err := loadOrder(c, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande non trouvée"})
		return
	}

	statusChanged := false
	if input.Status != nil {
		newStatus, err := models.ParseOrderStatus(*input.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Statut de commande inconnu"})
			return
		}
		statusChanged = newStatus != order.Status
		order.Status = newStatus
	}
	if input.DeliveryAddress != nil {
		if *input.DeliveryAddress == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Adresse de livraison vide"})
			return
		}
		order.DeliveryAddress = *input.DeliveryAddress
	}
	if input.PaymentMethod != nil {
		method, err := models.ParsePaymentMethod(*input.PaymentMethod)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Moyen de paiement inconnu"})
			return
		}
		order.PaymentMethod = method
	}
	order.UpdatedAt = time.Now().UTC()

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(`UPDATE orders SET status = ?, delivery_address = ?, payment_method = ?, updated_at = ? WHERE id = ?`,
		string(order.Status), order.DeliveryAddress, string(order.PaymentMethod), order.UpdatedAt, id).
		WithContext(c.Request.Context()).Exec(); err != nil {
		log.Printf("❌ Erreur mise à jour commande: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la mise à jour"})
		return
	}

	if statusChanged {
		// notification client, meilleur effort
		go func(o models.Order) {
			if err := utils.SendOrderStatusEmail(o, o.Status); err != nil {
				log.Printf("⚠️ Échec email de statut pour %s: %v", o.ID, err)
			}
		}(*order)
	}

	c.JSON(http.StatusOK, order)
}

// GetOrderQR retourne le QR de suivi de la commande (data URI PNG)
func GetOrderQR(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID invalide"})
		return
	}

	if _, err := loadOrder(c, id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande non trouvée"})
		return
	}

	qr, err := utils.GenerateTrackingQR(id.String())
	if err != nil {
		log.Printf("❌ Erreur génération QR pour %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération du QR"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order_id": id, "qr": qr})
}
