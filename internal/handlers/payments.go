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

// CreatePayment enregistre un paiement déjà encaissé (back-office).
// Le débit carte du checkout passe par l'orchestrateur, pas par ici.
func CreatePayment(c *gin.Context) {
	var input struct {
		OrderID       string  `json:"orderId" binding:"required"`
		Amount        float64 `json:"amount" binding:"required"`
		PaymentMethod string  `json:"paymentMethod" binding:"required"`
		StripeID      string  `json:"stripeId"`
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

	method, err := models.ParsePaymentMethod(input.PaymentMethod)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Moyen de paiement inconnu"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	now := time.Now().UTC()
	p := models.Payment{
		ID:            gocql.TimeUUID(),
		OrderID:       orderID,
		Amount:        input.Amount,
		PaymentMethod: method,
		StripeID:      input.StripeID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := session.Query(`INSERT INTO payments (id, order_id, amount, payment_method, stripe_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.OrderID, p.Amount, string(p.PaymentMethod), p.StripeID, p.CreatedAt, p.UpdatedAt).
		WithContext(c.Request.Context()).Exec(); err != nil {
		log.Printf("❌ Erreur création paiement: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création du paiement"})
		return
	}

	log.Printf("💳 Paiement enregistré: %s pour la commande %s", p.ID, p.OrderID)
	c.JSON(http.StatusCreated, p)
}

// GetPayments liste les paiements d'une commande (?orderId=)
func GetPayments(c *gin.Context) {
	orderID, err := gocql.ParseUUID(c.Query("orderId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "orderId invalide"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT id, order_id, amount, payment_method, stripe_id, created_at, updated_at
		FROM payments WHERE order_id = ? ALLOW FILTERING`, orderID).
		WithContext(c.Request.Context()).Iter()

	payments := []models.Payment{}
	var (
		p      models.Payment
		method string
	)
	for iter.Scan(&p.ID, &p.OrderID, &p.Amount, &method, &p.StripeID, &p.CreatedAt, &p.UpdatedAt) {
		p.PaymentMethod = models.PaymentMethod(method)
		payments = append(payments, p)
	}
	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur récupération paiements: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, payments)
}

// GetAllPayments — admin, tous les paiements
func GetAllPayments(c *gin.Context) {
	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT id, order_id, amount, payment_method, stripe_id, created_at, updated_at FROM payments`).
		WithContext(c.Request.Context()).Iter()

	payments := []models.Payment{}
	var (
		p      models.Payment
		method string
	)
	for iter.Scan(&p.ID, &p.OrderID, &p.Amount, &method, &p.StripeID, &p.CreatedAt, &p.UpdatedAt) {
		p.PaymentMethod = models.PaymentMethod(method)
		payments = append(payments, p)
	}
	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur récupération paiements: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payments": payments,
		"total":    len(payments),
	})
}
