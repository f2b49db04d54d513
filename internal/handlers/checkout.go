package handlers

import (
	"errors"
	"net/http"

	"tamaq_back_end/internal/checkout"
	"tamaq_back_end/internal/models"

	"github.com/gin-gonic/gin"
)

// CheckoutHandler pilote la séquence de commande complète
type CheckoutHandler struct {
	Orch *checkout.Orchestrator
}

func NewCheckoutHandler(orch *checkout.Orchestrator) *CheckoutHandler {
	return &CheckoutHandler{Orch: orch}
}

// Checkout valide le formulaire, crée la commande puis débite si la
// carte est le moyen de paiement. Les erreurs de validation reviennent
// champ par champ, sans qu'aucune écriture n'ait eu lieu.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	email := c.GetString("email")

	var input struct {
		DeliveryAddress string `json:"deliveryAddress"`
		PaymentMethod   string `json:"paymentMethod" binding:"required"`
		CardNumber      string `json:"cardNumber"`
		CardExpiry      string `json:"cardExpiry"`
		CardCVC         string `json:"cardCvc"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	method, err := models.ParsePaymentMethod(input.PaymentMethod)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Moyen de paiement inconnu"})
		return
	}

	result, err := h.Orch.Checkout(c.Request.Context(), checkout.Input{
		UserEmail:       email,
		DeliveryAddress: input.DeliveryAddress,
		PaymentMethod:   method,
		CardNumber:      input.CardNumber,
		CardExpiry:      input.CardExpiry,
		CardCVC:         input.CardCVC,
	})
	if err != nil {
		var verr *checkout.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  "Validation échouée",
				"fields": verr.Fields,
			})
		case errors.Is(err, checkout.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Votre panier est vide"})
		case errors.Is(err, checkout.ErrPaymentFailed):
			// la commande existe déjà, en pending : le client peut retenter
			c.JSON(http.StatusBadGateway, gin.H{"error": "Échec du traitement du paiement"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du checkout"})
		}
		return
	}

	c.JSON(http.StatusCreated, result)
}
