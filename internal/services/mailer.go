package services

import (
	"log"

	"tamaq_back_end/internal/models"
	"tamaq_back_end/internal/utils"
)

// OrderMailer implémente checkout.Notifier : envoi de la confirmation
// avec QR de suivi et reçu PDF. Tout est meilleur effort — un échec
// d'e-mail n'annule jamais un checkout abouti.
type OrderMailer struct{}

func NewOrderMailer() *OrderMailer {
	return &OrderMailer{}
}

func (m *OrderMailer) OrderConfirmed(order *models.Order, items []models.CartLineItem) {
	qrBase64, err := utils.GenerateTrackingQR(order.ID.String())
	if err != nil {
		log.Printf("⚠️ QR de suivi indisponible pour %s: %v", order.ID, err)
		qrBase64 = ""
	}

	var pdf []byte
	if pdfBuf, err := utils.RenderReceiptPDF(utils.GetFrontendReceiptBaseURL(), order.ID.String(), qrBase64); err != nil {
		log.Printf("⚠️ Reçu PDF indisponible pour %s: %v", order.ID, err)
	} else {
		pdf = pdfBuf
	}

	html := utils.GenerateOrderConfirmationHTML(*order, items, qrBase64)
	if err := utils.SendEmail(order.UserEmail, "Confirmation de votre commande - Tamaq", html, pdf); err != nil {
		log.Printf("❌ Échec envoi confirmation à %s: %v", order.UserEmail, err)
	}
}
