package utils

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"tamaq_back_end/internal/models"

	"github.com/wneessen/go-mail"
)

// SendEmail envoie un e-mail HTML, avec reçu PDF en pièce jointe si fourni
func SendEmail(to, subject, htmlBody string, pdfAttachment []byte) error {
	msg := mail.NewMsg()

	if err := msg.From(os.Getenv("SMTP_FROM")); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if pdfAttachment != nil {
		msg.AttachReader("recu_tamaq.pdf", bytes.NewReader(pdfAttachment))
	}

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail à", to)
	return client.DialAndSend(msg)
}

// GenerateOrderConfirmationHTML génère le HTML de confirmation de commande
func GenerateOrderConfirmationHTML(order models.Order, items []models.CartLineItem, qrBase64 string) string {
	itemsHTML := ""
	for _, item := range items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td>%d</td>
				<td>%.2f₸</td>
				<td>%.2f₸</td>
			</tr>`, item.Name, item.Quantity, item.Price, item.Price*float64(item.Quantity))
	}

	qrHTML := ""
	if qrBase64 != "" {
		qrHTML = fmt.Sprintf(`<p>Suivez votre livraison en scannant ce code :</p><img src="%s" alt="QR de suivi" width="160" height="160">`, qrBase64)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<title>Confirmation de commande</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Confirmation de votre commande</h2>
		<p>Bonjour,</p>
		<p>Votre commande <strong>%s</strong> a bien été enregistrée.</p>

		<h3>Détails de la commande</h3>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 10px; text-align: left;">Plat</th>
					<th style="padding: 10px; text-align: left;">Quantité</th>
					<th style="padding: 10px; text-align: left;">Prix unitaire</th>
					<th style="padding: 10px; text-align: left;">Total</th>
				</tr>
			</thead>
			<tbody>%s</tbody>
		</table>

		<p><strong>Total : %.2f₸</strong></p>
		<p>Adresse de livraison : %s</p>
		%s
		<p>Merci de votre confiance — l'équipe Tamaq</p>
	</div>
</body>
</html>`, order.ID, itemsHTML, order.TotalPrice, order.DeliveryAddress, qrHTML)
}

// SendOrderStatusEmail notifie le client d'un changement de statut
func SendOrderStatusEmail(order models.Order, newStatus models.OrderStatus) error {
	subject := statusEmailSubject(newStatus)
	html := fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<body style="font-family: Arial, sans-serif; padding: 20px;">
	<h2>Mise à jour de votre commande</h2>
	<p>Votre commande <strong>%s</strong> est maintenant : <strong>%s</strong>.</p>
</body>
</html>`, order.ID, newStatus)

	if err := SendEmail(order.UserEmail, subject, html, nil); err != nil {
		log.Printf("❌ Erreur envoi email statut: %v", err)
		return err
	}
	log.Printf("📧 Email de statut envoyé: %s → %s", newStatus, order.UserEmail)
	return nil
}

func statusEmailSubject(status models.OrderStatus) string {
	switch status {
	case models.StatusPaid:
		return "✅ Paiement confirmé - Tamaq"
	case models.StatusPreparing:
		return "👨‍🍳 Votre commande est en préparation - Tamaq"
	case models.StatusDelivering:
		return "🛵 Votre commande est en route - Tamaq"
	case models.StatusDelivered:
		return "🎉 Votre commande a été livrée - Tamaq"
	case models.StatusCancelled:
		return "❌ Commande annulée - Tamaq"
	default:
		return "📋 Mise à jour de votre commande - Tamaq"
	}
}
