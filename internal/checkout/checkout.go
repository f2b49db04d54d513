// Package checkout enchaîne création de commande, débit conditionnel
// et finalisation. La séquence est linéaire, sans retour arrière et
// sans garantie transactionnelle entre les étapes : un échec de
// paiement laisse la commande en `pending` (commande orpheline).
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"tamaq_back_end/internal/cart"
	"tamaq_back_end/internal/models"

	"github.com/gocql/gocql"
)

// OrderService crée les enregistrements durables du checkout
type OrderService interface {
	CreateCart(ctx context.Context, userEmail string) (*models.Cart, error)
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID gocql.UUID, status models.OrderStatus) error
}

// PaymentCharger débite le montant et crée l'enregistrement de paiement
type PaymentCharger interface {
	Charge(ctx context.Context, orderID gocql.UUID, amount float64, method models.PaymentMethod) (*models.Payment, error)
}

// Notifier envoie la confirmation de commande. Meilleur effort :
// un échec est loggé, jamais remonté au client.
type Notifier interface {
	OrderConfirmed(order *models.Order, items []models.CartLineItem)
}

// FieldError — erreur de validation rattachée à un champ du formulaire
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError porte les erreurs champ par champ de l'étape 1.
// Aucun appel réseau n'a été émis quand elle est retournée.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Field + ": " + f.Message
	}
	return "validation: " + strings.Join(msgs, "; ")
}

// ErrPaymentFailed — le débit a échoué après création de la commande ;
// celle-ci reste en `pending` sans annulation automatique.
var ErrPaymentFailed = errors.New("échec du traitement du paiement")

// ErrEmptyCart — rien à commander
var ErrEmptyCart = errors.New("panier vide")

// Input — données saisies au checkout
type Input struct {
	UserEmail       string
	DeliveryAddress string
	PaymentMethod   models.PaymentMethod
	CardNumber      string
	CardExpiry      string
	CardCVC         string
}

// Result — état final d'un checkout réussi
type Result struct {
	OrderID   gocql.UUID         `json:"order_id"`
	Status    models.OrderStatus `json:"status"`
	PaymentID *gocql.UUID        `json:"payment_id,omitempty"`
	Totals    cart.Totals        `json:"totals"`
}

type Orchestrator struct {
	Cart     *cart.Store
	Orders   OrderService
	Payments PaymentCharger
	Notifier Notifier // optionnel
}

func New(cartStore *cart.Store, orders OrderService, payments PaymentCharger, notifier Notifier) *Orchestrator {
	return &Orchestrator{Cart: cartStore, Orders: orders, Payments: payments, Notifier: notifier}
}

var (
	cardNumberRe = regexp.MustCompile(`^\d{16}$`)
	cardExpiryRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cardCVCRe    = regexp.MustCompile(`^\d{3}$`)
)

// Validate — étape 1. Adresse résolue obligatoire ; si paiement par
// carte : numéro 16 chiffres, expiration MM/YY, CVC 3 chiffres.
func Validate(in Input) *ValidationError {
	var fields []FieldError

	if strings.TrimSpace(in.DeliveryAddress) == "" {
		fields = append(fields, FieldError{Field: "deliveryAddress", Message: "adresse de livraison requise"})
	}

	if in.PaymentMethod == models.PaymentCreditCard {
		number := strings.ReplaceAll(in.CardNumber, " ", "")
		if !cardNumberRe.MatchString(number) {
			fields = append(fields, FieldError{Field: "cardNumber", Message: "le numéro de carte doit comporter 16 chiffres"})
		}
		if !cardExpiryRe.MatchString(in.CardExpiry) {
			fields = append(fields, FieldError{Field: "cardExpiry", Message: "date d'expiration attendue au format MM/YY"})
		}
		if !cardCVCRe.MatchString(in.CardCVC) {
			fields = append(fields, FieldError{Field: "cardCvc", Message: "le CVC doit comporter 3 chiffres"})
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Checkout déroule la séquence complète. Les commandes payées à la
// livraison s'arrêtent après la création et sont complètes avec le
// statut `onDelivery`.
func (o *Orchestrator) Checkout(ctx context.Context, in Input) (*Result, error) {
	// 1. Validation — aucun appel réseau avant ce point
	if verr := Validate(in); verr != nil {
		return nil, verr
	}

	items, err := o.Cart.Get(ctx, in.UserEmail)
	if err != nil {
		return nil, fmt.Errorf("lecture du panier: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	totals := cart.ComputeTotals(items)

	// 2. Création de la commande
	durableCart, err := o.Orders.CreateCart(ctx, in.UserEmail)
	if err != nil {
		return nil, fmt.Errorf("création du panier: %w", err)
	}

	initialStatus := models.StatusPending
	if in.PaymentMethod == models.PaymentCashOnDelivery {
		initialStatus = models.StatusOnDelivery
	}

	order, err := o.Orders.CreateOrder(ctx, &models.Order{
		UserEmail:       in.UserEmail,
		CartID:          durableCart.ID,
		DeliveryAddress: in.DeliveryAddress,
		PaymentMethod:   in.PaymentMethod,
		Status:          initialStatus,
		TotalPrice:      totals.Total,
	})
	if err != nil {
		return nil, fmt.Errorf("création de la commande: %w", err)
	}

	result := &Result{OrderID: order.ID, Status: order.Status, Totals: totals}

	// Paiement à la livraison : complète dès la création
	if in.PaymentMethod == models.PaymentCashOnDelivery {
		o.finish(ctx, order, items)
		return result, nil
	}

	// 3. Débit — uniquement pour la carte
	payment, err := o.Payments.Charge(ctx, order.ID, totals.Total, in.PaymentMethod)
	if err != nil {
		// commande orpheline assumée : reste en pending, pas de compensation
		log.Printf("❌ Paiement échoué pour la commande %s: %v", order.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}
	result.PaymentID = &payment.ID

	// 4. Finalisation
	if err := o.Orders.UpdateOrderStatus(ctx, order.ID, models.StatusPaid); err != nil {
		return nil, fmt.Errorf("mise à jour du statut: %w", err)
	}
	order.Status = models.StatusPaid
	result.Status = models.StatusPaid

	o.finish(ctx, order, items)
	return result, nil
}

// finish vide le panier et déclenche la confirmation. Les échecs ici
// n'invalident pas un checkout déjà abouti.
func (o *Orchestrator) finish(ctx context.Context, order *models.Order, items []models.CartLineItem) {
	if err := o.Cart.Clear(ctx, order.UserEmail); err != nil {
		log.Printf("⚠️ Impossible de vider le panier de %s: %v", order.UserEmail, err)
	}
	if o.Notifier != nil {
		o.Notifier.OrderConfirmed(order, items)
	}
	log.Printf("✅ Commande %s confirmée (%s, %.2f₸) pour %s", order.ID, order.Status, order.TotalPrice, order.UserEmail)
}
