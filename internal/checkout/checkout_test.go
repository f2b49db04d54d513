package checkout

import (
	"context"
	"errors"
	"testing"

	"tamaq_back_end/internal/cart"
	"tamaq_back_end/internal/models"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderService struct {
	carts         []models.Cart
	orders        []models.Order
	statusUpdates map[gocql.UUID]models.OrderStatus
	failCreate    bool
}

func newFakeOrderService() *fakeOrderService {
	return &fakeOrderService{statusUpdates: make(map[gocql.UUID]models.OrderStatus)}
}

func (f *fakeOrderService) CreateCart(_ context.Context, userEmail string) (*models.Cart, error) {
	c := models.Cart{ID: gocql.TimeUUID(), UserEmail: userEmail, Status: models.CartActive}
	f.carts = append(f.carts, c)
	return &c, nil
}

func (f *fakeOrderService) CreateOrder(_ context.Context, order *models.Order) (*models.Order, error) {
	if f.failCreate {
		return nil, errors.New("scylla indisponible")
	}
	order.ID = gocql.TimeUUID()
	f.orders = append(f.orders, *order)
	return order, nil
}

func (f *fakeOrderService) UpdateOrderStatus(_ context.Context, orderID gocql.UUID, status models.OrderStatus) error {
	f.statusUpdates[orderID] = status
	return nil
}

type fakeCharger struct {
	charges int
	fail    bool
}

func (f *fakeCharger) Charge(_ context.Context, orderID gocql.UUID, amount float64, method models.PaymentMethod) (*models.Payment, error) {
	f.charges++
	if f.fail {
		return nil, errors.New("carte refusée")
	}
	return &models.Payment{ID: gocql.TimeUUID(), OrderID: orderID, Amount: amount, PaymentMethod: method}, nil
}

type fakeNotifier struct {
	confirmed []models.Order
}

func (f *fakeNotifier) OrderConfirmed(order *models.Order, _ []models.CartLineItem) {
	f.confirmed = append(f.confirmed, *order)
}

func seedCart(t *testing.T, store *cart.Store, email string) {
	t.Helper()
	_, err := store.Add(context.Background(), email, models.CartLineItem{FoodID: "f1", Name: "Plov", Price: 10.0})
	require.NoError(t, err)
	_, err = store.Add(context.Background(), email, models.CartLineItem{FoodID: "f1", Name: "Plov", Price: 10.0})
	require.NoError(t, err)
}

func validCardInput(email string) Input {
	return Input{
		UserEmail:       email,
		DeliveryAddress: "12 rue Abay, Almaty",
		PaymentMethod:   models.PaymentCreditCard,
		CardNumber:      "4242 4242 4242 4242",
		CardExpiry:      "12/27",
		CardCVC:         "123",
	}
}

func TestValidateRequiresDeliveryAddress(t *testing.T) {
	verr := Validate(Input{PaymentMethod: models.PaymentCashOnDelivery})
	require.NotNil(t, verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "deliveryAddress", verr.Fields[0].Field)
}

func TestValidateCardFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Input)
		field  string
	}{
		{"numéro trop court", func(in *Input) { in.CardNumber = "1234" }, "cardNumber"},
		{"numéro avec lettres", func(in *Input) { in.CardNumber = "4242abcd42424242" }, "cardNumber"},
		{"mois invalide", func(in *Input) { in.CardExpiry = "13/27" }, "cardExpiry"},
		{"format expiration", func(in *Input) { in.CardExpiry = "122027" }, "cardExpiry"},
		{"cvc trop long", func(in *Input) { in.CardCVC = "1234" }, "cardCvc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validCardInput("a@b.kz")
			tt.mutate(&in)
			verr := Validate(in)
			require.NotNil(t, verr)
			require.Len(t, verr.Fields, 1)
			assert.Equal(t, tt.field, verr.Fields[0].Field)
		})
	}
}

func TestValidateAcceptsSpacedCardNumber(t *testing.T) {
	in := validCardInput("a@b.kz")
	in.CardNumber = "4242 4242 4242 4242"
	assert.Nil(t, Validate(in))
}

func TestValidateSkipsCardFieldsForCashOnDelivery(t *testing.T) {
	in := Input{
		UserEmail:       "a@b.kz",
		DeliveryAddress: "12 rue Abay",
		PaymentMethod:   models.PaymentCashOnDelivery,
	}
	assert.Nil(t, Validate(in))
}

func TestCheckoutValidationFailureMakesNoServiceCall(t *testing.T) {
	store := cart.NewStore(cart.NewMemoryStorage())
	orders := newFakeOrderService()
	charger := &fakeCharger{}
	orch := New(store, orders, charger, nil)

	in := validCardInput("a@b.kz")
	in.CardNumber = "bad"
	_, err := orch.Checkout(context.Background(), in)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, orders.orders, "aucune commande créée avant validation")
	assert.Empty(t, orders.carts)
	assert.Zero(t, charger.charges)
}

func TestCheckoutEmptyCart(t *testing.T) {
	store := cart.NewStore(cart.NewMemoryStorage())
	orch := New(store, newFakeOrderService(), &fakeCharger{}, nil)

	in := Input{
		UserEmail:       "vide@b.kz",
		DeliveryAddress: "12 rue Abay",
		PaymentMethod:   models.PaymentCashOnDelivery,
	}
	_, err := orch.Checkout(context.Background(), in)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutCashOnDeliverySkipsCharge(t *testing.T) {
	store := cart.NewStore(cart.NewMemoryStorage())
	orders := newFakeOrderService()
	charger := &fakeCharger{}
	notifier := &fakeNotifier{}
	orch := New(store, orders, charger, notifier)

	seedCart(t, store, "cash@b.kz")

	result, err := orch.Checkout(context.Background(), Input{
		UserEmail:       "cash@b.kz",
		DeliveryAddress: "12 rue Abay",
		PaymentMethod:   models.PaymentCashOnDelivery,
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusOnDelivery, result.Status)
	assert.Nil(t, result.PaymentID)
	assert.Zero(t, charger.charges, "jamais de débit pour le paiement à la livraison")
	require.Len(t, orders.orders, 1)
	assert.Equal(t, models.StatusOnDelivery, orders.orders[0].Status)

	// panier vidé et client notifié
	items, err := store.Get(context.Background(), "cash@b.kz")
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Len(t, notifier.confirmed, 1)
}

func TestCheckoutCardSuccess(t *testing.T) {
	store := cart.NewStore(cart.NewMemoryStorage())
	orders := newFakeOrderService()
	charger := &fakeCharger{}
	notifier := &fakeNotifier{}
	orch := New(store, orders, charger, notifier)

	seedCart(t, store, "card@b.kz") // 2 × 10.00

	result, err := orch.Checkout(context.Background(), validCardInput("card@b.kz"))
	require.NoError(t, err)

	assert.Equal(t, models.StatusPaid, result.Status)
	require.NotNil(t, result.PaymentID)
	assert.Equal(t, 1, charger.charges)

	// une seule commande, créée en pending puis passée paid
	require.Len(t, orders.orders, 1)
	assert.Equal(t, models.StatusPending, orders.orders[0].Status)
	assert.Equal(t, models.StatusPaid, orders.statusUpdates[result.OrderID])

	// montants : 20.00 + 8.25% = 21.65
	assert.Equal(t, 20.00, result.Totals.Subtotal)
	assert.Equal(t, 1.65, result.Totals.Tax)
	assert.Equal(t, 21.65, result.Totals.Total)
	assert.Equal(t, 21.65, orders.orders[0].TotalPrice)

	items, err := store.Get(context.Background(), "card@b.kz")
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Len(t, notifier.confirmed, 1)
}

func TestCheckoutChargeFailureLeavesOrderPending(t *testing.T) {
	store := cart.NewStore(cart.NewMemoryStorage())
	orders := newFakeOrderService()
	charger := &fakeCharger{fail: true}
	notifier := &fakeNotifier{}
	orch := New(store, orders, charger, notifier)

	seedCart(t, store, "fail@b.kz")

	_, err := orch.Checkout(context.Background(), validCardInput("fail@b.kz"))
	require.ErrorIs(t, err, ErrPaymentFailed)

	// la commande existe mais n'a jamais quitté pending
	require.Len(t, orders.orders, 1)
	assert.Equal(t, models.StatusPending, orders.orders[0].Status)
	assert.Empty(t, orders.statusUpdates)

	// panier intact : le client peut retenter
	items, err := store.Get(context.Background(), "fail@b.kz")
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Empty(t, notifier.confirmed)
}

func TestCheckoutOrderCreationFailure(t *testing.T) {
	store := cart.NewStore(cart.NewMemoryStorage())
	orders := newFakeOrderService()
	orders.failCreate = true
	charger := &fakeCharger{}
	orch := New(store, orders, charger, nil)

	seedCart(t, store, "down@b.kz")

	_, err := orch.Checkout(context.Background(), validCardInput("down@b.kz"))
	require.Error(t, err)
	assert.Zero(t, charger.charges, "pas de débit sans commande")
}
