package checkout

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/lavibaby/shop/internal/cart"
	"github.com/lavibaby/shop/internal/models"
	"github.com/lavibaby/shop/internal/payment"
)

func newTestService(t *testing.T) *Service {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	gw := payment.NewGateway()
	gw.Delay = 0
	s := NewService(db, gw, nil, nil)
	s.Delay = 0
	return s
}

func validForm() Form {
	return Form{
		Name:          "Maria Silva",
		Email:         "maria@example.com",
		Address:       "Rua das Flores, 100",
		City:          "São Paulo",
		Zip:           "01310-100",
		PaymentMethod: "pix",
	}
}

func cartWithItems() *cart.Store {
	s := cart.NewStore()
	s.AddToCart(models.Product{ID: 1, Name: "Vestido Princesa Rosa", Price: 89.90}, "4", 2)
	s.AddToCart(models.Product{ID: 3, Name: "Body Bebê Unicórnio", Price: 39.90}, "P", 1)
	return s
}

func TestValidateFormMissingName(t *testing.T) {
	f := validForm()
	f.Name = ""

	errs := ValidateForm(f)
	require.Equal(t, "Nome é obrigatório.", errs["name"])
	require.Len(t, errs, 1)
}

func TestValidateFormEmail(t *testing.T) {
	f := validForm()
	f.Email = ""
	require.Equal(t, "Email é obrigatório.", ValidateForm(f)["email"])

	f.Email = "not-an-email"
	require.Equal(t, "Email inválido.", ValidateForm(f)["email"])

	// the pattern is deliberately loose
	f.Email = "a@b.c"
	require.Empty(t, ValidateForm(f))
}

func TestValidateFormAllMissing(t *testing.T) {
	errs := ValidateForm(Form{})
	require.Len(t, errs, 5)
	require.Equal(t, "Endereço é obrigatório.", errs["address"])
	require.Equal(t, "Cidade é obrigatória.", errs["city"])
	require.Equal(t, "CEP é obrigatório.", errs["zip"])
}

func TestSubmitEmptyCartIsBlocked(t *testing.T) {
	s := newTestService(t)

	_, err := s.Submit(context.Background(), 1, cart.NewStore(), validForm(), nil)
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestSubmitInvalidFormDoesNotPlaceOrder(t *testing.T) {
	s := newTestService(t)
	store := cartWithItems()

	f := validForm()
	f.Name = ""
	_, err := s.Submit(context.Background(), 1, store, f, nil)

	var fieldErrs FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Contains(t, fieldErrs, "name")

	var count int64
	s.DB.Model(&models.Order{}).Count(&count)
	require.Zero(t, count)
	// cart untouched for correction and resubmit
	require.Equal(t, uint(3), store.TotalItems())
}

func TestSubmitPixPlacesOrderAndClearsCart(t *testing.T) {
	s := newTestService(t)
	store := cartWithItems()

	conf, err := s.Submit(context.Background(), 1, store, validForm(), nil)
	require.NoError(t, err)
	require.NotZero(t, conf.OrderID)
	require.Equal(t, payment.StatusPending, conf.Status)
	require.Equal(t, 219.70, conf.Subtotal)
	require.Equal(t, 25.00, conf.Shipping)
	require.Equal(t, 244.70, conf.Total)
	require.NotEmpty(t, conf.Payment.PixCode)
	require.Len(t, conf.Items, 2)

	require.Empty(t, store.Items())

	var order models.Order
	require.NoError(t, s.DB.First(&order, conf.OrderID).Error)
	require.Equal(t, order.Subtotal+order.Shipping, order.Total)
	require.Equal(t, "pix", order.PaymentMethod)
}

func TestSubmitApprovedCredit(t *testing.T) {
	s := newTestService(t)
	store := cartWithItems()

	f := validForm()
	f.PaymentMethod = "creditCard"
	card := &payment.CreditCard{Number: "4539 1488 0343 6467", HolderName: "MARIA SILVA"}

	conf, err := s.Submit(context.Background(), 1, store, f, card)
	require.NoError(t, err)
	require.Equal(t, payment.StatusApproved, conf.Status)
	require.NotEmpty(t, conf.Payment.TransactionID)
	require.Empty(t, store.Items())
}

func TestSubmitRejectedCardKeepsCart(t *testing.T) {
	s := newTestService(t)
	store := cartWithItems()

	f := validForm()
	f.PaymentMethod = "creditCard"
	card := &payment.CreditCard{Number: "4111 1111 1111 0000"}

	conf, err := s.Submit(context.Background(), 1, store, f, card)
	require.NoError(t, err)
	require.Equal(t, payment.StatusRejected, conf.Status)
	require.Zero(t, conf.OrderID)

	var count int64
	s.DB.Model(&models.Order{}).Count(&count)
	require.Zero(t, count)
	require.Equal(t, uint(3), store.TotalItems())
}
