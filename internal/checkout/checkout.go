package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lavibaby/shop/internal/cart"
	"github.com/lavibaby/shop/internal/events"
	"github.com/lavibaby/shop/internal/models"
	"github.com/lavibaby/shop/internal/payment"
)

// ShippingFee is the flat delivery fee added to every order.
const ShippingFee = 25.00

var ErrEmptyCart = errors.New("carrinho vazio")

// FieldErrors maps form field names to user-facing messages. It blocks
// submission entirely; there is no partial submit.
type FieldErrors map[string]string

func (e FieldErrors) Error() string { return "dados do formulário inválidos" }

type Form struct {
	Name          string `json:"name"          validate:"required"`
	Email         string `json:"email"         validate:"required,loose_email"`
	Address       string `json:"address"       validate:"required"`
	City          string `json:"city"          validate:"required"`
	Zip           string `json:"zip"           validate:"required"`
	PaymentMethod string `json:"paymentMethod"`
}

// The original form validated email with a deliberately permissive pattern;
// kept as-is rather than silently tightened.
var looseEmailRx = regexp.MustCompile(`^\S+@\S+\.\S+$`)

var validate = func() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("loose_email", func(fl validator.FieldLevel) bool {
		return looseEmailRx.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}()

var fieldMessages = map[string]map[string]string{
	"Name":    {"required": "Nome é obrigatório."},
	"Email":   {"required": "Email é obrigatório.", "loose_email": "Email inválido."},
	"Address": {"required": "Endereço é obrigatório."},
	"City":    {"required": "Cidade é obrigatória."},
	"Zip":     {"required": "CEP é obrigatório."},
}

var fieldNames = map[string]string{
	"Name":    "name",
	"Email":   "email",
	"Address": "address",
	"City":    "city",
	"Zip":     "zip",
}

// ValidateForm returns one message per failing field, empty when the form can
// be submitted.
func ValidateForm(f Form) FieldErrors {
	errs := FieldErrors{}
	err := validate.Struct(f)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs["form"] = "dados do formulário inválidos"
		return errs
	}
	for _, fe := range verrs {
		name := fieldNames[fe.StructField()]
		if name == "" {
			name = fe.StructField()
		}
		if _, dup := errs[name]; dup {
			continue
		}
		if msg := fieldMessages[fe.StructField()][fe.Tag()]; msg != "" {
			errs[name] = msg
		} else {
			errs[name] = "Campo inválido."
		}
	}
	return errs
}

// Service drives the checkout step: validates the form, totals the cart,
// runs the simulated payment and persists the order.
type Service struct {
	DB       *gorm.DB
	Gateway  *payment.Gateway
	Producer *events.Producer
	Log      *slog.Logger

	// Delay models the order-placement round trip the UI waits on.
	Delay time.Duration
}

func NewService(db *gorm.DB, gw *payment.Gateway, prod *events.Producer, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		DB:       db,
		Gateway:  gw,
		Producer: prod,
		Log:      log,
		Delay:    1500 * time.Millisecond,
	}
}

type Confirmation struct {
	OrderID  uint               `json:"order_id"`
	Status   string             `json:"status"`
	Subtotal float64            `json:"subtotal"`
	Shipping float64            `json:"shipping"`
	Total    float64            `json:"total"`
	Payment  payment.Response   `json:"payment"`
	Items    []models.OrderItem `json:"items"`
}

// formMethod values come from the checkout form select; the gateway speaks
// the shorter method keys.
func gatewayMethod(formMethod string) string {
	switch formMethod {
	case "creditCard", payment.MethodCredit:
		return payment.MethodCredit
	case payment.MethodPix:
		return payment.MethodPix
	case "boletoBancario", payment.MethodBoleto:
		return payment.MethodBoleto
	default:
		return formMethod
	}
}

// Submit runs one checkout attempt. The cart is cleared only after the order
// is confirmed; a rejected payment leaves it untouched for another try.
func (s *Service) Submit(ctx context.Context, userID uint, store *cart.Store, form Form, card *payment.CreditCard) (*Confirmation, error) {
	items := store.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	if errs := ValidateForm(form); len(errs) > 0 {
		return nil, errs
	}

	subtotal := store.Subtotal()
	shipping := decimal.NewFromFloat(ShippingFee)
	total := subtotal.Add(shipping)

	resp := s.Gateway.Process(ctx, payment.Data{
		Method: gatewayMethod(form.PaymentMethod),
		Amount: total.InexactFloat64(),
		CustomerData: payment.CustomerData{
			Name:  form.Name,
			Email: form.Email,
			Address: payment.CustomerAddress{
				Street:  form.Address,
				City:    form.City,
				ZipCode: form.Zip,
			},
		},
		CreditCard: card,
	})

	conf := &Confirmation{
		Status:   resp.Status,
		Subtotal: subtotal.InexactFloat64(),
		Shipping: shipping.InexactFloat64(),
		Total:    total.InexactFloat64(),
		Payment:  resp,
	}
	if !resp.Success {
		return conf, nil
	}

	var (
		order      models.Order
		orderItems []models.OrderItem
	)
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		order = models.Order{
			UserID:        userID,
			Name:          form.Name,
			Email:         form.Email,
			Address:       form.Address,
			City:          form.City,
			Zip:           form.Zip,
			PaymentMethod: gatewayMethod(form.PaymentMethod),
			Subtotal:      conf.Subtotal,
			Shipping:      conf.Shipping,
			Total:         conf.Total,
			Status:        resp.Status,
			TransactionID: resp.TransactionID,
			CreatedAt:     time.Now().Unix(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		orderItems = make([]models.OrderItem, 0, len(items))
		for _, it := range items {
			oi := models.OrderItem{
				OrderID:   order.ID,
				ProductID: it.Product.ID,
				Name:      it.Product.Name,
				Size:      it.Size,
				Price:     it.Product.Price,
				Quantity:  it.Quantity,
			}
			if err := tx.Create(&oi).Error; err != nil {
				return err
			}
			orderItems = append(orderItems, oi)
		}
		return nil
	})
	if txErr != nil {
		return nil, fmt.Errorf("order placement: %w", txErr)
	}

	if s.Delay > 0 {
		time.Sleep(s.Delay)
	}

	store.Clear()
	conf.OrderID = order.ID
	conf.Items = orderItems

	if err := s.Producer.Publish(ctx, events.TopicOrders, fmt.Sprint(userID), map[string]any{
		"type":    "order_created",
		"userID":  userID,
		"orderID": order.ID,
		"total":   order.Total,
		"status":  order.Status,
		"txn":     order.TransactionID,
		"items":   len(orderItems),
	}); err != nil {
		s.Log.Error("order event publish failed", "err", err)
	}

	return conf, nil
}
