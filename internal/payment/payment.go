package payment

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	MethodCredit = "credit"
	MethodPix    = "pix"
	MethodBoleto = "boleto"

	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type CustomerAddress struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
}

type CustomerData struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Phone    string          `json:"phone"`
	Document string          `json:"document"`
	Address  CustomerAddress `json:"address"`
}

type CreditCard struct {
	Number      string `json:"number"`
	HolderName  string `json:"holderName"`
	ExpiryMonth string `json:"expiryMonth"`
	ExpiryYear  string `json:"expiryYear"`
	CVV         string `json:"cvv"`
}

// Data is handed to the gateway exactly once per attempt and never mutated.
type Data struct {
	Method       string       `json:"method"`
	Amount       float64      `json:"amount"`
	CustomerData CustomerData `json:"customerData"`
	CreditCard   *CreditCard  `json:"creditCard,omitempty"`
}

type Response struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transactionId,omitempty"`
	PixCode       string `json:"pixCode,omitempty"`
	BoletoURL     string `json:"boletoUrl,omitempty"`
	Error         string `json:"error,omitempty"`
	Status        string `json:"status"`
}

// Gateway stands in for the real payment processor (Mercado Pago/PagSeguro
// shaped). Outcomes are fabricated deterministically from the input; no money
// moves. Failures come back as rejected responses, never as Go errors.
type Gateway struct {
	// Delay models the processor round trip before any result.
	Delay time.Duration
	now   func() time.Time
}

func NewGateway() *Gateway {
	return &Gateway{Delay: 2 * time.Second, now: time.Now}
}

func rejected(msg string) Response {
	return Response{Success: false, Status: StatusRejected, Error: msg}
}

// Process runs one payment attempt to completion. There is no retry and no
// cancellation path once submitted.
func (g *Gateway) Process(ctx context.Context, data Data) Response {
	if g.Delay > 0 {
		time.Sleep(g.Delay)
	}
	now := time.Now
	if g.now != nil {
		now = g.now
	}

	if data.CustomerData.Name == "" || data.CustomerData.Email == "" {
		return rejected("Dados do cliente incompletos")
	}
	if data.Method == MethodCredit && data.CreditCard == nil {
		return rejected("Dados do cartão de crédito são obrigatórios")
	}

	switch data.Method {
	case MethodCredit:
		number := strings.ReplaceAll(data.CreditCard.Number, " ", "")
		// cards ending in 0000 are refused, everything else is approved
		if strings.HasSuffix(number, "0000") {
			return rejected("Cartão recusado pela operadora")
		}
		return Response{
			Success:       true,
			TransactionID: fmt.Sprintf("TXN_%d", now().UnixMilli()),
			Status:        StatusApproved,
		}

	case MethodPix:
		ts := now().UnixMilli()
		pixCode := fmt.Sprintf(
			"00020126580014BR.GOV.BCB.PIX0136%d@lavibaby.com.br5204000053039865802BR5913LAVIBABY LTDA6009SAO PAULO62070503***6304",
			ts,
		)
		return Response{
			Success:       true,
			TransactionID: fmt.Sprintf("PIX_%d", ts),
			PixCode:       pixCode,
			Status:        StatusPending,
		}

	case MethodBoleto:
		ts := now().UnixMilli()
		return Response{
			Success:       true,
			TransactionID: fmt.Sprintf("BOL_%d", ts),
			BoletoURL:     fmt.Sprintf("https://www.exemplo.com/boleto/%d.pdf", ts),
			Status:        StatusPending,
		}

	default:
		return rejected("Método de pagamento não suportado")
	}
}

var cardNumberRx = regexp.MustCompile(`^\d{13,19}$`)

// ValidateCreditCard runs the Luhn checksum over the stripped number. Numbers
// outside 13-19 digits fail outright.
func ValidateCreditCard(cardNumber string) bool {
	number := strings.ReplaceAll(cardNumber, " ", "")
	if !cardNumberRx.MatchString(number) {
		return false
	}

	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		digit := int(number[i] - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}
	return sum%10 == 0
}

var brandPatterns = []struct {
	brand string
	rx    *regexp.Regexp
}{
	{"Visa", regexp.MustCompile(`^4`)},
	{"Mastercard", regexp.MustCompile(`^5[1-5]`)},
	{"American Express", regexp.MustCompile(`^3[47]`)},
	{"Discover", regexp.MustCompile(`^6`)},
	{"Elo", regexp.MustCompile(`^(4011|4312|4389|4514|4573)`)},
}

// CardBrand classifies the stripped number by leading digits, first match in
// the listed order wins.
func CardBrand(cardNumber string) string {
	number := strings.ReplaceAll(cardNumber, " ", "")
	for _, p := range brandPatterns {
		if p.rx.MatchString(number) {
			return p.brand
		}
	}
	return "Desconhecida"
}

type Installment struct {
	Number      int     `json:"number"`
	Amount      float64 `json:"amount"`
	Total       float64 `json:"total"`
	HasInterest bool    `json:"hasInterest"`
	Label       string  `json:"label"`
}

// monthlyRate applies from the 4th installment on, 2.99% a month.
var monthlyRate = decimal.NewFromFloat(0.0299)

// Installments builds the schedule for 1..maxInstallments: the first three
// are interest free, beyond that the per-installment amount grows by
// rate×(n-3).
func Installments(amount float64, maxInstallments int) []Installment {
	if maxInstallments <= 0 {
		maxInstallments = 12
	}

	amt := decimal.NewFromFloat(amount)
	out := make([]Installment, 0, maxInstallments)

	for i := 1; i <= maxInstallments; i++ {
		per := amt.Div(decimal.NewFromInt(int64(i)))
		hasInterest := i > 3
		final := per
		if hasInterest {
			factor := decimal.NewFromInt(1).Add(monthlyRate.Mul(decimal.NewFromInt(int64(i - 3))))
			final = per.Mul(factor)
		}
		total := final.Mul(decimal.NewFromInt(int64(i)))

		var label string
		if i == 1 {
			label = fmt.Sprintf("À vista - R$ %s", brl(amt))
		} else if hasInterest {
			label = fmt.Sprintf("%dx de R$ %s com juros", i, brl(final))
		} else {
			label = fmt.Sprintf("%dx de R$ %s sem juros", i, brl(final))
		}

		out = append(out, Installment{
			Number:      i,
			Amount:      final.InexactFloat64(),
			Total:       total.InexactFloat64(),
			HasInterest: hasInterest,
			Label:       label,
		})
	}
	return out
}

// brl renders a decimal as a Brazilian currency figure ("1234,56").
func brl(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1)
}
