package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/lavibaby/shop/internal/cart"
	"github.com/lavibaby/shop/internal/checkout"
	"github.com/lavibaby/shop/internal/payment"
)

// maxInstallments caps the schedule length; the query param is
// client-controlled.
const maxInstallments = 24

type CheckoutHandler struct {
	Sessions *cart.Sessions
	Service  *checkout.Service
}

// Submit runs the whole checkout step: form validation, payment simulation,
// order placement. Field errors come back as a 422 map so the UI can render
// them inline.
func (h *CheckoutHandler) Submit(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	store := h.Sessions.Get(fmt.Sprintf("user-%d", userID))

	var req struct {
		checkout.Form
		CreditCard *payment.CreditCard `json:"creditCard"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	conf, err := h.Service.Submit(c.Request().Context(), userID, store, req.Form, req.CreditCard)
	if err != nil {
		var fieldErrs checkout.FieldErrors
		if errors.As(err, &fieldErrs) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"errors": fieldErrs})
		}
		if errors.Is(err, checkout.ErrEmptyCart) {
			return echo.NewHTTPError(http.StatusBadRequest, "carrinho vazio")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if !conf.Payment.Success {
		return c.JSON(http.StatusPaymentRequired, conf)
	}
	return c.JSON(http.StatusOK, conf)
}

// Installments exposes the simulator's schedule for the checkout UI.
func (h *CheckoutHandler) Installments(c echo.Context) error {
	amount, err := strconv.ParseFloat(c.QueryParam("amount"), 64)
	if err != nil || amount <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid amount")
	}
	max := 12
	if m := c.QueryParam("max"); m != "" {
		if v, err := strconv.Atoi(m); err == nil && v > 0 {
			max = v
		}
	}
	if max > maxInstallments {
		max = maxInstallments
	}
	return c.JSON(http.StatusOK, payment.Installments(amount, max))
}

func (h *CheckoutHandler) ValidateCard(c echo.Context) error {
	var req struct {
		Number string `json:"number"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{
		"valid": payment.ValidateCreditCard(req.Number),
		"brand": payment.CardBrand(req.Number),
	})
}
