package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lavibaby/shop/internal/cep"
)

type CEPHandler struct {
	Client *cep.Client
}

// Lookup autofills the profile address form from an 8-digit postal code.
func (h *CEPHandler) Lookup(c echo.Context) error {
	addr, err := h.Client.Lookup(c.Request().Context(), c.Param("cep"))
	if err != nil {
		if errors.Is(err, cep.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "CEP não encontrado")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, addr)
}
