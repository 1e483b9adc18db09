package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lavibaby/shop/internal/cart"
	"github.com/lavibaby/shop/internal/catalog"
	"github.com/lavibaby/shop/internal/events"
)

// GuestCartCookie carries the session key for carts of visitors that have
// not signed in. Login discards the guest cart and switches to the user key.
const GuestCartCookie = "cartSession"

type CartHandler struct {
	Sessions *cart.Sessions
	Catalog  *catalog.Catalog
	Producer *events.Producer
}

func (h *CartHandler) publish(c echo.Context, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.Publish(ctx, events.TopicCart, key, event); err != nil {
		c.Logger().Errorf("event publish error: %v", err)
	}
}

// store resolves the cart for the request: signed-in users get a per-user
// key, anonymous visitors get a guest key issued in a cookie.
func (h *CartHandler) store(c echo.Context) (*cart.Store, string) {
	if userID, err := currentUserID(c); err == nil {
		key := fmt.Sprintf("user-%d", userID)
		return h.Sessions.Get(key), key
	}

	if ck, err := c.Cookie(GuestCartCookie); err == nil && strings.HasPrefix(ck.Value, "guest-") {
		return h.Sessions.Get(ck.Value), ck.Value
	}

	key := cart.GuestKey()
	c.SetCookie(&http.Cookie{
		Name:     GuestCartCookie,
		Value:    key,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return h.Sessions.Get(key), key
}

type cartView struct {
	Items      []cart.Item `json:"items"`
	TotalItems uint        `json:"total_items"`
	Subtotal   float64     `json:"subtotal"`
}

func view(s *cart.Store) cartView {
	return cartView{
		Items:      s.Items(),
		TotalItems: s.TotalItems(),
		Subtotal:   s.Subtotal().InexactFloat64(),
	}
}

func (h *CartHandler) GetCart(c echo.Context) error {
	store, _ := h.store(c)
	return c.JSON(http.StatusOK, view(store))
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	store, key := h.store(c)

	var req struct {
		ProductID int    `json:"product_id"`
		Size      string `json:"size"`
		Quantity  uint   `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	prod, err := h.Catalog.ProductByID(req.ProductID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if prod == nil {
		return echo.NewHTTPError(http.StatusNotFound, "produto não encontrado")
	}
	if !prod.InStock {
		return echo.NewHTTPError(http.StatusConflict, "produto esgotado")
	}

	store.AddToCart(*prod, req.Size, req.Quantity)

	h.publish(c, key, map[string]any{
		"type":      "cart_item_added",
		"session":   key,
		"productID": prod.ID,
		"size":      req.Size,
		"quantity":  req.Quantity,
	})
	return c.JSON(http.StatusOK, view(store))
}

// UpdateQuantity replaces the quantity of the line at :index. The stepper
// floors at 1; removal stays a separate, explicit action.
func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	store, key := h.store(c)

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 || index >= len(store.Items()) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid index")
	}

	var req struct {
		Quantity uint `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	store.UpdateQuantity(index, req.Quantity)

	h.publish(c, key, map[string]any{
		"type":    "cart_quantity_updated",
		"session": key,
		"index":   index,
	})
	return c.JSON(http.StatusOK, view(store))
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	store, key := h.store(c)

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 || index >= len(store.Items()) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid index")
	}

	store.RemoveItem(index)

	h.publish(c, key, map[string]any{
		"type":    "cart_item_removed",
		"session": key,
		"index":   index,
	})
	return c.JSON(http.StatusOK, view(store))
}
