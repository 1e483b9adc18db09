package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func addToCart(t *testing.T, env *testEnv, userID uint, productID int, size string, qty uint) *echo.HTTPError {
	payload := map[string]any{"product_id": productID, "size": size, "quantity": qty}
	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/cart", payload)
	asUser(c, userID, "user")

	err := env.Cart.AddToCart(c)
	if err == nil {
		return nil
	}
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	return he
}

func TestAddToCartMergesSameLine(t *testing.T) {
	env := newTestEnv(t)

	require.Nil(t, addToCart(t, env, 1, 1, "4", 2))
	require.Nil(t, addToCart(t, env, 1, 1, "4", 3))
	require.Nil(t, addToCart(t, env, 1, 1, "6", 1))

	store := env.Sessions.Get("user-1")
	items := store.Items()
	require.Len(t, items, 2)
	require.Equal(t, uint(5), items[0].Quantity)
	require.Equal(t, uint(6), store.TotalItems())
}

func TestAddToCartUnknownProduct(t *testing.T) {
	env := newTestEnv(t)

	he := addToCart(t, env, 1, 99, "", 1)
	require.NotNil(t, he)
	require.Equal(t, http.StatusNotFound, he.Code)
}

func TestAddToCartOutOfStock(t *testing.T) {
	env := newTestEnv(t)

	// seed product 3 is out of stock
	he := addToCart(t, env, 1, 3, "P", 1)
	require.NotNil(t, he)
	require.Equal(t, http.StatusConflict, he.Code)
}

func guestCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == GuestCartCookie {
			return ck
		}
	}
	t.Fatal("no guest cart cookie issued")
	return nil
}

func TestGuestGetsCartCookie(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]any{"product_id": 1, "size": "4", "quantity": 2}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/cart", payload)
	require.NoError(t, env.Cart.AddToCart(c))
	require.Equal(t, http.StatusOK, rec.Code)

	ck := guestCookieFrom(t, rec)
	require.True(t, strings.HasPrefix(ck.Value, "guest-"))
	require.Equal(t, uint(2), env.Sessions.Get(ck.Value).TotalItems())
}

func TestGuestCartSurvivesRequests(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]any{"product_id": 1, "size": "4", "quantity": 1}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/cart", payload)
	require.NoError(t, env.Cart.AddToCart(c))
	ck := guestCookieFrom(t, rec)

	rec2, c2 := env.doJSONRequest(http.MethodPost, "/api/v1/cart", payload, ck)
	require.NoError(t, env.Cart.AddToCart(c2))
	require.Equal(t, http.StatusOK, rec2.Code)

	// same line merged, no second cookie issued
	require.Equal(t, uint(2), env.Sessions.Get(ck.Value).TotalItems())
	require.Empty(t, rec2.Result().Cookies())
}

func TestLoginDropsGuestCart(t *testing.T) {
	env := newTestEnv(t)
	env.createUser("maria@example.com", "segredo123", "user")

	payload := map[string]any{"product_id": 1, "size": "4", "quantity": 3}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/cart", payload)
	require.NoError(t, env.Cart.AddToCart(c))
	ck := guestCookieFrom(t, rec)

	login := map[string]any{"email": "maria@example.com", "password": "segredo123"}
	rec2, c2 := env.doJSONRequest(http.MethodPost, "/api/v1/login", login, ck)
	require.NoError(t, env.Auth.Login(c2))
	require.Equal(t, http.StatusOK, rec2.Code)

	// guest session forgotten, cookie expired
	require.Zero(t, env.Sessions.Get(ck.Value).TotalItems())
	dropped := guestCookieFrom(t, rec2)
	require.Empty(t, dropped.Value)
	require.True(t, dropped.Expires.Before(time.Now()))
}

func TestGetCart(t *testing.T) {
	env := newTestEnv(t)
	require.Nil(t, addToCart(t, env, 1, 1, "4", 2))

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/cart", nil)
	asUser(c, 1, "user")
	require.NoError(t, env.Cart.GetCart(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		TotalItems uint    `json:"total_items"`
		Subtotal   float64 `json:"subtotal"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, uint(2), resp.TotalItems)
	require.Equal(t, 179.80, resp.Subtotal)
}

func TestUpdateQuantityClampsToOne(t *testing.T) {
	env := newTestEnv(t)
	require.Nil(t, addToCart(t, env, 1, 1, "4", 5))

	payload := map[string]any{"quantity": 0}
	rec, c := env.doJSONRequest(http.MethodPatch, "/api/v1/cart/0", payload)
	c.SetParamNames("index")
	c.SetParamValues("0")
	asUser(c, 1, "user")
	require.NoError(t, env.Cart.UpdateQuantity(c))
	require.Equal(t, http.StatusOK, rec.Code)

	require.Equal(t, uint(1), env.Sessions.Get("user-1").Items()[0].Quantity)
}

func TestUpdateQuantityBadIndex(t *testing.T) {
	env := newTestEnv(t)
	require.Nil(t, addToCart(t, env, 1, 1, "4", 1))

	payload := map[string]any{"quantity": 2}
	_, c := env.doJSONRequest(http.MethodPatch, "/api/v1/cart/7", payload)
	c.SetParamNames("index")
	c.SetParamValues("7")
	asUser(c, 1, "user")

	err := env.Cart.UpdateQuantity(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusBadRequest, he.Code)
}

func TestRemoveItem(t *testing.T) {
	env := newTestEnv(t)
	require.Nil(t, addToCart(t, env, 1, 1, "4", 1))
	require.Nil(t, addToCart(t, env, 1, 2, "", 1))

	rec, c := env.doJSONRequest(http.MethodDelete, "/api/v1/cart/0", nil)
	c.SetParamNames("index")
	c.SetParamValues("0")
	asUser(c, 1, "user")
	require.NoError(t, env.Cart.RemoveItem(c))
	require.Equal(t, http.StatusOK, rec.Code)

	items := env.Sessions.Get("user-1").Items()
	require.Len(t, items, 1)
	require.Equal(t, 2, items[0].Product.ID)
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	env := newTestEnv(t)
	require.Nil(t, addToCart(t, env, 1, 1, "4", 2))
	require.Nil(t, addToCart(t, env, 2, 2, "", 1))

	require.Equal(t, uint(2), env.Sessions.Get("user-1").TotalItems())
	require.Equal(t, uint(1), env.Sessions.Get("user-2").TotalItems())
}
