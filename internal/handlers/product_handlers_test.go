package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/lavibaby/shop/internal/models"
)

func TestGetProducts(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/products", nil)
	require.NoError(t, env.Prod.GetProducts(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []models.Product `json:"data"`
		Meta map[string]any   `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 6)
	require.Equal(t, float64(6), resp.Meta["total"])
}

func TestGetProductsByCategory(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/products?category=Meninos", nil)
	require.NoError(t, env.Prod.GetProducts(c))

	var resp struct {
		Data []models.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	for _, p := range resp.Data {
		require.Equal(t, "meninos", p.Category)
	}
}

func TestGetProductsPagination(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/products?page=2&size=4", nil)
	require.NoError(t, env.Prod.GetProducts(c))

	var resp struct {
		Data []models.Product `json:"data"`
		Meta map[string]any   `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	require.Equal(t, true, resp.Meta["has_prev"])
	require.Equal(t, false, resp.Meta["has_next"])
}

func TestGetProduct(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodGet, "/api/v1/products/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.Prod.GetProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var p models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	require.Equal(t, "Vestido Princesa Rosa", p.Name)
	require.True(t, p.HasDiscount())
}

func TestGetProductNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodGet, "/api/v1/products/99", nil)
	c.SetParamNames("id")
	c.SetParamValues("99")

	err := env.Prod.GetProduct(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusNotFound, he.Code)
}

func TestCreateProduct(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]any{
		"name":     "Sapatinho Tricô",
		"price":    19.90,
		"category": "bebes",
		"inStock":  true,
		"sizes":    []string{"RN", "P"},
	}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/admin/products", payload)
	require.NoError(t, env.Prod.CreateProduct(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var p models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	require.Equal(t, 7, p.ID)
	require.Equal(t, []string{"RN", "P"}, p.Sizes)
}

func TestCreateProductRejectsNegativePrice(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]any{"name": "Meia", "price": -1}
	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/admin/products", payload)

	err := env.Prod.CreateProduct(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusBadRequest, he.Code)
}

func TestPatchProduct(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]any{"price": 59.90, "inStock": true}
	rec, c := env.doJSONRequest(http.MethodPatch, "/api/v1/admin/products/3", payload)
	c.SetParamNames("id")
	c.SetParamValues("3")
	require.NoError(t, env.Prod.PatchProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var p models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	require.Equal(t, 59.90, p.Price)
	require.True(t, p.InStock)
	require.Equal(t, "Body Bebê Unicórnio", p.Name)
}

func TestPatchProductNotFound(t *testing.T) {
	env := newTestEnv(t)

	payload := map[string]any{"price": 1.0}
	_, c := env.doJSONRequest(http.MethodPatch, "/api/v1/admin/products/99", payload)
	c.SetParamNames("id")
	c.SetParamValues("99")

	err := env.Prod.PatchProduct(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusNotFound, he.Code)
}

func TestDeleteProduct(t *testing.T) {
	env := newTestEnv(t)

	rec, c := env.doJSONRequest(http.MethodDelete, "/api/v1/admin/products/6", nil)
	c.SetParamNames("id")
	c.SetParamValues("6")
	require.NoError(t, env.Prod.DeleteProduct(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	require.Len(t, env.Catalog.Products(), 5)

	// unknown id leaves the catalog unchanged
	_, c = env.doJSONRequest(http.MethodDelete, "/api/v1/admin/products/99", nil)
	c.SetParamNames("id")
	c.SetParamValues("99")
	require.NoError(t, env.Prod.DeleteProduct(c))
	require.Len(t, env.Catalog.Products(), 5)
}
