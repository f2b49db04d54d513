package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tamaq_back_end/internal/cart"
	"tamaq_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartRouter(t *testing.T) (*gin.Engine, *cart.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := cart.NewStore(cart.NewMemoryStorage())
	h := NewCartHandler(store)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("email", "test@tamaq.kz")
	})
	r.GET("/api/cart", h.GetCart)
	r.GET("/api/cart/count", h.CartCount)
	r.POST("/api/cart/add", h.AddToCart)
	r.PUT("/api/cart/quantity", h.UpdateCartQuantity)
	r.DELETE("/api/cart/clear", h.ClearCart)
	r.DELETE("/api/cart/:foodId", h.RemoveFromCart)
	return r, store
}

type cartResponse struct {
	Items  []models.CartLineItem `json:"items"`
	Totals cart.Totals           `json:"totals"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, cartResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp cartResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func TestCartGetEmpty(t *testing.T) {
	r, _ := newCartRouter(t)

	w, resp := doJSON(t, r, http.MethodGet, "/api/cart", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, resp.Items)
	assert.Equal(t, 0.0, resp.Totals.Total)
}

func TestCartAddAndTotals(t *testing.T) {
	r, _ := newCartRouter(t)

	w, _ := doJSON(t, r, http.MethodPost, "/api/cart/add",
		`{"id":"f1","name":"Plov","price":10.0}`)
	require.Equal(t, http.StatusOK, w.Code)

	w, resp := doJSON(t, r, http.MethodPost, "/api/cart/add",
		`{"id":"f1","name":"Plov","price":10.0}`)
	require.Equal(t, http.StatusOK, w.Code)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, 2, resp.Items[0].Quantity)
	assert.Equal(t, 20.00, resp.Totals.Subtotal)
	assert.Equal(t, 1.65, resp.Totals.Tax)
	assert.Equal(t, 21.65, resp.Totals.Total)
}

func TestCartAddRejectsMissingFields(t *testing.T) {
	r, _ := newCartRouter(t)

	w, _ := doJSON(t, r, http.MethodPost, "/api/cart/add", `{"price":10.0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartQuantityZeroRemovesLine(t *testing.T) {
	r, _ := newCartRouter(t)

	doJSON(t, r, http.MethodPost, "/api/cart/add", `{"id":"f1","name":"Plov","price":10.0}`)

	w, resp := doJSON(t, r, http.MethodPut, "/api/cart/quantity", `{"id":"f1","quantity":0}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, resp.Items)
}

func TestCartRemoveAndCount(t *testing.T) {
	r, _ := newCartRouter(t)

	doJSON(t, r, http.MethodPost, "/api/cart/add", `{"id":"f1","name":"Plov","price":10.0}`)
	doJSON(t, r, http.MethodPost, "/api/cart/add", `{"id":"f2","name":"Manty","price":6.0}`)
	doJSON(t, r, http.MethodPost, "/api/cart/add", `{"id":"f2","name":"Manty","price":6.0}`)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/cart/count", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var count struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &count))
	assert.Equal(t, 3, count.Count)

	wr, resp := doJSON(t, r, http.MethodDelete, "/api/cart/f2", "")
	require.Equal(t, http.StatusOK, wr.Code)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "f1", resp.Items[0].FoodID)
}

func TestCartClear(t *testing.T) {
	r, store := newCartRouter(t)

	doJSON(t, r, http.MethodPost, "/api/cart/add", `{"id":"f1","name":"Plov","price":10.0}`)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/cart/clear", nil))
	require.Equal(t, http.StatusOK, w.Code)

	items, err := store.Get(httptest.NewRequest(http.MethodGet, "/", nil).Context(), "test@tamaq.kz")
	require.NoError(t, err)
	assert.Empty(t, items)
}
