package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alex-shestmincev/mongo-university-final/internal/domain"
	"github.com/alex-shestmincev/mongo-university-final/internal/repository"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cartAPIMock struct {
	cart *domain.Cart
	err  error

	lastUserID   string
	lastItemID   int
	lastQuantity int
}

func (m *cartAPIMock) GetCart(_ context.Context, userID string) (*domain.Cart, error) {
	m.lastUserID = userID
	if m.err != nil {
		return nil, m.err
	}
	return m.cart, nil
}

func (m *cartAPIMock) AddItem(_ context.Context, userID string, itemID int) (*domain.Cart, error) {
	m.lastUserID = userID
	m.lastItemID = itemID
	if m.err != nil {
		return nil, m.err
	}
	return m.cart, nil
}

func (m *cartAPIMock) UpdateQuantity(_ context.Context, userID string, itemID, quantity int) (*domain.Cart, error) {
	m.lastUserID = userID
	m.lastItemID = itemID
	m.lastQuantity = quantity
	if m.err != nil {
		return nil, m.err
	}
	return m.cart, nil
}

func cartRouter(mock *cartAPIMock) http.Handler {
	h := NewCartHandler(mock, time.Second)
	r := chi.NewRouter()
	r.Get("/api/users/{userID}/cart", h.GetCart)
	r.Post("/api/users/{userID}/cart/items/{itemID}", h.AddItem)
	r.Put("/api/users/{userID}/cart/items/{itemID}", h.UpdateQuantity)
	return r
}

func TestGetCart_Success(t *testing.T) {
	mock := &cartAPIMock{
		cart: &domain.Cart{
			UserID: "user123",
			Items: []domain.CartItem{
				{ItemID: 1, Title: "Gray Hooded Sweatshirt", Quantity: 2},
			},
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/users/user123/cart", nil)
	rec := httptest.NewRecorder()
	cartRouter(mock).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user123", mock.lastUserID)

	var cart domain.Cart
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&cart))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "Gray Hooded Sweatshirt", cart.Items[0].Title)
}

func TestAddItem_Success(t *testing.T) {
	mock := &cartAPIMock{cart: &domain.Cart{UserID: "user123"}}

	req := httptest.NewRequest(http.MethodPost, "/api/users/user123/cart/items/7", nil)
	rec := httptest.NewRecorder()
	cartRouter(mock).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 7, mock.lastItemID)
}

func TestAddItem_BadItemID(t *testing.T) {
	mock := &cartAPIMock{}

	req := httptest.NewRequest(http.MethodPost, "/api/users/user123/cart/items/notanumber", nil)
	rec := httptest.NewRecorder()
	cartRouter(mock).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddItem_UnknownItemMapsTo404(t *testing.T) {
	mock := &cartAPIMock{err: repository.ErrItemNotFound}

	req := httptest.NewRequest(http.MethodPost, "/api/users/user123/cart/items/42", nil)
	rec := httptest.NewRecorder()
	cartRouter(mock).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "item_not_found", resp.Code)
}

func TestUpdateQuantity_Success(t *testing.T) {
	mock := &cartAPIMock{cart: &domain.Cart{UserID: "user123"}}

	body := strings.NewReader(`{"quantity": 3}`)
	req := httptest.NewRequest(http.MethodPut, "/api/users/user123/cart/items/1", body)
	rec := httptest.NewRecorder()
	cartRouter(mock).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, mock.lastQuantity)
}

func TestUpdateQuantity_ZeroAllowed(t *testing.T) {
	mock := &cartAPIMock{cart: &domain.Cart{UserID: "user123"}}

	body := strings.NewReader(`{"quantity": 0}`)
	req := httptest.NewRequest(http.MethodPut, "/api/users/user123/cart/items/1", body)
	rec := httptest.NewRecorder()
	cartRouter(mock).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, mock.lastQuantity)
}

func TestUpdateQuantity_BadBody(t *testing.T) {
	mock := &cartAPIMock{}

	body := strings.NewReader(`{"quantity": `)
	req := httptest.NewRequest(http.MethodPut, "/api/users/user123/cart/items/1", body)
	rec := httptest.NewRecorder()
	cartRouter(mock).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateQuantity_MissingLineMapsTo404(t *testing.T) {
	mock := &cartAPIMock{err: repository.ErrItemNotInCart}

	body := strings.NewReader(`{"quantity": 3}`)
	req := httptest.NewRequest(http.MethodPut, "/api/users/user123/cart/items/1", body)
	rec := httptest.NewRecorder()
	cartRouter(mock).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
