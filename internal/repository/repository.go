package repository

import (
	"context"
	"errors"

	"github.com/alex-shestmincev/mongo-university-final/internal/domain"
)

var (
	ErrCartNotFound  = errors.New("cart not found")
	ErrItemNotInCart = errors.New("item not found in cart")
	ErrItemNotFound  = errors.New("item not found")
)

// CartRepository defines the cart data operations.
// Consumers depend on this interface, not the MongoDB implementation.
type CartRepository interface {
	GetCart(ctx context.Context, userID string) (*domain.Cart, error)
	ItemInCart(ctx context.Context, userID string, itemID int) (*domain.CartItem, error)
	AddItem(ctx context.Context, userID string, item domain.CartItem) (*domain.Cart, error)
	UpdateQuantity(ctx context.Context, userID string, itemID, quantity int) (*domain.Cart, error)
}

// CatalogRepository defines the catalog data operations.
type CatalogRepository interface {
	GetCategories(ctx context.Context) ([]domain.Category, error)
	GetItems(ctx context.Context, category string, page, itemsPerPage int) ([]domain.Item, error)
	GetNumItems(ctx context.Context, category string) (int64, error)
	SearchItems(ctx context.Context, query string, page, itemsPerPage int) ([]domain.Item, error)
	GetNumSearchItems(ctx context.Context, query string) (int64, error)
	GetItem(ctx context.Context, itemID int) (*domain.Item, error)
	GetRelatedItems(ctx context.Context) ([]domain.Item, error)
	AddReview(ctx context.Context, itemID int, comment, name string, stars int) (*domain.Item, error)
}
