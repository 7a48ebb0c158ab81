package service

import (
	"context"
	"errors"
	"time"

	"github.com/alex-shestmincev/mongo-university-final/internal/domain"
	"github.com/alex-shestmincev/mongo-university-final/internal/repository"
	"github.com/sirupsen/logrus"
)

// CartService composes the two repositories for the cart use cases. The
// repositories never call each other; this layer is the only place where a
// cart operation consults the catalog.
type CartService struct {
	carts   repository.CartRepository
	catalog repository.CatalogRepository
	log     *logrus.Logger
}

func NewCartService(carts repository.CartRepository, catalog repository.CatalogRepository, log *logrus.Logger) *CartService {
	return &CartService{
		carts:   carts,
		catalog: catalog,
		log:     log,
	}
}

// GetCart returns the user's cart, or an empty cart for a user who has never
// added anything. Absence of a cart is not an error to the caller.
func (s *CartService) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.carts.GetCart(ctx, userID)
	if errors.Is(err, repository.ErrCartNotFound) {
		now := time.Now()
		return &domain.Cart{
			UserID:    userID,
			Items:     nil,
			CreatedAt: now,
			UpdatedAt: now,
		}, nil
	}
	if err != nil {
		s.log.WithError(err).WithField("user_id", userID).Error("failed to get cart")
		return nil, err
	}

	return cart, nil
}

// AddItem enforces the one-line-per-item policy the repository delegates to
// its caller: an item already in the cart gets its quantity bumped, anything
// else is snapshotted from the catalog and pushed as a new line.
func (s *CartService) AddItem(ctx context.Context, userID string, itemID int) (*domain.Cart, error) {
	line, err := s.carts.ItemInCart(ctx, userID, itemID)
	if err != nil && !errors.Is(err, repository.ErrItemNotInCart) {
		s.log.WithError(err).WithFields(logrus.Fields{
			"user_id": userID,
			"item_id": itemID,
		}).Error("cart line lookup failed")
		return nil, err
	}

	if line != nil {
		return s.carts.UpdateQuantity(ctx, userID, itemID, line.Quantity+1)
	}

	item, err := s.catalog.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	return s.carts.AddItem(ctx, userID, item.Snapshot(1))
}

// UpdateQuantity changes one line's quantity; zero removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, userID string, itemID, quantity int) (*domain.Cart, error) {
	cart, err := s.carts.UpdateQuantity(ctx, userID, itemID, quantity)
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"user_id":  userID,
			"item_id":  itemID,
			"quantity": quantity,
		}).Error("failed to update quantity")
		return nil, err
	}

	return cart, nil
}
