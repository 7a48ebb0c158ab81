package service

import (
	"context"
	"sync"

	"github.com/alex-shestmincev/mongo-university-final/internal/domain"
	"github.com/alex-shestmincev/mongo-university-final/internal/repository"
)

type mockCartRepository struct {
	m    sync.Mutex
	cart *domain.Cart
	err  error

	addItemCalls        int
	updateQuantityCalls int
	lastQuantity        int
}

func (m *mockCartRepository) GetCart(context.Context, string) (*domain.Cart, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.cart == nil {
		return nil, repository.ErrCartNotFound
	}
	return m.cart, nil
}

func (m *mockCartRepository) ItemInCart(_ context.Context, _ string, itemID int) (*domain.CartItem, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.cart == nil {
		return nil, repository.ErrItemNotInCart
	}
	for i := range m.cart.Items {
		if m.cart.Items[i].ItemID == itemID {
			return &m.cart.Items[i], nil
		}
	}
	return nil, repository.ErrItemNotInCart
}

func (m *mockCartRepository) AddItem(_ context.Context, userID string, item domain.CartItem) (*domain.Cart, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.addItemCalls++
	if m.err != nil {
		return nil, m.err
	}
	if m.cart == nil {
		m.cart = &domain.Cart{UserID: userID}
	}
	m.cart.Items = append(m.cart.Items, item)
	return m.cart, nil
}

func (m *mockCartRepository) UpdateQuantity(_ context.Context, _ string, itemID, quantity int) (*domain.Cart, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.updateQuantityCalls++
	m.lastQuantity = quantity
	if m.err != nil {
		return nil, m.err
	}
	if m.cart == nil {
		return nil, repository.ErrCartNotFound
	}
	for i := range m.cart.Items {
		if m.cart.Items[i].ItemID == itemID {
			if quantity <= 0 {
				m.cart.Items = append(m.cart.Items[:i], m.cart.Items[i+1:]...)
			} else {
				m.cart.Items[i].Quantity = quantity
			}
			return m.cart, nil
		}
	}
	return nil, repository.ErrItemNotInCart
}

type mockCatalogRepository struct {
	m          sync.Mutex
	items      map[int]domain.Item
	categories []domain.Category
	err        error

	getCategoriesCalls int
	addReviewCalls     int
}

func (m *mockCatalogRepository) GetCategories(context.Context) ([]domain.Category, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.getCategoriesCalls++
	if m.err != nil {
		return nil, m.err
	}
	return m.categories, nil
}

func (m *mockCatalogRepository) GetItems(context.Context, string, int, int) ([]domain.Item, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var items []domain.Item
	for _, item := range m.items {
		items = append(items, item)
	}
	return items, nil
}

func (m *mockCatalogRepository) GetNumItems(context.Context, string) (int64, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	return int64(len(m.items)), nil
}

func (m *mockCatalogRepository) SearchItems(context.Context, string, int, int) ([]domain.Item, error) {
	return m.GetItems(context.Background(), "", 0, 0)
}

func (m *mockCatalogRepository) GetNumSearchItems(context.Context, string) (int64, error) {
	return m.GetNumItems(context.Background(), "")
}

func (m *mockCatalogRepository) GetItem(_ context.Context, itemID int) (*domain.Item, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	item, ok := m.items[itemID]
	if !ok {
		return nil, repository.ErrItemNotFound
	}
	return &item, nil
}

func (m *mockCatalogRepository) GetRelatedItems(ctx context.Context) ([]domain.Item, error) {
	return m.GetItems(ctx, "", 0, 0)
}

func (m *mockCatalogRepository) AddReview(_ context.Context, itemID int, comment, name string, stars int) (*domain.Item, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.addReviewCalls++
	if m.err != nil {
		return nil, m.err
	}
	item, ok := m.items[itemID]
	if !ok {
		return nil, repository.ErrItemNotFound
	}
	item.Reviews = append(item.Reviews, domain.Review{Name: name, Comment: comment, Stars: stars})
	m.items[itemID] = item
	return &item, nil
}
