package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alex-shestmincev/mongo-university-final/internal/domain"
	"github.com/alex-shestmincev/mongo-university-final/internal/repository"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/singleflight"
)

var ErrInvalidReview = errors.New("invalid review")

const (
	minReviewStars = 0
	maxReviewStars = 5
)

// CatalogService fronts the catalog repository. Reads go through a circuit
// breaker so a down store fails fast instead of queueing requests, and the
// category aggregation goes through singleflight so concurrent identical
// scans collapse to one.
type CatalogService struct {
	catalog repository.CatalogRepository
	log     *logrus.Logger
	sfg     singleflight.Group
	breaker *gobreaker.CircuitBreaker[any]
}

func NewCatalogService(catalog repository.CatalogRepository, log *logrus.Logger) *CatalogService {
	settings := gobreaker.Settings{
		Name: "catalog-reads",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			// Not-found is an answer, not a store failure
			return err == nil || errors.Is(err, repository.ErrItemNotFound)
		},
	}

	return &CatalogService{
		catalog: catalog,
		log:     log,
		breaker: gobreaker.NewCircuitBreaker[any](settings),
	}
}

func (s *CatalogService) GetCategories(ctx context.Context) ([]domain.Category, error) {
	v, err, _ := s.sfg.Do("categories", func() (interface{}, error) {
		return s.breaker.Execute(func() (any, error) {
			return s.catalog.GetCategories(ctx)
		})
	})
	if err != nil {
		s.log.WithError(err).Error("failed to get categories")
		return nil, err
	}

	return v.([]domain.Category), nil
}

func (s *CatalogService) GetItems(ctx context.Context, category string, page, itemsPerPage int) ([]domain.Item, error) {
	v, err := s.breaker.Execute(func() (any, error) {
		return s.catalog.GetItems(ctx, category, page, itemsPerPage)
	})
	if err != nil {
		return nil, err
	}

	return v.([]domain.Item), nil
}

func (s *CatalogService) GetNumItems(ctx context.Context, category string) (int64, error) {
	v, err := s.breaker.Execute(func() (any, error) {
		return s.catalog.GetNumItems(ctx, category)
	})
	if err != nil {
		return 0, err
	}

	return v.(int64), nil
}

func (s *CatalogService) SearchItems(ctx context.Context, query string, page, itemsPerPage int) ([]domain.Item, error) {
	v, err := s.breaker.Execute(func() (any, error) {
		return s.catalog.SearchItems(ctx, query, page, itemsPerPage)
	})
	if err != nil {
		return nil, err
	}

	return v.([]domain.Item), nil
}

func (s *CatalogService) GetNumSearchItems(ctx context.Context, query string) (int64, error) {
	v, err := s.breaker.Execute(func() (any, error) {
		return s.catalog.GetNumSearchItems(ctx, query)
	})
	if err != nil {
		return 0, err
	}

	return v.(int64), nil
}

func (s *CatalogService) GetItem(ctx context.Context, itemID int) (*domain.Item, error) {
	v, err := s.breaker.Execute(func() (any, error) {
		return s.catalog.GetItem(ctx, itemID)
	})
	if err != nil {
		return nil, err
	}

	return v.(*domain.Item), nil
}

func (s *CatalogService) GetRelatedItems(ctx context.Context) ([]domain.Item, error) {
	v, err := s.breaker.Execute(func() (any, error) {
		return s.catalog.GetRelatedItems(ctx)
	})
	if err != nil {
		return nil, err
	}

	return v.([]domain.Item), nil
}

// AddReview validates the submission and appends it to the item. Writes do
// not go through the breaker; a review append must reach the store or fail
// with the store's own error.
func (s *CatalogService) AddReview(ctx context.Context, itemID int, comment, name string, stars int) (*domain.Item, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidReview)
	}
	if strings.TrimSpace(comment) == "" {
		return nil, fmt.Errorf("%w: comment must not be empty", ErrInvalidReview)
	}
	if stars < minReviewStars || stars > maxReviewStars {
		return nil, fmt.Errorf("%w: stars must be between %d and %d", ErrInvalidReview, minReviewStars, maxReviewStars)
	}

	item, err := s.catalog.AddReview(ctx, itemID, comment, name, stars)
	if err != nil {
		s.log.WithError(err).WithField("item_id", itemID).Error("failed to add review")
		return nil, err
	}

	return item, nil
}
