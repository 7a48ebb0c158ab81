package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/alex-shestmincev/mongo-university-final/internal/domain"
	"github.com/go-chi/chi/v5"
)

const (
	defaultItemsPerPage = 10
	maxItemsPerPage     = 100
)

// CatalogAPI is what the catalog routes need from the service layer.
type CatalogAPI interface {
	GetCategories(ctx context.Context) ([]domain.Category, error)
	GetItems(ctx context.Context, category string, page, itemsPerPage int) ([]domain.Item, error)
	GetNumItems(ctx context.Context, category string) (int64, error)
	SearchItems(ctx context.Context, query string, page, itemsPerPage int) ([]domain.Item, error)
	GetNumSearchItems(ctx context.Context, query string) (int64, error)
	GetItem(ctx context.Context, itemID int) (*domain.Item, error)
	GetRelatedItems(ctx context.Context) ([]domain.Item, error)
	AddReview(ctx context.Context, itemID int, comment, name string, stars int) (*domain.Item, error)
}

type CatalogHandler struct {
	catalog CatalogAPI
	timeout time.Duration
}

func NewCatalogHandler(catalog CatalogAPI, timeout time.Duration) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		timeout: timeout,
	}
}

type ItemsPageDTO struct {
	Items        []domain.Item `json:"items"`
	Total        int64         `json:"total"`
	Page         int           `json:"page"`
	ItemsPerPage int           `json:"itemsPerPage"`
}

type ItemDetailDTO struct {
	Item    *domain.Item  `json:"item"`
	Related []domain.Item `json:"related"`
}

type AddReviewRequestDTO struct {
	Name    string `json:"name"`
	Comment string `json:"comment"`
	Stars   int    `json:"stars"`
}

func (h *CatalogHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	categories, err := h.catalog.GetCategories(ctx)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, categories)
}

func (h *CatalogHandler) GetItems(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	category := r.URL.Query().Get("category")
	page, itemsPerPage := paginationParams(r)

	items, err := h.catalog.GetItems(ctx, category, page, itemsPerPage)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	total, err := h.catalog.GetNumItems(ctx, category)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ItemsPageDTO{
		Items:        items,
		Total:        total,
		Page:         page,
		ItemsPerPage: itemsPerPage,
	})
}

func (h *CatalogHandler) SearchItems(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	query := r.URL.Query().Get("query")
	if query == "" {
		respondError(w, http.StatusBadRequest, "missing_query", "query must not be empty")
		return
	}
	page, itemsPerPage := paginationParams(r)

	items, err := h.catalog.SearchItems(ctx, query, page, itemsPerPage)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	total, err := h.catalog.GetNumSearchItems(ctx, query)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ItemsPageDTO{
		Items:        items,
		Total:        total,
		Page:         page,
		ItemsPerPage: itemsPerPage,
	})
}

func (h *CatalogHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	itemID, err := strconv.Atoi(chi.URLParam(r, "itemID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "itemID must be an integer")
		return
	}

	item, err := h.catalog.GetItem(ctx, itemID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	// Related items are best effort; the item page still renders without them
	related, err := h.catalog.GetRelatedItems(ctx)
	if err != nil {
		log.Printf("failed to get related items: %v", err)
		related = nil
	}

	respondJSON(w, http.StatusOK, ItemDetailDTO{
		Item:    item,
		Related: related,
	})
}

func (h *CatalogHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	itemID, err := strconv.Atoi(chi.URLParam(r, "itemID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_item_id", "itemID must be an integer")
		return
	}

	var req AddReviewRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	item, err := h.catalog.AddReview(ctx, itemID, req.Comment, req.Name, req.Stars)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, item)
}

func paginationParams(r *http.Request) (page, itemsPerPage int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 0 {
		page = 0
	}

	itemsPerPage, err := strconv.Atoi(r.URL.Query().Get("itemsPerPage"))
	if err != nil || itemsPerPage <= 0 {
		itemsPerPage = defaultItemsPerPage
	}
	if itemsPerPage > maxItemsPerPage {
		itemsPerPage = maxItemsPerPage
	}

	return page, itemsPerPage
}
