package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alex-shestmincev/mongo-university-final/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// relatedItemsLimit caps the unconditioned sample returned by GetRelatedItems.
const relatedItemsLimit = 4

// AllCategories is the sentinel category label meaning "no category filter".
const AllCategories = "All"

// MongoCatalogRepository owns the shared item collection. Items are seeded
// elsewhere; the only mutation this layer performs is the review append.
type MongoCatalogRepository struct {
	collection *mongo.Collection
}

func NewMongoCatalogRepository(db *mongo.Database) *MongoCatalogRepository {
	return &MongoCatalogRepository{
		collection: db.Collection("item"),
	}
}

// categoryFilter is shared by GetItems and GetNumItems so page contents and
// page math never disagree.
func categoryFilter(category string) bson.M {
	filter := bson.M{}
	if category != "" && category != AllCategories {
		filter["category"] = category
	}
	return filter
}

func textFilter(query string) bson.M {
	return bson.M{"$text": bson.M{"$search": query}}
}

// GetCategories groups the catalog by category in a single aggregation pass
// and prepends the synthetic "All" group carrying the total count.
func (m *MongoCatalogRepository) GetCategories(ctx context.Context) ([]domain.Category, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := m.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to group categories: %w", err)
	}

	var groups []domain.Category
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, fmt.Errorf("failed to decode category groups: %w", err)
	}

	var total int64
	for _, g := range groups {
		total += g.Count
	}

	categories := make([]domain.Category, 0, len(groups)+1)
	categories = append(categories, domain.Category{Label: AllCategories, Count: total})
	categories = append(categories, groups...)

	return categories, nil
}

func (m *MongoCatalogRepository) GetItems(ctx context.Context, category string, page, itemsPerPage int) ([]domain.Item, error) {
	return m.findPage(ctx, categoryFilter(category), page, itemsPerPage)
}

func (m *MongoCatalogRepository) GetNumItems(ctx context.Context, category string) (int64, error) {
	count, err := m.collection.CountDocuments(ctx, categoryFilter(category))
	if err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return count, nil
}

// SearchItems runs a text-index search with the same pagination scheme as
// GetItems. Pages are ordered by item id, not by relevance, so paging stays
// deterministic.
func (m *MongoCatalogRepository) SearchItems(ctx context.Context, query string, page, itemsPerPage int) ([]domain.Item, error) {
	return m.findPage(ctx, textFilter(query), page, itemsPerPage)
}

func (m *MongoCatalogRepository) GetNumSearchItems(ctx context.Context, query string) (int64, error) {
	count, err := m.collection.CountDocuments(ctx, textFilter(query))
	if err != nil {
		return 0, fmt.Errorf("failed to count search results: %w", err)
	}
	return count, nil
}

func (m *MongoCatalogRepository) findPage(ctx context.Context, filter bson.M, page, itemsPerPage int) ([]domain.Item, error) {
	if page < 0 {
		page = 0
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(itemsPerPage * page)).
		SetLimit(int64(itemsPerPage))

	cursor, err := m.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}

	var items []domain.Item
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}

	return items, nil
}

func (m *MongoCatalogRepository) GetItem(ctx context.Context, itemID int) (*domain.Item, error) {
	var item domain.Item

	err := m.collection.FindOne(ctx, bson.M{"_id": itemID}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return &item, nil
}

// GetRelatedItems returns a small sample of the catalog. The sample is not
// conditioned on any subject item; there is no similarity logic behind it.
func (m *MongoCatalogRepository) GetRelatedItems(ctx context.Context) ([]domain.Item, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(relatedItemsLimit)

	cursor, err := m.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query related items: %w", err)
	}

	var items []domain.Item
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode related items: %w", err)
	}

	return items, nil
}

// AddReview appends one review to the item as an atomic array push, so
// concurrent reviews on the same item never overwrite each other.
func (m *MongoCatalogRepository) AddReview(ctx context.Context, itemID int, comment, name string, stars int) (*domain.Item, error) {
	review := domain.Review{
		Name:    name,
		Comment: comment,
		Stars:   stars,
		Date:    time.Now(),
	}

	filter := bson.M{"_id": itemID}
	update := bson.M{"$push": bson.M{"reviews": review}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var item domain.Item
	err := m.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to add review: %w", err)
	}

	return &item, nil
}

func (m *MongoCatalogRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "title", Value: "text"},
				{Key: "slogan", Value: "text"},
				{Key: "description", Value: "text"},
			},
		},
		{
			Keys: bson.D{{Key: "category", Value: 1}},
		},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create item indexes: %w", err)
	}

	return nil
}
