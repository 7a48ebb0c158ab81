package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alex-shestmincev/mongo-university-final/internal/domain"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCartRepository owns the per-user cart documents. Every mutation is a
// single atomic document operation so that concurrent writers on the same cart
// are serialized by the store, never by a read-then-write in this process.
type MongoCartRepository struct {
	collection *mongo.Collection
	log        *logrus.Logger
}

func NewMongoCartRepository(db *mongo.Database, log *logrus.Logger) *MongoCartRepository {
	return &MongoCartRepository{
		collection: db.Collection("cart"),
		log:        log,
	}
}

func (m *MongoCartRepository) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	var cart domain.Cart

	filter := bson.M{"user_id": userID}
	err := m.collection.FindOne(ctx, filter).Decode(&cart)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	return &cart, nil
}

// ItemInCart returns the cart line for one item in one user's cart without
// loading the whole cart. More than one matching line is a consistency
// anomaly; it is logged and the first match wins.
func (m *MongoCartRepository) ItemInCart(ctx context.Context, userID string, itemID int) (*domain.CartItem, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "user_id", Value: userID}}}},
		{{Key: "$unwind", Value: "$items"}},
		{{Key: "$match", Value: bson.D{{Key: "items._id", Value: itemID}}}},
	}

	cursor, err := m.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to look up cart item: %w", err)
	}

	var lines []struct {
		Items domain.CartItem `bson:"items"`
	}
	if err := cursor.All(ctx, &lines); err != nil {
		return nil, fmt.Errorf("failed to decode cart item lookup: %w", err)
	}

	if len(lines) == 0 {
		return nil, ErrItemNotInCart
	}
	if len(lines) > 1 {
		m.log.WithFields(logrus.Fields{
			"user_id": userID,
			"item_id": itemID,
			"matches": len(lines),
		}).Error("cart has duplicate lines for one item, returning the first")
	}

	return &lines[0].Items, nil
}

// AddItem pushes the line onto the user's cart, creating the cart in the same
// atomic operation when the user has none yet. The caller is responsible for
// not adding an item that is already in the cart.
func (m *MongoCartRepository) AddItem(ctx context.Context, userID string, item domain.CartItem) (*domain.Cart, error) {
	now := time.Now()

	filter := bson.M{"user_id": userID}
	update := bson.M{
		"$push":        bson.M{"items": item},
		"$set":         bson.M{"updated_at": now},
		"$setOnInsert": bson.M{"created_at": now},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var cart domain.Cart
	if err := m.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&cart); err != nil {
		return nil, fmt.Errorf("failed to add item to cart: %w", err)
	}

	return &cart, nil
}

// UpdateQuantity sets the quantity on exactly one line, or removes the line
// when quantity is zero or less. Both branches are one FindOneAndUpdate.
func (m *MongoCartRepository) UpdateQuantity(ctx context.Context, userID string, itemID, quantity int) (*domain.Cart, error) {
	var (
		filter  bson.M
		update  bson.M
		missing error
	)

	if quantity <= 0 {
		filter = bson.M{"user_id": userID}
		update = bson.M{
			"$pull": bson.M{"items": bson.M{"_id": itemID}},
			"$set":  bson.M{"updated_at": time.Now()},
		}
		missing = ErrCartNotFound
	} else {
		filter = bson.M{"user_id": userID, "items._id": itemID}
		update = bson.M{
			"$set": bson.M{
				"items.$.quantity": quantity,
				"updated_at":       time.Now(),
			},
		}
		missing = ErrItemNotInCart
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var cart domain.Cart
	err := m.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, missing
		}
		return nil, fmt.Errorf("failed to update item quantity: %w", err)
	}

	return &cart, nil
}

func (m *MongoCartRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create cart indexes: %w", err)
	}

	return nil
}
