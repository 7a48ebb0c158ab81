package seed

import (
	"context"
	"fmt"

	"github.com/alex-shestmincev/mongo-university-final/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SampleItems is a small catalog for local development. Seeding is
// idempotent: items are replaced by _id, never duplicated.
func SampleItems() []domain.Item {
	return []domain.Item{
		{
			ID:          1,
			Title:       "Gray Hooded Sweatshirt",
			Description: "The top hooded sweatshirt we offer",
			Slogan:      "Made of 100% cotton",
			Category:    "Apparel",
			ImgURL:      "/img/products/hoodie.jpg",
			Price:       29.99,
		},
		{
			ID:          2,
			Title:       "Green T-Shirt",
			Description: "Classic fit crew neck t-shirt",
			Slogan:      "Soft and breathable",
			Category:    "Apparel",
			ImgURL:      "/img/products/tshirt.jpg",
			Price:       14.99,
		},
		{
			ID:          3,
			Title:       "Stainless Travel Mug",
			Description: "Double-walled 16oz travel mug",
			Slogan:      "Keeps coffee hot for hours",
			Category:    "Kitchen",
			ImgURL:      "/img/products/mug.jpg",
			Price:       18.50,
		},
		{
			ID:          4,
			Title:       "Wireless Mouse",
			Description: "Compact wireless mouse with USB receiver",
			Slogan:      "Point anywhere",
			Category:    "Electronics",
			ImgURL:      "/img/products/mouse.jpg",
			Price:       24.00,
		},
		{
			ID:          5,
			Title:       "Laptop Sticker Pack",
			Description: "A pack of ten assorted vinyl stickers",
			Slogan:      "Decorate everything",
			Category:    "Stickers",
			ImgURL:      "/img/products/stickers.jpg",
			Price:       4.99,
		},
		{
			ID:          6,
			Title:       "Compact Umbrella",
			Description: "Folding umbrella that fits in a backpack",
			Slogan:      "Rain or shine",
			Category:    "Umbrellas",
			ImgURL:      "/img/products/umbrella.jpg",
			Price:       21.75,
		},
		{
			ID:          7,
			Title:       "Spiral Notebook",
			Description: "College-ruled 120 page notebook",
			Slogan:      "Write it down",
			Category:    "Office",
			ImgURL:      "/img/products/notebook.jpg",
			Price:       6.25,
		},
		{
			ID:          8,
			Title:       "Canvas Tote Bag",
			Description: "Heavy duty canvas tote for groceries or gear",
			Slogan:      "Carry more",
			Category:    "Swag",
			ImgURL:      "/img/products/tote.jpg",
			Price:       12.00,
		},
	}
}

// Catalog upserts the sample items into the item collection.
func Catalog(ctx context.Context, db *mongo.Database) error {
	collection := db.Collection("item")
	opts := options.Replace().SetUpsert(true)

	for _, item := range SampleItems() {
		filter := bson.M{"_id": item.ID}
		if _, err := collection.ReplaceOne(ctx, filter, item, opts); err != nil {
			return fmt.Errorf("failed to seed item %d: %w", item.ID, err)
		}
	}

	return nil
}
