package domain

import "time"

type Item struct {
	ID          int      `bson:"_id" json:"id"`
	Title       string   `bson:"title" json:"title"`
	Description string   `bson:"description" json:"description"`
	Slogan      string   `bson:"slogan" json:"slogan"`
	Category    string   `bson:"category" json:"category"`
	ImgURL      string   `bson:"img_url" json:"imgUrl"`
	Price       float64  `bson:"price" json:"price"`
	Stars       int      `bson:"stars" json:"stars"`
	Reviews     []Review `bson:"reviews" json:"reviews"`
}

type Review struct {
	Name    string    `bson:"name" json:"name"`
	Comment string    `bson:"comment" json:"comment"`
	Stars   int       `bson:"stars" json:"stars"`
	Date    time.Time `bson:"date" json:"date"`
}

// Category is one group of the derived category listing. There is no category
// collection; groups are computed from the items themselves.
type Category struct {
	Label string `bson:"_id" json:"label"`
	Count int64  `bson:"count" json:"count"`
}

// Snapshot copies the item's catalog fields into a new cart line.
func (i *Item) Snapshot(quantity int) CartItem {
	return CartItem{
		ItemID:      i.ID,
		Title:       i.Title,
		Description: i.Description,
		Slogan:      i.Slogan,
		Category:    i.Category,
		ImgURL:      i.ImgURL,
		Price:       i.Price,
		Stars:       i.Stars,
		Quantity:    quantity,
	}
}
