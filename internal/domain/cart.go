package domain

import "time"

type Cart struct {
	ID        string     `bson:"_id,omitempty" json:"-"`
	UserID    string     `bson:"user_id" json:"userId"`
	Items     []CartItem `bson:"items" json:"items"`
	CreatedAt time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updatedAt"`
}

// CartItem is one line of a cart: a snapshot of the catalog item taken at the
// moment it was added, plus the quantity. The snapshot is an owned copy, so
// later catalog edits never change lines already in a cart.
type CartItem struct {
	ItemID      int     `bson:"_id" json:"itemId"`
	Title       string  `bson:"title" json:"title"`
	Description string  `bson:"description" json:"description"`
	Slogan      string  `bson:"slogan" json:"slogan"`
	Category    string  `bson:"category" json:"category"`
	ImgURL      string  `bson:"img_url" json:"imgUrl"`
	Price       float64 `bson:"price" json:"price"`
	Stars       int     `bson:"stars" json:"stars"`
	Quantity    int     `bson:"quantity" json:"quantity"`
}
