package mongodb

import (
	"time"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
)

type productDoc struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	Price       float64   `bson:"price"`
	Brand       string    `bson:"brand"`
	Description string    `bson:"description"`
	CategoryID  *string   `bson:"category_id"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func toProductDoc(p catalog.Product) productDoc {
	return productDoc(p)
}

func (d productDoc) model() catalog.Product {
	return catalog.Product(d)
}

type categoryDoc struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type lineItemDoc struct {
	ProductID      string  `bson:"product_id"`
	Quantity       int     `bson:"quantity"`
	TotalItemPrice float64 `bson:"total_item_price"`
}

type cartDoc struct {
	ID         string        `bson:"_id"`
	Products   []lineItemDoc `bson:"products"`
	TotalPrice float64       `bson:"total_price"`
	Version    int64         `bson:"version"`
	CreatedAt  time.Time     `bson:"created_at"`
	UpdatedAt  time.Time     `bson:"updated_at"`
}

func toLineItemDocs(items []cart.LineItem) []lineItemDoc {
	docs := make([]lineItemDoc, 0, len(items))
	for _, it := range items {
		docs = append(docs, lineItemDoc(it))
	}
	return docs
}

func (d cartDoc) model() cart.Cart {
	items := make([]cart.LineItem, 0, len(d.Products))
	for _, it := range d.Products {
		items = append(items, cart.LineItem(it))
	}
	return cart.Cart{
		ID:         d.ID,
		Products:   items,
		TotalPrice: d.TotalPrice,
		Version:    d.Version,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}
