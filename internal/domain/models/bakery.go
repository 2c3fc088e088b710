package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is an item of the bakery catalogue.
type Product struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Catalogue is the fixed list of products guests can pre-order.
var Catalogue = []Product{
	{ID: "champsaurine", Name: "Champsaurine", Price: decimal.RequireFromString("1.50")},
	{ID: "flute-ancienne", Name: "Flute à l'ancienne", Price: decimal.RequireFromString("1.90")},
	{ID: "pain-cereales", Name: "Pain aux céréales", Price: decimal.RequireFromString("4.00")},
	{ID: "croissant", Name: "Croissant", Price: decimal.RequireFromString("1.50")},
	{ID: "pain-chocolat", Name: "Pain au chocolat", Price: decimal.RequireFromString("1.50")},
}

// FindProduct looks a product up by id.
func FindProduct(id string) (Product, bool) {
	for _, p := range Catalogue {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// OrderLine is a quantity of one product within an order.
type OrderLine struct {
	ProductID string `bson:"produitId" json:"productId"`
	Quantity  int    `bson:"quantite" json:"quantity"`
}

// Order is a bakery pre-order for a given day.
type Order struct {
	ID            string      `bson:"_id" json:"id"`
	Apartment     string      `bson:"numAppartement" json:"apartment"`
	CustomerName  string      `bson:"nomClient,omitempty" json:"customerName,omitempty"`
	Lines         []OrderLine `bson:"produits" json:"lines"`
	OrderDate     time.Time   `bson:"dateCommande" json:"orderDate"`
	Paid          bool        `bson:"paye" json:"paid"`
	PaymentMethod string      `bson:"moyenPaiement,omitempty" json:"paymentMethod,omitempty"`
	Delivered     bool        `bson:"donneAuClient" json:"delivered"`
	CreatedAt     time.Time   `bson:"dateCreation" json:"createdAt"`
	Total         float64     `bson:"total" json:"total"`
}

// OrderUpdate carries the fields of a partial order update; nil means unchanged.
type OrderUpdate struct {
	Apartment    *string     `json:"apartment"`
	CustomerName *string     `json:"customerName"`
	Lines        []OrderLine `json:"lines"`
	OrderDate    *time.Time  `json:"orderDate"`
}

// OrderTotal prices lines against the catalogue; unknown products count for nothing.
func OrderTotal(lines []OrderLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		product, ok := FindProduct(line.ProductID)
		if !ok {
			continue
		}
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total.Round(2)
}
