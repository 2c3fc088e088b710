package models

import "time"

// DailyReport is the end-of-day operations snapshot stored in MongoDB.
type DailyReport struct {
	Date         time.Time                 `bson:"date" json:"date"`
	Stock        StockItem                 `bson:"stock" json:"stock"`
	Kits         KitsStock                 `bson:"kits" json:"kits"`
	MaxKits      MaxKits                   `bson:"max_kits" json:"max_kits"`
	Parking      map[Building]ParkingStats `bson:"parking" json:"parking"`
	BakeryOrders int                       `bson:"bakery_orders" json:"bakery_orders"`
	BakeryAmount float64                   `bson:"bakery_amount" json:"bakery_amount"`
	Housekeeping StatusCounts              `bson:"housekeeping" json:"housekeeping"`
	CreatedAt    time.Time                 `bson:"created_at" json:"created_at"`
}
