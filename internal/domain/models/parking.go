package models

import (
	"fmt"
	"time"
)

// Building names one of the residence buildings.
type Building string

const (
	BuildingCimes  Building = "Cimes"
	BuildingVallon Building = "Vallon"
)

// Buildings lists every building with a car park.
var Buildings = []Building{BuildingCimes, BuildingVallon}

// ParseBuilding validates a building name.
func ParseBuilding(value string) (Building, error) {
	switch Building(value) {
	case BuildingCimes, BuildingVallon:
		return Building(value), nil
	}
	return "", fmt.Errorf("%w: unknown building %q", ErrInvalidInput, value)
}

// ParkingClient is a guest holding, or having reserved, a parking space.
type ParkingClient struct {
	ID            string     `bson:"_id" json:"id"`
	Name          string     `bson:"nom" json:"name"`
	Apartment     string     `bson:"numAppartement,omitempty" json:"apartment,omitempty"`
	Plate         string     `bson:"plaqueImmatriculation" json:"plate"`
	VehicleModel  string     `bson:"modeleVehicule" json:"vehicleModel"`
	Paid          bool       `bson:"paye" json:"paid"`
	StartDate     time.Time  `bson:"dateDebut" json:"startDate"`
	EndDate       *time.Time `bson:"dateFin,omitempty" json:"endDate,omitempty"`
	Building      Building   `bson:"batiment" json:"building"`
	IsReservation bool       `bson:"estReservation" json:"isReservation"`
	Confirmed     bool       `bson:"confirme" json:"confirmed"`
}

// ParkingClientUpdate carries the fields of a partial client update; nil means unchanged.
type ParkingClientUpdate struct {
	Name         *string    `json:"name"`
	Apartment    *string    `json:"apartment"`
	Plate        *string    `json:"plate"`
	VehicleModel *string    `json:"vehicleModel"`
	Paid         *bool      `json:"paid"`
	StartDate    *time.Time `json:"startDate"`
	EndDate      *time.Time `json:"endDate"`
	ClearEndDate bool       `json:"clearEndDate"`
}

// ParkingStats summarizes occupancy of one building on one day.
type ParkingStats struct {
	TotalSpaces int `bson:"total_spaces" json:"totalSpaces"`
	UsedSpaces  int `bson:"used_spaces" json:"usedSpaces"`
	FreeSpaces  int `bson:"free_spaces" json:"freeSpaces"`
	PercentUsed int `bson:"percent_used" json:"percentUsed"`
}
