package models

import (
	"fmt"
	"strings"
	"time"
)

// CleaningStatus is the housekeeping state of an apartment.
type CleaningStatus string

const (
	StatusDirty    CleaningStatus = "sale"
	StatusClean    CleaningStatus = "propre"
	StatusVerified CleaningStatus = "verifie"
)

// ParseCleaningStatus validates a housekeeping status.
func ParseCleaningStatus(value string) (CleaningStatus, error) {
	switch CleaningStatus(value) {
	case StatusDirty, StatusClean, StatusVerified:
		return CleaningStatus(value), nil
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, value)
}

// ApartmentStatus is the housekeeping record of one apartment.
type ApartmentStatus struct {
	ID         string         `bson:"_id" json:"id"`
	Number     string         `bson:"numero" json:"number"`
	Building   string         `bson:"batiment,omitempty" json:"building,omitempty"`
	Status     CleaningStatus `bson:"statut" json:"status"`
	ModifiedAt time.Time      `bson:"dateModification" json:"modifiedAt"`
}

// StatusCounts tallies apartments per housekeeping status.
type StatusCounts struct {
	Dirty    int `json:"dirty"`
	Clean    int `json:"clean"`
	Verified int `json:"verified"`
}

// Add counts one apartment in status.
func (c *StatusCounts) Add(status CleaningStatus) {
	switch status {
	case StatusDirty:
		c.Dirty++
	case StatusClean:
		c.Clean++
	case StatusVerified:
		c.Verified++
	}
}

// HousekeepingStats holds status counts overall and per building.
type HousekeepingStats struct {
	All        StatusCounts            `json:"all"`
	ByBuilding map[string]StatusCounts `json:"byBuilding"`
}

// Apartment is an entry of the apartment directory.
type Apartment struct {
	ID        string    `bson:"_id" json:"id"`
	Number    string    `bson:"numero" json:"number"`
	Building  string    `bson:"batiment,omitempty" json:"building,omitempty"`
	CreatedAt time.Time `bson:"dateCreation" json:"createdAt"`
}

// NormalizeApartmentNumber trims and upper-cases an apartment number.
func NormalizeApartmentNumber(number string) string {
	return strings.ToUpper(strings.TrimSpace(number))
}
