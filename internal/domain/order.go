package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Surcharge per shot beyond the first, in currency units
const ShotSurcharge = 500

// Option tokens that bump the shot count
var extraShotMarkers = []string{"double", "extrashot"}

// Order Model (active queue). Exactly one active order may exist per user;
// PickedAt == 0 means the lottery has not selected it yet.
type Order struct {
	ID        string `gorm:"primaryKey;size:36"` // Opaque unique token (UUID)
	UserID    string `gorm:"index;size:15"`      // Orderer
	MenuID    string `gorm:"size:40"`            // Menu name at order time
	Options   string // Free-text options
	OrderedAt int64  `gorm:"index"`              // Unix milliseconds
	ShotCount int    `gorm:"not null;default:1"` // At least 1, derived from Options
	Price     int    // Snapshotted at creation, never recomputed
	PickedAt  int64  `gorm:"not null;default:0"` // Unix milliseconds, 0 = not picked
}

// CompletedOrder Model: a terminal, immutable copy of an Order
type CompletedOrder struct {
	ID        string `gorm:"primaryKey;size:36"`
	UserID    string `gorm:"index;size:15"`
	MenuID    string `gorm:"size:40"`
	Options   string
	OrderedAt int64 `gorm:"index"`
	ShotCount int
	Price     int
	PickedAt  int64
}

// NewOrder builds an active order, deriving the shot count from the options text
func NewOrder(userID, menuID, options string, at time.Time) *Order {
	shots := 1
	for _, arg := range strings.Fields(options) {
		for _, marker := range extraShotMarkers {
			if strings.Contains(arg, marker) {
				shots = 2
			}
		}
	}
	return &Order{
		ID:        uuid.NewString(),
		UserID:    userID,
		MenuID:    menuID,
		Options:   options,
		OrderedAt: at.UnixMilli(),
		ShotCount: shots,
	}
}

// IsPicked reports whether the lottery selected this order
func (o *Order) IsPicked() bool {
	return o.PickedAt > 0
}

// DisplayName is the menu name annotated with the shot option
func (o *Order) DisplayName() string {
	if o.ShotCount > 1 {
		return o.MenuID + " (double shot)"
	}
	return o.MenuID
}

// Completed converts an active order into its terminal copy
func Completed(o *Order) *CompletedOrder {
	return &CompletedOrder{
		ID:        o.ID,
		UserID:    o.UserID,
		MenuID:    o.MenuID,
		Options:   o.Options,
		OrderedAt: o.OrderedAt,
		ShotCount: o.ShotCount,
		Price:     o.Price,
		PickedAt:  o.PickedAt,
	}
}
