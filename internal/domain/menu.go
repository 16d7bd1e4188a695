package domain

// Menu Model
type Menu struct {
	ID               string `gorm:"primaryKey;size:40"` // Short menu name, doubles as the order token
	Description      string // Shown in listings
	Price            int    `gorm:"not null"` // Integer currency units
	SortOrder        int    `gorm:"not null"` // Display rank in listings
	Enabled          bool   `gorm:"not null;default:true"`  // Disabled items stay listed but are not orderable
	NeedsSteamedMilk bool   `gorm:"not null;default:false"` // Counted for the barista after a draw
}

// Update overwrites the mutable fields from another menu (not ID, not Enabled)
func (m *Menu) Update(update *Menu) {
	m.Description = update.Description
	m.Price = update.Price
	m.SortOrder = update.SortOrder
}
