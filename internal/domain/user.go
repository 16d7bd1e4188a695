package domain

// User Model
type User struct {
	ID        string `gorm:"primaryKey;size:15"` // Slack user ID, stable external identity
	Name      string // Display name, backfilled from the chat payload
	Deposit   int    `gorm:"not null;default:0"` // Prepaid balance, may go negative (credit owed)
	IsManager bool   `gorm:"not null;default:false"` // Managers run the lottery and edit the menu
}

// Merge folds another user's balance and role into this one
func (u *User) Merge(other *User) {
	u.Deposit += other.Deposit
	u.IsManager = u.IsManager || other.IsManager
}
