package domain

// WalletHistory Model: append-only audit trail of deposit changes.
// Only top-ups are journaled; completion debits intentionally are not.
type WalletHistory struct {
	ID     uint   `gorm:"primaryKey"`    // Primary key
	UserID string `gorm:"index;size:15"` // Owner of the balance change
	Amount int    //                        Signed delta
	At     int64  //                        Unix milliseconds
}
