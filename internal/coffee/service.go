package coffee

import (
	"time"

	"gorm.io/gorm"
)

// SessionWindow is the trailing look-back interval that defines "today's
// round": queue listing, lottery and completion only consider orders whose
// OrderedAt falls in (at - SessionWindow, at].
const SessionWindow = 6 * time.Hour

// Service owns the order/lottery/ledger core. Every externally-triggered
// mutating operation runs inside exactly one gorm transaction (one incoming
// command = one unit of work); read-only operations query the handle directly.
type Service struct {
	db *gorm.DB
}

// New creates a Service on top of a gorm handle
func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

// sessionStart is the exclusive lower bound of the session containing at
func sessionStart(at time.Time) int64 {
	return at.Add(-SessionWindow).UnixMilli()
}
