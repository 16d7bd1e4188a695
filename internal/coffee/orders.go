package coffee

import (
	"errors"
	"strings"
	"time"

	"coffee_bot/internal/domain"

	"gorm.io/gorm"
)

// PlacedOrder is the outcome of PlaceOrder
type PlacedOrder struct {
	Order      *domain.Order
	Replaced   bool // a prior active order was cancelled by this placement
	Additional bool // the session's lottery already ran; this is a late order
}

// PlaceOrder places an order for userID at the given instant. Empty text
// repeats the user's most recent completed order; otherwise text is
// "menu [options...]". Any existing active order is replaced.
func (s *Service) PlaceOrder(userID, text string, at time.Time) (*PlacedOrder, error) {
	var placed *PlacedOrder
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		placed, err = placeOrder(tx, userID, text, at)
		return err
	})
	if err != nil {
		return nil, err
	}
	return placed, nil
}

func placeOrder(tx *gorm.DB, userID, text string, at time.Time) (*PlacedOrder, error) {
	text = strings.TrimSpace(text)

	var order *domain.Order
	if text == "" {
		// Repeat the most recent completed order
		var last domain.CompletedOrder
		err := tx.Where("user_id = ?", userID).
			Order("ordered_at desc").
			First(&last).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoPriorOrder
		} else if err != nil {
			return nil, err
		}
		menu, err := findMenu(tx, last.MenuID)
		if err != nil {
			return nil, err
		}
		order = domain.NewOrder(userID, menu.ID, last.Options, at)
		order.Price = menu.Price + (order.ShotCount-1)*domain.ShotSurcharge
	} else {
		menuName, options := text, ""
		if i := strings.Index(text, " "); i > 0 {
			menuName, options = text[:i], strings.TrimSpace(text[i+1:])
		}
		menu, err := findMenu(tx, menuName)
		if err != nil {
			return nil, err
		}
		order = domain.NewOrder(userID, menu.ID, options, at)
		order.Price = menu.Price + (order.ShotCount-1)*domain.ShotSurcharge
	}

	// Replace semantics: at most one active order per user
	replaced, _, err := cancelOrders(tx, userID, 0)
	if err != nil {
		return nil, err
	}

	// Late placement: the session's primary draw already happened
	var pickedCount int64
	if err := tx.Model(&domain.Order{}).
		Where("ordered_at > ? AND ordered_at <= ?", sessionStart(at), at.UnixMilli()).
		Where("picked_at > 0").
		Count(&pickedCount).Error; err != nil {
		return nil, err
	}

	if err := tx.Create(order).Error; err != nil {
		return nil, err
	}
	return &PlacedOrder{Order: order, Replaced: replaced, Additional: pickedCount > 0}, nil
}

// findMenu resolves an orderable menu, rejecting unknown and disabled items
func findMenu(tx *gorm.DB, menuID string) (*domain.Menu, error) {
	var menu domain.Menu
	err := tx.Where("id = ?", menuID).First(&menu).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMenuNotFound
	} else if err != nil {
		return nil, err
	}
	if !menu.Enabled {
		return nil, ErrMenuDisabled
	}
	return &menu, nil
}

// CancelOrder removes the user's active orders placed at or after notBefore
// (zero cancels everything). Returns the last removed order as a UI hint.
func (s *Service) CancelOrder(userID string, notBefore time.Time) (bool, *domain.Order, error) {
	var (
		cancelled bool
		removed   *domain.Order
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		min := int64(0)
		if !notBefore.IsZero() {
			min = notBefore.UnixMilli()
		}
		cancelled, removed, err = cancelOrders(tx, userID, min)
		return err
	})
	if err != nil {
		return false, nil, err
	}
	return cancelled, removed, nil
}

func cancelOrders(tx *gorm.DB, userID string, notBefore int64) (bool, *domain.Order, error) {
	var prev []domain.Order
	if err := tx.Where("user_id = ? AND ordered_at >= ?", userID, notBefore).
		Find(&prev).Error; err != nil {
		return false, nil, err
	}
	if len(prev) == 0 {
		return false, nil, nil
	}
	if err := tx.Where("user_id = ? AND ordered_at >= ?", userID, notBefore).
		Delete(&domain.Order{}).Error; err != nil {
		return false, nil, err
	}
	return true, &prev[len(prev)-1], nil
}

// SessionOrders lists active orders in the session ending at the given instant
func (s *Service) SessionOrders(at time.Time) ([]domain.Order, error) {
	var orders []domain.Order
	err := s.db.
		Where("ordered_at > ? AND ordered_at <= ?", sessionStart(at), at.UnixMilli()).
		Order("ordered_at asc").
		Find(&orders).Error
	return orders, err
}

// ReservedOrders lists active orders placed for a future session
func (s *Service) ReservedOrders(at time.Time) ([]domain.Order, error) {
	var orders []domain.Order
	err := s.db.
		Where("ordered_at > ?", at.UnixMilli()).
		Order("ordered_at asc").
		Find(&orders).Error
	return orders, err
}

// ResetSession unconditionally clears the active queue
func (s *Service) ResetSession() error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Where("1 = 1").Delete(&domain.Order{}).Error
	})
}

// CompletedOrders returns a user's completed orders since the given instant
func (s *Service) CompletedOrders(userID string, since time.Time) ([]domain.CompletedOrder, error) {
	var orders []domain.CompletedOrder
	err := s.db.
		Where("user_id = ? AND ordered_at >= ?", userID, since.UnixMilli()).
		Order("ordered_at desc").
		Find(&orders).Error
	return orders, err
}
