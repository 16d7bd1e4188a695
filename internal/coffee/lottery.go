package coffee

import (
	"math/rand"
	"time"

	"coffee_bot/internal/domain"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PickPrimary runs the one-time lottery for the session ending at the given
// instant. Managers are always selected; the remaining seats are filled by a
// uniform draw over everyone else. Fails if the session was already drawn.
func (s *Service) PickPrimary(count int, at time.Time) ([]domain.Order, error) {
	var picked []domain.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		picked, err = pickPrimary(tx, count, at)
		return err
	})
	if err != nil {
		return nil, err
	}
	return picked, nil
}

func pickPrimary(tx *gorm.DB, count int, at time.Time) ([]domain.Order, error) {
	start, end := sessionStart(at), at.UnixMilli()

	// The primary draw runs exactly once per session
	var alreadyPicked int64
	if err := tx.Model(&domain.Order{}).
		Where("ordered_at > ? AND ordered_at <= ?", start, end).
		Where("picked_at > 0").
		Count(&alreadyPicked).Error; err != nil {
		return nil, err
	}
	if alreadyPicked > 0 {
		return nil, ErrAlreadyPicked
	}

	var managerIDs []string
	if err := tx.Model(&domain.User{}).
		Where("is_manager = ?", true).
		Pluck("id", &managerIDs).Error; err != nil {
		return nil, err
	}
	var managers []domain.Order
	if len(managerIDs) > 0 {
		if err := tx.
			Where("ordered_at > ? AND ordered_at <= ?", start, end).
			Where("user_id IN ?", managerIDs).
			Find(&managers).Error; err != nil {
			return nil, err
		}
	}

	var others []domain.Order
	q := tx.Where("ordered_at > ? AND ordered_at <= ?", start, end)
	if len(managerIDs) > 0 {
		q = q.Where("user_id NOT IN ?", managerIDs)
	}
	if err := q.Find(&others).Error; err != nil {
		return nil, err
	}

	needed := max(count-len(managers), 0)
	if needed < len(others) {
		rand.Shuffle(len(others), func(i, j int) {
			others[i], others[j] = others[j], others[i]
		})
		others = others[:needed]
	}

	picked := append(managers, others...)
	if err := markPicked(tx, picked, end); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"requested": count,
		"managers":  len(managers),
		"picked":    len(picked),
	}).Info("Primary lottery drawn")
	return picked, nil
}

// PickMore draws up to count additional winners from session orders the
// primary lottery did not select. The draw is uniformly random, same as
// PickPrimary, even though the chat help describes it as first come first
// served. Fails if no unpicked order is left in the session.
func (s *Service) PickMore(count int, at time.Time) ([]domain.Order, error) {
	var picked []domain.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		picked, err = pickMore(tx, count, at)
		return err
	})
	if err != nil {
		return nil, err
	}
	return picked, nil
}

func pickMore(tx *gorm.DB, count int, at time.Time) ([]domain.Order, error) {
	var candidates []domain.Order
	if err := tx.
		Where("ordered_at > ? AND ordered_at <= ?", sessionStart(at), at.UnixMilli()).
		Where("picked_at = 0").
		Find(&candidates).Error; err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, ErrNothingToPick
	}

	if count < len(candidates) {
		rand.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
		candidates = candidates[:count]
	}

	if err := markPicked(tx, candidates, at.UnixMilli()); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"requested": count,
		"picked":    len(candidates),
	}).Info("Supplementary lottery drawn")
	return candidates, nil
}

// markPicked stamps PickedAt on the given orders and persists them
func markPicked(tx *gorm.DB, orders []domain.Order, at int64) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, len(orders))
	for i := range orders {
		orders[i].PickedAt = at
		ids[i] = orders[i].ID
	}
	return tx.Model(&domain.Order{}).
		Where("id IN ?", ids).
		Update("picked_at", at).Error
}
