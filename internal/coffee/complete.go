package coffee

import (
	"time"

	"coffee_bot/internal/domain"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Complete closes the current round: every picked order debits its user's
// deposit, the whole cohort (picked and stragglers alike) moves to the
// completed log, and orders already placed for a later session are carried
// forward with their timestamp advanced to the completion instant.
func (s *Service) Complete(at time.Time) ([]domain.Order, error) {
	var picked []domain.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		picked, err = complete(tx, at)
		return err
	})
	if err != nil {
		return nil, err
	}
	return picked, nil
}

func complete(tx *gorm.DB, at time.Time) ([]domain.Order, error) {
	var orders []domain.Order
	if err := tx.Find(&orders).Error; err != nil {
		return nil, err
	}

	// Clamp the completion instant up to the latest pick, so a skewed clock
	// can never push picked orders into the carried-forward group
	var lastPickedAt int64
	for _, o := range orders {
		if o.PickedAt > lastPickedAt {
			lastPickedAt = o.PickedAt
		}
	}
	if lastPickedAt == 0 {
		return nil, ErrNothingPicked
	}
	now := at.UnixMilli()
	if now < lastPickedAt {
		now = lastPickedAt
	}

	var (
		cohort  []domain.Order
		carried []domain.Order
		picked  []domain.Order
	)
	for _, o := range orders {
		if o.OrderedAt > now {
			carried = append(carried, o)
			continue
		}
		cohort = append(cohort, o)
		if o.IsPicked() {
			picked = append(picked, o)
		}
	}

	// Bill every picked order against its user's deposit. Debits are not
	// journaled to wallet history; only fills are.
	for _, o := range picked {
		res := tx.Model(&domain.User{}).
			Where("id = ?", o.UserID).
			Update("deposit", gorm.Expr("deposit - ?", o.Price))
		if res.Error != nil {
			return nil, res.Error
		}
	}

	for i := range cohort {
		if err := tx.Create(domain.Completed(&cohort[i])).Error; err != nil {
			return nil, err
		}
	}
	ids := make([]string, len(cohort))
	for i := range cohort {
		ids[i] = cohort[i].ID
	}
	if len(ids) > 0 {
		if err := tx.Where("id IN ?", ids).Delete(&domain.Order{}).Error; err != nil {
			return nil, err
		}
	}

	// Carried-forward orders become the head of the next session window
	for i := range carried {
		if err := tx.Model(&domain.Order{}).
			Where("id = ?", carried[i].ID).
			Update("ordered_at", now).Error; err != nil {
			return nil, err
		}
	}

	logrus.WithFields(logrus.Fields{
		"completed": len(cohort),
		"billed":    len(picked),
		"carried":   len(carried),
	}).Info("Session completed")
	return picked, nil
}
