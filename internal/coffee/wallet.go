package coffee

import (
	"errors"
	"time"

	"coffee_bot/internal/domain"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// FillWallet adds amount to the user's deposit and journals the change.
// Returns the user with the updated balance.
func (s *Service) FillWallet(userID string, amount int, at time.Time) (*domain.User, error) {
	var user *domain.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		user, err = findUser(tx, userID)
		if err != nil {
			return err
		}
		user.Deposit += amount
		if err := tx.Model(user).Update("deposit", user.Deposit).Error; err != nil {
			return err
		}
		history := domain.WalletHistory{UserID: userID, Amount: amount, At: at.UnixMilli()}
		return tx.Create(&history).Error
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"amount":  amount,
		"deposit": user.Deposit,
	}).Info("Wallet filled")
	return user, nil
}

// GetDeposit returns the user's current balance
func (s *Service) GetDeposit(userID string) (int, error) {
	user, err := findUser(s.db, userID)
	if err != nil {
		return 0, err
	}
	return user.Deposit, nil
}

// WalletHistoryOf returns a user's balance changes since the given instant
func (s *Service) WalletHistoryOf(userID string, since time.Time) ([]domain.WalletHistory, error) {
	var history []domain.WalletHistory
	err := s.db.
		Where("user_id = ? AND at >= ?", userID, since.UnixMilli()).
		Order("at desc").
		Find(&history).Error
	return history, err
}

// findUser resolves a user or reports the expected not-found violation
func findUser(tx *gorm.DB, userID string) (*domain.User, error) {
	var user domain.User
	err := tx.Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, err
	}
	return &user, nil
}
