package coffee

import (
	"errors"

	"coffee_bot/internal/domain"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// FindUser looks a user up by ID; (nil, nil) when unknown
func (s *Service) FindUser(userID string) (*domain.User, error) {
	var user domain.User
	err := s.db.Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser registers a new user with a zero deposit
func (s *Service) CreateUser(userID, name string, isManager bool) (*domain.User, error) {
	user := &domain.User{ID: userID, Name: name, IsManager: isManager}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing domain.User
		err := tx.Where("id = ?", userID).First(&existing).Error
		if err == nil {
			return ErrAlreadyRegistered
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(user).Error
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUserRole sets or clears the manager flag
func (s *Service) UpdateUserRole(userID string, isManager bool) (*domain.User, error) {
	var user *domain.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		user, err = findUser(tx, userID)
		if err != nil {
			return err
		}
		user.IsManager = isManager
		return tx.Model(user).Update("is_manager", isManager).Error
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// RenameUser sets a user's display name
func (s *Service) RenameUser(userID, name string) (*domain.User, error) {
	var user *domain.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		user, err = findUser(tx, userID)
		if err != nil {
			return err
		}
		user.Name = name
		return tx.Model(user).Update("name", name).Error
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// MergeUsers consolidates duplicate identities: source deposits are summed
// into the target, manager flags are unioned, history rows follow the target,
// and the sources are deleted. The total deposit is conserved.
func (s *Service) MergeUsers(targetID string, sourceIDs ...string) (*domain.User, error) {
	var target *domain.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		target, err = findUser(tx, targetID)
		if err != nil {
			return err
		}
		for _, sourceID := range sourceIDs {
			if sourceID == targetID {
				return ErrMalformedInput
			}
			source, err := findUser(tx, sourceID)
			if err != nil {
				return err
			}
			target.Merge(source)

			// History follows the surviving identity
			if err := tx.Model(&domain.CompletedOrder{}).
				Where("user_id = ?", sourceID).
				Update("user_id", targetID).Error; err != nil {
				return err
			}
			if err := tx.Model(&domain.WalletHistory{}).
				Where("user_id = ?", sourceID).
				Update("user_id", targetID).Error; err != nil {
				return err
			}
			if err := tx.Delete(&domain.User{}, "id = ?", sourceID).Error; err != nil {
				return err
			}
		}
		return tx.Model(target).Updates(map[string]any{
			"deposit":    target.Deposit,
			"is_manager": target.IsManager,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"target":  targetID,
		"sources": sourceIDs,
		"deposit": target.Deposit,
	}).Info("Users merged")
	return target, nil
}

// Users lists all registered users ordered by name
func (s *Service) Users() ([]domain.User, error) {
	var users []domain.User
	err := s.db.Order("name asc").Find(&users).Error
	return users, err
}

// UsersByID resolves a set of user IDs into a lookup map
func (s *Service) UsersByID(ids []string) (map[string]domain.User, error) {
	var users []domain.User
	if len(ids) > 0 {
		if err := s.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
			return nil, err
		}
	}
	byID := make(map[string]domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID, nil
}
