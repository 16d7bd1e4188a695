package coffee

import (
	"errors"

	"coffee_bot/internal/domain"

	"gorm.io/gorm"
)

// AddMenuItem creates a new menu item; the ID must be free
func (s *Service) AddMenuItem(menu *domain.Menu) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var existing domain.Menu
		err := tx.Where("id = ?", menu.ID).First(&existing).Error
		if err == nil {
			return ErrAlreadyExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(menu).Error
	})
}

// ChangeMenuItem overwrites description, price and display rank of an
// existing item. The ID and the enabled flag are not touched.
func (s *Service) ChangeMenuItem(menu *domain.Menu) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var existing domain.Menu
		err := tx.Where("id = ?", menu.ID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMenuNotFound
		} else if err != nil {
			return err
		}
		existing.Update(menu)
		return tx.Model(&existing).Updates(map[string]any{
			"description": existing.Description,
			"price":       existing.Price,
			"sort_order":  existing.SortOrder,
		}).Error
	})
}

// EnableMenuItem toggles whether an item can be ordered. Disabled items stay
// visible in listings.
func (s *Service) EnableMenuItem(menuID string, enabled bool) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var menu domain.Menu
		err := tx.Where("id = ?", menuID).First(&menu).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMenuNotFound
		} else if err != nil {
			return err
		}
		return tx.Model(&menu).Update("enabled", enabled).Error
	})
}

// ListMenu returns the full menu in display order, disabled items included
func (s *Service) ListMenu() ([]domain.Menu, error) {
	var menus []domain.Menu
	err := s.db.Order("sort_order asc").Find(&menus).Error
	return menus, err
}
