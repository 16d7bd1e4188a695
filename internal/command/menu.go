package command

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"coffee_bot/internal/coffee"
	"coffee_bot/internal/domain"
)

// unpackMenu parses "[name], [description], [price], [rank]"
func unpackMenu(args string) (*domain.Menu, error) {
	parts := strings.SplitN(args, ",", 4)
	if len(parts) != 4 {
		return nil, coffee.ErrMalformedInput
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	price, err := strconv.Atoi(parts[2])
	if err != nil {
		return nil, coffee.ErrMalformedInput
	}
	rank, err := strconv.Atoi(parts[3])
	if err != nil {
		return nil, coffee.ErrMalformedInput
	}
	return &domain.Menu{
		ID:          parts[0],
		Description: parts[1],
		Price:       price,
		SortOrder:   rank,
		Enabled:     true,
	}, nil
}

// addMenu handles "menu-add"
func (r *Registry) addMenu(user *domain.User, args string, at time.Time) (*Response, error) {
	menu, err := unpackMenu(args)
	if err != nil {
		return nil, err
	}
	if err := r.svc.AddMenuItem(menu); err != nil {
		return nil, err
	}
	return &Response{Ephemeral: fmt.Sprintf("added %s at %d.", menu.ID, menu.Price)}, nil
}

// changeMenu handles "menu-edit"
func (r *Registry) changeMenu(user *domain.User, args string, at time.Time) (*Response, error) {
	menu, err := unpackMenu(args)
	if err != nil {
		return nil, err
	}
	if err := r.svc.ChangeMenuItem(menu); err != nil {
		return nil, err
	}
	return &Response{Ephemeral: fmt.Sprintf("changed %s to %d.", menu.ID, menu.Price)}, nil
}

// enableMenu handles "menu-enable": [name] [1|0]
func (r *Registry) enableMenu(user *domain.User, args string, at time.Time) (*Response, error) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return nil, coffee.ErrMalformedInput
	}
	flag, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, coffee.ErrMalformedInput
	}
	enabled := flag > 0
	if err := r.svc.EnableMenuItem(fields[0], enabled); err != nil {
		return nil, err
	}
	if enabled {
		return &Response{Ephemeral: fmt.Sprintf("enabled %s.", fields[0])}, nil
	}
	return &Response{Ephemeral: fmt.Sprintf("disabled %s.", fields[0])}, nil
}

// showMenu handles "menu": enabled items first, disabled ones listed apart
func (r *Registry) showMenu(user *domain.User, args string, at time.Time) (*Response, error) {
	menus, err := r.svc.ListMenu()
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	sb.WriteString("*menu*\n")
	var disabled []domain.Menu
	for _, m := range menus {
		if !m.Enabled {
			disabled = append(disabled, m)
			continue
		}
		fmt.Fprintf(&sb, "*%s* - %s: %d\n", m.ID, m.Description, m.Price)
	}
	if len(disabled) > 0 {
		sb.WriteString("\n*disabled*\n")
		for _, m := range disabled {
			fmt.Fprintf(&sb, "%s\n", m.Description)
		}
	}
	return &Response{Ephemeral: sb.String()}, nil
}
