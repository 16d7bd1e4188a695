package command

import (
	"fmt"
	"strings"
	"time"

	"coffee_bot/internal/coffee"
	"coffee_bot/internal/domain"
	"coffee_bot/internal/utils"
)

// noon is the boundary for afternoon reservations on the day containing at
func noon(at time.Time) time.Time {
	return time.Date(at.Year(), at.Month(), at.Day(), 12, 0, 0, 0, at.Location())
}

// placeOrder handles "order"
func (r *Registry) placeOrder(user *domain.User, args string, at time.Time) (*Response, error) {
	placed, err := r.svc.PlaceOrder(user.ID, args, at)
	if err != nil {
		return nil, err
	}
	deposit, err := r.svc.GetDeposit(user.ID)
	if err != nil {
		return nil, err
	}

	ephemeral := fmt.Sprintf("%d for %s, your balance is %d.", placed.Order.Price, placed.Order.DisplayName(), deposit)
	if placed.Additional {
		ephemeral += "\nThe draw already ran, so this order goes into the supplementary pool."
	}
	verb := "ordered"
	if placed.Replaced {
		verb = "switched to"
	}
	return &Response{
		Ephemeral: ephemeral,
		InChannel: fmt.Sprintf("%s %s %s.", user.Name, verb, placed.Order.DisplayName()),
	}, nil
}

// reserveOrder handles "reserve": an order stamped at noon, mornings only
func (r *Registry) reserveOrder(user *domain.User, args string, at time.Time) (*Response, error) {
	reserveAt := noon(at)
	if !at.Before(reserveAt) {
		return nil, coffee.UserError("reservations are only available in the morning")
	}
	placed, err := r.svc.PlaceOrder(user.ID, args, reserveAt)
	if err != nil {
		return nil, err
	}
	deposit, err := r.svc.GetDeposit(user.ID)
	if err != nil {
		return nil, err
	}

	verb := "reserved"
	if placed.Replaced {
		verb = "changed the reservation to"
	}
	return &Response{
		Ephemeral: fmt.Sprintf("%d for %s, your balance is %d.", placed.Order.Price, placed.Order.DisplayName(), deposit),
		InChannel: fmt.Sprintf("%s %s an afternoon %s.", user.Name, verb, placed.Order.DisplayName()),
	}, nil
}

// cancelOrder handles "cancel"
func (r *Registry) cancelOrder(user *domain.User, args string, at time.Time) (*Response, error) {
	cancelled, _, err := r.svc.CancelOrder(user.ID, time.Time{})
	if err != nil {
		return nil, err
	}
	if !cancelled {
		return &Response{Ephemeral: "you have no order to cancel."}, nil
	}
	return &Response{
		Ephemeral: "cancelled.",
		InChannel: fmt.Sprintf("%s cancelled their order.", user.Name),
	}, nil
}

// cancelReservation handles "cancel-reserve": only touches noon-or-later orders
func (r *Registry) cancelReservation(user *domain.User, args string, at time.Time) (*Response, error) {
	reserveAt := noon(at)
	if !at.Before(reserveAt) {
		return nil, coffee.UserError("reservations are only available in the morning")
	}
	cancelled, _, err := r.svc.CancelOrder(user.ID, reserveAt)
	if err != nil {
		return nil, err
	}
	if !cancelled {
		return &Response{Ephemeral: "you have no reservation to cancel."}, nil
	}
	return &Response{
		Ephemeral: "cancelled.",
		InChannel: fmt.Sprintf("%s cancelled their afternoon reservation.", user.Name),
	}, nil
}

// listOrders handles "list"
func (r *Registry) listOrders(user *domain.User, args string, at time.Time) (*Response, error) {
	orders, err := r.svc.SessionOrders(at)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return &Response{Ephemeral: "no orders yet."}, nil
	}
	text, err := r.formatOrderInfo(orders)
	if err != nil {
		return nil, err
	}
	return &Response{Ephemeral: text}, nil
}

// listReserved handles "reserved"
func (r *Registry) listReserved(user *domain.User, args string, at time.Time) (*Response, error) {
	if !at.Before(noon(at)) {
		return nil, coffee.UserError("reservations are only available in the morning")
	}
	orders, err := r.svc.ReservedOrders(at)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return &Response{Ephemeral: "no afternoon reservations."}, nil
	}
	text, err := r.formatOrderInfo(orders)
	if err != nil {
		return nil, err
	}
	return &Response{Ephemeral: text}, nil
}

// formatOrders renders one line per order, checkmarking picked ones
func (r *Registry) formatOrders(sb *strings.Builder, orders []domain.Order) error {
	ids := make([]string, len(orders))
	for i, o := range orders {
		ids[i] = o.UserID
	}
	users, err := r.svc.UsersByID(ids)
	if err != nil {
		return err
	}
	for _, o := range orders {
		if o.IsPicked() {
			sb.WriteString(":white_check_mark: ")
		}
		fmt.Fprintf(sb, "%s: %s %s\n", users[o.UserID].Name, o.MenuID, o.Options)
	}
	return nil
}

// formatOrderInfo renders the session roster. After a draw it leads with the
// winners and reports how many picked drinks need steamed milk.
func (r *Registry) formatOrderInfo(orders []domain.Order) (string, error) {
	var picked, rest []domain.Order
	for _, o := range orders {
		if o.IsPicked() {
			picked = append(picked, o)
		} else {
			rest = append(rest, o)
		}
	}

	var sb strings.Builder
	if len(picked) == 0 {
		fmt.Fprintf(&sb, "%d orderers\n", len(orders))
		if err := r.formatOrders(&sb, orders); err != nil {
			return "", err
		}
		return sb.String(), nil
	}

	fmt.Fprintf(&sb, "%d picked out of %d orderers\n", len(picked), len(orders))
	if err := r.formatOrders(&sb, picked); err != nil {
		return "", err
	}
	if err := r.formatOrders(&sb, rest); err != nil {
		return "", err
	}

	menus, err := r.svc.ListMenu()
	if err != nil {
		return "", err
	}
	steamed := make(map[string]bool, len(menus))
	for _, m := range menus {
		steamed[m.ID] = m.NeedsSteamedMilk
	}
	steamCount := 0
	for _, o := range picked {
		if steamed[o.MenuID] {
			steamCount++
		}
	}
	if steamCount > 0 {
		fmt.Fprintf(&sb, "*steamed milk*: %d cups\n", steamCount)
	}
	return sb.String(), nil
}

// mentionOrders renders a winner announcement mentioning each user
func mentionOrders(orders []domain.Order) string {
	var sb strings.Builder
	for _, o := range orders {
		sb.WriteString(utils.MentionUser(o.UserID))
		sb.WriteByte(' ')
	}
	return sb.String()
}
