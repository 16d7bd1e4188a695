package command

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"coffee_bot/internal/coffee"
	"coffee_bot/internal/domain"
)

// parseCount decodes a positive headcount argument
func parseCount(args string) (int, error) {
	count, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil || count <= 0 {
		return 0, coffee.ErrMalformedInput
	}
	return count, nil
}

// pickPrimary handles "pick"
func (r *Registry) pickPrimary(user *domain.User, args string, at time.Time) (*Response, error) {
	count, err := parseCount(args)
	if err != nil {
		return nil, err
	}
	picked, err := r.svc.PickPrimary(count, at)
	if err != nil {
		return nil, err
	}
	orders, err := r.svc.SessionOrders(at)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "<winners> %d out of %d\n", len(picked), len(orders))
	if err := r.formatOrders(&sb, picked); err != nil {
		return nil, err
	}
	return &Response{Ephemeral: "drawn.", InChannel: sb.String()}, nil
}

// pickMore handles "pick-more"
func (r *Registry) pickMore(user *domain.User, args string, at time.Time) (*Response, error) {
	count, err := parseCount(args)
	if err != nil {
		return nil, err
	}
	picked, err := r.svc.PickMore(count, at)
	if err != nil {
		return nil, err
	}
	orders, err := r.svc.SessionOrders(at)
	if err != nil {
		return nil, err
	}
	pool := len(picked)
	for _, o := range orders {
		if !o.IsPicked() {
			pool++
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "<extra winners> %d out of %d\n", len(picked), pool)
	if err := r.formatOrders(&sb, picked); err != nil {
		return nil, err
	}
	return &Response{Ephemeral: "drawn.", InChannel: sb.String()}, nil
}

// completeOrders handles "complete"
func (r *Registry) completeOrders(user *domain.User, args string, at time.Time) (*Response, error) {
	picked, err := r.svc.Complete(at)
	if err != nil {
		return nil, err
	}
	return &Response{
		Ephemeral: "announced.",
		InChannel: mentionOrders(picked) + "your coffee is ready, come get it!",
	}, nil
}

// resetSession handles "reset"
func (r *Registry) resetSession(user *domain.User, args string, at time.Time) (*Response, error) {
	if err := r.svc.ResetSession(); err != nil {
		return nil, err
	}
	return &Response{
		InChannel: fmt.Sprintf("%s reset every order.", user.Name),
	}, nil
}
