package command

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"coffee_bot/internal/coffee"
	"coffee_bot/internal/domain"
	"coffee_bot/internal/utils"
)

// fillWallet handles "fill"
func (r *Registry) fillWallet(user *domain.User, args string, at time.Time) (*Response, error) {
	amount, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil {
		return nil, coffee.ErrMalformedInput
	}
	filled, err := r.svc.FillWallet(user.ID, amount, at)
	if err != nil {
		return nil, err
	}
	return &Response{Ephemeral: fmt.Sprintf("your balance is now %d.", filled.Deposit)}, nil
}

// getBalance handles "balance"
func (r *Registry) getBalance(user *domain.User, args string, at time.Time) (*Response, error) {
	deposit, err := r.svc.GetDeposit(user.ID)
	if err != nil {
		return nil, err
	}
	return &Response{Ephemeral: fmt.Sprintf("your balance is %d.", deposit)}, nil
}

// setManager handles "set-manager": [@user] [1|0]
func (r *Registry) setManager(user *domain.User, args string, at time.Time) (*Response, error) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return nil, coffee.ErrMalformedInput
	}
	targetID, ok := utils.ParseMention(fields[0])
	if !ok {
		return nil, coffee.ErrMalformedInput
	}
	flag, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, coffee.ErrMalformedInput
	}

	isManager := flag > 0
	target, err := r.svc.UpdateUserRole(targetID, isManager)
	if err != nil {
		return nil, err
	}
	if isManager {
		return &Response{Ephemeral: fmt.Sprintf("%s is now a manager.", target.Name)}, nil
	}
	return &Response{Ephemeral: fmt.Sprintf("%s is now a regular user.", target.Name)}, nil
}

// renameUser handles "rename": [@user] [name]
func (r *Registry) renameUser(user *domain.User, args string, at time.Time) (*Response, error) {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return nil, coffee.ErrMalformedInput
	}
	targetID, ok := utils.ParseMention(fields[0])
	if !ok {
		return nil, coffee.ErrMalformedInput
	}
	target, err := r.svc.RenameUser(targetID, fields[1])
	if err != nil {
		return nil, err
	}
	return &Response{Ephemeral: fmt.Sprintf("renamed to %s.", target.Name)}, nil
}

// mergeUsers handles "merge": [@target] [@source]...
func (r *Registry) mergeUsers(user *domain.User, args string, at time.Time) (*Response, error) {
	fields := strings.Fields(args)
	if len(fields) < 2 {
		return nil, coffee.ErrMalformedInput
	}
	ids := make([]string, len(fields))
	for i, f := range fields {
		id, ok := utils.ParseMention(f)
		if !ok {
			return nil, coffee.ErrMalformedInput
		}
		ids[i] = id
	}
	target, err := r.svc.MergeUsers(ids[0], ids[1:]...)
	if err != nil {
		return nil, err
	}
	return &Response{
		Ephemeral: fmt.Sprintf("merged %d users into %s, balance %d.", len(ids)-1, target.Name, target.Deposit),
	}, nil
}

// help handles "help": command list in registration order, manager commands
// hidden from regular users
func (r *Registry) help(user *domain.User, args string, at time.Time) (*Response, error) {
	var sb strings.Builder
	for _, name := range r.names {
		entry := r.entries[name]
		if entry.ForManager && !user.IsManager {
			continue
		}
		fmt.Fprintf(&sb, "*%s*: %s\n", entry.Name, entry.Description)
	}
	return &Response{Ephemeral: sb.String()}, nil
}
