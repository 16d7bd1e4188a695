package command

import (
	"time"

	"coffee_bot/internal/coffee"
	"coffee_bot/internal/domain"
)

// Dispatch-level violations, surfaced to the user like any other UserError
const (
	ErrCommandNotFound coffee.UserError = "no such command, try `help`"
	ErrManagerOnly     coffee.UserError = "that command is for managers only"
)

// Response is what a command hands back to the chat layer
type Response struct {
	Ephemeral string // private reply to the invoker
	InChannel string // broadcast to the channel, empty when there is nothing to announce
}

// HandlerFunc handles one chat command for an already-resolved user
type HandlerFunc func(user *domain.User, args string, at time.Time) (*Response, error)

// Entry describes a registered command. Authorization is an explicit field
// here, not something inferred from the handler.
type Entry struct {
	Name        string
	Description string
	ForManager  bool
	Handle      HandlerFunc
}

// Registry maps command names to typed handlers. It is owned by whoever
// constructs it; there is no process-wide table.
type Registry struct {
	svc     *coffee.Service
	entries map[string]*Entry
	names   []string // registration order, used by help
}

// NewRegistry builds the full command table over a coffee service
func NewRegistry(svc *coffee.Service) *Registry {
	r := &Registry{svc: svc, entries: make(map[string]*Entry)}

	r.register("order", "order a coffee: [menu] [options], empty repeats your last one", false, r.placeOrder)
	r.register("reserve", "reserve an afternoon coffee: [menu] [options] (mornings only)", false, r.reserveOrder)
	r.register("cancel", "cancel your order", false, r.cancelOrder)
	r.register("cancel-reserve", "cancel your afternoon reservation (mornings only)", false, r.cancelReservation)
	r.register("list", "show the current session's orders", false, r.listOrders)
	r.register("reserved", "show afternoon reservations (mornings only)", false, r.listReserved)
	r.register("menu", "show the menu", false, r.showMenu)
	r.register("balance", "show your balance", false, r.getBalance)
	r.register("fill", "top up your balance: [amount]", false, r.fillWallet)
	r.register("help", "show this list", false, r.help)

	r.register("pick", "draw the lottery: [headcount]", true, r.pickPrimary)
	r.register("pick-more", "draw extra winners, first come first served: [headcount]", true, r.pickMore)
	r.register("complete", "announce completion and bill the winners", true, r.completeOrders)
	r.register("reset", "clear every active order", true, r.resetSession)
	r.register("set-manager", "set a user's role: [@user] [1: manager / 0: regular]", true, r.setManager)
	r.register("rename", "set a user's display name: [@user] [name]", true, r.renameUser)
	r.register("merge", "merge duplicate users: [@target] [@source]...", true, r.mergeUsers)
	r.register("menu-add", "add a menu item: [name], [description], [price], [rank]", true, r.addMenu)
	r.register("menu-edit", "edit a menu item: [name], [description], [price], [rank]", true, r.changeMenu)
	r.register("menu-enable", "toggle a menu item: [name] [1: enabled / 0: disabled]", true, r.enableMenu)

	return r
}

func (r *Registry) register(name, description string, forManager bool, handle HandlerFunc) {
	r.entries[name] = &Entry{Name: name, Description: description, ForManager: forManager, Handle: handle}
	r.names = append(r.names, name)
}

// Dispatch routes one command invocation to its handler, enforcing the
// manager gate before the handler runs
func (r *Registry) Dispatch(user *domain.User, name, args string, at time.Time) (*Response, error) {
	entry, ok := r.entries[name]
	if !ok {
		return nil, ErrCommandNotFound
	}
	if entry.ForManager && !user.IsManager {
		return nil, ErrManagerOnly
	}
	return entry.Handle(user, args, at)
}
