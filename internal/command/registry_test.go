package command

import (
	"testing"
	"time"

	"coffee_bot/internal/coffee"
	"coffee_bot/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testTime = time.Date(2023, 3, 17, 9, 0, 0, 0, time.UTC)

func newTestRegistry(t *testing.T) (*Registry, *coffee.Service) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.Menu{},
		&domain.Order{},
		&domain.CompletedOrder{},
		&domain.WalletHistory{},
	))

	users := []domain.User{
		{ID: "U01", Name: "amy", Deposit: 1500, IsManager: true},
		{ID: "U03", Name: "cho", Deposit: 1000},
		{ID: "U04", Name: "dan", Deposit: 2000},
		{ID: "U05", Name: "eve", Deposit: 2000},
	}
	require.NoError(t, db.Create(&users).Error)

	menus := []domain.Menu{
		{ID: "latte", Description: "caffe latte", Price: 1000, SortOrder: 0, Enabled: true, NeedsSteamedMilk: true},
		{ID: "americano", Description: "americano", Price: 1500, SortOrder: 1, Enabled: true},
	}
	require.NoError(t, db.Create(&menus).Error)

	svc := coffee.New(db)
	return NewRegistry(svc), svc
}

func manager(t *testing.T, svc *coffee.Service) *domain.User {
	t.Helper()
	user, err := svc.FindUser("U01")
	require.NoError(t, err)
	require.NotNil(t, user)
	return user
}

func regular(t *testing.T, svc *coffee.Service) *domain.User {
	t.Helper()
	user, err := svc.FindUser("U03")
	require.NoError(t, err)
	require.NotNil(t, user)
	return user
}

func TestDispatchUnknownCommand(t *testing.T) {
	r, svc := newTestRegistry(t)

	_, err := r.Dispatch(regular(t, svc), "bogus", "", testTime)
	assert.ErrorIs(t, err, ErrCommandNotFound)
	assert.True(t, coffee.IsUserError(err))
}

func TestDispatchManagerGate(t *testing.T) {
	r, svc := newTestRegistry(t)

	for _, name := range []string{"pick", "pick-more", "complete", "reset", "menu-add", "set-manager", "merge"} {
		_, err := r.Dispatch(regular(t, svc), name, "1", testTime)
		assert.ErrorIs(t, err, ErrManagerOnly, name)
	}
}

func TestDispatchMalformedArguments(t *testing.T) {
	r, svc := newTestRegistry(t)
	mgr := manager(t, svc)

	for _, tc := range []struct{ name, args string }{
		{"pick", "abc"},
		{"pick", "-1"},
		{"pick-more", ""},
		{"fill", "lots"},
		{"menu-add", "too, few, fields"},
		{"menu-enable", "latte maybe"},
		{"set-manager", "not-a-mention 1"},
		{"merge", "<@U04|dan>"},
	} {
		_, err := r.Dispatch(mgr, tc.name, tc.args, testTime)
		assert.ErrorIs(t, err, coffee.ErrMalformedInput, tc.name)
	}
}

func TestHelpHidesManagerCommands(t *testing.T) {
	r, svc := newTestRegistry(t)

	resp, err := r.Dispatch(regular(t, svc), "help", "", testTime)
	require.NoError(t, err)
	assert.Contains(t, resp.Ephemeral, "*order*")
	assert.NotContains(t, resp.Ephemeral, "*pick*")

	resp, err = r.Dispatch(manager(t, svc), "help", "", testTime)
	require.NoError(t, err)
	assert.Contains(t, resp.Ephemeral, "*pick*")
}

func TestOrderAndBalanceCommands(t *testing.T) {
	r, svc := newTestRegistry(t)
	user := regular(t, svc)

	resp, err := r.Dispatch(user, "order", "latte double", testTime)
	require.NoError(t, err)
	assert.Contains(t, resp.Ephemeral, "1500")
	assert.Contains(t, resp.InChannel, "cho ordered latte (double shot)")

	// Replacing announces a switch instead of a new order
	resp, err = r.Dispatch(user, "order", "americano", testTime.Add(time.Second))
	require.NoError(t, err)
	assert.Contains(t, resp.InChannel, "cho switched to americano")

	resp, err = r.Dispatch(user, "balance", "", testTime)
	require.NoError(t, err)
	assert.Contains(t, resp.Ephemeral, "1000")
}

func TestCancelCommand(t *testing.T) {
	r, svc := newTestRegistry(t)
	user := regular(t, svc)

	resp, err := r.Dispatch(user, "cancel", "", testTime)
	require.NoError(t, err)
	assert.Empty(t, resp.InChannel)

	_, err = r.Dispatch(user, "order", "latte", testTime)
	require.NoError(t, err)
	resp, err = r.Dispatch(user, "cancel", "", testTime)
	require.NoError(t, err)
	assert.Contains(t, resp.InChannel, "cho cancelled")
}

func TestLotteryAndCompleteCommands(t *testing.T) {
	r, svc := newTestRegistry(t)
	mgr := manager(t, svc)

	_, err := r.Dispatch(regular(t, svc), "order", "latte", testTime)
	require.NoError(t, err)

	resp, err := r.Dispatch(mgr, "pick", "5", testTime.Add(time.Second))
	require.NoError(t, err)
	assert.Contains(t, resp.InChannel, "<winners> 1 out of 1")
	assert.Contains(t, resp.InChannel, "cho")

	resp, err = r.Dispatch(mgr, "list", "", testTime.Add(2*time.Second))
	require.NoError(t, err)
	assert.Contains(t, resp.Ephemeral, "1 picked out of 1")
	assert.Contains(t, resp.Ephemeral, "*steamed milk*: 1 cups")

	resp, err = r.Dispatch(mgr, "complete", "", testTime.Add(3*time.Second))
	require.NoError(t, err)
	assert.Contains(t, resp.InChannel, "<@U03>")

	deposit, err := svc.GetDeposit("U03")
	require.NoError(t, err)
	assert.Equal(t, 0, deposit)
}

func TestReservationCommands(t *testing.T) {
	r, svc := newTestRegistry(t)
	user := regular(t, svc)

	resp, err := r.Dispatch(user, "reserve", "latte", testTime)
	require.NoError(t, err)
	assert.Contains(t, resp.InChannel, "afternoon")

	resp, err = r.Dispatch(user, "reserved", "", testTime.Add(time.Minute))
	require.NoError(t, err)
	assert.Contains(t, resp.Ephemeral, "cho")

	resp, err = r.Dispatch(user, "cancel-reserve", "", testTime.Add(2*time.Minute))
	require.NoError(t, err)
	assert.Contains(t, resp.InChannel, "reservation")

	// Afternoon gate
	afternoon := time.Date(2023, 3, 17, 13, 0, 0, 0, time.UTC)
	_, err = r.Dispatch(user, "reserve", "latte", afternoon)
	assert.True(t, coffee.IsUserError(err))
	_, err = r.Dispatch(user, "cancel-reserve", "", afternoon)
	assert.True(t, coffee.IsUserError(err))
}

func TestMenuCommands(t *testing.T) {
	r, svc := newTestRegistry(t)
	mgr := manager(t, svc)

	_, err := r.Dispatch(mgr, "menu-add", "flatwhite, flat white, 1800, 9", testTime)
	require.NoError(t, err)
	_, err = r.Dispatch(mgr, "menu-add", "flatwhite, again, 1, 1", testTime)
	assert.ErrorIs(t, err, coffee.ErrAlreadyExists)

	resp, err := r.Dispatch(regular(t, svc), "menu", "", testTime)
	require.NoError(t, err)
	assert.Contains(t, resp.Ephemeral, "*flatwhite* - flat white: 1800")

	_, err = r.Dispatch(mgr, "menu-enable", "flatwhite 0", testTime)
	require.NoError(t, err)
	resp, err = r.Dispatch(regular(t, svc), "menu", "", testTime)
	require.NoError(t, err)
	assert.Contains(t, resp.Ephemeral, "*disabled*")
	assert.NotContains(t, resp.Ephemeral, "*flatwhite*")
}

func TestFillCommand(t *testing.T) {
	r, svc := newTestRegistry(t)
	user := regular(t, svc)

	resp, err := r.Dispatch(user, "fill", "2000", testTime)
	require.NoError(t, err)
	assert.Contains(t, resp.Ephemeral, "3000")

	deposit, err := svc.GetDeposit("U03")
	require.NoError(t, err)
	assert.Equal(t, 3000, deposit)
}

func TestSetManagerAndMergeCommands(t *testing.T) {
	r, svc := newTestRegistry(t)
	mgr := manager(t, svc)

	_, err := r.Dispatch(mgr, "set-manager", "<@U03|cho> 1", testTime)
	require.NoError(t, err)
	promoted, err := svc.FindUser("U03")
	require.NoError(t, err)
	assert.True(t, promoted.IsManager)

	resp, err := r.Dispatch(mgr, "merge", "<@U04|dan> <@U05|eve>", testTime)
	require.NoError(t, err)
	assert.Contains(t, resp.Ephemeral, "4000")
	gone, err := svc.FindUser("U05")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestRenameCommand(t *testing.T) {
	r, svc := newTestRegistry(t)

	_, err := r.Dispatch(manager(t, svc), "rename", "<@U03|cho> charlie", testTime)
	require.NoError(t, err)
	renamed, err := svc.FindUser("U03")
	require.NoError(t, err)
	assert.Equal(t, "charlie", renamed.Name)
}
