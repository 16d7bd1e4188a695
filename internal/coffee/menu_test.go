package coffee

import (
	"testing"

	"coffee_bot/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMenuItem(t *testing.T) {
	svc, _ := newTestService(t)

	item := &domain.Menu{ID: "flatwhite", Description: "flat white", Price: 1800, SortOrder: 9, Enabled: true}
	require.NoError(t, svc.AddMenuItem(item))

	err := svc.AddMenuItem(&domain.Menu{ID: "flatwhite", Description: "again", Price: 1, SortOrder: 1})
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestChangeMenuItem(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.ChangeMenuItem(&domain.Menu{ID: "unobtainium", Description: "x", Price: 1, SortOrder: 1})
	assert.ErrorIs(t, err, ErrMenuNotFound)

	// Changing a disabled item must not flip it back on
	require.NoError(t, svc.ChangeMenuItem(&domain.Menu{ID: "mocha", Description: "winter mocha", Price: 1200, SortOrder: 7}))

	menus, err := svc.ListMenu()
	require.NoError(t, err)
	var mocha *domain.Menu
	for i := range menus {
		if menus[i].ID == "mocha" {
			mocha = &menus[i]
		}
	}
	require.NotNil(t, mocha)
	assert.Equal(t, "winter mocha", mocha.Description)
	assert.Equal(t, 1200, mocha.Price)
	assert.Equal(t, 7, mocha.SortOrder)
	assert.False(t, mocha.Enabled)
}

func TestEnableMenuItem(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.EnableMenuItem("unobtainium", true)
	assert.ErrorIs(t, err, ErrMenuNotFound)

	require.NoError(t, svc.EnableMenuItem("mocha", true))
	_, err = svc.PlaceOrder("U03", "mocha", testTime)
	require.NoError(t, err)

	require.NoError(t, svc.EnableMenuItem("mocha", false))
	_, err = svc.PlaceOrder("U04", "mocha", testTime)
	assert.ErrorIs(t, err, ErrMenuDisabled)
}

func TestListMenuSorted(t *testing.T) {
	svc, _ := newTestService(t)

	menus, err := svc.ListMenu()
	require.NoError(t, err)
	require.Len(t, menus, 4)
	for i := 1; i < len(menus); i++ {
		assert.LessOrEqual(t, menus[i-1].SortOrder, menus[i].SortOrder)
	}
	// Disabled items stay visible
	assert.Equal(t, "mocha", menus[3].ID)
}
