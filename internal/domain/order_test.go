package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewOrderShotParsing(t *testing.T) {
	at := time.Date(2023, 3, 17, 9, 0, 0, 0, time.UTC)

	for _, tc := range []struct {
		options string
		shots   int
	}{
		{"", 1},
		{"iced", 1},
		{"double", 2},
		{"extrashot", 2},
		{"iced double", 2},
		{"doubleshot", 2},
		{"doub le", 1},
	} {
		o := NewOrder("U01", "latte", tc.options, at)
		assert.Equal(t, tc.shots, o.ShotCount, tc.options)
		assert.Equal(t, at.UnixMilli(), o.OrderedAt)
		assert.NotEmpty(t, o.ID)
		assert.False(t, o.IsPicked())
	}
}

func TestOrderDisplayName(t *testing.T) {
	at := time.Now()

	o := NewOrder("U01", "latte", "iced", at)
	assert.Equal(t, "latte", o.DisplayName())

	o = NewOrder("U01", "latte", "double", at)
	assert.Equal(t, "latte (double shot)", o.DisplayName())
}

func TestCompletedCopiesEveryField(t *testing.T) {
	o := NewOrder("U01", "latte", "double", time.Now())
	o.Price = 1500
	o.PickedAt = o.OrderedAt + 1000

	c := Completed(o)
	assert.Equal(t, o.ID, c.ID)
	assert.Equal(t, o.UserID, c.UserID)
	assert.Equal(t, o.MenuID, c.MenuID)
	assert.Equal(t, o.Options, c.Options)
	assert.Equal(t, o.OrderedAt, c.OrderedAt)
	assert.Equal(t, o.ShotCount, c.ShotCount)
	assert.Equal(t, o.Price, c.Price)
	assert.Equal(t, o.PickedAt, c.PickedAt)
}
