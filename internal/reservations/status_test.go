package reservations

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusPending, false},
		{StatusConfirmed, StatusRejected, false},
		{StatusConfirmed, StatusPending, false},
		{StatusRejected, StatusConfirmed, false},
		{StatusRejected, StatusPending, false},
		{Status("BOGUS"), StatusConfirmed, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.ok, CanTransition(c.from, c.to), "%s -> %s", c.from, c.to)
	}
}

func TestStatusPending(t *testing.T) {
	assert.True(t, StatusPending.Pending())
	assert.False(t, StatusConfirmed.Pending())
	assert.False(t, StatusRejected.Pending())
}
