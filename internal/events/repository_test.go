package events

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/padelhub/backend/internal/models"
)

func TestMarkPaid_PatchesOnlyMatchingEntry(t *testing.T) {
	ev := &models.Event{
		Players: []*models.Player{
			{ID: "a", Name: "Ana"},
			nil,
			{ID: "b", Name: "Ben"},
		},
	}

	err := markPaid(ev, "b")
	assert.NoError(t, err)
	assert.Equal(t, models.PlayerPaymentPaid, ev.Players[2].PaymentStatus)
	assert.Empty(t, ev.Players[0].PaymentStatus, "other entries stay untouched")
	assert.Nil(t, ev.Players[1])
}

func TestMarkPaid_MissingPlayerIsNoChange(t *testing.T) {
	ev := &models.Event{
		Players: []*models.Player{
			{ID: "a", Name: "Ana"},
		},
	}

	err := markPaid(ev, "ghost")
	assert.ErrorIs(t, err, errNoChange, "a miss must not look like a mutation")
	assert.Empty(t, ev.Players[0].PaymentStatus)
}
