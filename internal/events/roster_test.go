package events

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/padelhub/backend/internal/models"
)

func p(id, name string) *models.Player {
	return &models.Player{ID: id, Name: name}
}

func TestDiff_JoinAndLeave(t *testing.T) {
	before := []*models.Player{p("a", "Ana"), p("b", "Ben")}
	after := []*models.Player{p("b", "Ben"), p("c", "Cleo")}

	joined, left := Diff(before, after)

	assert.Len(t, joined, 1)
	assert.Equal(t, "c", joined[0].ID)
	assert.Len(t, left, 1)
	assert.Equal(t, "a", left[0].ID)
}

func TestDiff_IdentityByIDOnly(t *testing.T) {
	// renaming a player is not a join or a leave
	before := []*models.Player{p("a", "Ana")}
	after := []*models.Player{p("a", "Ana Maria")}

	joined, left := Diff(before, after)

	assert.Empty(t, joined)
	assert.Empty(t, left)
}

func TestDiff_SkipsNilPlaceholders(t *testing.T) {
	before := []*models.Player{nil, p("a", "Ana"), nil}
	after := []*models.Player{p("a", "Ana"), nil, p("b", "Ben")}

	joined, left := Diff(before, after)

	assert.Len(t, joined, 1)
	assert.Equal(t, "b", joined[0].ID)
	assert.Empty(t, left)
}

func TestDiff_PreservesSnapshotOrder(t *testing.T) {
	before := []*models.Player{}
	after := []*models.Player{p("c", "Cleo"), p("a", "Ana"), p("b", "Ben")}

	joined, _ := Diff(before, after)

	assert.Equal(t, []string{"c", "a", "b"}, []string{joined[0].ID, joined[1].ID, joined[2].ID})
}

func TestUnchanged(t *testing.T) {
	a := []*models.Player{p("a", "Ana"), nil}
	b := []*models.Player{p("a", "Ana"), nil}
	assert.True(t, Unchanged(a, b))

	b[0].PaymentStatus = models.PlayerPaymentPaid
	assert.False(t, Unchanged(a, b))

	assert.True(t, Unchanged(nil, nil))
	assert.False(t, Unchanged(nil, []*models.Player{p("a", "Ana")}))
}

func TestCloneRoster(t *testing.T) {
	orig := []*models.Player{p("a", "Ana"), nil, p("b", "Ben")}
	clone := CloneRoster(orig)

	assert.Len(t, clone, 3)
	assert.Nil(t, clone[1])

	// mutating the clone must not touch the original
	clone[0].Name = "changed"
	assert.Equal(t, "Ana", orig[0].Name)

	assert.Nil(t, CloneRoster(nil))
}
