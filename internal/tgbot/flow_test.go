package tgbot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newCreateSession() *Session {
	return &Session{ChatID: 1, Flow: FlowCreateEvent, Step: StepTitle}
}

func TestAdvance_HappyPath(t *testing.T) {
	sess := newCreateSession()

	Advance(sess, "Friday Doubles")
	assert.Equal(t, StepDate, sess.Step)

	Advance(sess, "2024-04-15")
	assert.Equal(t, StepTime, sess.Step)

	Advance(sess, "18:00")
	assert.Equal(t, StepLocation, sess.Step)

	Advance(sess, "Padel Central")
	assert.Equal(t, StepPrice, sess.Step)

	Advance(sess, "12.5")
	assert.Equal(t, StepMaxPlayers, sess.Step)

	Advance(sess, "4")
	assert.Equal(t, StepDescription, sess.Step)

	reply := Advance(sess, "Bring water")
	assert.Equal(t, StepConfirm, sess.Step)
	assert.Contains(t, reply, "Friday Doubles")
	assert.Contains(t, reply, "2024-04-15 at 18:00")

	assert.Equal(t, Draft{
		Title:       "Friday Doubles",
		Date:        "2024-04-15",
		StartTime:   "18:00",
		Location:    "Padel Central",
		Price:       12.5,
		MaxPlayers:  4,
		Description: "Bring water",
	}, sess.Draft)
}

func TestAdvance_InvalidDateRePrompts(t *testing.T) {
	sess := newCreateSession()
	Advance(sess, "Friday Doubles")

	reply := Advance(sess, "2024-02-30")
	assert.Equal(t, StepDate, sess.Step, "invalid input must not advance")
	assert.Contains(t, reply, "valid date")
	assert.Empty(t, sess.Draft.Date)

	Advance(sess, "2024-04-15")
	assert.Equal(t, StepTime, sess.Step)
	assert.Equal(t, "2024-04-15", sess.Draft.Date)
}

func TestAdvance_InvalidTimeRePrompts(t *testing.T) {
	sess := newCreateSession()
	Advance(sess, "Friday Doubles")
	Advance(sess, "2024-04-15")

	Advance(sess, "25:00")
	assert.Equal(t, StepTime, sess.Step)

	Advance(sess, "9pm")
	assert.Equal(t, StepTime, sess.Step)

	Advance(sess, "21:00")
	assert.Equal(t, StepLocation, sess.Step)
}

func TestAdvance_PriceValidation(t *testing.T) {
	sess := newCreateSession()
	sess.Step = StepPrice

	Advance(sess, "-5")
	assert.Equal(t, StepPrice, sess.Step)

	Advance(sess, "free")
	assert.Equal(t, StepPrice, sess.Step)

	Advance(sess, "0")
	assert.Equal(t, StepMaxPlayers, sess.Step)
	assert.Zero(t, sess.Draft.Price)
}

func TestAdvance_MaxPlayersBounds(t *testing.T) {
	sess := newCreateSession()
	sess.Step = StepMaxPlayers

	Advance(sess, "1")
	assert.Equal(t, StepMaxPlayers, sess.Step)

	Advance(sess, "9")
	assert.Equal(t, StepMaxPlayers, sess.Step)

	Advance(sess, "8")
	assert.Equal(t, StepDescription, sess.Step)
	assert.Equal(t, 8, sess.Draft.MaxPlayers)
}

func TestAdvance_SkipDescription(t *testing.T) {
	sess := newCreateSession()
	sess.Step = StepDescription

	Advance(sess, "-")
	assert.Equal(t, StepConfirm, sess.Step)
	assert.Empty(t, sess.Draft.Description)
}

func TestSummary_FreeEvent(t *testing.T) {
	s := Summary(Draft{Title: "Casual", Date: "2024-04-15", StartTime: "18:00", Location: "Court 1", MaxPlayers: 4})
	assert.Contains(t, s, "Free")
	assert.NotContains(t, s, "per player")
}
