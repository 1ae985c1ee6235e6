package tgbot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/padelhub/backend/internal/events"
)

// Event-creation steps, in order.
const (
	StepTitle       = "title"
	StepDate        = "date"
	StepTime        = "time"
	StepLocation    = "location"
	StepPrice       = "price"
	StepMaxPlayers  = "max_players"
	StepDescription = "description"
	StepConfirm     = "confirm"
)

// Callback data for the confirm keyboard.
const (
	CallbackCreateConfirm = "create_confirm"
	CallbackCreateCancel  = "create_cancel"
)

// Draft accumulates the answers of the event-creation form.
type Draft struct {
	Title       string  `json:"title"`
	Date        string  `json:"date"`
	StartTime   string  `json:"start_time"`
	Location    string  `json:"location"`
	Price       float64 `json:"price"`
	MaxPlayers  int     `json:"max_players"`
	Description string  `json:"description"`
}

// Prompt returns the question for a step.
func Prompt(step string) string {
	switch step {
	case StepTitle:
		return "Let's create an event! What's the title?"
	case StepDate:
		return "What date? (YYYY-MM-DD)"
	case StepTime:
		return "What time does it start? (HH:MM)"
	case StepLocation:
		return "Where will you play? Send the court name."
	case StepPrice:
		return "Price per player in € (0 for free):"
	case StepMaxPlayers:
		return "How many players max? (2-8)"
	case StepDescription:
		return "Add a short description, or send - to skip."
	case StepConfirm:
		return "Does this look right?"
	default:
		return ""
	}
}

// Advance applies one answer to the session. Valid input stores the value,
// moves to the next step and returns its prompt; invalid input leaves the
// session untouched and returns a correction. The confirm step itself is
// resolved by callback buttons, not text.
func Advance(sess *Session, input string) (reply string) {
	input = strings.TrimSpace(input)

	switch sess.Step {
	case StepTitle:
		if input == "" {
			return "The title can't be empty. " + Prompt(StepTitle)
		}
		sess.Draft.Title = input
		sess.Step = StepDate

	case StepDate:
		if !events.ValidDate(input) {
			return "That doesn't look like a valid date. " + Prompt(StepDate)
		}
		sess.Draft.Date = input
		sess.Step = StepTime

	case StepTime:
		if !events.ValidTime(input) {
			return "That doesn't look like a valid time. " + Prompt(StepTime)
		}
		sess.Draft.StartTime = input
		sess.Step = StepLocation

	case StepLocation:
		if input == "" {
			return "The location can't be empty. " + Prompt(StepLocation)
		}
		sess.Draft.Location = input
		sess.Step = StepPrice

	case StepPrice:
		price, err := strconv.ParseFloat(input, 64)
		if err != nil || price < 0 {
			return "Send a number, 0 or more. " + Prompt(StepPrice)
		}
		sess.Draft.Price = price
		sess.Step = StepMaxPlayers

	case StepMaxPlayers:
		n, err := strconv.Atoi(input)
		if err != nil || n < 2 || n > 8 {
			return "Send a number between 2 and 8. " + Prompt(StepMaxPlayers)
		}
		sess.Draft.MaxPlayers = n
		sess.Step = StepDescription

	case StepDescription:
		if input != "-" {
			sess.Draft.Description = input
		}
		sess.Step = StepConfirm
		return Summary(sess.Draft) + "\n\n" + Prompt(StepConfirm)

	case StepConfirm:
		return "Use the buttons below to confirm or cancel."

	default:
		return ""
	}
	return Prompt(sess.Step)
}

// Summary renders the draft for the confirm step.
func Summary(d Draft) string {
	var b strings.Builder
	b.WriteString("📋 Here's your event:\n")
	fmt.Fprintf(&b, "🏷 %s\n", d.Title)
	fmt.Fprintf(&b, "📅 %s at %s\n", d.Date, d.StartTime)
	fmt.Fprintf(&b, "📍 %s\n", d.Location)
	if d.Price > 0 {
		fmt.Fprintf(&b, "💶 €%s per player\n", strconv.FormatFloat(d.Price, 'f', -1, 64))
	} else {
		b.WriteString("💶 Free\n")
	}
	fmt.Fprintf(&b, "👥 Up to %d players", d.MaxPlayers)
	if d.Description != "" {
		fmt.Fprintf(&b, "\n📝 %s", d.Description)
	}
	return b.String()
}
