package notify

import (
	"fmt"
	"strconv"

	"github.com/padelhub/backend/internal/models"
)

// Email is a rendered message ready for the outbox.
type Email struct {
	Subject string
	HTML    string
}

// formatPrice passes the numeric value through without rounding, so "12.5"
// stays "12.5" and "15" stays "15".
func formatPrice(p float64) string {
	return "€" + strconv.FormatFloat(p, 'f', -1, 64)
}

// eventDetails renders the shared detail block. The price line is omitted
// entirely for free events.
func eventDetails(ev *models.Event) string {
	html := fmt.Sprintf(`<p><strong>%s</strong></p>
<p>📅 %s at %s<br>📍 %s</p>`, ev.Title, ev.Date, ev.StartTime, ev.LocationName)
	if ev.Price > 0 {
		html += fmt.Sprintf("\n<p>💶 %s per player</p>", formatPrice(ev.Price))
	}
	return html
}

// RenderEventCreated confirms a new event to its creator.
func RenderEventCreated(ev *models.Event, creatorName string) Email {
	return Email{
		Subject: "Your padel event is live: " + ev.Title,
		HTML: fmt.Sprintf(`<h2>Hi %s!</h2>
<p>Your event has been created and is now visible to other players.</p>
%s
<p>We'll let you know as soon as someone joins.</p>`, creatorName, eventDetails(ev)),
	}
}

// RenderPlayerJoined welcomes a player who joined the roster.
func RenderPlayerJoined(ev *models.Event, player models.Player) Email {
	return Email{
		Subject: "You're in: " + ev.Title,
		HTML: fmt.Sprintf(`<h2>Hi %s!</h2>
<p>You've joined the event. See you on court!</p>
%s`, player.Name, eventDetails(ev)),
	}
}

// RenderNewPlayer tells the creator someone joined their event.
func RenderNewPlayer(ev *models.Event, player models.Player, spotsLeft int) Email {
	return Email{
		Subject: fmt.Sprintf("%s joined %s", player.Name, ev.Title),
		HTML: fmt.Sprintf(`<h2>Good news!</h2>
<p><strong>%s</strong> just joined your event.</p>
%s
<p>%d spot(s) left.</p>`, player.Name, eventDetails(ev), spotsLeft),
	}
}

// RenderPlayerLeft confirms to a player that they left the roster.
func RenderPlayerLeft(ev *models.Event, player models.Player) Email {
	return Email{
		Subject: "You've left: " + ev.Title,
		HTML: fmt.Sprintf(`<h2>Hi %s,</h2>
<p>You've been removed from the roster. Hope to see you at another event soon!</p>
%s`, player.Name, eventDetails(ev)),
	}
}

// RenderPlayerLeftCreator tells the creator a player dropped out.
func RenderPlayerLeftCreator(ev *models.Event, player models.Player, spotsLeft int) Email {
	return Email{
		Subject: fmt.Sprintf("%s left %s", player.Name, ev.Title),
		HTML: fmt.Sprintf(`<h2>Heads up</h2>
<p><strong>%s</strong> has left your event.</p>
%s
<p>%d spot(s) are now open.</p>`, player.Name, eventDetails(ev), spotsLeft),
	}
}

// RenderReminder is the one-hour-before reminder for a roster player.
func RenderReminder(ev *models.Event, player models.Player) Email {
	return Email{
		Subject: "Starting soon: " + ev.Title,
		HTML: fmt.Sprintf(`<h2>Hi %s!</h2>
<p>Your event starts in about an hour. Time to grab your racket!</p>
%s`, player.Name, eventDetails(ev)),
	}
}

// RenderMemoryShare invites a player to upload photos after a completed event.
func RenderMemoryShare(ev *models.Event, player models.Player, uploadURL string) Email {
	html := fmt.Sprintf(`<h2>Hi %s!</h2>
<p>Hope you enjoyed the match! Share your photos with the other players.</p>
%s`, player.Name, eventDetails(ev))
	if uploadURL != "" {
		html += fmt.Sprintf("\n<p><a href=\"%s\">Upload your photos</a></p>", uploadURL)
	}
	return Email{
		Subject: "Share your memories from " + ev.Title,
		HTML:    html,
	}
}

// RenderWelcome greets a freshly registered user.
func RenderWelcome(name string) Email {
	return Email{
		Subject: "Welcome to PadelHub!",
		HTML: fmt.Sprintf(`<h2>Welcome, %s!</h2>
<p>Your account is ready. Browse upcoming events, join a roster, or create
your own match.</p>
<p>See you on court! 🎾</p>`, name),
	}
}

// RenderFeedback wraps a user-submitted feedback message for the team inbox.
func RenderFeedback(fromEmail, message string) Email {
	return Email{
		Subject: "New feedback from " + fromEmail,
		HTML:    fmt.Sprintf("<p>From: %s</p><blockquote>%s</blockquote>", fromEmail, message),
	}
}
