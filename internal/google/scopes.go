package google

// Scopes are the Google OAuth scopes the agent requires.
//
// The scopes provide access to:
//   - Gmail: read and send
//   - Google Calendar: read and event management
var Scopes = []string{
	// Gmail scopes
	"https://www.googleapis.com/auth/gmail.readonly",
	"https://www.googleapis.com/auth/gmail.send",

	// Google Calendar scopes
	"https://www.googleapis.com/auth/calendar.readonly",
	"https://www.googleapis.com/auth/calendar.events",
}
