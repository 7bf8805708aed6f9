// Package google provides shared OAuth2 authentication for the Gmail and
// Calendar clients.
//
// The OAuth configuration is built from the client secrets JSON file named
// by GOOGLE_API_CREDENTIALS. After the one-time auth-code exchange, the
// token is cached under the user cache directory
// (~/.cache/calendar-agent/ on Linux) and refreshed transparently by the
// token source.
package google
