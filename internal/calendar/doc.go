// Package calendar provides a client for interacting with the Google
// Calendar API.
//
// The client covers the operations the agent dispatches:
//   - Listing events on the primary calendar within a time range
//   - Creating events with attendees and location
//   - Querying free/busy intervals and finding open slots
//
// Authentication uses the shared OAuth token from the google package.
package calendar
