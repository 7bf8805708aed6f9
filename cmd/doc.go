// Package cmd implements the command-line interface for calendar-agent.
//
// This package provides the following commands:
//   - chat: Start the interactive natural-language assistant
//   - auth: Run the Google OAuth flow and cache a token
//   - version: Display version information
//
// The chat command is the default command when no subcommand is specified.
package cmd
