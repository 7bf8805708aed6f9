// Package config loads the process-wide configuration for the calendar
// agent from the environment, with optional .env file support.
//
// All values are read once at startup and treated as read-only for the
// lifetime of the process.
package config
