package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the calendar-agent application
var rootCmd = &cobra.Command{
	Use:   "calendar-agent",
	Short: "Manage Gmail and Google Calendar from natural language",
	Long: `calendar-agent is an interactive assistant that turns natural language
into Gmail and Google Calendar operations.

Ask it to summarize unread emails, send a message, schedule a meeting,
list upcoming events, or find free time. Actions that change anything
(sending email, creating events) always ask for confirmation first.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "calendar-agent version %s\n" .Version}}`)

	// If no subcommand is provided, run the chat command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "chat")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newChatCmd())
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newVersionCmd())
}
