package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SaiCharanMahadevan/calendar-agent/internal/config"
	"github.com/SaiCharanMahadevan/calendar-agent/internal/google"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize access to Gmail and Google Calendar",
		Long: `Run the OAuth flow for the Google account the assistant will manage.

Opens a consent URL, then exchanges the pasted authorization code for a
token cached locally. Run this once before "calendar-agent chat".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			conf, err := google.ReadOAuthConfig(cfg.GoogleCredentials)
			if err != nil {
				return fmt.Errorf("failed to read Google credentials: %w", err)
			}

			fmt.Println("Visit the URL below, grant access, and paste the authorization code:")
			fmt.Println()
			fmt.Println(google.GetAuthURL(conf))
			fmt.Println()
			fmt.Print("Authorization code: ")

			reader := bufio.NewReader(os.Stdin)
			code, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read authorization code: %w", err)
			}
			code = strings.TrimSpace(code)
			if code == "" {
				return fmt.Errorf("no authorization code provided")
			}

			if err := google.SaveToken(cmd.Context(), conf, code); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			fmt.Println("Authorization complete. You can now run \"calendar-agent chat\".")
			return nil
		},
	}

	return cmd
}
