package cmd

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/SaiCharanMahadevan/calendar-agent/internal/agent"
	"github.com/SaiCharanMahadevan/calendar-agent/internal/calendar"
	"github.com/SaiCharanMahadevan/calendar-agent/internal/config"
	"github.com/SaiCharanMahadevan/calendar-agent/internal/gmail"
	"github.com/SaiCharanMahadevan/calendar-agent/internal/google"
	"github.com/SaiCharanMahadevan/calendar-agent/internal/instrumentation"
	"github.com/SaiCharanMahadevan/calendar-agent/internal/intent"
	"github.com/SaiCharanMahadevan/calendar-agent/internal/llm"
	"github.com/SaiCharanMahadevan/calendar-agent/internal/logging"
)

func newChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start the interactive assistant",
		Long: `Start the interactive loop. Each line of input is resolved to a single
email or calendar action and executed. Mutating actions ask for
confirmation before any API call is made.

Requires OPENAI_API_KEY and GOOGLE_API_CREDENTIALS to be set, and a
completed "calendar-agent auth" run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			closer, err := logging.Setup(cfg.LogFile, cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("failed to set up logging: %w", err)
			}
			defer closer.Close()

			ctx := cmd.Context()

			provider, err := instrumentation.NewProvider(ctx, version, cfg.MetricsEnabled)
			if err != nil {
				return fmt.Errorf("failed to set up instrumentation: %w", err)
			}
			defer provider.Shutdown(ctx)

			oauthConf, err := google.ReadOAuthConfig(cfg.GoogleCredentials)
			if err != nil {
				return fmt.Errorf("failed to read Google credentials: %w", err)
			}
			if !google.HasToken() {
				return fmt.Errorf("no Google token found; run \"calendar-agent auth\" first")
			}

			gmailClient, err := gmail.NewClient(ctx, oauthConf)
			if err != nil {
				return fmt.Errorf("failed to create Gmail client: %w", err)
			}
			calendarClient, err := calendar.NewClient(ctx, oauthConf)
			if err != nil {
				return fmt.Errorf("failed to create Calendar client: %w", err)
			}

			completer := llm.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.Model, cfg.MaxTokens)
			resolver := intent.NewResolver(completer)

			logger := slog.Default()
			dispatcher := agent.NewDispatcher(gmailClient, calendarClient, completer, provider.Metrics(), logger)

			// Gate and session must share one buffered reader so the
			// confirmation answer is not swallowed by the loop's buffer.
			stdin := bufio.NewReader(os.Stdin)
			gate := agent.NewGate(stdin, os.Stdout)
			session := agent.NewSession(resolver, dispatcher, gate, stdin, os.Stdout, cfg.CommandTimeout, provider.Metrics(), logger)

			return session.Run(ctx)
		},
	}

	return cmd
}
