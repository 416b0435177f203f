package cli

import (
	"github.com/spf13/cobra"

	"github.com/meadtools/meadbot/internal/bot"
)

// newRegisterCommand creates the "register" subcommand that refreshes the
// application commands without connecting to the gateway.
func newRegisterCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Overwrite the application's chat and context menu commands",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())
			cfg, ok := ConfigFromContext(cmd.Context())
			if !ok {
				return errNoConfig
			}
			if err := cfg.RequireDiscord(); err != nil {
				return err
			}

			session, err := newSession(cfg)
			if err != nil {
				return err
			}
			registry := bot.NewCommands(logger, nil, cfg.MeadToolsBaseURL)
			return bot.RegisterCommands(logger, session, cfg.ApplicationID, cfg.GuildID, registry)
		},
	}
}
