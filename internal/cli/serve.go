package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/cobra"

	"github.com/meadtools/meadbot/internal/bot"
	"github.com/meadtools/meadbot/internal/config"
	"github.com/meadtools/meadbot/internal/githubapi"
	"github.com/meadtools/meadbot/internal/issues"
	"github.com/meadtools/meadbot/internal/webhook"
	"github.com/meadtools/meadbot/internal/yeast"
)

var errNoConfig = errors.New("configuration not loaded")

// newServeCommand creates the "serve" subcommand that runs the bot and the webhook server.
func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Connect to the chat gateway and serve the webhook endpoint",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := LoggerFromContext(cmd.Context())
			cfg, ok := ConfigFromContext(cmd.Context())
			if !ok {
				return errNoConfig
			}
			if err := cfg.RequireDiscord(); err != nil {
				return err
			}
			if err := cfg.RequireGitHub(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, logger, cfg)
		},
	}
}

func runServe(ctx context.Context, logger *slog.Logger, cfg *config.Config) error {
	session, err := newSession(cfg)
	if err != nil {
		return err
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	tracker, err := githubapi.NewClient(logger, cfg.GitHubToken, cfg.GitHubOwner)
	if err != nil {
		return err
	}

	catalog := yeast.NewCatalog(yeast.NewClient(logger, cfg.MeadToolsBaseURL, nil), cfg.YeastCacheTTL, nil)
	registry := bot.NewCommands(logger, catalog, cfg.MeadToolsBaseURL)

	drafts := issues.NewDraftStore(cfg.DraftTTL)
	drafts.Start()
	defer drafts.Stop()

	router := bot.NewRouter(bot.RouterDeps{
		Logger:   logger,
		Session:  session,
		Registry: registry,
		Drafts:   drafts,
		Repos:    issues.NewRepositorySet(cfg.Repositories),
		Tracker:  tracker,
	})
	session.AddHandler(router.OnInteractionCreate)
	session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		logger.Info("connected to chat gateway", "user", r.User.String(), "guilds", len(r.Guilds))
		if err := bot.RegisterCommands(logger, s, cfg.ApplicationID, cfg.GuildID, registry); err != nil {
			logger.Error("command registration failed", "error", err)
		}
	})

	if err := session.Open(); err != nil {
		return fmt.Errorf("open chat gateway: %w", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Warn("closing chat gateway failed", "error", err)
		}
	}()

	server := webhook.NewServer(logger, cfg.ListenAddr(), webhook.NewHandler(logger, session, cfg.WebhookSecret))
	return server.Serve(ctx)
}

func newSession(cfg *config.Config) (*discordgo.Session, error) {
	session, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create chat session: %w", err)
	}
	return session, nil
}
