package bot

import (
	"fmt"
	"log/slog"
)

// RegisterCommands overwrites the application's commands with the registry
// payload, scoped to guildID when set and global otherwise.
func RegisterCommands(logger *slog.Logger, s Session, appID, guildID string, registry *Registry) error {
	commands := registry.ApplicationCommands()
	scope := "global"
	if guildID != "" {
		scope = "guild"
	}

	logger.Info("refreshing application commands", "count", len(commands), "scope", scope, "guild", guildID)
	created, err := s.ApplicationCommandBulkOverwrite(appID, guildID, commands)
	if err != nil {
		return fmt.Errorf("overwrite application commands: %w", err)
	}
	logger.Info("application commands reloaded", "count", len(created), "scope", scope)
	return nil
}
