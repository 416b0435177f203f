package bot

import "log/slog"

// NewCommands builds the registry of chat commands. A nil catalog is enough
// to compile the registration payload; yeastinfo then reports an error.
func NewCommands(logger *slog.Logger, catalog YeastCatalog, meadToolsBaseURL string) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	r := NewRegistry()
	r.MustAdd(abvCommand())
	r.MustAdd(delleCommand())
	r.MustAdd(meadtoolsCommand(meadToolsBaseURL))
	r.MustAdd(yeastInfoCommand(logger, catalog))
	return r
}
