// Package config contains the loader and strongly typed model for meadbot process configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	envparse "github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/meadtools/meadbot/internal/env"
	"github.com/meadtools/meadbot/internal/issues"
)

// maxSelectOptions is the chat platform's limit on select menu entries.
const maxSelectOptions = 25

// Config is the process-wide configuration.
type Config struct {
	Settings

	// Repositories is the static repository set offered in the select menu.
	Repositories []issues.Repository
}

// Settings holds the values sourced from environment variables.
type Settings struct {
	// BotToken is the Discord bot token from BOT_TOKEN.
	BotToken string `env:"BOT_TOKEN"`
	// ApplicationID is the Discord application id from APPLICATION_ID.
	ApplicationID string `env:"APPLICATION_ID"`
	// GuildID scopes command registration from GUILD_ID; empty registers globally.
	GuildID string `env:"GUILD_ID"`
	// GitHubToken is the issue tracker credential from GITHUB_ACCESS_TOKEN.
	GitHubToken string `env:"GITHUB_ACCESS_TOKEN"`
	// GitHubOwner is the account owning the repositories from GITHUB_USERNAME.
	GitHubOwner string `env:"GITHUB_USERNAME"`
	// WebhookSecret enables signature checks on /github-webhook from GITHUB_WEBHOOK_SECRET.
	WebhookSecret string `env:"GITHUB_WEBHOOK_SECRET"`
	// Port is the HTTP listen port from PORT.
	Port int `env:"PORT" envDefault:"3000"`
	// MeadToolsBaseURL is the companion web tool root from MEADTOOLS_BASE_URL.
	MeadToolsBaseURL string `env:"MEADTOOLS_BASE_URL" envDefault:"https://meadtools.com"`
	// YeastCacheTTL is the yeast catalog cache lifetime from YEAST_CACHE_TTL.
	YeastCacheTTL time.Duration `env:"YEAST_CACHE_TTL" envDefault:"5m"`
	// DraftTTL is how long an issue draft waits for its modal from DRAFT_TTL.
	DraftTTL time.Duration `env:"DRAFT_TTL" envDefault:"10m"`
	// ReposFile is an optional YAML repository list from MEADBOT_REPOS_FILE.
	ReposFile string `env:"MEADBOT_REPOS_FILE"`
	// LogLevel is the default logging level from LOG_LEVEL.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// reposFile is the on-disk shape of MEADBOT_REPOS_FILE.
type reposFile struct {
	Repositories []issues.Repository `yaml:"repositories" toml:"repositories"`
}

// Load parses vars into a Config and resolves the repository list.
func Load(vars env.Vars) (*Config, error) {
	cfg := &Config{}
	if err := envparse.ParseWithOptions(&cfg.Settings, envparse.Options{Environment: vars}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	cfg.Repositories = issues.DefaultRepositories()
	if path := strings.TrimSpace(cfg.ReposFile); path != "" {
		repos, err := LoadRepositories(path)
		if err != nil {
			return nil, err
		}
		cfg.Repositories = repos
	}

	if err := validateRepositories(cfg.Repositories); err != nil {
		return nil, err
	}
	cfg.MeadToolsBaseURL = strings.TrimRight(cfg.MeadToolsBaseURL, "/")
	return cfg, nil
}

// LoadRepositories reads a repository list. Files ending in .toml are
// decoded as TOML, everything else as YAML.
func LoadRepositories(path string) ([]issues.Repository, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read repositories file %q: %w", path, err)
	}
	var file reposFile
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(raw, &file)
	} else {
		err = yaml.Unmarshal(raw, &file)
	}
	if err != nil {
		return nil, fmt.Errorf("parse repositories file %q: %w", path, err)
	}
	for i := range file.Repositories {
		file.Repositories[i].Label = strings.TrimSpace(file.Repositories[i].Label)
		file.Repositories[i].Value = strings.TrimSpace(file.Repositories[i].Value)
		if file.Repositories[i].Label == "" {
			file.Repositories[i].Label = file.Repositories[i].Value
		}
	}
	return file.Repositories, nil
}

func validateRepositories(repos []issues.Repository) error {
	if len(repos) == 0 {
		return fmt.Errorf("repository list is empty")
	}
	if len(repos) > maxSelectOptions {
		return fmt.Errorf("repository list has %d entries, at most %d are allowed", len(repos), maxSelectOptions)
	}
	seen := make(map[string]struct{}, len(repos))
	for _, r := range repos {
		if r.Value == "" {
			return fmt.Errorf("repository %q has an empty value", r.Label)
		}
		if strings.Contains(r.Value, ":") {
			return fmt.Errorf("repository value %q must not contain ':'", r.Value)
		}
		if _, dup := seen[r.Value]; dup {
			return fmt.Errorf("duplicate repository value %q", r.Value)
		}
		seen[r.Value] = struct{}{}
	}
	return nil
}

// RequireDiscord reports an error when the chat platform credentials are missing.
func (c *Config) RequireDiscord() error {
	var missing []string
	if strings.TrimSpace(c.BotToken) == "" {
		missing = append(missing, "BOT_TOKEN")
	}
	if strings.TrimSpace(c.ApplicationID) == "" {
		missing = append(missing, "APPLICATION_ID")
	}
	return missingErr(missing)
}

// RequireGitHub reports an error when the issue tracker credentials are missing.
func (c *Config) RequireGitHub() error {
	var missing []string
	if strings.TrimSpace(c.GitHubToken) == "" {
		missing = append(missing, "GITHUB_ACCESS_TOKEN")
	}
	if strings.TrimSpace(c.GitHubOwner) == "" {
		missing = append(missing, "GITHUB_USERNAME")
	}
	return missingErr(missing)
}

func missingErr(missing []string) error {
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required environment: %s", strings.Join(missing, ", "))
}

// ListenAddr returns the HTTP listen address for Port.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
