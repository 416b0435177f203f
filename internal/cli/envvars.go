package cli

import (
	envparse "github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"
)

// rootEnv defines root CLI defaults sourced from MEADBOT_* env vars.
type rootEnv struct {
	// EnvFile is the dotenv path from MEADBOT_ENV_FILE.
	EnvFile string `env:"MEADBOT_ENV_FILE"`
}

// applyRootEnvDefaults fills flags the user did not set from the process environment.
func applyRootEnvDefaults(cmd *cobra.Command, opts *Options) error {
	var e rootEnv
	if err := envparse.Parse(&e); err != nil {
		return err
	}
	if e.EnvFile != "" {
		if f := cmd.Flag("env-file"); f == nil || !f.Changed {
			opts.EnvFile = e.EnvFile
		}
	}
	return nil
}
