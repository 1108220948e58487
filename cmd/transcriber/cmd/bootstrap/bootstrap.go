// Package bootstrap loads settings and the logger shared by the commands.
package bootstrap

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"meeting-transcriber/internal/app/logger"
	"meeting-transcriber/internal/config"
)

const (
	ConfigFlag  = "config"
	VerboseFlag = "verbose"
)

// Load reads .env, requires the API key and layers the settings. The flags
// are the persistent flags registered on the root command.
func Load(cmd *cobra.Command) (*config.Settings, *zap.Logger, error) {
	configPath, _ := cmd.Flags().GetString(ConfigFlag)
	verbose, _ := cmd.Flags().GetBool(VerboseFlag)

	keys, err := config.InitializeConfig()
	if err != nil {
		return nil, nil, err
	}

	settings, err := config.LoadSettings(configPath, keys)
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(verbose)
	if err != nil {
		return nil, nil, err
	}
	return settings, log, nil
}
