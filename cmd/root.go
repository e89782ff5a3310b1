package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"media-preview-service/infrastructure/config"
)

var (
	cfgFile string
	cfg     *config.Config
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "media-preview-service",
	Short: "Build short stream-copy preview clips from source videos",
	Long: `media-preview-service cuts a short preview clip out of a larger source
video by driving ffmpeg in stream-copy mode, so no re-encoding takes place:

  - Sanitize the requested time window into a valid trim range
  - Cut the window with fast-start metadata placement and reset timestamps
  - Clean up partial output whenever the tool fails
  - Remove previously produced previews on request

Example:
  media-preview-service preview --source recording.mp4 --start 125.5 --end 140`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")
}

func initConfig() {
	if cfgFile == "" {
		cfgFile = "config/config.yaml"
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		// Config file is optional; commands fall back to defaults.
		cfg = nil
	}
}

// GetConfig returns the loaded configuration
func GetConfig() *config.Config {
	return cfg
}

// newLogger builds the structured logger for command execution, honoring
// --verbose over the configured level.
func newLogger() *zap.Logger {
	level := zap.InfoLevel
	if cfg != nil && cfg.Logging.Level != "" {
		if parsed, err := zap.ParseAtomicLevel(cfg.Logging.Level); err == nil {
			level = parsed.Level()
		}
	}
	if verbose {
		level = zap.DebugLevel
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zcfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
