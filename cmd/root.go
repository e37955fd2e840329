// Package cmd defines the claimdeck command tree. The bare command starts
// the interactive browser; subcommands cover scripted use.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/claimdeck/claimdeck/internal/app"
	"github.com/claimdeck/claimdeck/internal/config"
	"github.com/claimdeck/claimdeck/internal/logging"
	"github.com/claimdeck/claimdeck/internal/monday"
)

var (
	cfgFile string
	logFile string
)

var rootCmd = &cobra.Command{
	Use:          "claimdeck",
	Short:        "Browse and edit your time-tracking claims from the terminal",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return app.Run(cfg)
	},
}

// Execute runs the command tree.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.config/claimdeck/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file (default from config)")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}
	return cfg, nil
}

// newClient builds the remote client for batch commands, with logging set
// up so remote calls are traceable.
func newClient(cfg *config.Config) *monday.Client {
	if err := logging.Configure(cfg.LogFile); err != nil {
		fmt.Fprintln(os.Stderr, "Warning:", err)
	}
	return monday.New(cfg.APIEndpoint, cfg.APIToken, cfg.BoardID,
		monday.WithLogger(logging.L()))
}
