// Package app wires configuration, logging, the cache store and the remote
// client together and runs the interactive program.
package app

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/claimdeck/claimdeck/internal/cachedb"
	"github.com/claimdeck/claimdeck/internal/config"
	"github.com/claimdeck/claimdeck/internal/logging"
	"github.com/claimdeck/claimdeck/internal/logging/events"
	"github.com/claimdeck/claimdeck/internal/monday"
	"github.com/claimdeck/claimdeck/internal/ui"
	"github.com/claimdeck/claimdeck/internal/version"
)

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg *config.Config) error {
	if err := logging.Configure(cfg.LogFile); err != nil {
		return err
	}
	defer logging.Sync()
	events.App.Start(version.Version, "")
	defer events.App.Stop()

	client := monday.New(cfg.APIEndpoint, cfg.APIToken, cfg.BoardID,
		monday.WithLogger(logging.L()))

	var store ui.CachePersistence
	db, err := cachedb.Open(cfg.CacheFile)
	if err != nil {
		// The cache is a convenience; run without it.
		events.Cache.Warn(err)
	} else {
		defer db.Close()
		store = db
	}

	model := ui.NewModel(client, store, version.Version, time.Now())
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	}
	return nil
}
