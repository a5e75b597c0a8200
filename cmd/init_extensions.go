/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go handles extension initialisation and command
// registration.
//
// Extensions register during init() but are not initialised until the
// first command that needs the catalogue runs. The service is created once
// and shared across all extensions via the Context.

package cmd

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/jpl-au/caskfind/extension"
	"github.com/jpl-au/caskfind/internal/cask"
	"github.com/jpl-au/caskfind/internal/config"
	"github.com/jpl-au/caskfind/internal/log"
)

// noStoreCommands lists commands that bypass catalogue initialisation:
// bootstrap commands plus extension-declared storeless commands.
var noStoreCommands map[string]bool

// buildNoStoreCommands creates the set of commands that skip catalogue
// initialisation. Core bootstrap commands (init, guide, config, help,
// completion) must work before "caskfind init" has run. Extensions add
// theirs by implementing extension.Storeless.
func buildNoStoreCommands() map[string]bool {
	cmds := map[string]bool{
		"init":       true,
		"guide":      true,
		"config":     true,
		"help":       true,
		"completion": true,
	}

	for _, ext := range extension.All() {
		if s, ok := ext.(extension.Storeless); ok {
			for _, name := range s.NoStoreCommands() {
				cmds[name] = true
			}
		}
	}

	return cmds
}

// Global extension context, created during initialisation.
var (
	extContext extension.Context
	extService *cask.Service
	initOnce   sync.Once
	initErr    error
)

// initExtensions opens the catalogue and injects it into extensions, once
// per process. A missing catalogue surfaces as repo.ErrNotInitialised.
func initExtensions() error {
	initOnce.Do(func() {
		svc, err := cask.New(DB(), Dir())
		if err != nil {
			initErr = fmt.Errorf("opening catalogue: %w", err)
			return
		}
		extService = svc

		log.SetProject(filepath.Dir(svc.DBPath()))

		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}
		extContext = extension.NewContext(svc, svc.DB(), cfg)

		for _, ext := range extension.All() {
			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(extContext); err != nil {
					initErr = fmt.Errorf("init extension %s: %w", ext.Name(), err)
					return
				}
			}
		}
	})
	return initErr
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
// Called once before Execute runs.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}
		noStoreCommands = buildNoStoreCommands()
	})
}
