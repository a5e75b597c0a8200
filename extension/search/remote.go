package search

import (
	"log/slog"

	"github.com/jpl-au/caskfind/internal/config"
	"github.com/jpl-au/caskfind/internal/github"
	"github.com/jpl-au/caskfind/internal/remote"
	"github.com/jpl-au/caskfind/internal/search"
	"github.com/jpl-au/caskfind/internal/service"
)

// newRemote builds the remote matcher from configuration. Returns nil when
// remote search is disabled. Warnings go to logger, or the console logger
// when logger is nil.
func newRemote(cfg *config.Config, svc service.Service, logger *slog.Logger) search.RemoteMatcher {
	if !cfg.RemoteEnabled() {
		return nil
	}
	client := github.New(github.Options{
		BaseURL: cfg.RemoteAPIURL(),
		Token:   github.TokenFromEnv(),
		Timeout: cfg.RemoteTimeout(),
	})
	m := remote.New(client, svc, svc, remote.Options{
		User:      cfg.RemoteUser(),
		Path:      cfg.RemotePath(),
		Extension: cfg.RemoteExtension(),
	})
	if logger != nil {
		m = m.WithLogger(logger)
	}
	return m
}
