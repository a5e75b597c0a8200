// context.go defines the Context interface for extension access to caskfind
// internals.
//
// Extensions receive Context during Init(), not at construction: they
// register before the catalogue is open.

package extension

import (
	"database/sql"

	"github.com/jpl-au/caskfind/internal/config"
	"github.com/jpl-au/caskfind/internal/service"
)

// Context provides extensions controlled access to caskfind internals.
type Context interface {
	// Service returns the catalogue service.
	Service() service.Service

	// DB exposes the database for extensions needing custom tables.
	// Extensions should create their own tables, not modify core tables.
	DB() *sql.DB

	// Config returns the merged user configuration.
	Config() *config.Config
}

// extContext implements Context.
type extContext struct {
	svc service.Service
	db  *sql.DB
	cfg *config.Config
}

// NewContext creates a new extension context.
func NewContext(svc service.Service, db *sql.DB, cfg *config.Config) Context {
	return &extContext{
		svc: svc,
		db:  db,
		cfg: cfg,
	}
}

func (c *extContext) Service() service.Service { return c.svc }

func (c *extContext) DB() *sql.DB { return c.db }

func (c *extContext) Config() *config.Config { return c.cfg }
