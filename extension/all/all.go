// Package all imports the built-in caskfind extensions.
// Import this package to register all built-in commands.
package all

import (
	// Each registers itself via init().
	_ "github.com/jpl-au/caskfind/extension/catalog"
	_ "github.com/jpl-au/caskfind/extension/core"
	_ "github.com/jpl-au/caskfind/extension/search"
)
