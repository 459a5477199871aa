// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"

	"github.com/userhub/userhub/internal/config"
)

// DefaultSQLitePath is used when the sqlite engine is selected without a path.
const DefaultSQLitePath = "userhub.db"

// Create builds the Data Source Name from the configuration for the
// configured engine.
func Create(cfg *config.Config) string {
	switch cfg.DB.Engine {
	case config.EngineMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
			cfg.DB.User,
			cfg.DB.Password,
			cfg.DB.Host,
			cfg.DB.Port,
			cfg.DB.Name,
			cfg.DB.Extras,
		)
	case config.EnginePostgres:
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d %s",
			cfg.DB.Host,
			cfg.DB.User,
			cfg.DB.Password,
			cfg.DB.Name,
			cfg.DB.Port,
			cfg.DB.Extras,
		)
	default:
		path := cfg.DB.Path
		if path == "" {
			path = DefaultSQLitePath
		}

		// membership integrity relies on foreign keys being enforced
		return path + "?_pragma=foreign_keys(1)"
	}
}
