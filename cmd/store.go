package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/rdjhm0765/loanops-copilot/internal/store"
)

// initStore opens the configured persistence backend and runs migration.
func initStore(ctx context.Context) (store.Store, error) {
	var (
		s   store.Store
		err error
	)

	switch cfg.Store.Driver {
	case "jsonfile", "":
		dir := cfg.Store.DataDir
		if dir == "" {
			dir = "data"
		}
		s = store.NewJSON(dir)
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "loanops.db"
		}
		s, err = store.NewSQLite(dsn)
	case "postgres":
		s, err = store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := s.Migrate(ctx); err != nil {
		s.Close() //nolint:errcheck
		return nil, err
	}
	return s, nil
}
