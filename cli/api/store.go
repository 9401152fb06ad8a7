package api

import (
	"context"
	"io"
	"log/slog"

	"github.com/oaiiae/huma-phonebook/datastores"
)

type StoreOptions struct {
	Database string `doc:"SQLite database file, contacts are kept in memory when empty"`
	Seed     string `doc:"YAML file of contacts created at startup"`
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenStore returns the store selected by options, seeded with the contacts
// of the seed file. An in-memory store without seed file starts with
// [datastores.DefaultContacts].
func OpenStore(ctx context.Context, options *StoreOptions, logger *slog.Logger) (datastores.ContactsStore, io.Closer, error) {
	var seed []*datastores.Contact
	switch {
	case options.Seed != "":
		var err error
		seed, err = datastores.LoadSeed(options.Seed)
		if err != nil {
			return nil, nil, err
		}
	case options.Database == "":
		seed = datastores.DefaultContacts()
	}

	if options.Database == "" {
		store := datastores.NewContactsInmem()
		_, err := datastores.Seed(ctx, store, seed)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("contacts kept in memory", "seeded", len(seed))
		return store, nopCloser{}, nil
	}

	store, err := datastores.OpenContactsSQLite(ctx, options.Database)
	if err != nil {
		return nil, nil, err
	}
	created, err := datastores.Seed(ctx, store, seed)
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	logger.Info("contacts stored in sqlite", "database", options.Database, "seeded", created)
	return store, store, nil
}
