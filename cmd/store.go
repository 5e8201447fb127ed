package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ojtlog/config"
	"ojtlog/ojt"
	"ojtlog/storage"
)

// openConfiguredStore loads the validated config and opens its database.
func openConfiguredStore() (*config.Config, *storage.Store, error) {
	cfg, err := config.LoadAndValidate()
	if err != nil {
		return nil, nil, err
	}

	store, err := storage.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, nil, err
	}
	return cfg, store, nil
}

func lookupUser(ctx context.Context, store *storage.Store, email string) (ojt.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return ojt.User{}, fmt.Errorf("--user is required")
	}

	user, err := store.GetUserByEmail(ctx, email)
	if errors.Is(err, ojt.ErrNotFound) {
		return ojt.User{}, fmt.Errorf("no account for %s (create one with: ojtlog user add --email %s)", email, email)
	}
	return user, err
}
