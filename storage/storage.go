// Package storage holds the durable key-value store that survives process restarts. The access
// token lives under TokenKey; its absence means "logged out".
package storage

import (
	"context"
	"errors"
	"fmt"
)

const TokenKey = "access_token"

var (
	// ErrStorage wraps every failure to read, write or remove a durable value.
	ErrStorage = errors.New("durable storage failure")
	// ErrCorrupt marks a stored document that exists but cannot be decoded. Writing to such a
	// store replaces the document.
	ErrCorrupt = errors.New("corrupt storage document")
)

type Storage interface {
	// Get returns the stored value and whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}

func wrap(op, key string, err error) error {
	return fmt.Errorf("%w: %s %q: %w", ErrStorage, op, key, err)
}

// TokenSource yields the bearer token to attach to an API request.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenSourceFunc adapts a plain function to TokenSource.
type TokenSourceFunc func(ctx context.Context) (string, error)

func (f TokenSourceFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}

// TokenFromStorage reads the persisted token on every call, so requests always carry whatever is
// durably stored rather than a cached copy.
func TokenFromStorage(s Storage) TokenSource {
	return TokenSourceFunc(func(ctx context.Context) (string, error) {
		value, ok, err := s.Get(ctx, TokenKey)
		if err != nil || !ok {
			return "", err
		}
		return value, nil
	})
}

// StaticToken always yields the same token. An empty token sends anonymous requests.
func StaticToken(token string) TokenSource {
	return TokenSourceFunc(func(context.Context) (string, error) {
		return token, nil
	})
}
