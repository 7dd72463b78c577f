// Package session derives the catalog identity (anonymous or authenticated)
// from the stored credential token. The identity is resolved once when a
// view mounts and then passed explicitly to every catalog call.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandeepkv93/chefschoice/internal/storage"
)

// CredentialStore is the read side of the persisted credential map.
type CredentialStore interface {
	Credential(ctx context.Context, key string) (string, error)
}

type Identity struct {
	Token string
}

// Anonymous is the identity used when no token is stored.
var Anonymous = Identity{}

func (i Identity) Authenticated() bool {
	return i.Token != ""
}

func (i Identity) String() string {
	if i.Authenticated() {
		return "authenticated"
	}
	return "anonymous"
}

// Resolve reads the "token" credential. A missing token is not an error; it
// yields the anonymous identity.
func Resolve(ctx context.Context, store CredentialStore) (Identity, error) {
	if store == nil {
		return Anonymous, nil
	}
	token, err := store.Credential(ctx, storage.TokenKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Anonymous, nil
		}
		return Anonymous, fmt.Errorf("session: read token: %w", err)
	}
	return Identity{Token: token}, nil
}
