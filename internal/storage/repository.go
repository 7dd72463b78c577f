package storage

import (
	"context"
	"errors"
	"io"
)

var ErrNotFound = errors.New("storage: not found")

// Repository is the persisted credential map.
type Repository interface {
	io.Closer
	PutCredential(ctx context.Context, in Credential) error
	Credential(ctx context.Context, key string) (string, error)
	GetCredential(ctx context.Context, key string) (Credential, error)
	DeleteCredential(ctx context.Context, key string) error
}
