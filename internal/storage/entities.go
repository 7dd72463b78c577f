package storage

import "time"

// TokenKey is the credential key that gates authenticated catalog access.
const TokenKey = "token"

type Credential struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
