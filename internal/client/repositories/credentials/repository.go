// Package credentials persists the session token and user id between runs
// of the client. Both values must be present for a session to be restored.
package credentials

import "context"

// Storage keys.
const (
	KeyToken  = "authToken"
	KeyUserID = "userId"
)

// Credentials is what the client needs to restore a session.
type Credentials struct {
	Token  string
	UserID string
}

// Complete reports whether both keys were found.
func (c Credentials) Complete() bool {
	return c.Token != "" && c.UserID != ""
}

type Repository interface {
	// Get returns "" for a missing key.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error

	Load(ctx context.Context) (Credentials, error)
	// Save writes both keys atomically.
	Save(ctx context.Context, c Credentials) error
	// Clear removes both keys.
	Clear(ctx context.Context) error
}
