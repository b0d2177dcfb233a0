// Package credstore persists the bearer credential between runs of the
// console. The store holds exactly one slot; absence of a stored token means
// logged out at the next restoration, and presence never implies validity.
package credstore

import "context"

// TokenKey is the durable slot the session token lives under.
const TokenKey = "serviceToken"

// Store is the durable credential slot. Load returns an empty string when no
// token is stored; absence is a normal state, not an error.
type Store interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
