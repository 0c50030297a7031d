package domain

import "context"

// AccountStore defines the interface for persisting the account set
// Only number, holder and balance survive a round trip: loaded accounts carry
// the Fixed interest policy and an empty history
type AccountStore interface {
	// Save replaces whatever the store held with accounts, in the given order
	Save(ctx context.Context, accounts []AccountSnapshot) error

	// Load reconstructs the saved accounts in their saved order
	// Returns ErrNoSavedData when nothing has been saved yet
	Load(ctx context.Context) ([]*Account, error)
}
