package account

import (
	"context"
	"errors"
)

// ErrNotFound indicates a requested account is missing.
var ErrNotFound = errors.New("account not found")

// ErrDuplicateUsername indicates the username is already taken.
var ErrDuplicateUsername = errors.New("username already taken")

// Store persists account records.
//
// Username uniqueness is enforced by the store itself; CreateAccount is the
// only cross-request coordination point in the system.
type Store interface {
	CreateAccount(ctx context.Context, a Account) error
	GetAccountByUsername(ctx context.Context, username string) (Account, error)
	IncrementCoffeeCount(ctx context.Context, accountID string) (int64, error)
	CountAccounts(ctx context.Context) (int64, error)
}
