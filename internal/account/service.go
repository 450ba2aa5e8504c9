package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/beanhall/beanhall/internal/platform/id"
)

// ErrInvalidCredentials indicates a failed login. Unknown usernames and wrong
// passwords surface identically through this error.
var ErrInvalidCredentials = errors.New("invalid username or password")

// defaultAccounts are seeded on first run so a fresh install is usable
// without registering.
var defaultAccounts = []struct {
	username string
	password string
}{
	{"admin", "admin123"},
	{"barista", "coffee42"},
}

// Service implements account operations on top of a Store.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService creates an account service backed by store.
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Register creates a new account with a hashed password.
//
// Duplicate usernames surface as ErrDuplicateUsername so the web
// layer can recover them into a user-facing message.
func (s *Service) Register(ctx context.Context, username, password string) (Account, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return Account{}, fmt.Errorf("username is required")
	}
	if password == "" {
		return Account{}, fmt.Errorf("password is required")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return Account{}, err
	}
	accountID, err := id.NewID()
	if err != nil {
		return Account{}, fmt.Errorf("generate account id: %w", err)
	}

	a := Account{
		ID:           accountID,
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.store.CreateAccount(ctx, a); err != nil {
		if errors.Is(err, ErrDuplicateUsername) {
			return Account{}, err
		}
		return Account{}, fmt.Errorf("create account: %w", err)
	}
	return a, nil
}

// Authenticate verifies credentials and returns the session identity.
//
// Unknown usernames and wrong passwords both return ErrInvalidCredentials so
// a caller cannot distinguish which half of the credentials failed.
func (s *Service) Authenticate(ctx context.Context, username, password string) (Identity, error) {
	a, err := s.store.GetAccountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Identity{}, ErrInvalidCredentials
		}
		return Identity{}, fmt.Errorf("look up account: %w", err)
	}

	if !VerifyPassword(a.PasswordHash, password) {
		return Identity{}, ErrInvalidCredentials
	}
	return Identity{AccountID: a.ID, Username: a.Username}, nil
}

// Lookup returns the account for username, or ErrNotFound.
func (s *Service) Lookup(ctx context.Context, username string) (Account, error) {
	return s.store.GetAccountByUsername(ctx, username)
}

// IncrementCoffeeCount bumps the coffee counter for an account and returns
// the new value.
func (s *Service) IncrementCoffeeCount(ctx context.Context, accountID string) (int64, error) {
	return s.store.IncrementCoffeeCount(ctx, accountID)
}

// EnsureDefaultAccounts seeds the fixed default accounts when missing.
//
// The seeding is idempotent; concurrent starts racing on the same store lose
// to the uniqueness constraint and treat that as success.
func (s *Service) EnsureDefaultAccounts(ctx context.Context) error {
	for _, seed := range defaultAccounts {
		_, err := s.store.GetAccountByUsername(ctx, seed.username)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			return fmt.Errorf("check default account %s: %w", seed.username, err)
		}

		if _, err := s.Register(ctx, seed.username, seed.password); err != nil {
			if errors.Is(err, ErrDuplicateUsername) {
				continue
			}
			return fmt.Errorf("seed default account %s: %w", seed.username, err)
		}
	}
	return nil
}
