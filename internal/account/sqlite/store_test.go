package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/beanhall/beanhall/internal/account"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "accounts.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func testAccount(id, username string) account.Account {
	return account.Account{
		ID:           id,
		Username:     username,
		PasswordHash: "hash-" + username,
		CreatedAt:    time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(" "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestStoreDBNilSafe(t *testing.T) {
	var store *Store
	if store.DB() != nil {
		t.Fatal("expected nil DB for nil store")
	}
}

func TestCreateGetAccountRoundTrip(t *testing.T) {
	store := openTempStore(t)

	input := testAccount("acct-1", "nadia")
	if err := store.CreateAccount(context.Background(), input); err != nil {
		t.Fatalf("create account: %v", err)
	}

	got, err := store.GetAccountByUsername(context.Background(), "nadia")
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if got.ID != input.ID || got.Username != input.Username || got.PasswordHash != input.PasswordHash {
		t.Fatalf("unexpected account: %+v", got)
	}
	if got.CoffeeCount != 0 {
		t.Fatalf("coffee count = %d, want 0", got.CoffeeCount)
	}
	if !got.CreatedAt.Equal(input.CreatedAt) {
		t.Fatalf("created at = %v, want %v", got.CreatedAt, input.CreatedAt)
	}
}

func TestCreateAccountDuplicateUsername(t *testing.T) {
	store := openTempStore(t)

	if err := store.CreateAccount(context.Background(), testAccount("acct-1", "nadia")); err != nil {
		t.Fatalf("create account: %v", err)
	}

	err := store.CreateAccount(context.Background(), testAccount("acct-2", "nadia"))
	if !errors.Is(err, account.ErrDuplicateUsername) {
		t.Fatalf("expected duplicate username error, got %v", err)
	}

	count, err := store.CountAccounts(context.Background())
	if err != nil {
		t.Fatalf("count accounts: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
}

func TestCreateAccountRequiresFields(t *testing.T) {
	store := openTempStore(t)

	if err := store.CreateAccount(context.Background(), account.Account{ID: " "}); err == nil {
		t.Fatal("expected error for empty account id")
	}
	if err := store.CreateAccount(context.Background(), account.Account{ID: "acct-1", Username: " "}); err == nil {
		t.Fatal("expected error for empty username")
	}
	if err := store.CreateAccount(context.Background(), account.Account{ID: "acct-1", Username: "nadia"}); err == nil {
		t.Fatal("expected error for empty password hash")
	}
}

func TestGetAccountByUsernameCaseSensitive(t *testing.T) {
	store := openTempStore(t)

	if err := store.CreateAccount(context.Background(), testAccount("acct-1", "Nadia")); err != nil {
		t.Fatalf("create account: %v", err)
	}

	_, err := store.GetAccountByUsername(context.Background(), "nadia")
	if !errors.Is(err, account.ErrNotFound) {
		t.Fatalf("expected not found for different case, got %v", err)
	}
}

func TestGetAccountNotFound(t *testing.T) {
	store := openTempStore(t)

	_, err := store.GetAccountByUsername(context.Background(), "missing")
	if !errors.Is(err, account.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestIncrementCoffeeCount(t *testing.T) {
	store := openTempStore(t)

	if err := store.CreateAccount(context.Background(), testAccount("acct-1", "nadia")); err != nil {
		t.Fatalf("create account: %v", err)
	}

	for want := int64(1); want <= 3; want++ {
		got, err := store.IncrementCoffeeCount(context.Background(), "acct-1")
		if err != nil {
			t.Fatalf("increment coffee count: %v", err)
		}
		if got != want {
			t.Fatalf("coffee count = %d, want %d", got, want)
		}
	}

	stored, err := store.GetAccountByUsername(context.Background(), "nadia")
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if stored.CoffeeCount != 3 {
		t.Fatalf("persisted coffee count = %d, want 3", stored.CoffeeCount)
	}
}

func TestIncrementCoffeeCountUnknownAccount(t *testing.T) {
	store := openTempStore(t)

	_, err := store.IncrementCoffeeCount(context.Background(), "missing")
	if !errors.Is(err, account.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestOpenIsIdempotentAcrossRestarts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.db")

	first, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := first.CreateAccount(context.Background(), testAccount("acct-1", "nadia")); err != nil {
		t.Fatalf("create account: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	second, err := Open(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer func() {
		if err := second.Close(); err != nil {
			t.Fatalf("close reopened store: %v", err)
		}
	}()

	got, err := second.GetAccountByUsername(context.Background(), "nadia")
	if err != nil {
		t.Fatalf("get account after reopen: %v", err)
	}
	if got.ID != "acct-1" {
		t.Fatalf("account id = %q, want %q", got.ID, "acct-1")
	}
}
