// Package sqlite implements account persistence over SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/beanhall/beanhall/internal/account"
	"github.com/beanhall/beanhall/internal/account/sqlite/migrations"
	"github.com/beanhall/beanhall/internal/platform/storage/sqlitemigrate"
	_ "modernc.org/sqlite"
)

// toMillis normalizes timestamps into millisecond precision for storage.
func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// fromMillis restores millisecond precision and keeps UTC normalization.
func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Store implements account.Store over a single SQLite file.
type Store struct {
	sqlDB *sql.DB
}

// DB returns the raw database handle for maintenance callers.
func (s *Store) DB() *sql.DB {
	if s == nil {
		return nil
	}
	return s.sqlDB
}

// Open opens an account SQLite store and applies bundled migrations.
//
// This keeps startup and schema evolution in one place, instead of requiring
// callers to coordinate migrations independently.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{sqlDB: sqlDB}

	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return store, nil
}

// Close releases the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// CreateAccount inserts a new account row.
//
// UNIQUE violations on the username column are surfaced as
// account.ErrDuplicateUsername so callers can recover them into user-facing
// messages.
func (s *Store) CreateAccount(ctx context.Context, a account.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(a.ID) == "" {
		return fmt.Errorf("account id is required")
	}
	if strings.TrimSpace(a.Username) == "" {
		return fmt.Errorf("username is required")
	}
	if a.PasswordHash == "" {
		return fmt.Errorf("password hash is required")
	}

	const query = `
INSERT INTO accounts (id, username, password_hash, coffee_count, created_at)
VALUES (?, ?, ?, ?, ?);
`
	if _, err := s.sqlDB.ExecContext(ctx, query,
		a.ID, a.Username, a.PasswordHash, a.CoffeeCount, toMillis(a.CreatedAt),
	); err != nil {
		if isUniqueViolation(err) {
			return account.ErrDuplicateUsername
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetAccountByUsername looks up an account by its exact username.
func (s *Store) GetAccountByUsername(ctx context.Context, username string) (account.Account, error) {
	if err := ctx.Err(); err != nil {
		return account.Account{}, err
	}
	if s == nil || s.sqlDB == nil {
		return account.Account{}, fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(username) == "" {
		return account.Account{}, fmt.Errorf("username is required")
	}

	const query = `
SELECT id, username, password_hash, coffee_count, created_at
FROM accounts
WHERE username = ?;
`
	var (
		a         account.Account
		createdAt int64
	)
	err := s.sqlDB.QueryRowContext(ctx, query, username).Scan(
		&a.ID, &a.Username, &a.PasswordHash, &a.CoffeeCount, &createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return account.Account{}, account.ErrNotFound
		}
		return account.Account{}, fmt.Errorf("select account: %w", err)
	}
	a.CreatedAt = fromMillis(createdAt)
	return a, nil
}

// IncrementCoffeeCount bumps the coffee counter for one account and returns
// the new value. The update and the re-read share one transaction.
func (s *Store) IncrementCoffeeCount(ctx context.Context, accountID string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(accountID) == "" {
		return 0, fmt.Errorf("account id is required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	result, err := tx.ExecContext(ctx,
		"UPDATE accounts SET coffee_count = coffee_count + 1 WHERE id = ?", accountID)
	if err != nil {
		return 0, fmt.Errorf("increment coffee count: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("check affected rows: %w", err)
	}
	if affected == 0 {
		return 0, account.ErrNotFound
	}

	var count int64
	if err := tx.QueryRowContext(ctx,
		"SELECT coffee_count FROM accounts WHERE id = ?", accountID).Scan(&count); err != nil {
		return 0, fmt.Errorf("read coffee count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit coffee count: %w", err)
	}
	return count, nil
}

// CountAccounts returns the number of stored accounts.
func (s *Store) CountAccounts(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}

	var count int64
	if err := s.sqlDB.QueryRowContext(ctx, "SELECT COUNT(*) FROM accounts").Scan(&count); err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return count, nil
}

// isUniqueViolation detects SQLite UNIQUE constraint failures.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
