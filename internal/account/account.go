// Package account holds the account domain model and the service that
// implements registration, authentication, and coffee counting on top of a
// persistence store.
package account

import "time"

// Account is a registered user of the site.
type Account struct {
	ID           string
	Username     string
	PasswordHash string
	CoffeeCount  int64
	CreatedAt    time.Time
}

// Identity is the minimal session payload denoting a logged-in account.
type Identity struct {
	AccountID string
	Username  string
}
