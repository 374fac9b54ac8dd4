// Package store persists loan and user records. Three backends implement
// the same interface: a JSON file store, SQLite, and Postgres. The risk
// and parsing packages never touch storage directly; they consume loans
// as in-memory data once loaded.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/rdjhm0765/loanops-copilot/internal/model"
)

// ErrNotFound is returned when a loan or user does not exist.
var ErrNotFound = eris.New("store: not found")

// Store defines the persistence interface for loans and users.
type Store interface {
	// Loans
	LoadLoans(ctx context.Context) ([]model.LoanRecord, error)
	SaveLoan(ctx context.Context, loan model.LoanRecord) error
	UpdateLoan(ctx context.Context, id string, update model.LoanUpdate) error
	DeleteLoan(ctx context.Context, id string) error

	// Users
	GetUser(ctx context.Context, username string) (*model.User, error)
	CreateUser(ctx context.Context, user model.User) (bool, error)
	UpdateUser(ctx context.Context, username string, update model.UserUpdate) error
	DeleteUser(ctx context.Context, username string) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
