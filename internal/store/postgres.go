package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/rdjhm0765/loanops-copilot/internal/model"
)

// Pool is the subset of pgxpool.Pool the store needs. pgxmock pools
// satisfy it too, so the Postgres store is testable without a server.
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements Store using a pgx connection pool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}

	return &PostgresStore{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool. Used by tests.
func NewPostgresWithPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS loans (
	id                TEXT PRIMARY KEY,
	borrower          TEXT NOT NULL,
	amount            DOUBLE PRECISION NOT NULL,
	pan               TEXT NOT NULL DEFAULT '',
	annual_income     DOUBLE PRECISION,
	risk_score        INTEGER NOT NULL DEFAULT 0,
	risk_label        TEXT NOT NULL DEFAULT 'Low',
	ml_confidence     DOUBLE PRECISION,
	prediction_method TEXT NOT NULL DEFAULT '',
	created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS users (
	username      TEXT PRIMARY KEY,
	password_hash TEXT NOT NULL,
	fullname      TEXT NOT NULL DEFAULT '',
	role          TEXT NOT NULL DEFAULT 'user',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_loans_risk_label ON loans(risk_label);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) LoadLoans(ctx context.Context) ([]model.LoanRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, borrower, amount, pan, annual_income, risk_score, risk_label,
		        ml_confidence, prediction_method, created_at, updated_at
		 FROM loans ORDER BY created_at`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: load loans")
	}
	defer rows.Close()

	var loans []model.LoanRecord
	for rows.Next() {
		var l model.LoanRecord
		if err := rows.Scan(&l.ID, &l.Borrower, &l.Amount, &l.PAN, &l.AnnualIncome,
			&l.RiskScore, &l.RiskLabel, &l.MLConfidence, &l.PredictionMethod,
			&l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan loan")
		}
		loans = append(loans, l)
	}
	return loans, eris.Wrap(rows.Err(), "postgres: iterate loans")
}

func (s *PostgresStore) SaveLoan(ctx context.Context, loan model.LoanRecord) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO loans (id, borrower, amount, pan, annual_income, risk_score,
		                    risk_label, ml_confidence, prediction_method, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		loan.ID, loan.Borrower, loan.Amount, loan.PAN, loan.AnnualIncome,
		loan.RiskScore, string(loan.RiskLabel), loan.MLConfidence,
		loan.PredictionMethod, loan.CreatedAt, loan.UpdatedAt)
	return eris.Wrapf(err, "postgres: insert loan %s", loan.ID)
}

func (s *PostgresStore) UpdateLoan(ctx context.Context, id string, update model.LoanUpdate) error {
	cols, args := loanUpdateColumns(update)
	if len(cols) == 0 {
		return nil
	}
	sets := make([]string, len(cols))
	for i, c := range cols {
		sets[i] = fmt.Sprintf("%s = $%d", c, i+1)
	}
	sets = append(sets, fmt.Sprintf("updated_at = $%d", len(cols)+1))
	args = append(args, time.Now().UTC(), id)

	tag, err := s.pool.Exec(ctx,
		fmt.Sprintf("UPDATE loans SET %s WHERE id = $%d", strings.Join(sets, ", "), len(cols)+2),
		args...)
	if err != nil {
		return eris.Wrapf(err, "postgres: update loan %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(ErrNotFound, "postgres: loan %s", id)
	}
	return nil
}

func (s *PostgresStore) DeleteLoan(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM loans WHERE id = $1`, id)
	if err != nil {
		return eris.Wrapf(err, "postgres: delete loan %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(ErrNotFound, "postgres: loan %s", id)
	}
	return nil
}

func (s *PostgresStore) GetUser(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := s.pool.QueryRow(ctx,
		`SELECT username, password_hash, fullname, role, created_at FROM users WHERE username = $1`,
		username,
	).Scan(&u.Username, &u.PasswordHash, &u.FullName, &u.Role, &u.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get user %s", username)
	}
	return &u, nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, user model.User) (bool, error) {
	tag, err := s.pool.Exec(ctx,
		`INSERT INTO users (username, password_hash, fullname, role, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (username) DO NOTHING`,
		user.Username, user.PasswordHash, user.FullName, user.Role, user.CreatedAt)
	if err != nil {
		return false, eris.Wrapf(err, "postgres: insert user %s", user.Username)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *PostgresStore) UpdateUser(ctx context.Context, username string, update model.UserUpdate) error {
	cols, args := userUpdateColumns(update)
	if len(cols) == 0 {
		return nil
	}
	sets := make([]string, len(cols))
	for i, c := range cols {
		sets[i] = fmt.Sprintf("%s = $%d", c, i+1)
	}
	args = append(args, username)

	tag, err := s.pool.Exec(ctx,
		fmt.Sprintf("UPDATE users SET %s WHERE username = $%d", strings.Join(sets, ", "), len(cols)+1),
		args...)
	if err != nil {
		return eris.Wrapf(err, "postgres: update user %s", username)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(ErrNotFound, "postgres: user %s", username)
	}
	return nil
}

func (s *PostgresStore) DeleteUser(ctx context.Context, username string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM users WHERE username = $1`, username)
	if err != nil {
		return eris.Wrapf(err, "postgres: delete user %s", username)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(ErrNotFound, "postgres: user %s", username)
	}
	return nil
}
