package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/rdjhm0765/loanops-copilot/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close() //nolint:errcheck
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS loans (
	id                TEXT PRIMARY KEY,
	borrower          TEXT NOT NULL,
	amount            REAL NOT NULL,
	pan               TEXT NOT NULL DEFAULT '',
	annual_income     REAL,
	risk_score        INTEGER NOT NULL DEFAULT 0,
	risk_label        TEXT NOT NULL DEFAULT 'Low',
	ml_confidence     REAL,
	prediction_method TEXT NOT NULL DEFAULT '',
	created_at        DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at        DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS users (
	username      TEXT PRIMARY KEY,
	password_hash TEXT NOT NULL,
	fullname      TEXT NOT NULL DEFAULT '',
	role          TEXT NOT NULL DEFAULT 'user',
	created_at    DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_loans_risk_label ON loans(risk_label);
CREATE INDEX IF NOT EXISTS idx_loans_borrower ON loans(borrower);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) LoadLoans(ctx context.Context) ([]model.LoanRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, borrower, amount, pan, annual_income, risk_score, risk_label,
		        ml_confidence, prediction_method, created_at, updated_at
		 FROM loans ORDER BY created_at`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: load loans")
	}
	defer rows.Close() //nolint:errcheck

	var loans []model.LoanRecord
	for rows.Next() {
		var l model.LoanRecord
		var income, conf sql.NullFloat64
		if err := rows.Scan(&l.ID, &l.Borrower, &l.Amount, &l.PAN, &income,
			&l.RiskScore, &l.RiskLabel, &conf, &l.PredictionMethod,
			&l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan loan")
		}
		if income.Valid {
			l.AnnualIncome = &income.Float64
		}
		if conf.Valid {
			l.MLConfidence = &conf.Float64
		}
		loans = append(loans, l)
	}
	return loans, eris.Wrap(rows.Err(), "sqlite: iterate loans")
}

func (s *SQLiteStore) SaveLoan(ctx context.Context, loan model.LoanRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO loans (id, borrower, amount, pan, annual_income, risk_score,
		                    risk_label, ml_confidence, prediction_method, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		loan.ID, loan.Borrower, loan.Amount, loan.PAN, nullFloat(loan.AnnualIncome),
		loan.RiskScore, string(loan.RiskLabel), nullFloat(loan.MLConfidence),
		loan.PredictionMethod, loan.CreatedAt, loan.UpdatedAt)
	return eris.Wrapf(err, "sqlite: insert loan %s", loan.ID)
}

func (s *SQLiteStore) UpdateLoan(ctx context.Context, id string, update model.LoanUpdate) error {
	cols, args := loanUpdateColumns(update)
	if len(cols) == 0 {
		return nil
	}
	sets := make([]string, len(cols))
	for i, c := range cols {
		sets[i] = c + " = ?"
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC(), id)

	res, err := s.db.ExecContext(ctx,
		"UPDATE loans SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update loan %s", id)
	}
	return checkRowsAffected(res, "loan", id)
}

func (s *SQLiteStore) DeleteLoan(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM loans WHERE id = ?`, id)
	if err != nil {
		return eris.Wrapf(err, "sqlite: delete loan %s", id)
	}
	return checkRowsAffected(res, "loan", id)
}

func (s *SQLiteStore) GetUser(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := s.db.QueryRowContext(ctx,
		`SELECT username, password_hash, fullname, role, created_at FROM users WHERE username = ?`,
		username,
	).Scan(&u.Username, &u.PasswordHash, &u.FullName, &u.Role, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get user %s", username)
	}
	return &u, nil
}

func (s *SQLiteStore) CreateUser(ctx context.Context, user model.User) (bool, error) {
	existing, err := s.GetUser(ctx, user.Username)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, fullname, role, created_at) VALUES (?, ?, ?, ?, ?)`,
		user.Username, user.PasswordHash, user.FullName, user.Role, user.CreatedAt)
	if err != nil {
		return false, eris.Wrapf(err, "sqlite: insert user %s", user.Username)
	}
	return true, nil
}

func (s *SQLiteStore) UpdateUser(ctx context.Context, username string, update model.UserUpdate) error {
	cols, args := userUpdateColumns(update)
	if len(cols) == 0 {
		return nil
	}
	sets := make([]string, len(cols))
	for i, c := range cols {
		sets[i] = c + " = ?"
	}
	args = append(args, username)

	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET "+strings.Join(sets, ", ")+" WHERE username = ?", args...)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update user %s", username)
	}
	return checkRowsAffected(res, "user", username)
}

func (s *SQLiteStore) DeleteUser(ctx context.Context, username string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE username = ?`, username)
	if err != nil {
		return eris.Wrapf(err, "sqlite: delete user %s", username)
	}
	return checkRowsAffected(res, "user", username)
}

// checkRowsAffected converts a zero-row update/delete into ErrNotFound.
func checkRowsAffected(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return eris.Wrapf(ErrNotFound, "sqlite: %s %s", kind, id)
	}
	return nil
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
