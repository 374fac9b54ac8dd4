package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"github.com/rdjhm0765/loanops-copilot/internal/model"
)

const (
	loansFile = "loans.json"
	usersFile = "users.json"
)

// JSONStore implements Store over flat JSON files in a data directory.
// Suited to the single-user desktop deployment; every operation reads
// the full collection and writes it back atomically.
type JSONStore struct {
	dir string
}

// NewJSON creates a JSONStore rooted at dir.
func NewJSON(dir string) *JSONStore {
	return &JSONStore{dir: dir}
}

// Migrate creates the data directory.
func (s *JSONStore) Migrate(_ context.Context) error {
	return eris.Wrap(os.MkdirAll(s.dir, 0o755), "jsonstore: create data dir")
}

func (s *JSONStore) Close() error { return nil }

// readFile decodes a JSON collection; a missing file is an empty
// collection, not an error.
func readFile[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "jsonstore: read %s", path)
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, eris.Wrapf(err, "jsonstore: decode %s", path)
	}
	return out, nil
}

// writeFile encodes a collection via a temp file and rename so a crash
// never leaves a half-written collection.
func writeFile[T any](path string, items []T) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return eris.Wrapf(err, "jsonstore: encode %s", path)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return eris.Wrapf(err, "jsonstore: write %s", tmp)
	}
	return eris.Wrapf(os.Rename(tmp, path), "jsonstore: rename %s", path)
}

func (s *JSONStore) loansPath() string { return filepath.Join(s.dir, loansFile) }
func (s *JSONStore) usersPath() string { return filepath.Join(s.dir, usersFile) }

func (s *JSONStore) LoadLoans(_ context.Context) ([]model.LoanRecord, error) {
	return readFile[model.LoanRecord](s.loansPath())
}

func (s *JSONStore) SaveLoan(_ context.Context, loan model.LoanRecord) error {
	loans, err := readFile[model.LoanRecord](s.loansPath())
	if err != nil {
		return err
	}
	loans = append(loans, loan)
	return writeFile(s.loansPath(), loans)
}

func (s *JSONStore) UpdateLoan(_ context.Context, id string, update model.LoanUpdate) error {
	loans, err := readFile[model.LoanRecord](s.loansPath())
	if err != nil {
		return err
	}
	for i := range loans {
		if loans[i].ID == id {
			update.Apply(&loans[i])
			return writeFile(s.loansPath(), loans)
		}
	}
	return eris.Wrapf(ErrNotFound, "jsonstore: loan %s", id)
}

func (s *JSONStore) DeleteLoan(_ context.Context, id string) error {
	loans, err := readFile[model.LoanRecord](s.loansPath())
	if err != nil {
		return err
	}
	kept := loans[:0]
	found := false
	for _, l := range loans {
		if l.ID == id {
			found = true
			continue
		}
		kept = append(kept, l)
	}
	if !found {
		return eris.Wrapf(ErrNotFound, "jsonstore: loan %s", id)
	}
	return writeFile(s.loansPath(), kept)
}

func (s *JSONStore) GetUser(_ context.Context, username string) (*model.User, error) {
	users, err := readFile[model.User](s.usersPath())
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username {
			return &users[i], nil
		}
	}
	return nil, nil
}

func (s *JSONStore) CreateUser(ctx context.Context, user model.User) (bool, error) {
	existing, err := s.GetUser(ctx, user.Username)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	users, err := readFile[model.User](s.usersPath())
	if err != nil {
		return false, err
	}
	users = append(users, user)
	if err := writeFile(s.usersPath(), users); err != nil {
		return false, err
	}
	return true, nil
}

func (s *JSONStore) UpdateUser(_ context.Context, username string, update model.UserUpdate) error {
	users, err := readFile[model.User](s.usersPath())
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].Username == username {
			update.Apply(&users[i])
			return writeFile(s.usersPath(), users)
		}
	}
	return eris.Wrapf(ErrNotFound, "jsonstore: user %s", username)
}

func (s *JSONStore) DeleteUser(_ context.Context, username string) error {
	users, err := readFile[model.User](s.usersPath())
	if err != nil {
		return err
	}
	kept := users[:0]
	found := false
	for _, u := range users {
		if u.Username == username {
			found = true
			continue
		}
		kept = append(kept, u)
	}
	if !found {
		return eris.Wrapf(ErrNotFound, "jsonstore: user %s", username)
	}
	return writeFile(s.usersPath(), kept)
}
