// Package sessionfile persists session credentials in a local JSON file, the
// equivalent of the browser's local storage: two string values, token and
// username, surviving restarts until logout wipes them.
package sessionfile

import (
	"encoding/json"
	"os"

	"github.com/hacksnooze/snooze"
)

// A Store is responsible for keeping credentials in a single file on disk.
type Store struct {
	path string
}

// New returns a Store writing to the given path. The file is created on the
// first Save.
func New(path string) *Store {
	return &Store{path: path}
}

// Save writes the credentials, replacing whatever was there. The file is
// only readable by the owner since it holds a login token.
func (s *Store) Save(creds snooze.Credentials) error {
	b, err := json.Marshal(creds)
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, b, 0o600)
}

// Load reads the stored credentials. A missing file means no remembered
// session and returns zero credentials with no error.
func (s *Store) Load() (snooze.Credentials, error) {
	var creds snooze.Credentials

	b, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return creds, nil
	}
	if err != nil {
		return creds, err
	}

	if err := json.Unmarshal(b, &creds); err != nil {
		return snooze.Credentials{}, err
	}

	return creds, nil
}

// Clear removes the stored credentials. Clearing an already-empty store is
// a no-op.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
