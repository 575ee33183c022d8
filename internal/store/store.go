package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/rs/zerolog"

	"github.com/tellerkit/teller/internal/model"
)

// ErrUnstorable is returned by SaveAccount for an account the ledger
// format cannot round-trip.
var ErrUnstorable = errors.New("account cannot be stored")

// Store keeps every account in memory, keyed by holder name, and mirrors
// the whole set to a single ledger file.
type Store struct {
	path     string
	log      zerolog.Logger
	accounts map[string]*model.Account
}

// Open creates a Store backed by path and loads whatever the file holds.
// A missing or unreadable file results in an empty store.
func Open(path string, log zerolog.Logger) *Store {
	s := &Store{path: path, log: log.With().Str("ledger", path).Logger()}
	s.LoadAll()
	return s
}

// Path returns the ledger file location.
func (s *Store) Path() string {
	return s.path
}

// LoadAll re-reads the ledger file, replaces the store's contents with it
// and returns the new mapping. Problems are logged, never returned: the
// store is left empty when the file is missing or cannot be decoded.
func (s *Store) LoadAll() map[string]*model.Account {
	s.accounts = s.read()
	return s.accounts
}

func (s *Store) read() map[string]*model.Account {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.log.Info().Msg("ledger not found, starting empty")
		} else {
			s.log.Warn().Err(err).Msg("cannot open ledger, starting empty")
		}
		return make(map[string]*model.Account)
	}
	defer f.Close()

	accounts, err := ReadLedger(f)
	if err != nil {
		s.log.Warn().Err(err).Msg("cannot read ledger, starting empty")
		return make(map[string]*model.Account)
	}
	s.log.Debug().Int("accounts", len(accounts)).Msg("ledger loaded")
	return accounts
}

// SaveAccount stores acct under its holder name, replacing any account
// already held by that name, and rewrites the ledger file. An account that
// could not be read back (no holder, unknown kind, malformed transaction
// ID) is rejected and the store is left unchanged.
func (s *Store) SaveAccount(acct *model.Account) error {
	if _, err := unmarshalAccount(marshalAccount(acct)); err != nil {
		return fmt.Errorf("%w: %w", ErrUnstorable, err)
	}
	s.accounts[acct.Holder()] = acct

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating ledger dir: %w", err)
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("creating ledger file: %w", err)
	}
	if err := WriteLedger(f, s.accounts); err != nil {
		f.Close()
		return fmt.Errorf("writing ledger: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing ledger file: %w", err)
	}
	s.log.Debug().
		Str("holder", acct.Holder()).
		Int("number", acct.Number()).
		Msg("account saved")
	return nil
}

// GetByName returns the account held by name.
func (s *Store) GetByName(name string) (*model.Account, bool) {
	a, ok := s.accounts[name]
	return a, ok
}

// GetByNumber returns the first account with the given number, scanning
// holders in name order.
func (s *Store) GetByNumber(number int) (*model.Account, bool) {
	for _, holder := range s.holders() {
		if a := s.accounts[holder]; a.Number() == number {
			return a, true
		}
	}
	return nil, false
}

// NumberInUse reports whether an account other than exceptHolder's uses number.
func (s *Store) NumberInUse(number int, exceptHolder string) bool {
	for holder, a := range s.accounts {
		if holder != exceptHolder && a.Number() == number {
			return true
		}
	}
	return false
}

// All returns every account in holder-name order.
func (s *Store) All() []*model.Account {
	holders := s.holders()
	result := make([]*model.Account, len(holders))
	for i, h := range holders {
		result[i] = s.accounts[h]
	}
	return result
}

// Len returns the number of stored accounts.
func (s *Store) Len() int {
	return len(s.accounts)
}

func (s *Store) holders() []string {
	holders := make([]string, 0, len(s.accounts))
	for h := range s.accounts {
		holders = append(holders, h)
	}
	slices.Sort(holders)
	return holders
}
