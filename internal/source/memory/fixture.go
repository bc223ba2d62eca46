package memory

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rshade/accountdesk/internal/account"
)

// ErrDuplicateID is returned when a fixture lists the same account id twice.
var ErrDuplicateID = errors.New("duplicate account id")

// ErrMissingID is returned when a fixture record has no id.
var ErrMissingID = errors.New("account id is required")

// Record is an account plus backend-only state.
type Record struct {
	account.Account `yaml:",inline"`

	// Locked records reject updates.
	Locked bool `yaml:"locked,omitempty"`
}

// Fixture is the on-disk seed file format.
type Fixture struct {
	Accounts []Record `yaml:"accounts"`
}

// ParseFixture decodes fixture YAML and validates record ids.
func ParseFixture(data []byte) (*Fixture, error) {
	var fx Fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}

	seen := make(map[string]struct{}, len(fx.Accounts))
	for i, rec := range fx.Accounts {
		if rec.ID == "" {
			return nil, fmt.Errorf("accounts[%d]: %w", i, ErrMissingID)
		}
		if _, dup := seen[rec.ID]; dup {
			return nil, fmt.Errorf("accounts[%d]: %w: %s", i, ErrDuplicateID, rec.ID)
		}
		seen[rec.ID] = struct{}{}
	}
	return &fx, nil
}

// LoadFixture reads and parses a fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture %s: %w", path, err)
	}
	return ParseFixture(data)
}

// Marshal encodes the fixture back to YAML.
func (f *Fixture) Marshal() ([]byte, error) {
	return yaml.Marshal(f)
}
