package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DefaultCurrency is used until the user picks another symbol.
const DefaultCurrency Currency = "₹"

// Currency is the symbol printed in front of money values.
type Currency string

// Format renders d after the symbol with two decimal places and comma
// thousands separators, e.g. ₹1,234.50.
func (c Currency) Format(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	return sign + string(c) + groupThousands(whole) + "." + frac
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Settings are the user preferences kept in the settings file.
type Settings struct {
	CurrencySymbol Currency `yaml:"currency_symbol" json:"currency_symbol"`
}

func Default() Settings {
	return Settings{CurrencySymbol: DefaultCurrency}
}

// Validate rejects an empty or overly long currency symbol.
func (s Settings) Validate() error {
	sym := strings.TrimSpace(string(s.CurrencySymbol))
	if sym == "" {
		return fmt.Errorf("currency symbol must not be empty")
	}
	if len([]rune(sym)) > 5 {
		return fmt.Errorf("currency symbol %q is longer than 5 characters", sym)
	}
	return nil
}

// Load reads the settings file. A missing file yields the defaults.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Settings{}, err
	}

	s := Default()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if strings.TrimSpace(string(s.CurrencySymbol)) == "" {
		s.CurrencySymbol = DefaultCurrency
	}
	return s, nil
}

// Save writes the settings file, creating its directory when needed.
func Save(path string, s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// Store keeps the current settings in memory and persists every change.
type Store struct {
	path    string
	mu      sync.RWMutex
	current Settings
}

func NewStore(path string) (*Store, error) {
	s, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Store{path: path, current: s}, nil
}

func (s *Store) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Store) Currency() Currency {
	return s.Get().CurrencySymbol
}

// Update validates and saves next, then makes it current.
func (s *Store) Update(next Settings) error {
	next.CurrencySymbol = Currency(strings.TrimSpace(string(next.CurrencySymbol)))
	if err := Save(s.path, next); err != nil {
		return err
	}
	s.mu.Lock()
	s.current = next
	s.mu.Unlock()
	return nil
}
