package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "settings.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultCurrency, s.CurrencySymbol)
}

func TestStoreUpdatePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "settings.yaml")
	store, err := NewStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Update(Settings{CurrencySymbol: " $ "}))
	assert.Equal(t, Currency("$"), store.Currency())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "currency_symbol: $")

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Currency("$"), reloaded.CurrencySymbol)
}

func TestStoreUpdateRejectsInvalid(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "settings.yaml"))
	require.NoError(t, err)

	assert.Error(t, store.Update(Settings{CurrencySymbol: "  "}))
	assert.Error(t, store.Update(Settings{CurrencySymbol: "DOLLARS"}))
	assert.Equal(t, DefaultCurrency, store.Currency())
}

func TestLoadRejectsBrokenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("currency_symbol: [oops"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "parsing")
}

func TestCurrencyFormat(t *testing.T) {
	assert.Equal(t, "€12.50", Currency("€").Format(decimal.RequireFromString("12.5")))
	assert.Equal(t, "₹0.00", DefaultCurrency.Format(decimal.Zero))
	assert.Equal(t, "$1,234,567.89", Currency("$").Format(decimal.RequireFromString("1234567.891")))
	assert.Equal(t, "-$999.00", Currency("$").Format(decimal.NewFromInt(-999)))
}
