package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/sqlfrag/internal/escape"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sqlfrag.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "lower", cfg.Identifiers.Fold)
	assert.Equal(t, `"`, cfg.Identifiers.Quote)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Empty(t, cfg.Catalog.Path)
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, `
catalog:
  path: schema.cue
  database: shop.db
identifiers:
  fold: none
  quote: "[]"
  reserved: [status, kind]
output:
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "schema.cue", cfg.Catalog.Path)
	assert.Equal(t, "shop.db", cfg.Catalog.Database)
	assert.Equal(t, "none", cfg.Identifiers.Fold)
	assert.Equal(t, "[]", cfg.Identifiers.Quote)
	assert.Equal(t, []string{"status", "kind"}, cfg.Identifiers.Reserved)
	assert.Equal(t, "json", cfg.Output.Format)
}

func TestEnvOverridesYAML(t *testing.T) {
	path := writeConfig(t, "identifiers:\n  fold: none\n")
	t.Setenv("SQLFRAG_FOLD", "upper")
	t.Setenv("SQLFRAG_RESERVED", "a,b")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "upper", cfg.Identifiers.Fold)
	assert.Equal(t, []string{"a", "b"}, cfg.Identifiers.Reserved)
}

func TestEnvWithoutFile(t *testing.T) {
	t.Setenv("SQLFRAG_CATALOG", "/tmp/catalog.cue")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/catalog.cue", cfg.Catalog.Path)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("/nonexistent/sqlfrag.yaml")
	require.Error(t, err)

	_, err = Load(writeConfig(t, "identifiers:\n  fold: sideways\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "identifiers.fold")

	_, err = Load(writeConfig(t, "output:\n  format: xml\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output.format")

	_, err = Load(writeConfig(t, "identifiers:\n  quote: \"<<<\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "identifiers.quote")
}

func TestEscaper(t *testing.T) {
	cfg := &Config{Identifiers: IdentifiersConfig{
		Fold:     string(escape.FoldUpper),
		Quote:    "[]",
		Reserved: []string{"total"},
	}}

	e := cfg.Escaper()
	assert.Equal(t, "ORDERS", e.Escape("orders"))
	assert.Equal(t, "[TOTAL]", e.Escape("total"))
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "lower", cfg.Identifiers.Fold)
	assert.Equal(t, "text", cfg.Output.Format)
}
