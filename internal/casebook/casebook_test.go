package casebook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	book, err := Load(filepath.Join("testdata", "orders.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "orders", book.Name)
	assert.Equal(t, filepath.Join("testdata", "shop.cue"), book.Catalog)
	require.NotNil(t, book.Identifiers)
	assert.Equal(t, []string{"email"}, book.Identifiers.Reserved)
	require.Len(t, book.Cases, 10)

	first := book.Cases[0]
	assert.Equal(t, KindCompile, first.Kind())
	assert.Equal(t, "Orders::Total", first.Compile.Ref)
	assert.Nil(t, first.Compile.Value)

	assert.Equal(t, KindOptimize, book.Cases[7].Kind())
}

func TestParseEmptyValue(t *testing.T) {
	book, err := Parse([]byte(`
name: x
cases:
  - name: empty
    compile:
      value: ""
      command: text
    expect: "''"
`))
	require.NoError(t, err)
	require.NotNil(t, book.Cases[0].Compile.Value)
	assert.Equal(t, "", *book.Cases[0].Compile.Value)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "unknown field",
			yaml: "name: x\ncase: []\n",
			want: "field case not found",
		},
		{
			name: "missing name",
			yaml: "cases:\n  - name: a\n    optimize: SELECT 1\n    expect: SELECT 1\n",
			want: "name is required",
		},
		{
			name: "no cases",
			yaml: "name: x\n",
			want: "cases list is required",
		},
		{
			name: "both kinds",
			yaml: "name: x\ncases:\n  - name: a\n    optimize: SELECT 1\n    compile: {ref: A, command: f}\n",
			want: "not both",
		},
		{
			name: "neither kind",
			yaml: "name: x\ncases:\n  - name: a\n    expect: b\n",
			want: "compile or optimize is required",
		},
		{
			name: "ref and value",
			yaml: "name: x\ncases:\n  - name: a\n    compile: {ref: A, value: b, command: f}\n",
			want: "exactly one of ref and value",
		},
		{
			name: "duplicate case",
			yaml: "name: x\ncases:\n  - name: a\n    optimize: q\n  - name: a\n    optimize: q\n",
			want: "duplicate name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read casebook")
}

func TestLoadAbsoluteCatalogKept(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(dir, "cat.cue")
	path := filepath.Join(dir, "book.yaml")
	content := "name: x\ncatalog: " + abs + "\ncases:\n  - name: a\n    optimize: q\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	book, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, abs, book.Catalog)
}
