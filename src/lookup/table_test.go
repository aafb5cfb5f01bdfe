package lookup

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var unknownPattern = regexp.MustCompile(`^Unknown_.*$`)

func TestTable_ListLookups(t *testing.T) {
	table := ListTable([]string{"フシギダネ", "フシギソウ", "フシギバナ"})

	tests := []struct {
		id   string
		want string
	}{
		{"0", "フシギダネ"},
		{"2", "フシギバナ"},
		{" 1 ", "フシギソウ"},
		{"3", "Unknown_3"},
		{"-1", "Unknown_-1"},
		{"abc", "Unknown_abc"},
		{"", "Unknown_"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, table.Name(tt.id), "id %q", tt.id)
	}
	assert.Equal(t, "フシギバナ", table.Index(2))
	assert.Equal(t, "Unknown_99", table.Index(99))
}

func TestTable_KeyedLookups(t *testing.T) {
	table := KeyedTable(map[string]string{"1": "マスターボール", "4": "モンスターボール"})

	assert.Equal(t, "マスターボール", table.Name("1"))
	assert.Equal(t, "モンスターボール", table.Index(4))
	assert.Equal(t, "Unknown_2", table.Name("2"))
}

func TestTable_RawName(t *testing.T) {
	table := ListTable([]string{"a", "b"})

	assert.Equal(t, "b", table.RawName(json.RawMessage(`1`)))
	assert.Equal(t, "b", table.RawName(json.RawMessage(`"1"`)))
	assert.Equal(t, "Unknown_7", table.RawName(json.RawMessage(`7`)))
	assert.Equal(t, "Unknown_", table.RawName(nil))
}

func TestTable_LookupIsTotal(t *testing.T) {
	tables := []Table{{}, ListTable(nil), KeyedTable(nil), ListTable([]string{"x"})}
	ids := []string{"0", "1", "-5", "1.5", "９", "999999999999999999999", "Unknown_1"}
	for _, table := range tables {
		for _, id := range ids {
			name := table.Name(id)
			if name != "x" {
				assert.Regexp(t, unknownPattern, name)
			}
		}
	}
}

func TestLoadTable(t *testing.T) {
	dir := t.TempDir()
	listPath := filepath.Join(dir, "list.json")
	keyedPath := filepath.Join(dir, "keyed.json")
	badPath := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(listPath, []byte(`{"JPN": ["a", "b"], "ENG": ["A", "B"]}`), 0o644))
	require.NoError(t, os.WriteFile(keyedPath, []byte(`{"itemname": {"1": "x"}}`), 0o644))
	require.NoError(t, os.WriteFile(badPath, []byte(`{"JPN": 5}`), 0o644))

	table, err := LoadTable(listPath, "ENG")
	require.NoError(t, err)
	assert.Equal(t, "B", table.Index(1))

	table, err = LoadTable(keyedPath, "itemname")
	require.NoError(t, err)
	assert.Equal(t, "x", table.Name("1"))

	_, err = LoadTable(listPath, "FRA")
	assert.Error(t, err)
	_, err = LoadTable(badPath, "JPN")
	assert.Error(t, err)
	_, err = LoadTable(filepath.Join(dir, "missing.json"), "JPN")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
