package params

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseInline(t *testing.T) {
	vars, err := ParseInline("sku=B1, replicas=2")
	require.NoError(t, err)
	require.Equal(t, Vars{"sku": "B1", "replicas": "2"}, vars)
}

func TestParseInline_EmptyInput(t *testing.T) {
	vars, err := ParseInline("  ")
	require.NoError(t, err)
	require.Empty(t, vars)
}

func TestParseInline_RejectsMalformedPairs(t *testing.T) {
	_, err := ParseInline("skuB1")
	require.Error(t, err)

	_, err = ParseInline("=value")
	require.Error(t, err)
}

func TestMerge_LaterSetsWin(t *testing.T) {
	merged := Merge(
		Vars{"a": "1", "b": "1"},
		Vars{"b": "2", "c": "2"},
		nil,
		Vars{"c": "3"},
	)
	require.Equal(t, Vars{"a": "1", "b": "2", "c": "3"}, merged)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vars.env")
	require.NoError(t, os.WriteFile(path, []byte("SKU=B1\n# comment\nREGION=eastus\n"), 0o644))

	vars, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, Vars{"SKU": "B1", "REGION": "eastus"}, vars)
}

func TestLoadFiles_MergesInOrder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.env"), []byte("K=first\nONLY_A=1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.env"), []byte("K=second\n"), 0o644))

	vars, err := LoadFiles(dir, []string{"a.env", "b.env", ""})
	require.NoError(t, err)
	require.Equal(t, Vars{"K": "second", "ONLY_A": "1"}, vars)
}

func TestLoadFiles_MissingFileErrors(t *testing.T) {
	_, err := LoadFiles(t.TempDir(), []string{"absent.env"})
	require.Error(t, err)
}
