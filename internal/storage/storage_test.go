//nolint:testpackage // White-box tests require access to unexported identifiers in this package.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Persistence(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "preferences.json")

	s, err := NewOrExistingFileStore(path)
	require.NoError(t, err)

	// The empty document is written on creation.
	_, err = os.Stat(path)
	require.NoError(t, err)

	require.NoError(t, s.Set("strength", 70.0))
	require.NoError(t, s.Set("theme", "light"))

	// Writes are visible within the same session.
	assert.InDelta(t, 70.0, Get(s, "strength", 60.0), 1e-12)

	// Read raw file to ensure fields are stored.
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	require.InDelta(t, 70.0, raw["strength"], 1e-12)
	require.Equal(t, "light", raw["theme"])

	// Re-open and ensure persistence.
	s2, err := NewFileStore(path)
	require.NoError(t, err)
	assert.InDelta(t, 70.0, Get(s2, "strength", 60.0), 1e-12)
	assert.Equal(t, "light", Get(s2, "theme", "dark"))
}

func TestFileStore_NoTempFilesLeftBehind(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "preferences.json")

	s, err := NewOrExistingFileStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("water", 300.0))
	require.NoError(t, s.Set("water", 500.0))

	entries, err := os.ReadDir(tmp)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "preferences.json", entries[0].Name())
}

func TestFileStore_CorruptFileStartsFresh(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed json", "{not json"},
		{"null document", "null"},
		{"array document", "[60, 250]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "preferences.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			s, err := NewOrExistingFileStore(path)
			require.NoError(t, err)
			require.NotNil(t, s.Data)
			assert.Empty(t, s.Data)
			assert.InDelta(t, 250.0, Get(s, "water", 250.0), 1e-12)

			// The replaced document accepts writes and is an object on disk.
			require.NoError(t, s.Set("strength", 70.0))
			b, err := os.ReadFile(path)
			require.NoError(t, err)
			var raw map[string]any
			require.NoError(t, json.Unmarshal(b, &raw))
			assert.InDelta(t, 70.0, raw["strength"], 1e-12)
		})
	}
}

func TestGet_DefaultsOnMissingAndUndecodable(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "preferences.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"strength": "strong"}`), 0o600))

	s, err := NewFileStore(path)
	require.NoError(t, err)

	assert.InDelta(t, 60.0, Get(s, "strength", 60.0), 1e-12)
	assert.InDelta(t, 250.0, Get(s, "water", 250.0), 1e-12)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/.config/brew-math/preferences.json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "brew-math", "preferences.json"), got)

	got, err = ExpandPath("/tmp/prefs.json")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/prefs.json", got)
}

func TestBoltStore_Persistence(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "nested", "preferences.db")

	s, err := OpenBolt(path)
	require.NoError(t, err)

	found, err := s.Lookup("strength", new(float64))
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set("strength", 63.0))
	require.NoError(t, s.Set("theme", "high-contrast"))
	assert.InDelta(t, 63.0, Get(s, "strength", 60.0), 1e-12)
	require.NoError(t, s.Close())

	s2, err := OpenBolt(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s2.Close() })
	assert.InDelta(t, 63.0, Get(s2, "strength", 60.0), 1e-12)
	assert.Equal(t, "high-contrast", Get(s2, "theme", "dark"))
}

func TestOpen_Backends(t *testing.T) {
	tmp := t.TempDir()

	js, err := Open(Options{Path: filepath.Join(tmp, "prefs.json")})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, js)
	require.NoError(t, js.Close())

	bs, err := Open(Options{Backend: BackendBolt, Path: filepath.Join(tmp, "prefs.db")})
	require.NoError(t, err)
	assert.IsType(t, &BoltStore{}, bs)
	require.NoError(t, bs.Close())

	_, err = Open(Options{Backend: "redis", Path: filepath.Join(tmp, "prefs")})
	require.ErrorIs(t, err, ErrUnknownBackend)
}

func TestNewFileStore_RejectsDirectory(t *testing.T) {
	_, err := NewFileStore(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid preferences path")
}

func TestFileStore_FailedSaveKeepsDocument(t *testing.T) {
	tmp := t.TempDir()
	s, err := NewOrExistingFileStore(filepath.Join(tmp, "preferences.json"))
	require.NoError(t, err)
	require.NoError(t, s.Set("strength", 70.0))

	// A regular file in place of the parent directory makes every Save fail.
	blocker := filepath.Join(tmp, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))
	s.Path = filepath.Join(blocker, "preferences.json")

	require.Error(t, s.Set("strength", 80.0))
	require.Error(t, s.Set("water", 300.0))
	assert.InDelta(t, 70.0, Get(s, "strength", 60.0), 1e-12)
	_, found := s.Data["water"]
	assert.False(t, found)
}
