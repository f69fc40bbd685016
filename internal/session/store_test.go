package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := Open(path)

	var out []string
	require.False(t, store.Get("impersonationRoles", &out), "missing file must read as empty")

	require.NoError(t, store.Set("impersonationRoles", []string{"member"}))
	require.True(t, store.Get("impersonationRoles", &out))
	require.Equal(t, []string{"member"}, out)

	// a second store on the same path sees the persisted value
	var again []string
	require.True(t, Open(path).Get("impersonationRoles", &again))
	require.Equal(t, []string{"member"}, again)
}

func TestStoreSetNilClears(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.json")
	store := Open(path)

	require.NoError(t, store.Set("theme", "dark"))
	require.NoError(t, store.Set("impersonationRoles", []string{"member"}))

	require.NoError(t, store.Set("impersonationRoles", nil))

	var roles []string
	require.False(t, store.Get("impersonationRoles", &roles))

	var theme string
	require.True(t, store.Get("theme", &theme), "other entries must survive the clear")
	require.Equal(t, "dark", theme)
}

func TestStoreFilePrivate(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, Open(path).Set("theme", "dark"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	_, err = os.Stat(path + ".tmp")
	require.True(t, os.IsNotExist(err), "tmp file must not linger")
}

func TestStoreNullValueReadsAbsent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"impersonationRoles": null}`), 0o600))

	var roles []string
	require.False(t, Open(path).Get("impersonationRoles", &roles))
}
