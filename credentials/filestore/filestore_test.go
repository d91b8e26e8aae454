package filestore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nfa-dashboard/go-dashboard-client/credentials"
	"github.com/nfa-dashboard/go-dashboard-client/credentials/filestore"
	clierrors "github.com/nfa-dashboard/go-dashboard-client/internal/errors"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds", "credentials.json")
	store := filestore.New(path)

	snap := &credentials.Snapshot{
		Token:        "access-1",
		RefreshToken: "refresh-1",
		User:         `{"id":1,"username":"alice"}`,
		Permissions:  `["school.read"]`,
	}
	require.NoError(t, store.Save(snap))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, snap, loaded)
}

func TestFileStoreLoadMissing(t *testing.T) {
	store := filestore.New(filepath.Join(t.TempDir(), "nope.json"))

	_, err := store.Load()
	require.ErrorIs(t, err, clierrors.ErrCredentialsNotFound)
}

func TestFileStorePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	store := filestore.New(path)
	require.NoError(t, store.Save(&credentials.Snapshot{Token: "access-1"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStoreDeleteIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	store := filestore.New(path)
	require.NoError(t, store.Save(&credentials.Snapshot{Token: "access-1"}))

	require.NoError(t, store.Delete())
	require.NoError(t, store.Delete())

	_, err := store.Load()
	require.ErrorIs(t, err, clierrors.ErrCredentialsNotFound)
}
