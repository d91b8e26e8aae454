package credentials_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nfa-dashboard/go-dashboard-client/credentials"
	"github.com/nfa-dashboard/go-dashboard-client/credentials/storefake"
)

var errSaveFailed = errors.New("save failed")

func testGrant() credentials.Grant {
	return credentials.Grant{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		User:         &credentials.UserIdentity{ID: 7, Username: "alice"},
		Permissions: []credentials.Permission{
			{Name: "school.read"},
			{Name: "traffic.read"},
		},
	}
}

func TestKeeperApplyPersistsAllFields(t *testing.T) {
	store := storefake.NewFakeStore()
	keeper := credentials.NewKeeper(store)

	require.NoError(t, keeper.Apply(testGrant()))

	cred := keeper.Current()
	require.Equal(t, "access-1", cred.AccessToken)
	require.Equal(t, "refresh-1", cred.RefreshToken)
	require.Equal(t, "alice", cred.User.Username)
	require.Equal(t, []string{"school.read", "traffic.read"}, cred.Permissions)

	snap := store.Stored()
	require.NotNil(t, snap)
	require.Equal(t, "access-1", snap.Token)
	require.Equal(t, "refresh-1", snap.RefreshToken)
	require.JSONEq(t, `{"id":7,"username":"alice"}`, snap.User)
	require.JSONEq(t, `["school.read","traffic.read"]`, snap.Permissions)
}

func TestKeeperApplyFailedPersistLeavesMemoryUntouched(t *testing.T) {
	store := storefake.NewFakeStore()
	keeper := credentials.NewKeeper(store)
	require.NoError(t, keeper.Apply(testGrant()))

	store.SaveErr = errSaveFailed
	bad := testGrant()
	bad.AccessToken = "access-2"
	require.Error(t, keeper.Apply(bad))

	// The credential must never be half-applied: storage failed, so memory
	// still holds the previous grant in full.
	require.Equal(t, "access-1", keeper.AccessToken())
}

func TestKeeperHydrateRoundTrip(t *testing.T) {
	store := storefake.NewFakeStore()
	keeper := credentials.NewKeeper(store)
	require.NoError(t, keeper.Apply(testGrant()))

	// A fresh keeper over the same store reconstructs the same credential.
	reloaded := credentials.NewKeeper(store)
	require.NoError(t, reloaded.Hydrate())

	cred := reloaded.Current()
	require.Equal(t, "access-1", cred.AccessToken)
	require.Equal(t, "refresh-1", cred.RefreshToken)
	require.Equal(t, uint64(7), cred.User.ID)
	require.Equal(t, []string{"school.read", "traffic.read"}, cred.Permissions)
}

func TestKeeperHydrateEmptyStore(t *testing.T) {
	keeper := credentials.NewKeeper(storefake.NewFakeStore())
	require.NoError(t, keeper.Hydrate())
	require.False(t, keeper.Current().IsAuthenticated())
}

func TestKeeperHydrateCorruptEntriesDegrade(t *testing.T) {
	store := storefake.NewFakeStore()
	require.NoError(t, store.Save(&credentials.Snapshot{
		Token:        "access-1",
		RefreshToken: "refresh-1",
		User:         "{not json",
		Permissions:  "[also broken",
	}))

	keeper := credentials.NewKeeper(store)
	require.NoError(t, keeper.Hydrate())

	cred := keeper.Current()
	require.Equal(t, "access-1", cred.AccessToken)
	require.Nil(t, cred.User)
	require.Empty(t, cred.Permissions)
}

func TestKeeperClearWipesEverything(t *testing.T) {
	store := storefake.NewFakeStore()
	keeper := credentials.NewKeeper(store)
	require.NoError(t, keeper.Apply(testGrant()))

	require.NoError(t, keeper.Clear())

	cred := keeper.Current()
	require.Empty(t, cred.AccessToken)
	require.Empty(t, cred.RefreshToken)
	require.Nil(t, cred.User)
	require.Empty(t, cred.Permissions)
	require.Nil(t, store.Stored())
}

func TestKeeperSetProfileKeepsTokens(t *testing.T) {
	store := storefake.NewFakeStore()
	keeper := credentials.NewKeeper(store)
	require.NoError(t, keeper.Apply(testGrant()))

	user := &credentials.UserIdentity{ID: 7, Username: "alice", DisplayName: "Alice"}
	perms := []credentials.Permission{{Name: "settlement.read"}}
	require.NoError(t, keeper.SetProfile(user, perms))

	cred := keeper.Current()
	require.Equal(t, "access-1", cred.AccessToken)
	require.Equal(t, "refresh-1", cred.RefreshToken)
	require.Equal(t, "Alice", cred.User.DisplayName)
	require.Equal(t, []string{"settlement.read"}, cred.Permissions)
}
