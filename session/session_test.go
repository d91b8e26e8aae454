package session_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nfa-dashboard/go-dashboard-client/credentials"
	"github.com/nfa-dashboard/go-dashboard-client/credentials/storefake"
	"github.com/nfa-dashboard/go-dashboard-client/guard"
	"github.com/nfa-dashboard/go-dashboard-client/guard/navfake"
	"github.com/nfa-dashboard/go-dashboard-client/session"
)

var errLoginRejected = errors.New("invalid credentials")

type fakeAuthAPI struct {
	grant    credentials.Grant
	loginErr error

	profile      credentials.Profile
	profileErr   error
	profileCalls atomic.Int32
	profileGate  chan struct{} // when non-nil, Profile blocks until closed
}

var _ session.AuthAPI = (*fakeAuthAPI)(nil)

func (f *fakeAuthAPI) Login(ctx context.Context, username, password string) (credentials.Grant, error) {
	if f.loginErr != nil {
		return credentials.Grant{}, f.loginErr
	}
	return f.grant, nil
}

func (f *fakeAuthAPI) Profile(ctx context.Context) (credentials.Profile, error) {
	f.profileCalls.Add(1)
	if f.profileGate != nil {
		<-f.profileGate
	}
	if f.profileErr != nil {
		return credentials.Profile{}, f.profileErr
	}
	return f.profile, nil
}

type testFixture struct {
	store      *storefake.FakeStore
	keeper     *credentials.Keeper
	nav        *navfake.FakeNavigator
	auth       *fakeAuthAPI
	controller *session.Controller
}

func setupTestFixture(t *testing.T, auth *fakeAuthAPI) *testFixture {
	t.Helper()

	store := storefake.NewFakeStore()
	keeper := credentials.NewKeeper(store)
	nav := navfake.NewFakeNavigator("/settlement")

	controller, err := session.NewController(keeper, auth, nav)
	require.NoError(t, err)

	return &testFixture{store: store, keeper: keeper, nav: nav, auth: auth, controller: controller}
}

func grantFixture() credentials.Grant {
	return credentials.Grant{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		User:         &credentials.UserIdentity{ID: 1, Username: "alice"},
		Permissions:  []credentials.Permission{{Name: "school.read"}, {Name: "traffic.read"}},
	}
}

func TestLoginInstallsAndPersistsGrant(t *testing.T) {
	f := setupTestFixture(t, &fakeAuthAPI{grant: grantFixture()})

	require.NoError(t, f.controller.Login(context.Background(), "alice", "secret"))

	require.True(t, f.controller.IsAuthenticated())
	require.Equal(t, "alice", f.controller.User().Username)
	require.Equal(t, []string{"school.read", "traffic.read"}, f.controller.Permissions())
	require.NotNil(t, f.store.Stored())
}

func TestLoginFailureLeavesCredentialUntouched(t *testing.T) {
	f := setupTestFixture(t, &fakeAuthAPI{loginErr: errLoginRejected})
	require.NoError(t, f.keeper.Apply(grantFixture()))

	err := f.controller.Login(context.Background(), "alice", "wrong")
	require.ErrorIs(t, err, errLoginRejected)

	require.Equal(t, "access-1", f.keeper.AccessToken())
	require.Equal(t, "alice", f.controller.User().Username)
}

func TestLogoutClearsEverythingAndRedirects(t *testing.T) {
	f := setupTestFixture(t, &fakeAuthAPI{grant: grantFixture()})
	require.NoError(t, f.controller.Login(context.Background(), "alice", "secret"))

	require.NoError(t, f.controller.Logout())

	cred := f.keeper.Current()
	require.Empty(t, cred.AccessToken)
	require.Empty(t, cred.RefreshToken)
	require.Nil(t, cred.User)
	require.Empty(t, cred.Permissions)
	require.Nil(t, f.store.Stored())

	require.Equal(t, []string{guard.LoginPath + "?redirect=%2Fsettlement"}, f.nav.History())
}

func TestLogoutSkipsRedirectOnLoginPage(t *testing.T) {
	f := setupTestFixture(t, &fakeAuthAPI{})
	require.NoError(t, f.nav.Navigate(guard.LoginPath, nil))

	require.NoError(t, f.controller.Logout())
	require.Len(t, f.nav.History(), 1, "no redirect when already on the login page")
}

func TestLoadProfileRequiresToken(t *testing.T) {
	auth := &fakeAuthAPI{}
	f := setupTestFixture(t, auth)

	require.NoError(t, f.controller.LoadProfile(context.Background()))
	require.Equal(t, int32(0), auth.profileCalls.Load())
}

func TestLoadProfileUpdatesSession(t *testing.T) {
	auth := &fakeAuthAPI{profile: credentials.Profile{
		User:        &credentials.UserIdentity{ID: 1, Username: "alice", DisplayName: "Alice"},
		Permissions: []credentials.Permission{{Name: "settlement.read"}},
	}}
	f := setupTestFixture(t, auth)
	require.NoError(t, f.keeper.Apply(grantFixture()))

	require.NoError(t, f.controller.LoadProfile(context.Background()))

	require.Equal(t, "Alice", f.controller.User().DisplayName)
	require.Equal(t, []string{"settlement.read"}, f.controller.Permissions())
	require.True(t, f.controller.HasLoadedProfile())
}

func TestLoadProfileDeduplicatesConcurrentCalls(t *testing.T) {
	auth := &fakeAuthAPI{
		profile:     credentials.Profile{User: &credentials.UserIdentity{ID: 1, Username: "alice"}, Permissions: []credentials.Permission{{Name: "school.read"}}},
		profileGate: make(chan struct{}),
	}
	f := setupTestFixture(t, auth)
	require.NoError(t, f.keeper.Apply(grantFixture()))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = f.controller.LoadProfile(context.Background())
	}()

	require.Eventually(t, f.controller.LoadingProfile, time.Second, time.Millisecond)

	// Late callers join nothing and fetch nothing while a load is in flight.
	require.NoError(t, f.controller.LoadProfile(context.Background()))
	require.Equal(t, int32(1), auth.profileCalls.Load())

	close(auth.profileGate)
	wg.Wait()
	require.False(t, f.controller.LoadingProfile())
}

func TestLoadProfileFlagClearedOnFailure(t *testing.T) {
	auth := &fakeAuthAPI{profileErr: errors.New("backend down")}
	f := setupTestFixture(t, auth)
	require.NoError(t, f.keeper.Apply(grantFixture()))

	require.Error(t, f.controller.LoadProfile(context.Background()))
	require.False(t, f.controller.LoadingProfile())

	// A later call is not blocked by the failed one.
	require.Error(t, f.controller.LoadProfile(context.Background()))
	require.Equal(t, int32(2), auth.profileCalls.Load())
}

func TestInitFromStorageHydratesPersistedSession(t *testing.T) {
	f := setupTestFixture(t, &fakeAuthAPI{grant: grantFixture()})
	require.NoError(t, f.controller.Login(context.Background(), "alice", "secret"))

	// A second controller over the same store models a process restart.
	restarted, err := session.NewController(credentials.NewKeeper(f.store), f.auth, f.nav)
	require.NoError(t, err)
	require.False(t, restarted.IsAuthenticated())

	require.NoError(t, restarted.InitFromStorage())
	require.True(t, restarted.IsAuthenticated())
	require.Equal(t, []string{"school.read", "traffic.read"}, restarted.Permissions())
}

func TestHasPermission(t *testing.T) {
	f := setupTestFixture(t, &fakeAuthAPI{})
	require.NoError(t, f.keeper.Apply(grantFixture()))

	require.True(t, f.controller.HasPermission("school.read"))
	require.False(t, f.controller.HasPermission("rates.customer.read"))
}

func TestHasAnyPermissionORSemantics(t *testing.T) {
	f := setupTestFixture(t, &fakeAuthAPI{})
	require.NoError(t, f.keeper.Apply(grantFixture()))

	require.True(t, f.controller.HasAnyPermission([]string{"school.read", "rates.customer.read"}))
	require.False(t, f.controller.HasAnyPermission([]string{"rates.customer.read", "rates.node.read"}))
	require.True(t, f.controller.HasAnyPermission(nil))
	require.True(t, f.controller.HasAnyPermission([]string{}))
}
