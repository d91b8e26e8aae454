package keyringstore

import (
	"github.com/zalando/go-keyring"

	"github.com/nfa-dashboard/go-dashboard-client/credentials"
	clierrors "github.com/nfa-dashboard/go-dashboard-client/internal/errors"
)

var _ credentials.Store = (*KeyringStore)(nil)

// KeyringStore persists each snapshot entry in the OS keyring under the
// configured service name, one keyring secret per storage key.
type KeyringStore struct {
	service string
}

func New(service string) *KeyringStore {
	return &KeyringStore{service: service}
}

func (ks *KeyringStore) Load() (*credentials.Snapshot, error) {
	token, err := ks.get(credentials.KeyToken)
	if err != nil {
		return nil, err
	}
	refreshToken, err := ks.get(credentials.KeyRefreshToken)
	if err != nil {
		return nil, err
	}
	if token == "" && refreshToken == "" {
		return nil, clierrors.ErrCredentialsNotFound
	}

	user, err := ks.get(credentials.KeyUser)
	if err != nil {
		return nil, err
	}
	perms, err := ks.get(credentials.KeyPermissions)
	if err != nil {
		return nil, err
	}

	return &credentials.Snapshot{
		Token:        token,
		RefreshToken: refreshToken,
		User:         user,
		Permissions:  perms,
	}, nil
}

func (ks *KeyringStore) Save(snap *credentials.Snapshot) error {
	entries := map[string]string{
		credentials.KeyToken:        snap.Token,
		credentials.KeyRefreshToken: snap.RefreshToken,
		credentials.KeyUser:         snap.User,
		credentials.KeyPermissions:  snap.Permissions,
	}
	for key, value := range entries {
		if err := keyring.Set(ks.service, key, value); err != nil {
			return clierrors.Wrapf(err, "keyring set %q", key)
		}
	}
	return nil
}

func (ks *KeyringStore) Delete() error {
	keys := []string{
		credentials.KeyToken,
		credentials.KeyRefreshToken,
		credentials.KeyUser,
		credentials.KeyPermissions,
	}
	for _, key := range keys {
		if err := keyring.Delete(ks.service, key); err != nil && err != keyring.ErrNotFound {
			return clierrors.Wrapf(err, "keyring delete %q", key)
		}
	}
	return nil
}

func (ks *KeyringStore) get(key string) (string, error) {
	value, err := keyring.Get(ks.service, key)
	if err != nil {
		if err == keyring.ErrNotFound {
			return "", nil
		}
		return "", clierrors.Wrapf(err, "keyring get %q", key)
	}
	return value, nil
}
