package credentials

import (
	"encoding/json"
	"sync"

	clierrors "github.com/nfa-dashboard/go-dashboard-client/internal/errors"
)

// Keeper owns the process-wide Credential and keeps it in lockstep with a
// Store. Every mutation updates memory and storage in one critical section,
// so readers never observe a half-applied grant.
type Keeper struct {
	store Store

	lock sync.RWMutex
	cred Credential
}

// NewKeeper creates a Keeper over the given store. The in-memory credential
// starts empty; call Hydrate to pick up a persisted session.
func NewKeeper(store Store) *Keeper {
	return &Keeper{store: store}
}

// Hydrate overwrites the in-memory credential with the persisted snapshot.
// A missing snapshot hydrates to the empty credential. Malformed persisted
// entries degrade to empty fields rather than failing: a corrupt store must
// never lock the user out of re-authenticating.
func (k *Keeper) Hydrate() error {
	snap, err := k.store.Load()
	if err != nil {
		if clierrors.Is(err, clierrors.ErrCredentialsNotFound) {
			k.lock.Lock()
			k.cred = Credential{}
			k.lock.Unlock()
			return nil
		}
		return clierrors.Wrapf(err, "hydrate credentials")
	}

	cred := Credential{
		AccessToken:  snap.Token,
		RefreshToken: snap.RefreshToken,
	}
	if snap.User != "" {
		var user UserIdentity
		if err := json.Unmarshal([]byte(snap.User), &user); err == nil {
			cred.User = &user
		}
	}
	if snap.Permissions != "" {
		var perms []string
		if err := json.Unmarshal([]byte(snap.Permissions), &perms); err == nil {
			cred.Permissions = perms
		}
	}

	k.lock.Lock()
	k.cred = cred
	k.lock.Unlock()
	return nil
}

// Apply installs a full grant: both tokens, the user, and the flattened
// permission set, in memory and in storage.
func (k *Keeper) Apply(grant Grant) error {
	k.lock.Lock()
	defer k.lock.Unlock()

	cred := Credential{
		AccessToken:  grant.AccessToken,
		RefreshToken: grant.RefreshToken,
		User:         grant.User,
		Permissions:  Flatten(grant.Permissions),
	}
	if err := k.persist(cred); err != nil {
		return err
	}
	k.cred = cred
	return nil
}

// SetProfile updates the user and permission set, keeping the current
// tokens. Used by profile loads, which return no tokens.
func (k *Keeper) SetProfile(user *UserIdentity, perms []Permission) error {
	k.lock.Lock()
	defer k.lock.Unlock()

	cred := k.cred
	cred.User = user
	cred.Permissions = Flatten(perms)
	if err := k.persist(cred); err != nil {
		return err
	}
	k.cred = cred
	return nil
}

// Clear wipes the credential in memory and in storage.
func (k *Keeper) Clear() error {
	k.lock.Lock()
	defer k.lock.Unlock()

	k.cred = Credential{}
	if err := k.store.Delete(); err != nil {
		return clierrors.Wrapf(err, "clear credentials")
	}
	return nil
}

// Current returns a copy of the credential. The permission slice is copied
// so callers cannot mutate shared state.
func (k *Keeper) Current() Credential {
	k.lock.RLock()
	defer k.lock.RUnlock()

	cred := k.cred
	if cred.Permissions != nil {
		cred.Permissions = append([]string(nil), cred.Permissions...)
	}
	if cred.User != nil {
		user := *cred.User
		cred.User = &user
	}
	return cred
}

// AccessToken returns the current access token, empty when unauthenticated.
func (k *Keeper) AccessToken() string {
	k.lock.RLock()
	defer k.lock.RUnlock()
	return k.cred.AccessToken
}

// RefreshToken returns the current refresh token.
func (k *Keeper) RefreshToken() string {
	k.lock.RLock()
	defer k.lock.RUnlock()
	return k.cred.RefreshToken
}

func (k *Keeper) persist(cred Credential) error {
	snap := &Snapshot{
		Token:        cred.AccessToken,
		RefreshToken: cred.RefreshToken,
	}
	if cred.User != nil {
		user, err := json.Marshal(cred.User)
		if err != nil {
			return clierrors.Wrapf(err, "serialize user")
		}
		snap.User = string(user)
	}
	if cred.Permissions != nil {
		perms, err := json.Marshal(cred.Permissions)
		if err != nil {
			return clierrors.Wrapf(err, "serialize permissions")
		}
		snap.Permissions = string(perms)
	}
	if err := k.store.Save(snap); err != nil {
		return clierrors.Wrapf(err, "persist credentials")
	}
	return nil
}
