package storefake

import (
	"sync"

	"github.com/nfa-dashboard/go-dashboard-client/credentials"
	clierrors "github.com/nfa-dashboard/go-dashboard-client/internal/errors"
)

var _ credentials.Store = (*FakeStore)(nil)

// FakeStore is an in-memory credentials.Store for tests.
type FakeStore struct {
	lock sync.RWMutex
	snap *credentials.Snapshot

	// SaveErr and LoadErr, when set, are returned by the respective calls.
	SaveErr error
	LoadErr error
}

func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

func (fs *FakeStore) Load() (*credentials.Snapshot, error) {
	fs.lock.RLock()
	defer fs.lock.RUnlock()

	if fs.LoadErr != nil {
		return nil, fs.LoadErr
	}
	if fs.snap == nil {
		return nil, clierrors.ErrCredentialsNotFound
	}
	snap := *fs.snap
	return &snap, nil
}

func (fs *FakeStore) Save(snap *credentials.Snapshot) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if fs.SaveErr != nil {
		return fs.SaveErr
	}
	copied := *snap
	fs.snap = &copied
	return nil
}

func (fs *FakeStore) Delete() error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	fs.snap = nil
	return nil
}

// Stored returns the last saved snapshot, or nil.
func (fs *FakeStore) Stored() *credentials.Snapshot {
	fs.lock.RLock()
	defer fs.lock.RUnlock()

	if fs.snap == nil {
		return nil
	}
	snap := *fs.snap
	return &snap
}
