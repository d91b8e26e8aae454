package filestore

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/nfa-dashboard/go-dashboard-client/credentials"
	clierrors "github.com/nfa-dashboard/go-dashboard-client/internal/errors"
)

var _ credentials.Store = (*FileStore)(nil)

// FileStore persists the credential snapshot as a JSON file readable only by
// the current user.
type FileStore struct {
	path string
}

func New(path string) *FileStore {
	return &FileStore{path: path}
}

func (fs *FileStore) Load() (*credentials.Snapshot, error) {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, clierrors.ErrCredentialsNotFound
		}
		return nil, clierrors.Wrapf(err, "read credentials file %q", fs.path)
	}

	var snap credentials.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, clierrors.Wrapf(err, "parse credentials file %q", fs.path)
	}
	return &snap, nil
}

func (fs *FileStore) Save(snap *credentials.Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(fs.path), 0o700); err != nil {
		return clierrors.Wrapf(err, "create credentials directory")
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return clierrors.Wrapf(err, "serialize credentials")
	}

	// Write-then-rename so a crash mid-write cannot leave a truncated file.
	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return clierrors.Wrapf(err, "write credentials file %q", tmp)
	}
	if err := os.Rename(tmp, fs.path); err != nil {
		return clierrors.Wrapf(err, "replace credentials file %q", fs.path)
	}
	return nil
}

func (fs *FileStore) Delete() error {
	if err := os.Remove(fs.path); err != nil && !os.IsNotExist(err) {
		return clierrors.Wrapf(err, "remove credentials file %q", fs.path)
	}
	return nil
}
