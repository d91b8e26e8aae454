package credentials

// Storage keys. The browser dashboard persisted the same four entries in
// localStorage; keeping the names makes the stored form recognizable.
const (
	KeyToken        = "token"
	KeyRefreshToken = "refresh_token"
	KeyUser         = "auth_user"
	KeyPermissions  = "auth_perms"
)

// Snapshot is the persisted form of a Credential: four string entries under
// fixed keys. User and Permissions are held serialized so any string-keyed
// backend (file, keyring) can store them without knowing the schema.
type Snapshot struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
	User         string `json:"auth_user"`
	Permissions  string `json:"auth_perms"`
}

// Store provides durable persistence for credentials across restarts.
// Implementations can use a file, the OS keyring, or other backends.
type Store interface {
	// Load retrieves the persisted snapshot. Returns ErrCredentialsNotFound
	// when nothing has been saved yet.
	Load() (*Snapshot, error)

	// Save persists the snapshot, replacing any previous one.
	Save(snap *Snapshot) error

	// Delete removes all persisted entries. Deleting an empty store is not
	// an error.
	Delete() error
}
