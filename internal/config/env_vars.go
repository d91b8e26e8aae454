package config

import (
	"os"
	"path/filepath"
)

const (
	baseURLVar         = "NFA_BASE_URL"
	appNameVar         = "NFA_APP_NAME"
	requestTimeoutVar  = "NFA_REQUEST_TIMEOUT"
	credentialsFileVar = "NFA_CREDENTIALS_FILE"
	keyringServiceVar  = "NFA_KEYRING_SERVICE"
	storageBackendVar  = "NFA_STORAGE_BACKEND"
	logLevelVar        = "NFA_LOG_LEVEL"
)

type EnvVars struct{}

var _ Config = EnvVars{}

// GetBaseURL returns the backend API origin (e.g., "http://localhost:8081")
func (EnvVars) GetBaseURL() string {
	return GetEnv(baseURLVar, "http://localhost:8081")
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "NFA Dashboard")
}

// GetRequestTimeout returns the per-request timeout as a time.Duration string
func (EnvVars) GetRequestTimeout() string {
	return GetEnv(requestTimeoutVar, "10s")
}

func (EnvVars) GetUserAgent() string {
	return GetEnv("NFA_USER_AGENT", "nfa-dashboard-client")
}

// GetCredentialsFile returns the path of the persisted credential file
func (EnvVars) GetCredentialsFile() string {
	if v := os.Getenv(credentialsFileVar); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".nfa-credentials.json"
	}
	return filepath.Join(home, ".nfa", "credentials.json")
}

func (EnvVars) GetKeyringService() string {
	return GetEnv(keyringServiceVar, "nfa-dashboard")
}

// GetStorageBackend selects the credential store: "file" or "keyring"
func (EnvVars) GetStorageBackend() string {
	return GetEnv(storageBackendVar, "file")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func (EnvVars) GetLogLevel() string {
	return GetEnv(logLevelVar, "info")
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
