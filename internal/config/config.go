package config

type Config interface {
	ClientConfig
	StorageConfig
	EnvConfig
}

type ClientConfig interface {
	GetBaseURL() string
	GetRequestTimeout() string
	GetUserAgent() string
}

type StorageConfig interface {
	GetCredentialsFile() string
	GetKeyringService() string
	GetStorageBackend() string
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
}

type mainConfig struct {
	EnvVars
}

func New() Config {
	return mainConfig{}
}
