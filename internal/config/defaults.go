package config

const (
	defaultBaseURL              = "https://lr.adobe.io"
	defaultTimeoutSeconds       = 30
	defaultUploadTimeoutSeconds = 300
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultLogDir               = "~/.local/share/lrcloud/logs"
	defaultHistoryEnabled       = true
	defaultHistoryPath          = "~/.local/share/lrcloud/history.db"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Service: Service{
			BaseURL:              defaultBaseURL,
			TimeoutSeconds:       defaultTimeoutSeconds,
			UploadTimeoutSeconds: defaultUploadTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
			LogDir: defaultLogDir,
		},
		History: History{
			Enabled: defaultHistoryEnabled,
			Path:    defaultHistoryPath,
		},
	}
}
