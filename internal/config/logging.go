package config

import "github.com/rshade/accountdesk/internal/logging"

// ToLoggingConfig converts the logging section for internal/logging.
// A configured file switches output to the file.
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}

	return logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: output,
		File:   lc.File,
	}
}

// GetLoggingConfig returns a copy of the global logging section.
func GetLoggingConfig() LoggingConfig {
	return GetGlobalConfig().Logging
}
