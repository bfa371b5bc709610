package recipe

import "fmt"

// ConfigError reports an invalid combination of settings and options.
// A recipe returns it from Validate, before any external build command runs.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "invalid configuration: " + e.Reason
}

// Invalidf builds a ConfigError from a format string.
func Invalidf(format string, a ...any) *ConfigError {
	return &ConfigError{Reason: fmt.Sprintf(format, a...)}
}
