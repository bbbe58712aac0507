package sampler

import "fmt"

// ConfigError reports a sampling configuration that must abort the whole
// bake before any per-vertex work begins.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return "sampler: " + e.Msg
}

func configErrorf(format string, args ...interface{}) error {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}
