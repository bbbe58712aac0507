package core

// Logger interface for bake logging
type Logger interface {
	Printf(format string, args ...interface{})
}
