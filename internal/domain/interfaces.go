package domain

// Debugger is the interface that wraps the basic Printf method. Every stage
// service accepts one for its debug output.
type Debugger interface {
	Printf(format string, v ...interface{})
}

// NoOpDebugger discards all output.
type NoOpDebugger struct{}

// Printf implements Debugger.
func (NoOpDebugger) Printf(format string, v ...interface{}) {}
