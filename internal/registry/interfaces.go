package registry

// Debugger provides debug logging interface.
type Debugger interface {
	Printf(format string, v ...interface{})
}

// Resolver resolves registry type names. The orchestrator depends on this
// rather than on Service.
type Resolver interface {
	Resolve(name string) (Result, error)
}
