package loader

// DefaultSpecialGroup is the reserved group of supplemental numeric constants.
const DefaultSpecialGroup = "SpecialNumbers"

// NewService creates a new loader service with optional configuration
func NewService(options ...Option) *Service {
	s := &Service{
		specialGroup: DefaultSpecialGroup,
		debug:        &noOpDebugger{},
	}

	for _, opt := range options {
		opt(s)
	}

	return s
}

// WithSpecialGroup sets the reserved group name whose blocks are flat.
func WithSpecialGroup(name string) Option {
	return func(s *Service) {
		s.specialGroup = name
	}
}

// WithDebugger sets the debugger for logging
func WithDebugger(debugger Debugger) Option {
	return func(s *Service) {
		if debugger != nil {
			s.debug = debugger
		}
	}
}

// noOpDebugger is a no-op debugger
type noOpDebugger struct{}

func (n *noOpDebugger) Printf(format string, v ...interface{}) {}
