package registry

const (
	// DefaultTypePrefix is the prefix of GL registry type names.
	DefaultTypePrefix = "GL"
	// DefaultAPI is the API whose declarations win on duplicate names.
	DefaultAPI = "gl"
)

// Option is a functional option for configuring Service.
type Option func(*Service)

// WithTypePrefix sets the prefix that marks a name as a registry type.
func WithTypePrefix(prefix string) Option {
	return func(s *Service) {
		s.typePrefix = prefix
	}
}

// WithAPI sets the active API used to pick between duplicate aliases.
func WithAPI(api string) Option {
	return func(s *Service) {
		s.api = api
	}
}

// WithDebugger sets the debugger for logging.
func WithDebugger(debugger Debugger) Option {
	return func(s *Service) {
		if debugger != nil {
			s.debug = debugger
		}
	}
}
