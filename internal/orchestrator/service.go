// Package orchestrator turns loaded registry records into the resolved
// emission model. It merges enum values, partitions groups and commands into
// vendor sections and resolves every type position.
package orchestrator

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/griffnb/glbindgen/internal/console"
	"github.com/griffnb/glbindgen/internal/domain"
	"github.com/griffnb/glbindgen/internal/loader"
	"github.com/griffnb/glbindgen/internal/naming"
	"github.com/griffnb/glbindgen/internal/registry"
)

const (
	// DefaultEnumType is the registry's generic enumeration type.
	DefaultEnumType = "GLenum"
	// DefaultEscapeSuffix is appended to reserved parameter names.
	DefaultEscapeSuffix = "_"
	// DefaultNamespace receives groups and values with no declared namespace.
	DefaultNamespace = "GL"
)

// Service plans the emission model for one registry.
type Service struct {
	loader   *loader.Service
	config   *Config
	reserved map[string]struct{}
}

// Config holds planner configuration options.
type Config struct {
	Namer *naming.Namer

	// TypeMap is the native C type table used to build a resolver from the
	// loaded aliases. Resolver, when set, is used instead.
	TypeMap  registry.TypeMap
	Resolver registry.Resolver

	// API is the active binding; values restricted to another API are dropped.
	API        string
	TypePrefix string
	EnumType   string

	SpecialGroup     string
	DefaultNamespace string

	ReservedWords []string
	EscapeSuffix  string

	Debug Debugger
}

// Debugger is the interface for debug logging.
type Debugger interface {
	Printf(format string, v ...interface{})
}

// New creates a new planner with the given configuration.
func New(config *Config) *Service {
	if config == nil {
		config = &Config{}
	}

	// Apply defaults for zero values
	if config.Namer == nil {
		config.Namer = naming.New(naming.Config{})
	}
	if config.TypeMap.Len() == 0 {
		config.TypeMap = registry.DefaultTypeMap()
	}
	if config.API == "" {
		config.API = registry.DefaultAPI
	}
	if config.TypePrefix == "" {
		config.TypePrefix = registry.DefaultTypePrefix
	}
	if config.EnumType == "" {
		config.EnumType = DefaultEnumType
	}
	if config.SpecialGroup == "" {
		config.SpecialGroup = loader.DefaultSpecialGroup
	}
	if config.DefaultNamespace == "" {
		config.DefaultNamespace = DefaultNamespace
	}
	if config.ReservedWords == nil {
		config.ReservedWords = domain.GoKeywords
	}
	if config.EscapeSuffix == "" {
		config.EscapeSuffix = DefaultEscapeSuffix
	}
	if config.Debug == nil {
		config.Debug = domain.NoOpDebugger{}
	}

	reserved := make(map[string]struct{}, len(config.ReservedWords))
	for _, word := range config.ReservedWords {
		reserved[word] = struct{}{}
	}

	return &Service{
		loader: loader.NewService(
			loader.WithSpecialGroup(config.SpecialGroup),
			loader.WithDebugger(config.Debug),
		),
		config:   config,
		reserved: reserved,
	}
}

// Parse loads the registry at path and plans it.
func (s *Service) Parse(path string) (*domain.Model, error) {
	s.config.Debug.Printf("Orchestrator: Step 1 - Loading registry %s", path)

	load, err := s.loader.Load(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load registry %s", path)
	}

	return s.Plan(load)
}

// Plan resolves loaded records into the emission model. load is not modified.
// Unresolvable names become diagnostics; only an alias cycle is an error.
func (s *Service) Plan(load *loader.LoadResult) (*domain.Model, error) {
	if load == nil {
		return nil, errors.New("nothing to plan: load result is nil")
	}

	p := &plan{
		Service:  s,
		load:     load,
		resolver: s.resolverFor(load),
		model:    &domain.Model{API: s.config.API},
	}

	s.config.Debug.Printf("Orchestrator: Step 2 - Merging %d enum blocks", len(load.Enums))
	p.values = mergeValues(load.Enums, s.config.SpecialGroup, s.config.API)

	s.config.Debug.Printf("Orchestrator: Step 3 - Partitioning %d groups", len(load.GroupOrder))
	p.collectNamespaces()
	p.planConstants()
	p.planEnums()

	s.config.Debug.Printf("Orchestrator: Step 4 - Resolving %d commands", len(load.Commands))
	if err := p.planCommands(); err != nil {
		return nil, err
	}

	model := p.build()
	s.config.Debug.Printf("Orchestrator: Planned %d namespaces with %d diagnostics",
		len(model.Namespaces), len(model.Diagnostics))

	return model, nil
}

func (s *Service) resolverFor(load *loader.LoadResult) registry.Resolver {
	if s.config.Resolver != nil {
		return s.config.Resolver
	}
	return registry.NewService(load.Aliases, s.config.TypeMap,
		registry.WithTypePrefix(s.config.TypePrefix),
		registry.WithAPI(s.config.API),
		registry.WithDebugger(s.config.Debug),
	)
}

// plan is the working state of one Plan call.
type plan struct {
	*Service

	load     *loader.LoadResult
	resolver registry.Resolver
	values   *valueTable
	model    *domain.Model

	namespaces []*namespaceBuilder
	byName     map[string]*namespaceBuilder

	// groupSuffix maps every declared group to its short name and section.
	groupSuffix map[string]groupRef
}

func (p *plan) diagnose(kind domain.DiagnosticKind, subject, format string, args ...interface{}) {
	d := domain.Diagnostic{Kind: kind, Subject: subject, Detail: fmt.Sprintf(format, args...)}
	p.model.Diagnostics = append(p.model.Diagnostics, d)
	console.Logger.Warn("%s", d)
}
