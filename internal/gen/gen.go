package gen

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"sigs.k8s.io/yaml"

	"github.com/griffnb/glbindgen/internal/console"
	"github.com/griffnb/glbindgen/internal/domain"
	"github.com/griffnb/glbindgen/internal/orchestrator"
	"github.com/griffnb/glbindgen/internal/registry"
)

const (
	jsonModelFile = "model.json"
	yamlModelFile = "model.yaml"
)

type genTypeWriter func(*Config, *domain.Model) error

// Gen presents a generate tool for registry bindings.
type Gen struct {
	json          func(data interface{}) ([]byte, error)
	jsonIndent    func(data interface{}) ([]byte, error)
	jsonToYAML    func(data []byte) ([]byte, error)
	outputTypeMap map[string]genTypeWriter
	debug         Debugger
}

// Debugger is the interface that wraps the basic Printf method.
type Debugger interface {
	Printf(format string, v ...interface{})
}

// New creates a new Gen.
func New() *Gen {
	gen := Gen{
		json: json.Marshal,
		jsonIndent: func(data interface{}) ([]byte, error) {
			return json.MarshalIndent(data, "", "    ")
		},
		jsonToYAML: yaml.JSONToYAML,
		debug:      console.Logger,
	}

	gen.outputTypeMap = map[string]genTypeWriter{
		"go":   gen.writeGoPackages,
		"json": gen.writeJSONModel,
		"yaml": gen.writeYAMLModel,
		"yml":  gen.writeYAMLModel,
	}

	return &gen
}

// Config presents Gen configurations.
type Config struct {
	Debugger Debugger

	// SpecFile is the registry document to translate.
	SpecFile string

	// TypeMapFile is the native C type table. The embedded table is used
	// when empty.
	TypeMapFile string

	// ProfileFile is a .yaml or .toml profile. Profile wins when both are set.
	ProfileFile string
	Profile     *Profile

	// OutputDir is removed and recreated on every run.
	OutputDir string

	// OutputTypes define types of files which should be generated
	OutputTypes []string

	// GeneratedTime whether the timestamp goes into generated Go headers
	GeneratedTime bool
}

// Plan loads the registry and returns the resolved model without writing
// anything.
func (g *Gen) Plan(config *Config) (*domain.Model, error) {
	if config.Debugger != nil {
		g.debug = config.Debugger
	}

	if _, err := os.Stat(config.SpecFile); err != nil {
		return nil, errors.Wrapf(err, "registry %s", config.SpecFile)
	}

	profile, err := g.profile(config)
	if err != nil {
		return nil, err
	}

	table, err := g.typeMap(config)
	if err != nil {
		return nil, err
	}

	console.Logger.Debug("Planning bindings for %s (api %s)", config.SpecFile, profile.API)

	orc := orchestrator.New(profile.PlannerConfig(table, g.debug))
	return orc.Parse(config.SpecFile)
}

// Build plans the registry and writes every requested output type.
func (g *Gen) Build(config *Config) (*domain.Model, error) {
	model, err := g.Plan(config)
	if err != nil {
		return nil, err
	}

	if err := resetDir(config.OutputDir); err != nil {
		return nil, err
	}

	for _, outputType := range config.OutputTypes {
		outputType = strings.ToLower(strings.TrimSpace(outputType))
		if typeWriter, ok := g.outputTypeMap[outputType]; ok {
			if err := typeWriter(config, model); err != nil {
				return nil, err
			}
		} else {
			console.Logger.Warn("output type '%s' not supported", outputType)
		}
	}

	return model, nil
}

func (g *Gen) profile(config *Config) (*Profile, error) {
	switch {
	case config.Profile != nil:
		config.Profile.applyDefaults()
		return config.Profile, nil
	case config.ProfileFile != "":
		console.Logger.Debug("Using profile %s", config.ProfileFile)
		profile, err := LoadProfile(config.ProfileFile)
		if err != nil {
			return nil, err
		}
		config.Profile = profile
		return profile, nil
	}
	config.Profile = DefaultProfile()
	return config.Profile, nil
}

func (g *Gen) typeMap(config *Config) (registry.TypeMap, error) {
	if config.TypeMapFile == "" {
		return registry.DefaultTypeMap(), nil
	}
	console.Logger.Debug("Using type map %s", config.TypeMapFile)
	return registry.LoadTypeMap(config.TypeMapFile)
}

// resetDir removes dir and everything below it, then recreates it, so no
// stale generated file survives a run.
func resetDir(dir string) error {
	clean := filepath.Clean(dir)
	if dir == "" || clean == "." || clean == string(filepath.Separator) {
		return errors.Newf("refusing to reset output directory %q", dir)
	}
	if err := os.RemoveAll(clean); err != nil {
		return errors.Wrapf(err, "could not clear %s", clean)
	}
	return errors.Wrapf(os.MkdirAll(clean, os.ModePerm), "could not create %s", clean)
}

func (g *Gen) writeJSONModel(config *Config, model *domain.Model) error {
	jsonFileName := filepath.Join(config.OutputDir, jsonModelFile)

	b, err := g.jsonIndent(model)
	if err != nil {
		return err
	}

	err = g.writeFile(b, jsonFileName)
	if err != nil {
		return err
	}

	console.Logger.Debug("create %s at %+v", jsonModelFile, jsonFileName)

	return nil
}

func (g *Gen) writeYAMLModel(config *Config, model *domain.Model) error {
	yamlFileName := filepath.Join(config.OutputDir, yamlModelFile)

	b, err := g.json(model)
	if err != nil {
		return err
	}

	y, err := g.jsonToYAML(b)
	if err != nil {
		return errors.Wrap(err, "cannot convert json to yaml")
	}

	err = g.writeFile(y, yamlFileName)
	if err != nil {
		return err
	}

	console.Logger.Debug("create %s at %+v", yamlModelFile, yamlFileName)

	return nil
}

// writeFile creates, writes and closes file before returning.
func (g *Gen) writeFile(b []byte, file string) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}

	_, err = f.Write(b)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}

	return err
}
