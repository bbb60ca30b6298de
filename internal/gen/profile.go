package gen

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"sigs.k8s.io/yaml"

	"github.com/griffnb/glbindgen/internal/console"
	"github.com/griffnb/glbindgen/internal/domain"
	"github.com/griffnb/glbindgen/internal/loader"
	"github.com/griffnb/glbindgen/internal/naming"
	"github.com/griffnb/glbindgen/internal/orchestrator"
	"github.com/griffnb/glbindgen/internal/registry"
)

// Profile describes the API family a registry belongs to. The zero value of
// every field means the GL default.
type Profile struct {
	// API is the active binding, e.g. "gl" or "gles2".
	API string `json:"api,omitempty" toml:"api"`

	// FamilyPrefix is stripped from constant and command names ("gl").
	FamilyPrefix string `json:"familyPrefix,omitempty" toml:"familyPrefix"`

	// TypePrefix marks names that must resolve through the alias table ("GL").
	TypePrefix string `json:"typePrefix,omitempty" toml:"typePrefix"`

	Separator    string `json:"separator,omitempty" toml:"separator"`
	EnumType     string `json:"enumType,omitempty" toml:"enumType"`
	SpecialGroup string `json:"specialGroup,omitempty" toml:"specialGroup"`

	// VendorSuffixes replaces the default vendor vocabulary when set.
	VendorSuffixes []string `json:"vendorSuffixes,omitempty" toml:"vendorSuffixes"`
	DropMask       bool     `json:"dropMask,omitempty" toml:"dropMask"`

	// ReservedWords replaces the Go keyword list when set.
	ReservedWords []string `json:"reservedWords,omitempty" toml:"reservedWords"`
	EscapeSuffix  string   `json:"escapeSuffix,omitempty" toml:"escapeSuffix"`

	// PackagePrefix is prepended to every generated package name.
	PackagePrefix string `json:"packagePrefix,omitempty" toml:"packagePrefix"`
}

// DefaultProfile returns the GL profile.
func DefaultProfile() *Profile {
	p := &Profile{}
	p.applyDefaults()
	return p
}

// LoadProfile reads a profile from a .yaml, .yml or .toml file. Missing
// fields take the GL defaults.
func LoadProfile(path string) (*Profile, error) {
	p := &Profile{}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "could not read profile")
		}
		if err := yaml.Unmarshal(b, p); err != nil {
			return nil, errors.Wrapf(err, "invalid profile %s", path)
		}
	case ".toml":
		md, err := toml.DecodeFile(path, p)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid profile %s", path)
		}
		for _, key := range md.Undecoded() {
			console.Logger.Warn("profile %s: unknown key %q", path, key.String())
		}
	default:
		return nil, errors.WithHint(
			errors.Newf("unsupported profile format %q", ext),
			"use a .yaml, .yml or .toml file",
		)
	}

	p.applyDefaults()
	return p, nil
}

func (p *Profile) applyDefaults() {
	if p.API == "" {
		p.API = registry.DefaultAPI
	}
	if p.FamilyPrefix == "" {
		p.FamilyPrefix = "gl"
	}
	if p.TypePrefix == "" {
		p.TypePrefix = registry.DefaultTypePrefix
	}
	if p.Separator == "" {
		p.Separator = "_"
	}
	if p.EnumType == "" {
		p.EnumType = orchestrator.DefaultEnumType
	}
	if p.SpecialGroup == "" {
		p.SpecialGroup = loader.DefaultSpecialGroup
	}
	if len(p.VendorSuffixes) == 0 {
		p.VendorSuffixes = naming.DefaultSuffixes
	}
	if len(p.ReservedWords) == 0 {
		p.ReservedWords = domain.GoKeywords
	}
	if p.EscapeSuffix == "" {
		p.EscapeSuffix = orchestrator.DefaultEscapeSuffix
	}
}

// Namer returns the naming engine for the profile.
func (p *Profile) Namer() *naming.Namer {
	return naming.New(naming.Config{
		Prefix:    p.FamilyPrefix,
		Separator: p.Separator,
		Suffixes:  p.VendorSuffixes,
		DropMask:  p.DropMask,
	})
}

// PlannerConfig returns the planner configuration for the profile.
func (p *Profile) PlannerConfig(table registry.TypeMap, debug Debugger) *orchestrator.Config {
	return &orchestrator.Config{
		Namer:         p.Namer(),
		TypeMap:       table,
		API:           p.API,
		TypePrefix:    p.TypePrefix,
		EnumType:      p.EnumType,
		SpecialGroup:  p.SpecialGroup,
		ReservedWords: p.ReservedWords,
		EscapeSuffix:  p.EscapeSuffix,
		Debug:         debug,
	}
}
