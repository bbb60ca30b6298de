package gen

import (
	"bytes"
	"go/format"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/tools/imports"

	"github.com/griffnb/glbindgen/internal/console"
	"github.com/griffnb/glbindgen/internal/domain"
)

// goPackage is the template view of one namespace.
type goPackage struct {
	Name      string
	Namespace string
	Header    string
	declared  map[string]string
}

type goConst struct {
	Name  string
	Raw   string
	Type  string
	Value string
}

type goEnum struct {
	Type    string
	Group   string
	Bitmask bool
	Members []goConst
}

type goParam struct {
	Name string
	Type string
}

type goFunc struct {
	Name    string
	Native  string
	Binding string
	Params  []goParam
	Return  string
}

// goFile is the data handed to a file template.
type goFile struct {
	*goPackage
	Suffix    string
	Constants []goConst
	Enums     []goEnum
	Funcs     []goFunc
}

// Unsafe reports whether a function signature of the file needs the
// unsafe package.
func (f goFile) Unsafe() bool {
	for _, fn := range f.Funcs {
		if strings.Contains(fn.Return, domain.OPAQUE) {
			return true
		}
		for _, p := range fn.Params {
			if strings.Contains(p.Type, domain.OPAQUE) {
				return true
			}
		}
	}
	return false
}

var goTemplates = template.Must(template.New("go").Funcs(template.FuncMap{
	"params": renderParams,
}).Parse(goSourceTemplates))

// writeGoPackages writes one Go package per namespace.
func (g *Gen) writeGoPackages(config *Config, model *domain.Model) error {
	profile := config.Profile
	if profile == nil {
		profile = DefaultProfile()
	}

	header := "// Code generated by glbindgen. DO NOT EDIT."
	if config.GeneratedTime {
		header = "// Code generated by glbindgen at " + time.Now().Format(time.RFC3339) + ". DO NOT EDIT."
	}

	for _, ns := range model.Namespaces {
		dir := filepath.Join(config.OutputDir, strings.ToLower(ns.Name))
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return errors.Wrapf(err, "could not create %s", dir)
		}

		pkg := &goPackage{
			Name:      packageName(profile.PackagePrefix, ns.Name),
			Namespace: ns.Name,
			Header:    header,
			declared:  make(map[string]string),
		}
		files := pkg.files(ns)

		for _, file := range files {
			if err := g.writeGoFile(dir, file); err != nil {
				return err
			}
		}

		console.Logger.Debug("create package %s at %s (%d files)", pkg.Name, dir, len(files))
	}

	return nil
}

// namedFile pairs a file name with its template and data.
type namedFile struct {
	name     string
	template string
	data     goFile
}

// funcEscape is appended to a function variable whose identifier is
// already an enum type.
const funcEscape = "Fn"

// files lays out the package. Enum types claim their identifiers first,
// then function variables, then members and constants. A function that
// clashes with an enum type is renamed with funcEscape; any other
// identifier that is taken is skipped with a warning.
func (pkg *goPackage) files(ns domain.Namespace) []namedFile {
	enums := make([][]goEnum, len(ns.Sections))
	for i, sec := range ns.Sections {
		for _, enum := range sec.Enums {
			typeName := enum.Name + enum.Suffix
			if !pkg.declare(typeName, enum.Group) {
				continue
			}
			enums[i] = append(enums[i], goEnum{Type: typeName, Group: enum.Group, Bitmask: enum.Bitmask})
		}
	}

	funcs := make([][]goFunc, len(ns.Sections))
	for i, sec := range ns.Sections {
		for _, fn := range sec.Functions {
			name := fn.Name + fn.Suffix
			if prev, ok := pkg.declared[name]; ok {
				console.Logger.Debug("%s: %s clashes with %s, renamed to %s", pkg.Namespace, fn.Native, prev, name+funcEscape)
				name += funcEscape
			}
			if !pkg.declare(name, fn.Native) {
				continue
			}
			funcs[i] = append(funcs[i], pkg.goFunc(ns.Name, name, fn))
		}
	}

	for i, sec := range ns.Sections {
		for j := range enums[i] {
			enum := &enums[i][j]
			for _, m := range sec.Enums[indexOfEnum(sec.Enums, enum.Group)].Members {
				name := enum.Type + m.Name
				if !pkg.declare(name, m.Raw) {
					continue
				}
				enum.Members = append(enum.Members, goConst{
					Name:  name,
					Raw:   m.Raw,
					Type:  enum.Type,
					Value: domain.NormalizeLiteral(m.Value),
				})
			}
		}
	}

	var constants []goConst
	for _, c := range ns.Constants {
		if !pkg.declare(c.Name, c.Raw) {
			continue
		}
		constants = append(constants, goConst{
			Name:  c.Name,
			Raw:   c.Raw,
			Type:  c.Type,
			Value: domain.NormalizeLiteral(c.Value),
		})
	}

	var out []namedFile
	if len(constants) > 0 {
		out = append(out, namedFile{"constants.go", "constants", goFile{goPackage: pkg, Constants: constants}})
	}

	var all []goFunc
	for i, sec := range ns.Sections {
		suffix := ""
		if sec.Suffix != "" {
			suffix = "_" + strings.ToLower(sec.Suffix)
		}
		if len(enums[i]) > 0 {
			out = append(out, namedFile{"enums" + suffix + ".go", "enums", goFile{goPackage: pkg, Suffix: sec.Suffix, Enums: enums[i]}})
		}
		if len(funcs[i]) > 0 {
			out = append(out, namedFile{"commands" + suffix + ".go", "commands", goFile{goPackage: pkg, Suffix: sec.Suffix, Funcs: funcs[i]}})
		}
		all = append(all, funcs[i]...)
	}

	if len(all) > 0 {
		out = append(out, namedFile{"bindings.go", "bindings", goFile{goPackage: pkg, Funcs: all}})
	}
	if len(out) == 0 {
		out = append(out, namedFile{"doc.go", "doc", goFile{goPackage: pkg}})
	}

	return out
}

// declare claims a package level identifier for owner.
func (pkg *goPackage) declare(name, owner string) bool {
	if name == "" {
		return false
	}
	if prev, ok := pkg.declared[name]; ok {
		console.Logger.Warn("%s: identifier %s of %s already used by %s, skipping", pkg.Namespace, name, owner, prev)
		return false
	}
	pkg.declared[name] = owner
	return true
}

func (pkg *goPackage) goFunc(namespace, name string, fn domain.Function) goFunc {
	out := goFunc{
		Name:    name,
		Native:  fn.Native,
		Binding: fn.Binding(namespace),
		Return:  goType(fn.Return),
		Params:  make([]goParam, 0, len(fn.Params)),
	}
	for _, p := range fn.Params {
		out.Params = append(out.Params, goParam{Name: p.Name, Type: goType(p.Type)})
	}
	return out
}

func indexOfEnum(enums []domain.Enum, group string) int {
	for i := range enums {
		if enums[i].Group == group {
			return i
		}
	}
	return -1
}

// goType renders a type position. Group types use their package level
// identifier, so vendor groups carry the suffix. unsafe.Pointer already is
// one level of indirection.
func goType(ref domain.TypeRef) string {
	var name string
	switch ref.Kind {
	case domain.KindVoid:
		return ""
	case domain.KindGroup:
		name = ref.Name + ref.Suffix
	case domain.KindUnresolved:
		name = ref.Qualified()
	default:
		name = ref.Name
	}

	stars := ref.Pointer
	if name == domain.OPAQUE && stars > 0 {
		stars--
	}
	return strings.Repeat("*", stars) + name
}

func renderParams(params []goParam) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, p.Name+" "+p.Type)
	}
	return strings.Join(parts, ", ")
}

// packageName builds a valid package name from the namespace.
func packageName(prefix, namespace string) string {
	name := strings.ToLower(prefix + namespace)
	name = strings.Map(func(r rune) rune {
		if r == '-' || r == '.' || r == ' ' {
			return '_'
		}
		return r
	}, name)
	if domain.IsGoKeyword(name) {
		name += "_"
	}
	return name
}

func (g *Gen) writeGoFile(dir string, file namedFile) error {
	buffer := &bytes.Buffer{}
	if err := goTemplates.ExecuteTemplate(buffer, file.template, file.data); err != nil {
		return errors.Wrapf(err, "could not render %s", file.name)
	}

	name := filepath.Join(dir, file.name)
	return g.writeFile(g.formatSource(name, buffer.Bytes()), name)
}

// formatSource fixes imports and formats src, falling back to go/format and
// then to the raw text.
func (g *Gen) formatSource(filename string, src []byte) []byte {
	code, err := imports.Process(filename, src, nil)
	if err == nil {
		return code
	}
	g.debug.Printf("imports failed for %s: %v", filename, err)

	code, err = format.Source(src)
	if err != nil {
		code = src // Formatter failed, return original code.
	}

	return code
}

const goSourceTemplates = `
{{- define "doc" -}}
{{ .Header }}

// Package {{ .Name }} holds the {{ .Namespace }} bindings.
package {{ .Name }}
{{ end -}}

{{- define "constants" -}}
{{ .Header }}

package {{ .Name }}

const (
{{- range .Constants }}
	{{ .Name }} {{ .Type }} = {{ .Value }} // {{ .Raw }}
{{- end }}
)
{{ end -}}

{{- define "enums" -}}
{{ .Header }}

package {{ .Name }}
{{ range .Enums }}
// {{ .Type }} is the {{ .Group }} group.{{ if .Bitmask }} Members are bit flags and may be combined.{{ end }}
type {{ .Type }} uint32
{{ if .Members }}
const (
{{- range .Members }}
	{{ .Name }} {{ .Type }} = {{ .Value }} // {{ .Raw }}
{{- end }}
)
{{ end -}}
{{ end -}}
{{ end -}}

{{- define "commands" -}}
{{ .Header }}
{{ if .Suffix }}
// Commands of the {{ .Suffix }} extensions.
{{ end }}
package {{ .Name }}
{{ if .Unsafe }}
import "unsafe"
{{ end }}
var (
{{- range .Funcs }}
	// {{ .Name }} is bound to {{ .Native }}.
	{{ .Name }} func({{ params .Params }}){{ if .Return }} {{ .Return }}{{ end }}
{{- end }}
)
{{ end -}}

{{- define "bindings" -}}
{{ .Header }}

package {{ .Name }}

// Binding ties a native command to the function variable that calls it.
type Binding struct {
	// Native is the registry name of the command.
	Native string
	// Name is the qualified binding name.
	Name string
	// Target points at the function variable to fill in.
	Target interface{}
}

// Bindings lists every command of the package.
var Bindings = []Binding{
{{- range .Funcs }}
	{Native: {{ printf "%q" .Native }}, Name: {{ printf "%q" .Binding }}, Target: &{{ .Name }}},
{{- end }}
}

// Lookup returns the binding of a native command.
func Lookup(native string) (Binding, bool) {
	for _, b := range Bindings {
		if b.Native == native {
			return b, true
		}
	}
	return Binding{}, false
}
{{ end -}}
`
