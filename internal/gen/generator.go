package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"text/template"

	"github.com/rs/zerolog"

	"propchain/internal/common"
	"propchain/internal/plan"
)

const (
	toolName     = "propchain"
	runtimePkg   = "propchain/reactive"
	runtimeAlias = "reactive"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// OutputDir overrides the directory generated files are written to.
	// Empty means each file goes next to the package it belongs to.
	OutputDir string
	// GenerateComments enables generation of explanatory comments.
	GenerateComments bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		GenerateComments: true,
	}
}

// Packages tells the generator about the packages units are emitted into.
type Packages interface {
	// PackageName returns the package name, or "" when unknown.
	PackageName(pkgPath string) string
	// Dir returns the package directory, or "" when unknown.
	Dir(pkgPath string) string
}

// Generator renders generation units.
type Generator struct {
	config GeneratorConfig
	log    zerolog.Logger
	pkgs   Packages
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig, logger zerolog.Logger) *Generator {
	return &Generator{config: config, log: logger}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "Order_WhenChanged.partial.g.go").
	Filename string
	// PkgPath is the package the file belongs to.
	PkgPath string
	// Dir is the directory of that package, empty when unknown.
	Dir string
	// Content is the formatted Go source code.
	Content []byte
}

// Generate renders every unit. pkgs may be nil, package names then
// default to the last element of the package path.
func (g *Generator) Generate(units []plan.GenerationUnit, pkgs Packages) ([]GeneratedFile, error) {
	g.pkgs = pkgs

	files := make([]GeneratedFile, 0, len(units))

	for i := range units {
		u := &units[i]

		file, err := g.generateUnit(u)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", u.Name, err)
		}

		g.log.Debug().
			Str("file", file.Filename).
			Str("pkg", file.PkgPath).
			Int("methods", len(u.Methods)).
			Msg("generated unit")

		files = append(files, *file)
	}

	return files, nil
}

// generateUnit generates the file of a single unit.
func (g *Generator) generateUnit(u *plan.GenerationUnit) (*GeneratedFile, error) {
	data := g.buildTemplateData(u, g.getPkgName(u.PkgPath))

	file := &GeneratedFile{
		Filename: data.Filename,
		PkgPath:  u.PkgPath,
	}

	if g.pkgs != nil {
		file.Dir = g.pkgs.Dir(u.PkgPath)
	}

	var buf bytes.Buffer
	if err := unitTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	// Format the generated code
	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		dir := g.config.OutputDir
		if dir == "" {
			dir = file.Dir
		}

		if werr := writeDebugUnformatted(dir, data.Filename, buf.Bytes()); werr != nil {
			g.log.Warn().Err(werr).Str("file", data.Filename).Msg("cannot save unformatted output")
		}

		file.Content = buf.Bytes()

		return file, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	file.Content = formatted

	return file, nil
}

// getPkgName returns the package name for a given package path.
// It asks the loaded packages first, falling back to the path base alias.
func (g *Generator) getPkgName(pkgPath string) string {
	if g.pkgs != nil {
		if name := g.pkgs.PackageName(pkgPath); name != "" {
			return name
		}
	}

	return common.PkgAlias(pkgPath)
}

var unitTemplate = template.Must(template.New("unit").Parse(`// Code generated by {{.Tool}}. DO NOT EDIT.

package {{.PackageName}}

import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})

var (
{{range .Paths}}{{if $.GenerateComments}}	// {{.Name}} follows {{range $i, $k := .Keys}}{{if $i}}, {{end}}{{$k}}{{end}} from {{.Host}}.
{{end}}	{{.Name}} = reactive.NewPath[{{.Host}}, {{.Output}}](
{{range .Links}}		reactive.{{.Helper}}({{printf "%q" .Name}},
			func(o {{.Owner}}) {{.Result}} { return {{.Get}} },
			{{if .Set}}func(o {{.Owner}}, v {{.Result}}) { {{.Set}} }{{else}}nil{{end}}),
{{end}}	)
{{end}})

func init() {
{{range .Paths}}{{$name := .Name}}{{range .Keys}}	reactive.Register({{printf "%q" .}}, {{$name}})
{{end}}{{end}}}
{{range .Methods}}
{{if $.GenerateComments}}// {{.Name}} returns the generated {{.Host}} -> {{.Output}} path for expr.
{{end}}func {{if $.Member}}({{$.Receiver}}) {{end}}{{.Name}}(expr string) (reactive.Path[{{.Host}}, {{.Output}}], bool) {
{{if .Single}}	return {{.Var}}, {{range $i, $k := .Keys}}{{if $i}} || {{end}}expr == {{printf "%q" $k}}{{end}}
{{else}}	switch expr {
{{range .Cases}}	case {{printf "%q" .Key}}:
		return {{.Var}}, true
{{end}}	}

	return reactive.Path[{{.Host}}, {{.Output}}]{}, false
{{end}}}
{{end}}`))
