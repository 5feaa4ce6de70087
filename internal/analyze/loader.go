package analyze

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// ErrNoPackages is returned when the patterns matched nothing.
var ErrNoPackages = errors.New("no packages matched")

// Analyzer loads Go packages and extracts chain descriptors from them.
type Analyzer struct {
	log     zerolog.Logger
	dir     string
	exclude []string
	pkgs    []*packages.Package
	local   map[string]bool // package paths the generator writes into
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(logger zerolog.Logger) *Analyzer {
	return &Analyzer{
		log:   logger,
		local: make(map[string]bool),
	}
}

// WithDir sets the directory patterns are resolved in.
func (a *Analyzer) WithDir(dir string) *Analyzer {
	a.dir = dir
	return a
}

// WithExclude skips files whose "pkgPath/file.go" name matches one of the
// doublestar patterns (e.g. "**/*_mock.go"). Invalid patterns are
// rejected.
func (a *Analyzer) WithExclude(patterns ...string) (*Analyzer, error) {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return a, fmt.Errorf("invalid exclude pattern %q", p)
		}
	}

	a.exclude = append(a.exclude, patterns...)

	return a, nil
}

// LoadPackages loads the specified packages. Patterns are standard Go
// package patterns (e.g., "./store", "propchain/warehouse"). Every loaded
// package counts as local: hosts declared there get member units.
func (a *Analyzer) LoadPackages(patterns ...string) error {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return fmt.Errorf("failed to load packages: %w", err)
	}

	if len(pkgs) == 0 {
		return fmt.Errorf("%w: %s", ErrNoPackages, strings.Join(patterns, " "))
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	slices.SortFunc(pkgs, func(x, y *packages.Package) int {
		return strings.Compare(x.PkgPath, y.PkgPath)
	})

	for _, pkg := range pkgs {
		a.local[pkg.PkgPath] = true
		a.log.Debug().Str("pkg", pkg.PkgPath).Int("files", len(pkg.Syntax)).Msg("loaded package")
	}

	a.pkgs = append(a.pkgs, pkgs...)

	return nil
}

// Packages returns the loaded packages sorted by path.
func (a *Analyzer) Packages() []*packages.Package {
	return a.pkgs
}

// Dir returns the directory of a loaded package, empty when unknown.
func (a *Analyzer) Dir(pkgPath string) string {
	for _, pkg := range a.pkgs {
		if pkg.PkgPath == pkgPath {
			return pkg.Dir
		}
	}

	return ""
}

// PackageName returns the name of a loaded package, empty when unknown.
func (a *Analyzer) PackageName(pkgPath string) string {
	for _, pkg := range a.pkgs {
		if pkg.PkgPath == pkgPath {
			return pkg.Name
		}
	}

	return ""
}

// IsLocal reports whether pkgPath was loaded.
func (a *Analyzer) IsLocal(pkgPath string) bool {
	return a.local[pkgPath]
}
