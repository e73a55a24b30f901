package codegen

import (
	"fmt"
	"go/types"
	"path/filepath"
	"sync"

	"golang.org/x/tools/go/packages"
)

// PackageLoader loads and caches type checked packages by directory.
type PackageLoader struct {
	cache map[string]*packages.Package
	mu    sync.RWMutex
}

// NewPackageLoader creates a new PackageLoader.
func NewPackageLoader() *PackageLoader {
	return &PackageLoader{
		cache: make(map[string]*packages.Package),
	}
}

// LoadDir loads the package in dir.
func (l *PackageLoader) LoadDir(dir string) (*packages.Package, error) {
	l.mu.RLock()
	if pkg, ok := l.cache[dir]; ok {
		l.mu.RUnlock()
		return pkg, nil
	}
	l.mu.RUnlock()

	l.mu.Lock()
	defer l.mu.Unlock()

	// Check again in case it was loaded while we were waiting for the lock
	if pkg, ok := l.cache[dir]; ok {
		return pkg, nil
	}

	cfg := &packages.Config{
		Dir:  dir,
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedTypes | packages.NeedSyntax | packages.NeedTypesInfo,
	}
	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to load package in %q: %w", dir, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no package found in %q", dir)
	}
	// Errors are tolerated: a stale generated file may not compile, and the
	// declarations checked here usually do.
	pkg := pkgs[0]
	l.cache[dir] = pkg
	return pkg, nil
}

// Check verifies parsed constructors against the type checked package: the
// constructor takes the parsed number of parameters and builds a named
// non-interface type declared in the package which has no hand written
// FromJSON method.
func Check(pkg *packages.Package, ctors []*CtorInfo) error {
	if pkg.Types == nil {
		return fmt.Errorf("package %q has no type information", pkg.PkgPath)
	}
	scope := pkg.Types.Scope()
	for _, c := range ctors {
		fn, ok := scope.Lookup(c.Func).(*types.Func)
		if !ok {
			return fmt.Errorf("%s:%d: %s is not a function of package %s", c.FilePath, c.Line, c.Func, pkg.PkgPath)
		}
		sig := fn.Type().(*types.Signature)
		if sig.Params().Len() != len(c.ParamNames) {
			return fmt.Errorf("%s:%d: %s takes %d parameters", c.FilePath, c.Line, c.Func, sig.Params().Len())
		}
		tn, ok := scope.Lookup(c.Type).(*types.TypeName)
		if !ok || tn.IsAlias() {
			return fmt.Errorf("%s:%d: %s is not a type defined in package %s", c.FilePath, c.Line, c.Type, pkg.PkgPath)
		}
		named, ok := tn.Type().(*types.Named)
		if !ok {
			return fmt.Errorf("%s:%d: %s is not a named type", c.FilePath, c.Line, c.Type)
		}
		if _, ok := named.Underlying().(*types.Interface); ok {
			return fmt.Errorf("%s:%d: cannot generate methods for interface %s", c.FilePath, c.Line, c.Type)
		}
		for i := 0; i < named.NumMethods(); i++ {
			m := named.Method(i)
			if m.Name() != "FromJSON" {
				continue
			}
			file := pkg.Fset.Position(m.Pos()).Filename
			if !isGenerated(filepath.Base(file)) {
				return fmt.Errorf("%s:%d: %s already has a FromJSON method at %s", c.FilePath, c.Line, c.Type, pkg.Fset.Position(m.Pos()))
			}
		}
	}
	return nil
}
