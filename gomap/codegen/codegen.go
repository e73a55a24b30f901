package codegen

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/signadot/jsondoc/debug"
)

// CodegenConfig controls GeneratePackage.
type CodegenConfig struct {
	// OutputFile overrides the default <package>_jsondoc_gen.go
	OutputFile string

	// Loader, when set, is used to type check constructors before
	// generating code
	Loader *PackageLoader
}

// GeneratePackage extracts the annotated constructors of pkg and writes
// the generated file.  When pkg has no annotated constructors nothing is
// written and a previously generated file is removed.  It returns the
// constructors found.
func GeneratePackage(pkg *PackageInfo, cfg *CodegenConfig) ([]*CtorInfo, error) {
	var ctors []*CtorInfo
	for _, filePath := range pkg.Files {
		file, fset, err := ParseFile(filePath, nil)
		if err != nil {
			return nil, err
		}
		found, err := ExtractCtors(fset, file, filePath)
		if err != nil {
			return nil, err
		}
		ctors = append(ctors, found...)
	}
	out := cfg.OutputFile
	if out == "" {
		out = OutputFile(pkg)
	}
	if debug.Codegen() {
		debug.Log("op", "package", "path", pkg.Path, "ctors", len(ctors), "out", out)
	}
	if len(ctors) == 0 {
		if err := os.Remove(out); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, nil
	}
	if cfg.Loader != nil {
		tpkg, err := cfg.Loader.LoadDir(pkg.Dir)
		if err != nil {
			return nil, err
		}
		if err := Check(tpkg, ctors); err != nil {
			return nil, err
		}
	}
	src, err := Generate(pkg.Name, ctors)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(out, src, 0644); err != nil {
		return nil, fmt.Errorf("failed to write output file %q: %w", out, err)
	}
	return ctors, nil
}
