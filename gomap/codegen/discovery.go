package codegen

import (
	"fmt"
	"go/build"
	"io/fs"
	"path/filepath"
	"strings"
)

const GeneratedSuffix = "_jsondoc_gen.go"

// DiscoverPackages lists the Go packages in dir, and with recursive, in
// its subdirectories.  Hidden and underscore directories, vendor and
// testdata are skipped, as are previously generated files.
func DiscoverPackages(dir string, recursive bool) ([]*PackageInfo, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for %q: %w", dir, err)
	}
	var res []*PackageInfo
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && (!recursive || skipDir(d.Name())) {
			return filepath.SkipDir
		}
		pkg, err := build.ImportDir(path, 0)
		if err != nil || len(pkg.GoFiles) == 0 {
			return nil
		}
		info := &PackageInfo{Path: pkg.ImportPath, Dir: path, Name: pkg.Name}
		for _, f := range pkg.GoFiles {
			if !isGenerated(f) {
				info.Files = append(info.Files, filepath.Join(path, f))
			}
		}
		res = append(res, info)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %q: %w", dir, err)
	}
	return res, nil
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") ||
		name == "vendor" || name == "testdata"
}

// OutputFile is the generated file name for a package.
func OutputFile(pkg *PackageInfo) string {
	return filepath.Join(pkg.Dir, pkg.Name+GeneratedSuffix)
}

func isGenerated(name string) bool {
	return strings.HasSuffix(name, GeneratedSuffix)
}
