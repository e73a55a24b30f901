package codegen

import "github.com/signadot/jsondoc/gomap"

// PackageInfo describes a package found by DiscoverPackages.
type PackageInfo struct {
	// Path is the import path
	Path string

	// Dir is the absolute directory
	Dir string

	// Name is the package name
	Name string

	// Files are the absolute paths of the non-test Go files
	Files []string
}

// CtorInfo holds an annotated constructor parsed from Go source.
type CtorInfo struct {
	// Func is the constructor function name
	Func string

	// Type is the name of the constructed type, declared in the same
	// package
	Type string

	// Pointer is set when the constructor returns *Type
	Pointer bool

	// ReturnsErr is set when the constructor returns (Type, error)
	ReturnsErr bool

	// Params says where each argument is read from
	Params gomap.Params

	// Directive is the directive text following "jsondoc:ctor"
	Directive string

	// ParamNames and ParamTypes hold each parameter, with types as source
	// expressions
	ParamNames []string
	ParamTypes []string

	// Imports maps package names used in ParamTypes to import paths
	Imports map[string]string

	// FilePath is the source file of the constructor
	FilePath string

	// Line is the line of the constructor declaration
	Line int
}

func (c *CtorInfo) resultType() string {
	if c.Pointer {
		return "*" + c.Type
	}
	return c.Type
}
