package codegen

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/signadot/jsondoc/gomap"
)

const directivePrefix = "//jsondoc:ctor"

// maxArity is the largest constructor gomap supports (Ctor4).
const maxArity = 4

// ParseFile parses a Go source file and returns its AST.  src is passed to
// go/parser and may be nil to read filename.
func ParseFile(filename string, src any) (*ast.File, *token.FileSet, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse file %q: %w", filename, err)
	}
	return file, fset, nil
}

// ParseDirective parses the text following "jsondoc:ctor".
//
//	keys=a,b       object keys a and b
//	array          array indices 0..n-1
//	indices=2,0    array indices 2 and 0
func ParseDirective(s string) (gomap.Params, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "array":
		return gomap.Indices(), nil
	case strings.HasPrefix(s, "keys="):
		keys := strings.Split(strings.TrimPrefix(s, "keys="), ",")
		for i, k := range keys {
			keys[i] = strings.TrimSpace(k)
			if keys[i] == "" {
				return gomap.Params{}, fmt.Errorf("empty key in %q", s)
			}
		}
		return gomap.Keys(keys...), nil
	case strings.HasPrefix(s, "indices="):
		strs := strings.Split(strings.TrimPrefix(s, "indices="), ",")
		idx := make([]int, len(strs))
		for i, str := range strs {
			n, err := strconv.Atoi(strings.TrimSpace(str))
			if err != nil || n < 0 {
				return gomap.Params{}, fmt.Errorf("bad index %q in %q", str, s)
			}
			idx[i] = n
		}
		return gomap.Indices(idx...), nil
	}
	return gomap.Params{}, fmt.Errorf("unknown directive %q, want keys=..., indices=... or array", s)
}

// findDirective returns the directive text of a doc comment, if any.
func findDirective(doc *ast.CommentGroup) (string, bool) {
	if doc == nil {
		return "", false
	}
	for _, c := range doc.List {
		if rest, ok := strings.CutPrefix(c.Text, directivePrefix); ok {
			if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
				continue
			}
			return strings.TrimSpace(rest), true
		}
	}
	return "", false
}

// ExtractCtors returns the annotated constructors declared in file.
func ExtractCtors(fset *token.FileSet, file *ast.File, filePath string) ([]*CtorInfo, error) {
	imports := fileImports(file)
	var res []*CtorInfo
	for _, decl := range file.Decls {
		fd, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}
		directive, ok := findDirective(fd.Doc)
		if !ok {
			continue
		}
		pos := fset.Position(fd.Pos())
		ctor, err := extractCtor(fd, directive, imports)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %s: %w", filePath, pos.Line, fd.Name.Name, err)
		}
		ctor.FilePath = filePath
		ctor.Line = pos.Line
		res = append(res, ctor)
	}
	return res, nil
}

func extractCtor(fd *ast.FuncDecl, directive string, imports map[string]string) (*CtorInfo, error) {
	if fd.Recv != nil {
		return nil, fmt.Errorf("constructor must be a function, not a method")
	}
	if fd.Type.TypeParams != nil && len(fd.Type.TypeParams.List) > 0 {
		return nil, fmt.Errorf("generic constructors are not supported")
	}
	params, err := ParseDirective(directive)
	if err != nil {
		return nil, err
	}
	ctor := &CtorInfo{
		Func:      fd.Name.Name,
		Params:    params,
		Directive: directive,
		Imports:   map[string]string{},
	}
	if err := ctor.setResult(fd.Type.Results); err != nil {
		return nil, err
	}
	for _, field := range fd.Type.Params.List {
		if _, ok := field.Type.(*ast.Ellipsis); ok {
			return nil, fmt.Errorf("variadic constructors are not supported")
		}
		typ := types.ExprString(field.Type)
		for _, name := range usedPackages(field.Type) {
			p, ok := imports[name]
			if !ok {
				return nil, fmt.Errorf("parameter type %s: package %s not imported", typ, name)
			}
			ctor.Imports[name] = p
		}
		names := field.Names
		if len(names) == 0 {
			names = []*ast.Ident{{Name: "_"}}
		}
		for _, name := range names {
			n := name.Name
			if n == "_" {
				n = "a" + strconv.Itoa(len(ctor.ParamNames))
			}
			ctor.ParamNames = append(ctor.ParamNames, n)
			ctor.ParamTypes = append(ctor.ParamTypes, typ)
		}
	}
	n := len(ctor.ParamNames)
	if n == 0 || n > maxArity {
		return nil, fmt.Errorf("constructor takes %d parameters, want 1 to %d", n, maxArity)
	}
	if want := directiveArity(params); want >= 0 && want != n {
		return nil, fmt.Errorf("%s names %d parameters but the constructor takes %d", params, want, n)
	}
	return ctor, nil
}

// directiveArity is the number of arguments params names, or -1 for
// positional array arguments.
func directiveArity(p gomap.Params) int {
	switch {
	case !p.IsArray():
		return len(p.Keys())
	case p.Indices() == nil:
		return -1
	}
	return len(p.Indices())
}

func (c *CtorInfo) setResult(results *ast.FieldList) error {
	if results == nil || len(results.List) == 0 {
		return fmt.Errorf("constructor has no result")
	}
	var exprs []ast.Expr
	for _, f := range results.List {
		n := len(f.Names)
		if n == 0 {
			n = 1
		}
		for range n {
			exprs = append(exprs, f.Type)
		}
	}
	switch len(exprs) {
	case 1:
	case 2:
		if id, ok := exprs[1].(*ast.Ident); !ok || id.Name != "error" {
			return fmt.Errorf("second result must be error")
		}
		c.ReturnsErr = true
	default:
		return fmt.Errorf("constructor must return T, *T, (T, error) or (*T, error)")
	}
	t := exprs[0]
	if star, ok := t.(*ast.StarExpr); ok {
		c.Pointer = true
		t = star.X
	}
	id, ok := t.(*ast.Ident)
	if !ok {
		return fmt.Errorf("result %s is not a type declared in this package", types.ExprString(exprs[0]))
	}
	if types.Universe.Lookup(id.Name) != nil {
		return fmt.Errorf("result %s is a predeclared type", id.Name)
	}
	c.Type = id.Name
	return nil
}

// usedPackages returns the package names referenced by a type expression.
func usedPackages(expr ast.Expr) []string {
	var res []string
	ast.Inspect(expr, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		if id, ok := sel.X.(*ast.Ident); ok {
			res = append(res, id.Name)
		}
		return false
	})
	return res
}

var majorVersion = regexp.MustCompile(`^v[0-9]+$`)

// fileImports maps the names under which file refers to its imports to
// their paths.  Unaliased imports are named by the last path element that
// is not a major version, which is the usual package name.
func fileImports(file *ast.File) map[string]string {
	res := map[string]string{}
	for _, spec := range file.Imports {
		p, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		if spec.Name != nil {
			if spec.Name.Name != "_" && spec.Name.Name != "." {
				res[spec.Name.Name] = p
			}
			continue
		}
		name := path.Base(p)
		if majorVersion.MatchString(name) {
			name = path.Base(path.Dir(p))
		}
		name = strings.TrimPrefix(name, "go-")
		name = strings.ReplaceAll(name, "-", "")
		name = strings.ReplaceAll(name, ".", "")
		res[name] = p
	}
	return res
}
