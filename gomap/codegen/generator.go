package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/signadot/jsondoc/debug"
)

const (
	gomapPath   = "github.com/signadot/jsondoc/gomap"
	elementPath = "github.com/signadot/jsondoc/element"
)

// Generate returns the gofmt'ed source of the generated file for package
// pkgName holding ctors.
func Generate(pkgName string, ctors []*CtorInfo) ([]byte, error) {
	seen := map[string]*CtorInfo{}
	for _, c := range ctors {
		if prev, ok := seen[c.Type]; ok {
			return nil, fmt.Errorf("%s:%d: %s: type %s already constructed by %s at %s:%d",
				c.FilePath, c.Line, c.Func, c.Type, prev.Func, prev.FilePath, prev.Line)
		}
		seen[c.Type] = c
	}
	sorted := make([]*CtorInfo, len(ctors))
	copy(sorted, ctors)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Type < sorted[j].Type })

	buf := bytes.NewBuffer(nil)
	fmt.Fprintf(buf, "// Code generated by jsondoc-gen. DO NOT EDIT.\n\n")
	fmt.Fprintf(buf, "package %s\n\n", pkgName)
	writeImports(buf, sorted)
	for _, c := range sorted {
		if debug.Codegen() {
			debug.Log("op", "generate", "type", c.Type, "func", c.Func, "params", c.Params.String())
		}
		writeCtor(buf, c)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to format generated code: %w\n%s", err, buf.Bytes())
	}
	return src, nil
}

func writeImports(buf *bytes.Buffer, ctors []*CtorInfo) {
	paths := map[string]string{
		"element": elementPath,
		"gomap":   gomapPath,
	}
	for _, c := range ctors {
		for name, p := range c.Imports {
			paths[name] = p
		}
	}
	names := make([]string, 0, len(paths))
	for name := range paths {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return paths[names[i]] < paths[names[j]] })
	buf.WriteString("import (\n")
	for _, name := range names {
		p := paths[name]
		if name == defaultName(p) {
			fmt.Fprintf(buf, "\t%s\n", strconv.Quote(p))
			continue
		}
		fmt.Fprintf(buf, "\t%s %s\n", name, strconv.Quote(p))
	}
	buf.WriteString(")\n\n")
}

func defaultName(p string) string {
	return p[strings.LastIndex(p, "/")+1:]
}

func ctorVar(c *CtorInfo) string {
	return "jsondocCtor" + upperFirst(c.Type)
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func writeCtor(buf *bytes.Buffer, c *CtorInfo) {
	n := len(c.ParamNames)
	params := make([]string, n)
	for i := range params {
		params[i] = c.ParamNames[i] + " " + c.ParamTypes[i]
	}
	call := fmt.Sprintf("%s(%s)", c.Func, strings.Join(c.ParamNames, ", "))
	if !c.ReturnsErr {
		call += ", nil"
	}

	fmt.Fprintf(buf, "var %s = gomap.Ctor%d(%s, func(%s) (%s, error) {\n\treturn %s\n})\n\n",
		ctorVar(c), n, paramsExpr(c), strings.Join(params, ", "), c.resultType(), call)

	fmt.Fprintf(buf, "// FromJSON builds a %s with %s.\n", c.Type, c.Func)
	fmt.Fprintf(buf, "func (v *%s) FromJSON(el element.Element) error {\n", c.Type)
	fmt.Fprintf(buf, "\tres, err := gomap.Construct[%s](gomap.Default(), %s, el)\n", c.resultType(), ctorVar(c))
	buf.WriteString("\tif err != nil {\n\t\treturn err\n\t}\n")
	if c.Pointer {
		buf.WriteString("\tif res != nil {\n\t\t*v = *res\n\t}\n")
	} else {
		buf.WriteString("\t*v = res\n")
	}
	buf.WriteString("\treturn nil\n}\n\n")
}

func paramsExpr(c *CtorInfo) string {
	switch {
	case !c.Params.IsArray():
		keys := make([]string, len(c.Params.Keys()))
		for i, k := range c.Params.Keys() {
			keys[i] = strconv.Quote(k)
		}
		return "gomap.Keys(" + strings.Join(keys, ", ") + ")"
	case c.Params.Indices() == nil:
		return "gomap.Indices()"
	}
	idx := make([]string, len(c.Params.Indices()))
	for i, x := range c.Params.Indices() {
		idx[i] = strconv.Itoa(x)
	}
	return "gomap.Indices(" + strings.Join(idx, ", ") + ")"
}
