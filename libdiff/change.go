package libdiff

import (
	"fmt"

	"github.com/signadot/jsondoc/encode"
	"github.com/signadot/jsondoc/ir"
	"github.com/signadot/jsondoc/ir/kpath"
)

type Op string

const (
	Insert  Op = "insert"
	Delete  Op = "delete"
	Replace Op = "replace"
	Edit    Op = "edit"
)

// Change is one difference.  Changes of a diff apply in order: the path of
// each change is relative to the document as left by the changes before
// it, so array indices account for earlier insertions and deletions.
//
// Insert has To, Delete has From, Replace has both.  Edit has both string
// nodes and Patch, the diff-match-patch text turning From into To.
type Change struct {
	Op    Op
	Path  *kpath.KPath
	From  *ir.Node
	To    *ir.Node
	Patch string
}

func (c *Change) String() string {
	p := c.Path.String()
	if p == "" {
		p = "."
	}
	switch c.Op {
	case Insert:
		return fmt.Sprintf("+ %s: %s", p, compact(c.To))
	case Delete:
		return fmt.Sprintf("- %s: %s", p, compact(c.From))
	case Edit:
		return fmt.Sprintf("~ %s: %d byte patch", p, len(c.Patch))
	}
	return fmt.Sprintf("~ %s: %s -> %s", p, compact(c.From), compact(c.To))
}

func compact(n *ir.Node) string {
	s, err := encode.EncodeString(n, encode.Formatted(false))
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return s
}

// ToIR renders changes as an array of objects with the members op, path
// and, as present, from, to and patch.
func ToIR(changes []Change) *ir.Node {
	res := make([]*ir.Node, len(changes))
	for i := range changes {
		c := &changes[i]
		kvs := []ir.KeyVal{
			{Key: "op", Val: ir.FromString(string(c.Op))},
			{Key: "path", Val: ir.FromString(c.Path.String())},
		}
		if c.Op == Edit {
			kvs = append(kvs, ir.KeyVal{Key: "patch", Val: ir.FromString(c.Patch)})
			res[i] = ir.FromKeyVals(kvs)
			continue
		}
		if c.From != nil {
			kvs = append(kvs, ir.KeyVal{Key: "from", Val: c.From.Clone()})
		}
		if c.To != nil {
			kvs = append(kvs, ir.KeyVal{Key: "to", Val: c.To.Clone()})
		}
		res[i] = ir.FromKeyVals(kvs)
	}
	return ir.FromSlice(res)
}
