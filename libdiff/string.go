package libdiff

import (
	"strings"

	"github.com/signadot/jsondoc/ir"
	"github.com/signadot/jsondoc/ir/kpath"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// MinEditLen is the length below which a changed string is always
// reported as a replacement.
const MinEditLen = 64

func (d *differ) str(path *kpath.KPath, from, to *ir.Node) {
	if from.String == to.String {
		return
	}
	if min(len(from.String), len(to.String)) < MinEditLen {
		d.replace(path, from, to)
		return
	}
	dmp := diffpatch.New()
	multiLine := strings.Contains(from.String, "\n") && strings.Contains(to.String, "\n")
	diffs := dmp.DiffMain(from.String, to.String, multiLine)
	diffSize := 0
	for _, diff := range diffs {
		if diff.Type != diffpatch.DiffEqual {
			diffSize += len(diff.Text)
		}
	}
	if diffSize > min(len(from.String), len(to.String))/2 {
		d.replace(path, from, to)
		return
	}
	patches := dmp.PatchMake(from.String, diffs)
	d.add(Change{Op: Edit, Path: path, From: from, To: to, Patch: dmp.PatchToText(patches)})
}
