package encode

import (
	"github.com/fatih/color"
	"github.com/signadot/jsondoc/ir"
)

// ColorAttr is the role of a piece of output within a value of some type.
type ColorAttr int

const (
	// FieldColor is an object key
	FieldColor ColorAttr = iota
	// ValueColor is a scalar
	ValueColor
	// SepColor is a bracket, comma or colon
	SepColor
)

// Colorable names a color slot.
type Colorable struct {
	Type ir.Type
	Attr ColorAttr
}

// Colors maps slots to terminal colors.  Slots without an entry are
// printed plain.
type Colors struct {
	Map map[Colorable]*color.Color
}

var palette = []struct {
	slot    Colorable
	r, g, b int
}{
	{Colorable{ir.NullType, ValueColor}, 168, 0, 196},
	{Colorable{ir.BoolType, ValueColor}, 0, 196, 196},
	{Colorable{ir.NumberType, ValueColor}, 128, 216, 236},
	{Colorable{ir.StringType, ValueColor}, 8, 196, 16},
	{Colorable{ir.ObjectType, FieldColor}, 128, 168, 196},
	{Colorable{ir.ObjectType, SepColor}, 196, 128, 128},
	{Colorable{ir.ArrayType, SepColor}, 255, 0, 196},
}

// NewColors returns the default palette.  Whether escapes are emitted
// follows color.NoColor.
func NewColors() *Colors {
	res := &Colors{Map: make(map[Colorable]*color.Color, len(palette))}
	for _, p := range palette {
		res.Map[p.slot] = color.RGB(p.r, p.g, p.b)
	}
	return res
}

func (c *Colors) Color(t ir.Type, a ColorAttr, s string) string {
	cc := c.Get(t, a)
	if cc == nil {
		return s
	}
	return cc.Sprint(s)
}

func (c *Colors) Get(t ir.Type, a ColorAttr) *color.Color {
	if c == nil {
		return nil
	}
	return c.Map[Colorable{Type: t, Attr: a}]
}
