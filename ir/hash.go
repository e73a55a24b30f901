package ir

import (
	"encoding/binary"
	"hash/maphash"
	"math"
)

var seed = maphash.MakeSeed()

// Hash returns a 64-bit hash of the node consistent with Equal: equal nodes
// hash equally within a process.
// It panics if n is nil.
func (n *Node) Hash() uint64 {
	if n == nil {
		panic("ir: Hash called on nil node")
	}

	var h maphash.Hash
	h.SetSeed(seed)
	h.WriteByte(byte(n.Type))

	var b [8]byte
	switch n.Type {
	case NullType:
	case BoolType:
		if n.Bool {
			h.WriteByte(1)
		} else {
			h.WriteByte(0)
		}
	case NumberType:
		if p, err := n.parts(); err == nil {
			h.WriteString(p.digits)
			if p.neg {
				h.WriteByte('-')
			}
			binary.LittleEndian.PutUint64(b[:], uint64(p.exp))
			h.Write(b[:])
		} else {
			f, _ := n.float()
			binary.LittleEndian.PutUint64(b[:], math.Float64bits(f))
			h.Write(b[:])
		}
	case StringType:
		h.WriteString(n.String)
	case ArrayType:
		for _, v := range n.Values {
			binary.LittleEndian.PutUint64(b[:], v.Hash())
			h.Write(b[:])
		}
	case ObjectType:
		// entries combine by addition so that key order does not matter
		var sum uint64
		for i, field := range n.Fields {
			var eh maphash.Hash
			eh.SetSeed(seed)
			eh.WriteString(field.String)
			binary.LittleEndian.PutUint64(b[:], n.Values[i].Hash())
			eh.Write(b[:])
			sum += eh.Sum64()
		}
		binary.LittleEndian.PutUint64(b[:], sum)
		h.Write(b[:])
	}
	return h.Sum64()
}
