// Package kpath parses and renders document paths.
//
// A path addresses a value nested in a document:
//
//	"users[0].name"   // key users, index 0, key name
//	"[2].id"          // index 2 of a top level array, key id
//	"a.b.c"           // nested keys
//
// Parsing strips one optional leading '[', removes every ']' and splits the
// remainder on '[' and '.'.  A token which parses as a decimal integer is an
// index, any other token is a key.  Consequently "a.0" and "a[0]" are the
// same path, and keys which contain '.', '[' or ']', or which look like
// integers, cannot be expressed as keys.
//
// # Usage
//
//	kp, err := kpath.Parse("users[0].name")
//	parent := kp.Parent()                  // users[0]
//	child := parent.Append(kpath.Field("email"))
//	cmp := kp.Compare(child)               // -1, 0, or 1
//
// # Related Packages
//
//   - github.com/signadot/jsondoc/ir - resolution and assignment along paths
package kpath
