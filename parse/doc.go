// Package parse parses JSON text into IR nodes.
//
// # Usage
//
//	// Parse JSON text
//	node, err := parse.Parse([]byte(`{"name": "alice", "age": 30}`))
//	if err != nil {
//	    return err
//	}
//
//	// Parse from string
//	node, err := parse.ParseString(`[1, 2, 3]`)
//
//	// Parse with options
//	node, err := parse.Parse(data, parse.WithFilename("config.json"), parse.ParseAll())
//
// Besides RFC 8259 JSON the parser accepts // and /* */ comments anywhere
// whitespace is allowed, and a single trailing comma before a closing '}'
// or ']'.  ParseStrict turns both extensions off.
//
// Any value may appear at the top level.  Input following the top level
// value is left unread unless ParseAll is given, in which case anything but
// whitespace and comments is an error.
//
// Errors are *token.SyntaxError values carrying the position of the
// failure.  A failed parse never returns a partial tree.
//
// # Related Packages
//
//   - github.com/signadot/jsondoc/ir - IR representation
//   - github.com/signadot/jsondoc/encode - Encode IR to text
//   - github.com/signadot/jsondoc/token - Reading and positions
package parse
