// Package token provides the character level reader used by the parser.
//
// [Reader] wraps an [io.Reader] with a single cursor supporting [Reader.Peek],
// [Reader.Advance], bounded lookahead through [Reader.Mark] and
// [Reader.Reset], and skipping of whitespace, `//` line comments and
// `/* */` block comments.  Every consumed character advances the reader's
// [Pos], which is attached to each [SyntaxError].
//
// [Quote] and [Unquote] implement the JSON string escaping used when
// printing and parsing.
//
// A Reader is not safe for concurrent use.
package token
