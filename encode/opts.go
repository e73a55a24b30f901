package encode

import "github.com/signadot/jsondoc/token"

const DefaultIndent = 4

type EncodeOption func(*EncState)

// Formatted selects multi-line output.  It is on by default.
func Formatted(v bool) EncodeOption {
	return func(es *EncState) { es.formatted = v }
}

// Indent sets the number of spaces per nesting level of formatted output.
func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

// Depth sets the nesting level output starts at.
func Depth(n int) EncodeOption {
	return func(es *EncState) { es.depth = n }
}

// EncodeCharset sets the output character set.  Characters outside it are
// written as \u escapes.
func EncodeCharset(cs token.Charset) EncodeOption {
	return func(es *EncState) { es.charset = cs }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) {
		if c == nil {
			es.Color = nil
			return
		}
		es.Color = c.Color
	}
}

// TrailingNL ends the output with a newline.
func TrailingNL(v bool) EncodeOption {
	return func(es *EncState) { es.trailingNL = v }
}

// FormattedFromOpts reports whether opts select formatted output.
func FormattedFromOpts(opts ...EncodeOption) bool {
	return newEncState(opts).formatted
}
