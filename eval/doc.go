// Package eval evaluates expr-lang expressions against documents.
//
// Expressions see the variables of an [Env], the document as the variable
// doc, and these functions:
//
//	getpath(path)   the value at path, or nil
//	haspath(path)   whether a value is present at path
//	keys(path)      the keys of the object at path
//	whereami()      the path of the current node
//	getenv(name)    an environment variable
//
// [Expand] replaces $[expr] references in the string values of a document.
package eval
