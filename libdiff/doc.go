// Package libdiff reports the differences between two documents.
//
// [Diff] compares two trees structurally and returns the list of changes
// which turn the first into the second.  Object members are matched by key
// and array elements by a sequence diff of element summaries, so an
// element inserted at the front of an array is one insertion rather than a
// replacement of every element.  Long strings with small differences are
// reported as edits carrying a patch in diff-match-patch text form.
//
// [Lines] is a line oriented text diff, used to compare a file with its
// formatted rendering.
//
// Changes are reported, never applied: libdiff does not implement JSON
// Patch or JSON Merge Patch.
package libdiff
