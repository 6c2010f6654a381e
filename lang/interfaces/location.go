package interfaces

import "fmt"

// CodeLocation is a span into a source buffer, modeled on the teacher's
// Textarea: a begin/end position plus the file it came from. Positions are
// zero-based internally and rendered one-based for humans, matching
// Textarea.Byline.
type CodeLocation struct {
	File        string
	BeginLine   int
	BeginColumn int
	EndLine     int
	EndColumn   int
}

// IsSet reports whether this location was ever populated by the parser, as
// opposed to being the zero value used by synthetic nodes (template
// expansions, the synthesized `self` instance, `for`-loop clones).
func (loc CodeLocation) IsSet() bool {
	return loc.File != "" || loc.BeginLine != 0 || loc.BeginColumn != 0
}

// String renders a one-based "file @ line:col-line:col" byline for
// diagnostics.
func (loc CodeLocation) String() string {
	if !loc.IsSet() {
		return "<synthetic>"
	}
	return fmt.Sprintf("%s @ %d:%d-%d:%d", loc.File, loc.BeginLine+1, loc.BeginColumn+1, loc.EndLine+1, loc.EndColumn+1)
}
