package merge

import "github.com/pcbpanel/brdmerge/brd"

// Policy is the merge rule assigned to a section tag.
type Policy int

const (
	// RequireIdentical makes the first occurrence authoritative; every later
	// occurrence must compare structurally equal or the merge fails.
	RequireIdentical Policy = iota
	// TakeFirst copies the first occurrence and silently ignores later ones.
	TakeFirst
	// KeyedUnion distinguishes children by a key and unions them; how an
	// existing key is treated depends on the section.
	KeyedUnion
	// AppendWithTransform deep-clones every child, remaps its geometry and
	// appends it unconditionally.
	AppendWithTransform
	// AppendWithRename is AppendWithTransform plus name uniqueness and
	// rename bookkeeping.
	AppendWithRename
	// Recurse marks a structural container whose children dispatch through
	// their own rule table.
	Recurse
	// Discard drops incoming entries while keeping the section present.
	Discard
)

func (p Policy) String() string {
	switch p {
	case RequireIdentical:
		return "require-identical"
	case TakeFirst:
		return "take-first"
	case KeyedUnion:
		return "keyed-union"
	case AppendWithTransform:
		return "append-with-transform"
	case AppendWithRename:
		return "append-with-rename"
	case Recurse:
		return "recurse"
	case Discard:
		return "discard"
	}
	return "unknown"
}

// sectionRule binds a section tag to its policy and handler. The handler
// receives the output container that owns the section and the input section
// node; path locates the input node for diagnostics.
type sectionRule struct {
	policy Policy
	merge  func(p *pass, out, in *brd.Node, path string) error
}

// drawingRules dispatches the children of /eagle/drawing.
var drawingRules = map[string]sectionRule{
	"settings": {KeyedUnion, mergeSettings},
	"grid":     {TakeFirst, syncFirst},
	"layers":   {KeyedUnion, mergeLayers},
	"board":    {Recurse, mergeBoard},
}

// boardRules dispatches the children of /eagle/drawing/board.
var boardRules = map[string]sectionRule{
	"plain":       {AppendWithTransform, appendPlain},
	"libraries":   {KeyedUnion, mergeLibraries},
	"attributes":  {RequireIdentical, syncIdentical},
	"variantdefs": {RequireIdentical, syncIdentical},
	"classes":     {RequireIdentical, syncIdentical},
	"designrules": {RequireIdentical, mergeDesignRules},
	"autorouter":  {TakeFirst, syncFirst},
	"elements":    {AppendWithRename, appendElements},
	"signals":     {AppendWithRename, appendSignals},
	"errors":      {Discard, dropErrors},
}

// PolicyFor reports the merge policy assigned to a section tag.
func PolicyFor(tag string) (Policy, bool) {
	if rule, ok := drawingRules[tag]; ok {
		return rule.policy, true
	}
	if rule, ok := boardRules[tag]; ok {
		return rule.policy, true
	}
	return 0, false
}
