package merge

import (
	"fmt"

	"github.com/pcbpanel/brdmerge/brd"
)

// FormatError reports a document that violates the expected board vocabulary:
// an unrecognized tag, unexpected attributes on a bare container, a malformed
// orientation value or missing coordinates. Path locates the offending node
// within the input document.
type FormatError struct {
	File   string
	Path   string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("for file %s: %s: %s", e.File, e.Path, e.Reason)
}

// ConflictError reports two subtrees that a merge policy required to be
// identical but were not. When both subtrees are known they are rendered for
// diagnosis.
type ConflictError struct {
	File     string
	Reason   string
	Existing *brd.Node
	Incoming *brd.Node
}

func (e *ConflictError) Error() string {
	msg := fmt.Sprintf("for file %s: %s", e.File, e.Reason)
	if e.Existing != nil && e.Incoming != nil {
		msg += "\n" + brd.Render(e.Existing) + "\n" + brd.Render(e.Incoming)
	}
	return msg
}
