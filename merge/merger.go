package merge

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/pcbpanel/brdmerge/brd"
)

// Merger accumulates independently drawn board documents into one output
// tree. It is the tree's only writer for the whole run; each input merges
// fully before the next loads, so at most two documents are resident at a
// time.
type Merger struct {
	root  *brd.Node
	warnf func(format string, args ...any)
}

// New returns a Merger with an empty eagle root. Warnings go to the standard
// logger unless redirected with SetWarnFunc.
func New() *Merger {
	return &Merger{
		root:  &brd.Node{Tag: "eagle"},
		warnf: log.Printf,
	}
}

// SetWarnFunc redirects soft-conflict warnings.
func (m *Merger) SetWarnFunc(f func(format string, args ...any)) {
	m.warnf = f
}

// Root returns the accumulated output tree.
func (m *Merger) Root() *brd.Node {
	return m.root
}

// Run loads and merges every input in order and returns the completed output
// tree. Any error aborts the run; nothing is serialized on failure.
func Run(ctx context.Context, inputs []Input) (*brd.Node, error) {
	m := New()
	for _, in := range inputs {
		doc, err := brd.Load(ctx, in.Path)
		if err != nil {
			return nil, err
		}
		if err := m.Merge(doc, in); err != nil {
			return nil, err
		}
	}
	return m.root, nil
}

// Merge merges one parsed document into the output tree. The input document
// is not retained; everything copied from it is deep-cloned.
func (m *Merger) Merge(doc *brd.Document, in Input) error {
	if doc.Root.Tag != "eagle" {
		return &FormatError{
			File:   doc.Path,
			Path:   "/" + doc.Root.Tag,
			Reason: "expected eagle root element",
		}
	}
	p := &pass{
		m:       m,
		file:    doc.Path,
		tr:      in.Transform(),
		renames: map[string]string{},
	}
	return p.mergeRoot(m.root, doc.Root)
}

// mergeRoot reconciles the document version and dispatches the root's
// children. The first input sets the version; every later input must carry
// the same one.
func (p *pass) mergeRoot(out, in *brd.Node) error {
	version := ""
	for _, a := range in.Attrs {
		if a.Name != "version" {
			return &FormatError{File: p.file, Path: "/eagle", Reason: "unexpected attribute " + strconv.Quote(a.Name)}
		}
		version = a.Value
	}
	if version == "" {
		return &FormatError{File: p.file, Path: "/eagle", Reason: "missing version attribute"}
	}
	if current, ok := out.LookupAttr("version"); !ok {
		out.SetAttr("version", version)
	} else if current != version {
		return &ConflictError{
			File:   p.file,
			Reason: fmt.Sprintf("eagle version mismatch: %s != %s", version, current),
		}
	}

	for i, child := range in.Children {
		switch child.Tag {
		case "drawing":
			if err := p.mergeContainer(out.FindOrCreateChild("drawing"), child, "/eagle/drawing", drawingRules); err != nil {
				return err
			}
		case "compatibility":
			p.m.warnf("for file %s: compatibility notes ignored", p.file)
		default:
			return p.unexpected(child, childPath("/eagle", child, i))
		}
	}
	return nil
}
