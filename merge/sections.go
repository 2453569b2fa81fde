package merge

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pcbpanel/brdmerge/brd"
	"github.com/pcbpanel/brdmerge/geom"
)

// pass carries the state of merging a single input document: its placement
// transform and the element renames performed so far. Renames recorded while
// the document's elements merge are consulted when its signals merge.
type pass struct {
	m       *Merger
	file    string
	tr      geom.Transform
	renames map[string]string
}

// mergeContainer checks that a structural container carries no attributes and
// dispatches each of its children through the given rule table.
func (p *pass) mergeContainer(out, in *brd.Node, path string, rules map[string]sectionRule) error {
	if err := p.requireNoAttrs(in, path); err != nil {
		return err
	}
	for i, child := range in.Children {
		rule, ok := rules[child.Tag]
		if !ok {
			return p.unexpected(child, childPath(path, child, i))
		}
		if err := rule.merge(p, out, child, path+"/"+child.Tag); err != nil {
			return err
		}
	}
	return nil
}

func mergeBoard(p *pass, out, in *brd.Node, path string) error {
	return p.mergeContainer(out.FindOrCreateChild("board"), in, path, boardRules)
}

// syncFirst copies the first occurrence of a singleton section and ignores
// later ones.
func syncFirst(p *pass, out, in *brd.Node, _ string) error {
	if out.FindChild(in.Tag) == nil {
		out.Append(in.Clone())
	}
	return nil
}

func syncIdentical(p *pass, out, in *brd.Node, path string) error {
	return p.identical(out, in, "unsupported difference in "+in.Tag)
}

func mergeDesignRules(p *pass, out, in *brd.Node, path string) error {
	return p.identical(out, in, "design rules must be equivalent")
}

// identical makes the first occurrence authoritative and fails on any later
// occurrence that differs structurally.
func (p *pass) identical(out, in *brd.Node, reason string) error {
	existing := out.FindChild(in.Tag)
	if existing == nil {
		out.Append(in.Clone())
		return nil
	}
	if !brd.Equal(existing, in) {
		return &ConflictError{File: p.file, Reason: reason, Existing: existing, Incoming: in}
	}
	return nil
}

// mergeSettings unions settings keyed by their attribute names. A setting
// with a known key but different values is a soft conflict: the first-seen
// value stays and a warning is logged.
func mergeSettings(p *pass, out, in *brd.Node, path string) error {
	dst := out.FindOrCreateChild("settings")
	if err := p.requireNoAttrs(in, path); err != nil {
		return err
	}
	for i, child := range in.Children {
		cp := childPath(path, child, i)
		if child.Tag != "setting" {
			return p.unexpected(child, cp)
		}
		if len(child.Children) > 0 {
			return &FormatError{File: p.file, Path: cp, Reason: "expected empty element"}
		}
		existing := findSetting(dst, child)
		if existing == nil {
			dst.Append(child.Clone())
			continue
		}
		if !brd.Equal(existing, child) {
			p.m.warnf("for file %s: incompatible settings\n%s\n%s",
				p.file, brd.Render(existing), brd.Render(child))
		}
	}
	return nil
}

func findSetting(parent, setting *brd.Node) *brd.Node {
	key := settingKey(setting)
	for _, child := range parent.Children {
		if child.Tag == "setting" && settingKey(child) == key {
			return child
		}
	}
	return nil
}

// settingKey identifies a setting by its attribute names; the values are the
// setting's payload, not part of the key.
func settingKey(n *brd.Node) string {
	names := make([]string, len(n.Attrs))
	for i, a := range n.Attrs {
		names[i] = a.Name
	}
	sort.Strings(names)
	return strings.Join(names, "\x00")
}

// mergeLayers unions layers keyed by number. Differences outside the key,
// such as colors, are ignored: the first-seen layer definition stays.
func mergeLayers(p *pass, out, in *brd.Node, path string) error {
	dst := out.FindOrCreateChild("layers")
	if err := p.requireNoAttrs(in, path); err != nil {
		return err
	}
	for i, child := range in.Children {
		cp := childPath(path, child, i)
		if child.Tag != "layer" {
			return p.unexpected(child, cp)
		}
		number, ok := child.LookupAttr("number")
		if !ok {
			return &FormatError{File: p.file, Path: cp, Reason: "layer without a number"}
		}
		if dst.FindChildWithAttr("layer", "number", number) == nil {
			dst.Append(child.Clone())
		}
	}
	return nil
}

// mergeLibraries unions libraries keyed by name; an existing library is
// merged recursively.
func mergeLibraries(p *pass, out, in *brd.Node, path string) error {
	dst := out.FindOrCreateChild("libraries")
	if err := p.requireNoAttrs(in, path); err != nil {
		return err
	}
	for i, child := range in.Children {
		cp := childPath(path, child, i)
		if child.Tag != "library" {
			return p.unexpected(child, cp)
		}
		name, ok := child.LookupAttr("name")
		if !ok {
			return &FormatError{File: p.file, Path: cp, Reason: "library without a name"}
		}
		existing := dst.FindChildWithAttr("library", "name", name)
		if existing == nil {
			dst.Append(child.Clone())
			continue
		}
		if err := p.mergeLibrary(existing, child, cp); err != nil {
			return err
		}
	}
	return nil
}

func (p *pass) mergeLibrary(out, in *brd.Node, path string) error {
	for i, child := range in.Children {
		switch child.Tag {
		case "description":
			if out.FindChild("description") == nil {
				out.Append(child.Clone())
			}
		case "packages":
			if err := p.mergePackages(out.FindOrCreateChild("packages"), child, path+"/packages"); err != nil {
				return err
			}
		default:
			return p.unexpected(child, childPath(path, child, i))
		}
	}
	return nil
}

// mergePackages unions packages keyed by name. Two packages sharing a name
// across inputs must be structurally identical.
func (p *pass) mergePackages(out, in *brd.Node, path string) error {
	if err := p.requireNoAttrs(in, path); err != nil {
		return err
	}
	for i, child := range in.Children {
		cp := childPath(path, child, i)
		if child.Tag != "package" {
			return p.unexpected(child, cp)
		}
		name, ok := child.LookupAttr("name")
		if !ok {
			return &FormatError{File: p.file, Path: cp, Reason: "package without a name"}
		}
		existing := out.FindChildWithAttr("package", "name", name)
		if existing == nil {
			out.Append(child.Clone())
			continue
		}
		if !brd.Equal(existing, child) {
			return &ConflictError{
				File:     p.file,
				Reason:   fmt.Sprintf("embedded libraries contain different packages of the same name %q", name),
				Existing: existing,
				Incoming: child,
			}
		}
	}
	return nil
}

// appendPlain clones every free-floating graphic, remaps its geometry and
// appends it unconditionally.
func appendPlain(p *pass, out, in *brd.Node, path string) error {
	dst := out.FindOrCreateChild("plain")
	if err := p.requireNoAttrs(in, path); err != nil {
		return err
	}
	for i, child := range in.Children {
		clone := child.Clone()
		if err := p.applyTransform(clone, childPath(path, child, i)); err != nil {
			return err
		}
		dst.Append(clone)
	}
	return nil
}

// appendElements appends every placed element with remapped geometry and a
// collision-free name, recording renames for the signal merge that follows.
func appendElements(p *pass, out, in *brd.Node, path string) error {
	dst := out.FindOrCreateChild("elements")
	if err := p.requireNoAttrs(in, path); err != nil {
		return err
	}
	for i, child := range in.Children {
		cp := childPath(path, child, i)
		if child.Tag != "element" {
			return p.unexpected(child, cp)
		}
		clone := child.Clone()
		if err := p.applyTransform(clone, cp); err != nil {
			return err
		}
		name, ok := clone.LookupAttr("name")
		if !ok {
			return &FormatError{File: p.file, Path: cp, Reason: "element without a name"}
		}
		unique := uniqueName(dst, "element", name, "_")
		clone.SetAttr("name", unique)
		if unique != name {
			p.renames[name] = unique
			overrideNameLabel(clone, name)
		}
		dst.Append(clone)
	}
	return nil
}

// appendSignals appends every signal with remapped geometry, contact
// references rewritten through this input's renames, and a collision-free
// name. Signals concatenate the rename index directly, without the
// underscore elements use.
func appendSignals(p *pass, out, in *brd.Node, path string) error {
	dst := out.FindOrCreateChild("signals")
	if err := p.requireNoAttrs(in, path); err != nil {
		return err
	}
	for i, child := range in.Children {
		cp := childPath(path, child, i)
		if child.Tag != "signal" {
			return p.unexpected(child, cp)
		}
		clone := child.Clone()
		for j, part := range clone.Children {
			if err := p.applyTransform(part, childPath(cp, part, j)); err != nil {
				return err
			}
			p.relink(part)
		}
		name, ok := clone.LookupAttr("name")
		if !ok {
			return &FormatError{File: p.file, Path: cp, Reason: "signal without a name"}
		}
		clone.SetAttr("name", uniqueName(dst, "signal", name, ""))
		dst.Append(clone)
	}
	return nil
}

// dropErrors keeps the errors section present in the output but drops
// incoming entries: checker results are stale once boards move.
func dropErrors(p *pass, out, in *brd.Node, _ string) error {
	out.FindOrCreateChild("errors")
	return nil
}

// applyTransform remaps a cloned routing subtree and converts a geometry
// vocabulary violation into a FormatError located within the input file.
func (p *pass) applyTransform(n *brd.Node, path string) error {
	err := geom.Apply(n, p.tr)
	if err == nil {
		return nil
	}
	var ne *geom.NodeError
	if errors.As(err, &ne) {
		return &FormatError{
			File:   p.file,
			Path:   path + strings.TrimPrefix(ne.Path, n.Tag),
			Reason: ne.Reason,
		}
	}
	return err
}

func (p *pass) requireNoAttrs(n *brd.Node, path string) error {
	if len(n.Attrs) > 0 {
		return &FormatError{File: p.file, Path: path, Reason: "unexpected attributes"}
	}
	return nil
}

func (p *pass) unexpected(n *brd.Node, path string) error {
	return &FormatError{File: p.file, Path: path, Reason: "unexpected element"}
}

func childPath(parent string, child *brd.Node, index int) string {
	return fmt.Sprintf("%s/%s[%d]", parent, child.Tag, index+1)
}
