package brd

// Attr is a single named attribute of a Node. Attribute order is preserved
// from the source document so serialization stays deterministic.
type Attr struct {
	Name  string
	Value string
}

// Node is one element of a board document tree. Text holds character data
// appearing before the first child; Tail holds character data following the
// node's end tag, which keeps source formatting intact across a merge.
type Node struct {
	Tag      string
	Attrs    []Attr
	Children []*Node
	Text     string
	Tail     string
}

// Document is a parsed board file together with its source location.
type Document struct {
	Path string
	Root *Node
}

// Attr returns the value of the named attribute, or "" when absent.
func (n *Node) Attr(name string) string {
	value, _ := n.LookupAttr(name)
	return value
}

// LookupAttr returns the value of the named attribute and whether it is set.
func (n *Node) LookupAttr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr updates the named attribute in place, or appends it when absent.
func (n *Node) SetAttr(name, value string) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// Clone returns a deep copy of the node. Clones share no structure with the
// original, so a subtree copied from an input document can be mutated freely
// by the output document that owns it.
func (n *Node) Clone() *Node {
	clone := &Node{
		Tag:  n.Tag,
		Text: n.Text,
		Tail: n.Tail,
	}
	if len(n.Attrs) > 0 {
		clone.Attrs = make([]Attr, len(n.Attrs))
		copy(clone.Attrs, n.Attrs)
	}
	if len(n.Children) > 0 {
		clone.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			clone.Children[i] = child.Clone()
		}
	}
	return clone
}

// Append adds a child to the end of the node's child sequence.
func (n *Node) Append(child *Node) {
	n.Children = append(n.Children, child)
}

// FindChild returns the first direct child with the given tag, or nil.
func (n *Node) FindChild(tag string) *Node {
	for _, child := range n.Children {
		if child.Tag == tag {
			return child
		}
	}
	return nil
}

// FindChildWithAttr returns the first direct child with the given tag whose
// named attribute equals value, or nil.
func (n *Node) FindChildWithAttr(tag, name, value string) *Node {
	for _, child := range n.Children {
		if child.Tag != tag {
			continue
		}
		if v, ok := child.LookupAttr(name); ok && v == value {
			return child
		}
	}
	return nil
}

// FindOrCreateChild returns the first direct child with the given tag,
// creating and appending an empty one when absent.
func (n *Node) FindOrCreateChild(tag string) *Node {
	if child := n.FindChild(tag); child != nil {
		return child
	}
	child := &Node{Tag: tag}
	n.Append(child)
	return child
}
