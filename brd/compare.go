package brd

import (
	"sort"
	"strings"
)

// Compare defines a deterministic total order over document subtrees and
// returns -1, 0 or 1. The order is structural, not semantic: tag name first,
// then trailing text, then the attribute mapping rendered as a sorted
// sequence of (name, value) pairs, then children, with each side's children
// independently sorted by this same order before the pairwise walk. A strict
// prefix of the other side's child sequence orders first.
func Compare(a, b *Node) int {
	if c := strings.Compare(a.Tag, b.Tag); c != 0 {
		return c
	}
	if c := strings.Compare(a.Tail, b.Tail); c != 0 {
		return c
	}
	if c := compareAttrs(a.Attrs, b.Attrs); c != 0 {
		return c
	}

	ac := sortedChildren(a)
	bc := sortedChildren(b)
	for i := 0; i < len(ac) && i < len(bc); i++ {
		if c := Compare(ac[i], bc[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(ac) < len(bc):
		return -1
	case len(ac) > len(bc):
		return 1
	}
	return 0
}

// Equal reports whether two subtrees compare equal under Compare. Differing
// fingerprints reject inequality without a full ordered walk.
func Equal(a, b *Node) bool {
	if Fingerprint(a) != Fingerprint(b) {
		return false
	}
	return Compare(a, b) == 0
}

func compareAttrs(a, b []Attr) int {
	as := sortedAttrs(a)
	bs := sortedAttrs(b)
	for i := 0; i < len(as) && i < len(bs); i++ {
		if c := strings.Compare(as[i].Name, bs[i].Name); c != 0 {
			return c
		}
		if c := strings.Compare(as[i].Value, bs[i].Value); c != 0 {
			return c
		}
	}
	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	}
	return 0
}

func sortedAttrs(attrs []Attr) []Attr {
	if len(attrs) < 2 {
		return attrs
	}
	out := make([]Attr, len(attrs))
	copy(out, attrs)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Value < out[j].Value
	})
	return out
}

func sortedChildren(n *Node) []*Node {
	if len(n.Children) < 2 {
		return n.Children
	}
	out := make([]*Node, len(n.Children))
	copy(out, n.Children)
	sort.SliceStable(out, func(i, j int) bool {
		return Compare(out[i], out[j]) < 0
	})
	return out
}
