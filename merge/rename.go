package merge

import (
	"strconv"

	"github.com/pcbpanel/brdmerge/brd"
)

// uniqueName probes candidates in a fixed order until one is free among the
// container's children: the desired name itself, then the name with suffix 1,
// 2, and so on, joined by sep. The lowest free index wins.
func uniqueName(parent *brd.Node, tag, name, sep string) string {
	candidate := name
	for i := 1; parent.FindChildWithAttr(tag, "name", candidate) != nil; i++ {
		candidate = name + sep + strconv.Itoa(i)
	}
	return candidate
}

// overrideNameLabel keeps a renamed element's visible label showing the name
// it was drawn with: the NAME label attribute is cloned into a secondary
// NAME1 attribute valued with the old name, and display of the original, now
// misleading label is turned off. Cosmetic only, no electrical effect.
func overrideNameLabel(el *brd.Node, oldName string) {
	label := el.FindChildWithAttr("attribute", "name", "NAME")
	if label == nil {
		return
	}
	secondary := label.Clone()
	secondary.SetAttr("name", "NAME1")
	secondary.SetAttr("value", oldName)
	el.Append(secondary)
	label.SetAttr("display", "off")
}

// relink rewrites a contact reference through the current input's rename map.
// References naming elements absent from the map pass through unchanged.
func (p *pass) relink(n *brd.Node) {
	if n.Tag != "contactref" {
		return
	}
	if name, ok := n.LookupAttr("element"); ok {
		if renamed, ok := p.renames[name]; ok {
			n.SetAttr("element", renamed)
		}
	}
}
