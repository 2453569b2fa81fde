package brd

import (
	"bytes"
	"strings"
)

const header = "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n" +
	"<!DOCTYPE eagle SYSTEM \"eagle.dtd\">\n"

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\"", "&quot;")
)

// Emit serializes a document tree back to bytes, prefixed with the fixed XML
// declaration and the eagle doctype reference.
func Emit(root *Node) []byte {
	var buf bytes.Buffer
	buf.WriteString(header)
	writeNode(&buf, root)
	buf.WriteByte('\n')
	return buf.Bytes()
}

// Render serializes a single subtree without the document header. Used for
// conflict diagnostics, where both offending subtrees are shown verbatim.
func Render(n *Node) string {
	var buf bytes.Buffer
	writeNode(&buf, n)
	return buf.String()
}

func writeNode(buf *bytes.Buffer, n *Node) {
	buf.WriteByte('<')
	buf.WriteString(n.Tag)
	for _, a := range n.Attrs {
		buf.WriteByte(' ')
		buf.WriteString(a.Name)
		buf.WriteString("=\"")
		attrEscaper.WriteString(buf, a.Value)
		buf.WriteByte('"')
	}
	if n.Text == "" && len(n.Children) == 0 {
		buf.WriteString("/>")
		return
	}
	buf.WriteByte('>')
	textEscaper.WriteString(buf, n.Text)
	for _, child := range n.Children {
		writeNode(buf, child)
		textEscaper.WriteString(buf, child.Tail)
	}
	buf.WriteString("</")
	buf.WriteString(n.Tag)
	buf.WriteByte('>')
}
