package brd

import (
	"bytes"
	"sort"
	"strconv"

	"github.com/minio/highwayhash"
)

var hashKey = []byte("0123456789ABCDEF0123456789ABCDEF")

// Fingerprint returns a 64-bit structural digest of a subtree. Two subtrees
// that compare equal under Compare always share a fingerprint; differing
// fingerprints prove inequality cheaply.
func Fingerprint(n *Node) uint64 {
	hash, err := highwayhash.New64(hashKey)
	if err != nil {
		panic("brd: invalid hash key: " + err.Error())
	}
	hash.Write(canonical(n))
	return hash.Sum64()
}

// canonical renders a subtree in the same shape Compare inspects it: tag,
// tail, sorted attributes, then the multiset of children as their sorted
// canonical renderings.
func canonical(n *Node) []byte {
	var buf bytes.Buffer
	writeCanonical(&buf, n)
	return buf.Bytes()
}

func writeCanonical(buf *bytes.Buffer, n *Node) {
	buf.WriteString(strconv.Quote(n.Tag))
	buf.WriteString(strconv.Quote(n.Tail))
	attrs := sortedAttrs(n.Attrs)
	for _, a := range attrs {
		buf.WriteString(strconv.Quote(a.Name))
		buf.WriteString(strconv.Quote(a.Value))
	}
	if len(n.Children) == 0 {
		return
	}
	rendered := make([]string, len(n.Children))
	for i, child := range n.Children {
		rendered[i] = string(canonical(child))
	}
	sort.Strings(rendered)
	buf.WriteByte('{')
	for _, r := range rendered {
		buf.WriteString(r)
	}
	buf.WriteByte('}')
}
