package brd

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/viant/afs"
)

// Load reads and parses a board document from the given location.
func Load(ctx context.Context, URL string) (*Document, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", URL, err)
	}
	root, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", URL, err)
	}
	return &Document{Path: URL, Root: root}, nil
}

// Parse builds a document tree from raw XML. Character data between elements
// is kept verbatim as Text and Tail so that emitting the tree reproduces the
// source layout; the declaration and doctype are discarded here and written
// back by Emit.
func Parse(data []byte) (*Node, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	var root *Node
	var stack []*Node

	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			node := &Node{Tag: t.Name.Local}
			for _, a := range t.Attr {
				node.Attrs = append(node.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("unexpected second root element <%s>", t.Name.Local)
				}
				root = node
			} else {
				stack[len(stack)-1].Append(node)
			}
			stack = append(stack, node)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			current := stack[len(stack)-1]
			if len(current.Children) == 0 {
				current.Text += string(t)
			} else {
				last := current.Children[len(current.Children)-1]
				last.Tail += string(t)
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("document contains no elements")
	}
	return root, nil
}
