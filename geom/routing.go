package geom

import (
	"fmt"
	"strconv"

	"github.com/pcbpanel/brdmerge/brd"
)

// NodeError reports a routing node that cannot be transformed, either because
// its tag is outside the recognized geometric vocabulary or because required
// coordinate attributes are missing or malformed. Path locates the node
// relative to the subtree Apply was called with.
type NodeError struct {
	Path   string
	Reason string
}

func (e *NodeError) Error() string {
	return e.Path + ": " + e.Reason
}

// Apply remaps the geometry of a routing node and its relevant descendants in
// place: wire endpoints, polygon vertices, text anchors, dimension points,
// circle centers, rectangle and frame corners, holes, vias, element origins
// and element attribute anchors. Orientation attributes compose per Orient.
func Apply(n *brd.Node, t Transform) error {
	return apply(n, t, n.Tag)
}

func apply(n *brd.Node, t Transform, path string) error {
	switch n.Tag {
	case "wire":
		return applyPositions(n, t, path, "x1", "y1", "x2", "y2")
	case "polygon":
		return applyChildren(n, t, path)
	case "vertex":
		return applyPositions(n, t, path, "x", "y")
	case "text":
		if err := applyPositions(n, t, path, "x", "y"); err != nil {
			return err
		}
		return applyOrientation(n, t, path)
	case "dimension":
		return applyPositions(n, t, path, "x1", "y1", "x2", "y2", "x3", "y3")
	case "circle", "hole", "via":
		return applyPositions(n, t, path, "x", "y")
	case "rectangle", "frame":
		// Rectangle rotation is carried entirely by the remapped corners.
		return applyPositions(n, t, path, "x1", "y1", "x2", "y2")
	case "element":
		if err := applyPositions(n, t, path, "x", "y"); err != nil {
			return err
		}
		if err := applyOrientation(n, t, path); err != nil {
			return err
		}
		return applyChildren(n, t, path)
	case "attribute":
		if err := applyPositions(n, t, path, "x", "y"); err != nil {
			return err
		}
		return applyOrientation(n, t, path)
	case "contactref", "variant":
		// No geometry of their own.
		return nil
	}
	return &NodeError{Path: path, Reason: "unexpected element"}
}

func applyChildren(n *brd.Node, t Transform, path string) error {
	for i, child := range n.Children {
		childPath := fmt.Sprintf("%s/%s[%d]", path, child.Tag, i+1)
		if err := apply(child, t, childPath); err != nil {
			return err
		}
	}
	return nil
}

// applyPositions remaps coordinate attribute pairs taken two at a time.
func applyPositions(n *brd.Node, t Transform, path string, attrs ...string) error {
	for i := 0; i+1 < len(attrs); i += 2 {
		if err := applyPosition(n, t, path, attrs[i], attrs[i+1]); err != nil {
			return err
		}
	}
	return nil
}

func applyPosition(n *brd.Node, t Transform, path, xattr, yattr string) error {
	x, err := coordinate(n, path, xattr)
	if err != nil {
		return err
	}
	y, err := coordinate(n, path, yattr)
	if err != nil {
		return err
	}
	x, y = t.Apply(x, y)
	n.SetAttr(xattr, formatCoord(x))
	n.SetAttr(yattr, formatCoord(y))
	return nil
}

func applyOrientation(n *brd.Node, t Transform, path string) error {
	stored, present := n.LookupAttr("rot")
	rot, err := t.Orient(stored)
	if err != nil {
		return &NodeError{Path: path, Reason: err.Error()}
	}
	// An attribute that was absent and composed to zero stays absent.
	if !present && rot == "R0" {
		return nil
	}
	n.SetAttr("rot", rot)
	return nil
}

func coordinate(n *brd.Node, path, attr string) (float64, error) {
	raw, ok := n.LookupAttr(attr)
	if !ok {
		return 0, &NodeError{Path: path, Reason: "missing coordinate attribute " + strconv.Quote(attr)}
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &NodeError{Path: path, Reason: fmt.Sprintf("malformed coordinate %s=%q", attr, raw)}
	}
	return value, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
