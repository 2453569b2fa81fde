// Package geom remaps board geometry when an input document is placed onto
// the merged panel: coordinates rotate about the origin and then translate by
// the input's offsets, and orientation attributes compose with the rotation.
package geom

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Rotation is a counter-clockwise rotation in degrees. Only the four
// quarter-turn values are valid.
type Rotation int

const (
	Rotate0   Rotation = 0
	Rotate90  Rotation = 90
	Rotate180 Rotation = 180
	Rotate270 Rotation = 270
)

// Valid reports whether the rotation is one of the supported quarter turns.
func (r Rotation) Valid() bool {
	switch r {
	case Rotate0, Rotate90, Rotate180, Rotate270:
		return true
	}
	return false
}

// ParseRotation parses a rotation literal. Only "0", "90", "180" and "270"
// are accepted.
func ParseRotation(s string) (Rotation, error) {
	switch s {
	case "0":
		return Rotate0, nil
	case "90":
		return Rotate90, nil
	case "180":
		return Rotate180, nil
	case "270":
		return Rotate270, nil
	}
	return 0, fmt.Errorf("unsupported rotation %q: supported rotations are 0, 90, 180, 270", s)
}

// Transform places an input board on the merged panel: rotation about the
// origin followed by a translation. Offsets are in millimeters.
type Transform struct {
	OffsetX  float64
	OffsetY  float64
	Rotation Rotation
}

// IsIdentity reports whether the transform leaves every coordinate untouched.
func (t Transform) IsIdentity() bool {
	return t.OffsetX == 0 && t.OffsetY == 0 && t.Rotation == Rotate0
}

// Apply rotates a point about the origin and translates it by the offsets.
func (t Transform) Apply(x, y float64) (float64, float64) {
	switch t.Rotation {
	case Rotate90:
		x, y = -y, x
	case Rotate180:
		x, y = -x, -y
	case Rotate270:
		x, y = y, -x
	}
	return x + t.OffsetX, y + t.OffsetY
}

// orientPattern matches a stored orientation attribute: an optional run of
// marker letters followed by a degree value, e.g. "R90" or "MR270".
var orientPattern = regexp.MustCompile(`^([a-zA-Z]*)([0-9]+)$`)

// Orient composes a stored orientation attribute value with the transform's
// rotation. An empty value stands for zero degrees with no mirror. A mirror
// marker ("M" in the prefix) inverts the sense of rotation, so mirrored parts
// rotate the opposite way.
func (t Transform) Orient(value string) (string, error) {
	if value == "" {
		value = "R0"
	}
	m := orientPattern.FindStringSubmatch(value)
	if m == nil {
		return "", fmt.Errorf("unsupported rotation attribute %q", value)
	}
	prefix := m[1]
	degrees, err := strconv.Atoi(m[2])
	if err != nil {
		return "", fmt.Errorf("unsupported rotation attribute %q", value)
	}
	if strings.Contains(prefix, "M") {
		degrees -= int(t.Rotation)
	} else {
		degrees += int(t.Rotation)
	}
	degrees %= 360
	if degrees < 0 {
		degrees += 360
	}
	return prefix + strconv.Itoa(degrees), nil
}
