package merge

import "github.com/pcbpanel/brdmerge/geom"

// Input describes one board file and its placement on the merged panel.
// Offsets are in millimeters. Inputs are immutable once parsed and consumed
// once, in command-line order.
type Input struct {
	Path     string
	OffsetX  float64
	OffsetY  float64
	Rotation geom.Rotation
}

// Transform returns the geometry transform this input applies to every
// coordinate and orientation it contributes.
func (in Input) Transform() geom.Transform {
	return geom.Transform{
		OffsetX:  in.OffsetX,
		OffsetY:  in.OffsetY,
		Rotation: in.Rotation,
	}
}
