package job

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pcbpanel/brdmerge/geom"
	"github.com/pcbpanel/brdmerge/merge"
)

const sampleJob = `output: panel.brd
inputs:
  - path: left.brd
  - path: right.brd
    offsetX: 100.5
    offsetY: -20
    rotation: 90
`

func TestParse(t *testing.T) {
	j, err := Parse([]byte(sampleJob))
	require.NoError(t, err)

	assert.Equal(t, "panel.brd", j.Output)
	require.Len(t, j.Inputs, 2)
	assert.Equal(t, Input{Path: "left.brd"}, j.Inputs[0])
	assert.Equal(t, Input{Path: "right.brd", OffsetX: 100.5, OffsetY: -20, Rotation: 90}, j.Inputs[1])

	inputs := j.MergeInputs()
	assert.Equal(t, []merge.Input{
		{Path: "left.brd"},
		{Path: "right.brd", OffsetX: 100.5, OffsetY: -20, Rotation: geom.Rotate90},
	}, inputs)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "not yaml", src: ":\n-", want: "failed to parse"},
		{name: "no output", src: "inputs:\n  - path: a.brd\n", want: "no output"},
		{name: "no inputs", src: "output: out.brd\n", want: "no inputs"},
		{name: "input without path", src: "output: out.brd\ninputs:\n  - rotation: 90\n", want: "no path"},
		{name: "bad rotation", src: "output: out.brd\ninputs:\n  - path: a.brd\n    rotation: 45\n", want: "unsupported rotation 45"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleJob), 0o644))

	j, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "panel.brd", j.Output)

	_, err = Load(context.Background(), filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
