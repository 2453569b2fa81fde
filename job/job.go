// Package job loads declarative panelization jobs: a YAML file naming the
// output board and the inputs to place, equivalent to spelling the same run
// out on the command line.
package job

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"

	"github.com/pcbpanel/brdmerge/geom"
	"github.com/pcbpanel/brdmerge/merge"
)

// Job describes one panelization run.
type Job struct {
	Output string  `yaml:"output"`
	Inputs []Input `yaml:"inputs"`
}

// Input is one board placement. Offsets are in millimeters; rotation is a
// counter-clockwise quarter turn in degrees.
type Input struct {
	Path     string  `yaml:"path"`
	OffsetX  float64 `yaml:"offsetX,omitempty"`
	OffsetY  float64 `yaml:"offsetY,omitempty"`
	Rotation int     `yaml:"rotation,omitempty"`
}

// Load reads and validates a job file.
func Load(ctx context.Context, URL string) (*Job, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file %s: %w", URL, err)
	}
	return Parse(data)
}

// Parse decodes and validates job YAML.
func Parse(data []byte) (*Job, error) {
	job := &Job{}
	if err := yaml.Unmarshal(data, job); err != nil {
		return nil, fmt.Errorf("failed to parse job file: %w", err)
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}
	return job, nil
}

// Validate checks that the job names an output, at least one input, and that
// every rotation is one of the supported quarter turns.
func (j *Job) Validate() error {
	if j.Output == "" {
		return fmt.Errorf("job file names no output")
	}
	if len(j.Inputs) == 0 {
		return fmt.Errorf("job file names no inputs")
	}
	for i, in := range j.Inputs {
		if in.Path == "" {
			return fmt.Errorf("input %d names no path", i+1)
		}
		if !geom.Rotation(in.Rotation).Valid() {
			return fmt.Errorf("input %s: unsupported rotation %d: supported rotations are 0, 90, 180, 270", in.Path, in.Rotation)
		}
	}
	return nil
}

// MergeInputs converts the job's inputs into merge inputs, in order.
func (j *Job) MergeInputs() []merge.Input {
	inputs := make([]merge.Input, len(j.Inputs))
	for i, in := range j.Inputs {
		inputs[i] = merge.Input{
			Path:     in.Path,
			OffsetX:  in.OffsetX,
			OffsetY:  in.OffsetY,
			Rotation: geom.Rotation(in.Rotation),
		}
	}
	return inputs
}
