package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pcbpanel/brdmerge/geom"
	"github.com/pcbpanel/brdmerge/merge"
)

const usage = `Usage:
    brdmerge output-file [input-file [-x offset-x] [-y offset-y] [-r rotation]] ...
    brdmerge -job job-file

    output-file         Path to the output .brd file
    input-file          Path to an input .brd file
    -x, --offx          The x offset to apply to the input file. Add mm suffix
    -y, --offy          The y offset to apply to the input file. Add mm suffix
    -r, --rotation      The counter-clockwise rotation to apply to the input file [0, 90, 180, 270]
    -job                Path to a YAML job file naming the output and inputs

Examples:
    brdmerge test_out.brd test_in.brd
    brdmerge test_out.brd test_in.brd -x 100mm -y 100mm -r 180
    brdmerge test_out.brd a.brd b.brd --offx 100mm --rotation 90
    brdmerge -job panel.yaml
`

// usageError marks a malformed command line; main prints the usage text and
// exits without touching any input.
type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

// parseArgs interprets the positional command line: the output path first,
// then input paths, each optionally followed by its placement options.
func parseArgs(args []string) (string, []merge.Input, error) {
	if len(args) == 0 {
		return "", nil, &usageError{msg: "too few arguments specified"}
	}
	if args[0] == "-h" || args[0] == "--help" {
		return "", nil, &usageError{}
	}
	outfile := args[0]

	var inputs []merge.Input
	i := 1
	for i < len(args) {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			inputs = append(inputs, merge.Input{Path: arg})
			i++
			continue
		}
		if len(inputs) == 0 {
			return "", nil, &usageError{msg: fmt.Sprintf("option %s given before any input file", arg)}
		}
		if i+1 >= len(args) {
			return "", nil, &usageError{msg: "too few arguments specified, expected at least one more"}
		}
		value := args[i+1]
		current := &inputs[len(inputs)-1]
		switch arg {
		case "-x", "--offx":
			offset, err := parseOffset(value)
			if err != nil {
				return "", nil, err
			}
			current.OffsetX = offset
		case "-y", "--offy":
			offset, err := parseOffset(value)
			if err != nil {
				return "", nil, err
			}
			current.OffsetY = offset
		case "-r", "--rotation":
			rotation, err := geom.ParseRotation(value)
			if err != nil {
				return "", nil, &usageError{msg: err.Error()}
			}
			current.Rotation = rotation
		default:
			return "", nil, &usageError{msg: fmt.Sprintf("unsupported option %s", arg)}
		}
		i += 2
	}

	if len(inputs) == 0 {
		return "", nil, &usageError{msg: "no input files specified"}
	}
	return outfile, inputs, nil
}

// parseOffset parses an offset value carrying the required mm unit suffix.
func parseOffset(value string) (float64, error) {
	if strings.HasSuffix(value, "mm") {
		if v, err := strconv.ParseFloat(strings.TrimSuffix(value, "mm"), 64); err == nil {
			return v, nil
		}
	}
	return 0, &usageError{msg: fmt.Sprintf("can't parse %q as an offset value, were units forgotten?", value)}
}
