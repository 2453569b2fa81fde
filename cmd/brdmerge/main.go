package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/viant/afs"
	"github.com/viant/afs/file"

	"github.com/pcbpanel/brdmerge/brd"
	"github.com/pcbpanel/brdmerge/job"
	"github.com/pcbpanel/brdmerge/merge"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		var ue *usageError
		if errors.As(err, &ue) {
			if ue.msg != "" {
				fmt.Fprintln(os.Stderr, ue.msg)
			}
			fmt.Fprint(os.Stderr, usage)
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, err)
		var formatErr *merge.FormatError
		var conflictErr *merge.ConflictError
		if errors.As(err, &formatErr) || errors.As(err, &conflictErr) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	outfile, inputs, err := parseInvocation(ctx, args)
	if err != nil {
		return err
	}

	fs := afs.New()
	for _, in := range inputs {
		ok, err := fs.Exists(ctx, in.Path)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("input file %s not found", in.Path)
		}
	}

	root, err := merge.Run(ctx, inputs)
	if err != nil {
		return err
	}

	// Serialization happens only after every input has merged; a failed run
	// persists nothing.
	return fs.Upload(ctx, outfile, file.DefaultFileOsMode, bytes.NewReader(brd.Emit(root)))
}

// parseInvocation accepts either the positional form or a -job file.
func parseInvocation(ctx context.Context, args []string) (string, []merge.Input, error) {
	if len(args) >= 1 && (args[0] == "-job" || args[0] == "--job") {
		if len(args) != 2 {
			return "", nil, &usageError{msg: "-job takes exactly one job file"}
		}
		j, err := job.Load(ctx, args[1])
		if err != nil {
			return "", nil, err
		}
		return j.Output, j.MergeInputs(), nil
	}
	return parseArgs(args)
}
