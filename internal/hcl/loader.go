package hcl

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/burstpi/internal/config"
	"github.com/vk/burstpi/internal/ctxlog"
	"github.com/vk/burstpi/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	// Environ is exposed to expressions as the `env` map, in os.Environ form.
	Environ []string
	// NumCPU is exposed to expressions as `num_cpu`.
	NumCPU int
}

// NewLoader creates a new HCL run-file loader bound to the current process
// environment and CPU count.
func NewLoader() *Loader {
	return &Loader{
		Environ: os.Environ(),
		NumCPU:  runtime.NumCPU(),
	}
}

// fileRoot is the only accepted top-level layout: at most one `run` block and
// nothing else.
type fileRoot struct {
	Run *runBlock `hcl:"run,block"`
}

// runBlock keeps raw expressions so that omitted attributes can be told apart
// from attributes set to a value.
type runBlock struct {
	Samples   hcl.Expression `hcl:"samples,optional"`
	Workers   hcl.Expression `hcl:"workers,optional"`
	Quiet     hcl.Expression `hcl:"quiet,optional"`
	Seed      hcl.Expression `hcl:"seed,optional"`
	Seeds     hcl.Expression `hcl:"seeds,optional"`
	Remainder hcl.Expression `hcl:"remainder,optional"`
}

// Load reads the run file at path, or every .hcl file below path when it is
// a directory, and translates it into a config.Run. Files are applied in
// lexical order, so a later file overrides attributes set by an earlier one.
func (l *Loader) Load(ctx context.Context, path string) (*config.Run, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	files, err := fsutil.ResolveFiles(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to locate run files: %w", err)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	merged := config.Run{}
	for _, file := range files {
		run, err := l.loadFile(ctx, parser, file)
		if err != nil {
			return nil, err
		}
		merged = merged.Merge(run)
	}

	logger.Debug("HCL loader finished.", "path", path)
	return &merged, nil
}

// loadFile parses and translates a single file. A file without a run block
// yields an empty model.
func (l *Loader) loadFile(ctx context.Context, parser *hclparse.Parser, file string) (*config.Run, error) {
	hclFile, diags := parser.ParseHCLFile(file)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
	}

	if root.Run == nil {
		ctxlog.FromContext(ctx).Debug("Run file has no run block; nothing to apply.", "file", file)
		return &config.Run{}, nil
	}

	run, err := l.translateRun(ctx, root.Run)
	if err != nil {
		return nil, fmt.Errorf("invalid run block in %s: %w", file, err)
	}
	return run, nil
}
