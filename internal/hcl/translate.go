package hcl

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/burstpi/internal/config"
	"github.com/vk/burstpi/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"
)

// evalContext builds the variables and functions visible to run-file expressions.
func (l *Loader) evalContext() *hcl.EvalContext {
	env := make(map[string]cty.Value)
	for _, kv := range l.Environ {
		name, value, ok := strings.Cut(kv, "=")
		if ok && name != "" {
			env[name] = cty.StringVal(value)
		}
	}
	envVal := cty.MapValEmpty(cty.String)
	if len(env) > 0 {
		envVal = cty.MapVal(env)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"num_cpu": cty.NumberIntVal(int64(l.NumCPU)),
			"env":     envVal,
		},
		Functions: map[string]function.Function{
			"pow":      stdlib.PowFunc,
			"min":      stdlib.MinFunc,
			"max":      stdlib.MaxFunc,
			"floor":    stdlib.FloorFunc,
			"ceil":     stdlib.CeilFunc,
			"parseint": stdlib.ParseIntFunc,
		},
	}
}

// translateRun evaluates every attribute of a run block into the model.
func (l *Loader) translateRun(ctx context.Context, b *runBlock) (*config.Run, error) {
	logger := ctxlog.FromContext(ctx)
	evalCtx := l.evalContext()
	run := &config.Run{}

	var err error
	if run.Samples, err = decodeAttr[int64](b.Samples, evalCtx, cty.Number, "samples"); err != nil {
		return nil, err
	}
	if run.Workers, err = decodeAttr[int](b.Workers, evalCtx, cty.Number, "workers"); err != nil {
		return nil, err
	}
	if run.Quiet, err = decodeAttr[bool](b.Quiet, evalCtx, cty.Bool, "quiet"); err != nil {
		return nil, err
	}
	if run.Seed, err = decodeAttr[uint64](b.Seed, evalCtx, cty.Number, "seed"); err != nil {
		return nil, err
	}
	if run.Remainder, err = decodeAttr[string](b.Remainder, evalCtx, cty.String, "remainder"); err != nil {
		return nil, err
	}
	seeds, err := decodeAttr[[]uint64](b.Seeds, evalCtx, cty.List(cty.Number), "seeds")
	if err != nil {
		return nil, err
	}
	if seeds != nil {
		run.Seeds = *seeds
		if run.Seeds == nil {
			run.Seeds = []uint64{}
		}
	}

	logger.Debug("Run block translated.",
		"samples_set", run.Samples != nil,
		"workers_set", run.Workers != nil,
		"seeds", len(run.Seeds),
	)
	return run, nil
}

// decodeAttr evaluates expr, converts the result to ty and binds it to a Go
// value. It returns nil when the attribute was omitted or set to null.
func decodeAttr[T any](expr hcl.Expression, evalCtx *hcl.EvalContext, ty cty.Type, name string) (*T, error) {
	if expr == nil {
		return nil, nil
	}
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return nil, fmt.Errorf("attribute %q: %w", name, diags)
	}
	if val.IsNull() {
		return nil, nil
	}
	if !val.IsWhollyKnown() {
		return nil, fmt.Errorf("attribute %q: value is not known", name)
	}

	val, err := convert.Convert(val, ty)
	if err != nil {
		return nil, fmt.Errorf("attribute %q: expected %s: %w", name, ty.FriendlyName(), err)
	}

	var out T
	if err := gocty.FromCtyValue(val, &out); err != nil {
		return nil, fmt.Errorf("attribute %q: %w", name, err)
	}
	return &out, nil
}
