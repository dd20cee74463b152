package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/agobeyn/figaro/internal/checksum"
	"github.com/agobeyn/figaro/internal/ctxlog"
	"github.com/agobeyn/figaro/internal/meta"
	"github.com/agobeyn/figaro/internal/model"
	"github.com/agobeyn/figaro/internal/registry"
	"github.com/agobeyn/figaro/internal/stale"
)

// Options carries the per-run settings the runner needs.
type Options struct {
	// OutDir is the absolute output directory artifacts resolve into.
	OutDir string
	// Force bypasses the checksum-equality skip.
	Force bool
}

// Result tallies what happened to the figures of one or more units.
type Result struct {
	Ran     int
	Skipped int
	Failed  int
}

// Merge folds another result into this one.
func (r *Result) Merge(other Result) {
	r.Ran += other.Ran
	r.Skipped += other.Skipped
	r.Failed += other.Failed
}

// Runner loads discovered scripts and executes their stale figures.
type Runner struct {
	reg *registry.Registry
}

// New creates a Runner backed by the given generator registry.
func New(reg *registry.Registry) *Runner {
	return &Runner{reg: reg}
}

// RunUnit loads the script at path and processes the discovered figure
// labels in order: resolve the generator, evaluate staleness, then invoke
// for each figure that needs it, mutating store as it goes.
//
// Error handling follows a "keep going across figures, fail loudly within
// one" policy. Per-figure problems (unregistered generator, bad calling
// contract) are logged and counted in Result.Failed. Per-unit problems (a
// corrupt store record, a discovered label missing after load) abandon the
// rest of this unit's figures but leave the run alive. A generator that
// fails while producing its artifact is returned as an error and aborts the
// run, since nothing downstream can be trusted after a half-written output.
func (r *Runner) RunUnit(ctx context.Context, path string, figures []string, opts Options, store *meta.Store) (Result, error) {
	var res Result

	unit, err := model.LoadUnit(ctx, path)
	if err != nil {
		return res, err
	}
	logger := ctxlog.FromContext(ctx).With("unit", unit.Name)

	digest, err := checksum.File(unit.Path)
	if err != nil {
		return res, err
	}

	for i, name := range figures {
		fig := unit.Figure(name)
		if fig == nil {
			// Discovery promised this label exists; a loaded unit without it
			// means the loader and discoverer disagree about the script.
			logger.Error("Internal logic error: discovered figure not present in loaded unit, abandoning unit.",
				"figure", name)
			res.Failed += len(figures) - i
			break
		}
		if fig.OutName == "" || fig.Ext == "" {
			logger.Error("Internal logic error: figure loaded without output name or extension, abandoning unit.",
				"figure", name)
			res.Failed += len(figures) - i
			break
		}

		// Resolve the generator before any store mutation, so a figure that
		// cannot run never stamps a fresh checksum into its record.
		gen, ok := r.reg.Generator(fig.Generator)
		if !ok {
			logger.Error("No generator registered under this name, skipping figure.",
				"figure", name, "generator", fig.Generator)
			res.Failed++
			continue
		}
		if err := gen.Validate(); err != nil {
			logger.Error("Invalid generator: must have signature func(context.Context, registry.ArtifactPath) error, skipping figure.",
				"figure", name, "generator", fig.Generator, "error", err)
			res.Failed++
			continue
		}

		dest := filepath.Join(opts.OutDir, fig.ArtifactName())

		decision, err := stale.Evaluate(ctx, store, unit.Path, digest, dest, opts.Force)
		if err != nil {
			logger.Error("Skipping unit's figures.", "error", err)
			res.Failed += len(figures) - i
			break
		}
		if decision == stale.Skip {
			logger.Debug("Unchanged checksum: skip calling figure.", "figure", name)
			res.Skipped++
			continue
		}

		logger.Debug("Calling figure generator.", "figure", name, "dest", dest)
		start := time.Now()
		if err := gen.Invoke(ctx, registry.ArtifactPath(dest)); err != nil {
			return res, fmt.Errorf("generator %q failed for figure %q in %s: %w", fig.Generator, name, unit.Path, err)
		}
		logger.Debug("Figure saved.", "figure", name, "dest", dest, "elapsed", time.Since(start))
		res.Ran++
	}

	return res, nil
}
