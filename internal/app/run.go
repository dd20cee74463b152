package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"

	"github.com/agobeyn/figaro/internal/ctxlog"
	"github.com/agobeyn/figaro/internal/discovery"
	"github.com/agobeyn/figaro/internal/fsutil"
	"github.com/agobeyn/figaro/internal/meta"
	"github.com/agobeyn/figaro/internal/runner"
)

// gitignoreMarker is the file written into a non-empty output directory
// when the user asks for generated artifacts to be ignored.
const gitignoreMarker = ".gitignore"

// Run drives one full build: validate inputs, load the store, discover
// units, evaluate and execute each unit's figures in order, clean up the
// output directory, and persist the store. Units run strictly one after
// another, so no figure can ever observe a half-updated store record.
func (a *App) Run(ctx context.Context) error {
	logger := a.logger.With("run_id", uuid.NewString())
	ctx = ctxlog.WithLogger(ctx, logger)
	start := time.Now()
	logger.Debug("Run started.")

	roots, err := a.validateSearchDirs()
	if err != nil {
		return err
	}

	outDir, err := a.ensureOutDir()
	if err != nil {
		return err
	}

	store, err := meta.Load(ctx, a.config.Metafile)
	if err != nil {
		return err
	}
	logger.Debug("Fingerprint store ready.", "records", store.Len(), "contents", spew.Sdump(store.Snapshot()))

	found, err := discovery.Scan(ctx, roots)
	if err != nil {
		return err
	}
	logger.Debug("Discovery complete.", "scripts_with_figures", len(found))

	if a.config.Force {
		logger.Debug("Forced figure generation requested.")
	}

	run := runner.New(a.registry)
	opts := runner.Options{OutDir: outDir, Force: a.config.Force}

	scripts := make([]string, 0, len(found))
	for script := range found {
		scripts = append(scripts, script)
	}
	slices.Sort(scripts)

	var total runner.Result
	for _, script := range scripts {
		res, err := run.RunUnit(ctx, script, found[script], opts, store)
		total.Merge(res)
		if err != nil {
			// A failed generator aborts the run without persisting: its
			// record was already stamped with the fresh checksum, and
			// saving that would mark a never-produced artifact as current.
			return err
		}
	}

	if err := a.cleanupOutDir(ctx, outDir); err != nil {
		return err
	}

	if err := store.Save(ctx); err != nil {
		return err
	}

	logger.Info("Run complete.",
		"ran", total.Ran, "skipped", total.Skipped, "failed", total.Failed,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

// validateSearchDirs resolves the configured search directories and fails
// fast if any of them is missing or not a directory. No work happens before
// this passes.
func (a *App) validateSearchDirs() ([]string, error) {
	roots := make([]string, 0, len(a.config.SearchDirs))
	for _, dir := range a.config.SearchDirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("-d/--dir: failed to resolve search directory %s: %w", dir, err)
		}
		info, err := os.Stat(abs)
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("-d/--dir: search directory %s does not exist", abs)
		}
		if err != nil {
			return nil, fmt.Errorf("-d/--dir: failed to inspect search directory %s: %w", abs, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("-d/--dir: search directory %s is not a directory", abs)
		}
		roots = append(roots, abs)
	}
	return roots, nil
}

// ensureOutDir resolves the output directory, creating it if absent.
func (a *App) ensureOutDir() (string, error) {
	abs, err := filepath.Abs(a.config.OutDir)
	if err != nil {
		return "", fmt.Errorf("-o/--out: failed to resolve out directory %s: %w", a.config.OutDir, err)
	}

	info, err := os.Stat(abs)
	switch {
	case os.IsNotExist(err):
		if err := os.MkdirAll(abs, 0o755); err != nil {
			return "", fmt.Errorf("-o/--out: failed to create out directory %s: %w", abs, err)
		}
	case err != nil:
		return "", fmt.Errorf("-o/--out: failed to inspect out directory %s: %w", abs, err)
	case !info.IsDir():
		return "", fmt.Errorf("-o/--out: out directory %s is not a directory", abs)
	}

	return abs, nil
}

// cleanupOutDir removes the output directory if the run left it empty, or
// writes the ignore marker into it when requested.
func (a *App) cleanupOutDir(ctx context.Context, outDir string) error {
	logger := ctxlog.FromContext(ctx)

	empty, err := fsutil.IsEmptyDir(outDir)
	if err != nil {
		return fmt.Errorf("failed to inspect out directory %s: %w", outDir, err)
	}

	if empty {
		logger.Debug("Out directory is empty, removing it.", "dir", outDir)
		if err := os.Remove(outDir); err != nil {
			return fmt.Errorf("failed to remove empty out directory %s: %w", outDir, err)
		}
		return nil
	}

	if a.config.Gitignore {
		marker := filepath.Join(outDir, gitignoreMarker)
		logger.Debug("Writing ignore marker.", "path", marker)
		if err := os.WriteFile(marker, []byte("*\n"), 0o644); err != nil {
			return fmt.Errorf("failed to write ignore marker %s: %w", marker, err)
		}
	}

	return nil
}
