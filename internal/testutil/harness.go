// Package testutil provides the shared harness for integration-style tests:
// a temporary workspace with figure scripts, recording generators, and an
// app runner with captured log output.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agobeyn/figaro/internal/app"
	"github.com/agobeyn/figaro/internal/meta"
	"github.com/agobeyn/figaro/internal/registry"
)

// Env is a temporary on-disk workspace for one test: a search root with
// figure scripts, an output directory, and a metadata file, all isolated
// under t.TempDir.
type Env struct {
	Root     string
	OutDir   string
	Metafile string

	t *testing.T
}

// RunOptions mirror the CLI knobs a test may want to flip between runs.
type RunOptions struct {
	Force     bool
	Gitignore bool
}

// RunResult holds the outcomes of one engine run.
type RunResult struct {
	Err       error
	LogOutput string
}

// NewEnv creates a workspace and writes the given files into it. Keys are
// paths relative to the workspace root, e.g. "figscripts/waves.hcl".
func NewEnv(t *testing.T, files map[string]string) *Env {
	t.Helper()

	root := t.TempDir()
	e := &Env{
		Root:     root,
		OutDir:   filepath.Join(root, "figures"),
		Metafile: filepath.Join(root, ".figaro.meta"),
		t:        t,
	}
	for name, content := range files {
		e.WriteFile(name, content)
	}
	return e
}

// WriteFile writes (or rewrites) one file under the workspace root.
func (e *Env) WriteFile(rel, content string) {
	e.t.Helper()

	path := filepath.Join(e.Root, rel)
	require.NoError(e.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(e.t, os.WriteFile(path, []byte(content), 0o644))
}

// ScriptPath returns the absolute path of a script inside the workspace,
// the form used as a store key.
func (e *Env) ScriptPath(rel string) string {
	abs, err := filepath.Abs(filepath.Join(e.Root, rel))
	require.NoError(e.t, err)
	return abs
}

// ArtifactPath returns the absolute path an artifact name resolves to
// inside the workspace's output directory.
func (e *Env) ArtifactPath(name string) string {
	return filepath.Join(e.OutDir, name)
}

// Run performs one full engine run over the workspace with the provided
// generator modules, capturing log output.
func (e *Env) Run(opts RunOptions, modules ...registry.Module) *RunResult {
	e.t.Helper()

	cfg, err := app.NewConfig(app.Config{
		SearchDirs: []string{e.Root},
		OutDir:     e.OutDir,
		Metafile:   e.Metafile,
		Force:      opts.Force,
		Gitignore:  opts.Gitignore,
		Verbose:    true,
		LogFormat:  "text",
	})
	require.NoError(e.t, err)

	logBuffer := &SafeBuffer{}
	testApp := app.NewApp(logBuffer, cfg, modules...)
	runErr := testApp.Run(context.Background())

	if os.Getenv("FIGARO_TEST_LOGS") == "true" {
		e.t.Logf("--- Full Log Output for %s ---\n%s", e.t.Name(), logBuffer.String())
	}

	return &RunResult{
		Err:       runErr,
		LogOutput: logBuffer.String(),
	}
}

// StoreSnapshot loads the persisted metadata file and returns its valid
// records.
func (e *Env) StoreSnapshot() map[string]meta.Record {
	e.t.Helper()

	store, err := meta.Load(context.Background(), e.Metafile)
	require.NoError(e.t, err)
	return store.Snapshot()
}
