package stale

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agobeyn/figaro/internal/meta"
)

func newStore(t *testing.T) *meta.Store {
	t.Helper()
	store, err := meta.Load(context.Background(), filepath.Join(t.TempDir(), ".figaro.meta"))
	require.NoError(t, err)
	return store
}

func writeArtifact(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("artifact\n"), 0o644))
}

func TestEvaluate_NewScriptRuns(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	artifact := filepath.Join(t.TempDir(), "figures", "a.pdf")

	decision, err := Evaluate(context.Background(), store, "/abs/a.hcl", "digest-1", artifact, false)
	require.NoError(t, err)
	require.Equal(t, Run, decision)

	rec, ok, err := store.Lookup("/abs/a.hcl")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "digest-1", rec.Checksum)
	require.Equal(t, []string{artifact}, rec.Dependents)
}

func TestEvaluate_UnchangedWithArtifactSkips(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	artifact := filepath.Join(t.TempDir(), "figures", "a.pdf")
	writeArtifact(t, artifact)
	store.Insert("/abs/a.hcl", &meta.Record{Checksum: "digest-1", Dependents: []string{artifact}})

	decision, err := Evaluate(context.Background(), store, "/abs/a.hcl", "digest-1", artifact, false)
	require.NoError(t, err)
	require.Equal(t, Skip, decision)

	rec, _, err := store.Lookup("/abs/a.hcl")
	require.NoError(t, err)
	require.Equal(t, []string{artifact}, rec.Dependents, "skip must not touch dependents")
}

func TestEvaluate_UnchangedWithMissingArtifactRuns(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	artifact := filepath.Join(t.TempDir(), "figures", "a.pdf")
	store.Insert("/abs/a.hcl", &meta.Record{Checksum: "digest-1", Dependents: []string{}})

	decision, err := Evaluate(context.Background(), store, "/abs/a.hcl", "digest-1", artifact, false)
	require.NoError(t, err)
	require.Equal(t, Run, decision, "checksum equality alone is not enough to skip")

	rec, _, err := store.Lookup("/abs/a.hcl")
	require.NoError(t, err)
	require.Equal(t, "digest-1", rec.Checksum)
	require.Equal(t, []string{artifact}, rec.Dependents)
}

func TestEvaluate_ChangedChecksumRunsAndUpdates(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	artifact := filepath.Join(t.TempDir(), "figures", "a.pdf")
	writeArtifact(t, artifact)
	store.Insert("/abs/a.hcl", &meta.Record{Checksum: "digest-1", Dependents: []string{artifact}})

	decision, err := Evaluate(context.Background(), store, "/abs/a.hcl", "digest-2", artifact, false)
	require.NoError(t, err)
	require.Equal(t, Run, decision)

	rec, _, err := store.Lookup("/abs/a.hcl")
	require.NoError(t, err)
	require.Equal(t, "digest-2", rec.Checksum)
}

func TestEvaluate_ForceRunsDespiteMatch(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	artifact := filepath.Join(t.TempDir(), "figures", "a.pdf")
	writeArtifact(t, artifact)
	store.Insert("/abs/a.hcl", &meta.Record{Checksum: "digest-1", Dependents: []string{artifact}})

	decision, err := Evaluate(context.Background(), store, "/abs/a.hcl", "digest-1", artifact, true)
	require.NoError(t, err)
	require.Equal(t, Run, decision)
}

func TestEvaluate_SecondArtifactFromSameScript(t *testing.T) {
	t.Parallel()

	store := newStore(t)
	dir := t.TempDir()
	first := filepath.Join(dir, "figures", "a.pdf")
	second := filepath.Join(dir, "figures", "b.pdf")

	_, err := Evaluate(context.Background(), store, "/abs/a.hcl", "digest-1", first, false)
	require.NoError(t, err)
	_, err = Evaluate(context.Background(), store, "/abs/a.hcl", "digest-1", second, false)
	require.NoError(t, err)

	rec, _, err := store.Lookup("/abs/a.hcl")
	require.NoError(t, err)
	require.Equal(t, []string{first, second}, rec.Dependents)
}

func TestEvaluate_CorruptRecordFails(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".figaro.meta")
	require.NoError(t, os.WriteFile(path, []byte("/abs/a.hcl:\n    checksum: only\n"), 0o644))
	store, err := meta.Load(context.Background(), path)
	require.NoError(t, err)

	_, err = Evaluate(context.Background(), store, "/abs/a.hcl", "digest-1", "/abs/figures/a.pdf", false)
	require.ErrorIs(t, err, meta.ErrCorruptRecord)
}

func TestDecision_String(t *testing.T) {
	t.Parallel()

	require.Equal(t, "run", Run.String())
	require.Equal(t, "skip", Skip.String())
}
