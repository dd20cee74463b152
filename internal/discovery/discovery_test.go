package discovery

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	abs, err := filepath.Abs(path)
	require.NoError(t, err)
	return abs
}

func TestScan_FindsTaggedFiguresOnly(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	tagged := writeScript(t, root, "waves.hcl", `
figure "wave" {
  generator = "sine"
}

layout "grid" {
  columns = 2
}

figure "ripple" {
  generator = "sine"
  ext       = "svg"
}
`)
	writeScript(t, root, "empty.hcl", `
layout "grid" {
  columns = 2
}
`)

	found, err := Scan(context.Background(), []string{root})
	require.NoError(t, err)

	// The zero-figure file is omitted entirely; untagged blocks never count.
	require.Len(t, found, 1)
	require.Equal(t, []string{"wave", "ripple"}, found[tagged])
}

func TestScan_PreservesDeclarationOrder(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	script := writeScript(t, root, "many.hcl", `
figure "c" { generator = "sine" }
figure "a" { generator = "sine" }
figure "b" { generator = "sine" }
`)

	found, err := Scan(context.Background(), []string{root})
	require.NoError(t, err)
	require.Equal(t, []string{"c", "a", "b"}, found[script])
}

func TestScan_WalksNestedDirectoriesAndMultipleRoots(t *testing.T) {
	t.Parallel()

	rootA := t.TempDir()
	rootB := t.TempDir()
	nested := writeScript(t, rootA, filepath.Join("deep", "down", "points.hcl"),
		`figure "p" { generator = "scatter" }`)
	other := writeScript(t, rootB, "waves.hcl",
		`figure "w" { generator = "sine" }`)

	found, err := Scan(context.Background(), []string{rootA, rootB})
	require.NoError(t, err)
	require.Len(t, found, 2)
	require.Equal(t, []string{"p"}, found[nested])
	require.Equal(t, []string{"w"}, found[other])
}

func TestScan_ParseErrorAbortsDiscovery(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeScript(t, root, "good.hcl", `figure "ok" { generator = "sine" }`)
	writeScript(t, root, "broken.hcl", `figure "bad" { generator = `)

	_, err := Scan(context.Background(), []string{root})
	require.Error(t, err)
	require.Contains(t, err.Error(), "broken.hcl")
}

func TestScan_DuplicateFigureLabelIsAnError(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeScript(t, root, "dup.hcl", `
figure "twice" { generator = "sine" }
figure "twice" { generator = "scatter" }
`)

	_, err := Scan(context.Background(), []string{root})
	require.Error(t, err)
	require.Contains(t, err.Error(), `duplicate figure "twice"`)
}

func TestScan_IgnoresOtherExtensions(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeScript(t, root, "notes.txt", `figure "x" { generator = "sine" }`)

	found, err := Scan(context.Background(), []string{root})
	require.NoError(t, err)
	require.Empty(t, found)
}

func TestScan_DoesNotEvaluateAttributes(t *testing.T) {
	t.Parallel()

	// Discovery must not touch attribute expressions: a figure whose body
	// references an unknown variable still parses and is still discovered.
	root := t.TempDir()
	script := writeScript(t, root, "lazy.hcl", `
figure "lazy" {
  generator = unknown.reference
}
`)

	found, err := Scan(context.Background(), []string{root})
	require.NoError(t, err)
	require.Equal(t, []string{"lazy"}, found[script])
}
