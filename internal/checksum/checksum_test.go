package checksum

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.hcl")
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestFile_KnownDigest(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, []byte("hello"))
	got, err := File(path)
	require.NoError(t, err)
	require.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", got)
}

func TestFile_LargerThanChunkSize(t *testing.T) {
	t.Parallel()

	// Three full chunks plus a partial tail.
	content := bytes.Repeat([]byte("figaro"), 4500)
	require.Greater(t, len(content), 3*chunkSize)

	path := writeTemp(t, content)
	got, err := File(path)
	require.NoError(t, err)

	want := sha256.Sum256(content)
	require.Equal(t, hex.EncodeToString(want[:]), got)
}

func TestFile_Reproducible(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, []byte("figure \"a\" { generator = \"sine\" }\n"))
	first, err := File(path)
	require.NoError(t, err)
	second, err := File(path)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := File(filepath.Join(t.TempDir(), "no-such-file.hcl"))
	require.Error(t, err)
}
