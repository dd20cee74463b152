package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cfg, shouldExit, err := Parse([]string{"--dir", "figscripts"}, &out)
	require.NoError(t, err)
	require.False(t, shouldExit)
	require.Equal(t, []string{"figscripts"}, cfg.SearchDirs)
	require.Equal(t, "./figures", cfg.OutDir)
	require.Equal(t, "./.figaro.meta", cfg.Metafile)
	require.Equal(t, "text", cfg.LogFormat)
	require.False(t, cfg.Force)
	require.False(t, cfg.Gitignore)
	require.False(t, cfg.Verbose)
}

func TestParse_RepeatableDirFlag(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cfg, _, err := Parse([]string{"-d", "a", "--dir", "b", "-d", "c"}, &out)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, cfg.SearchDirs)
}

func TestParse_AllFlags(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cfg, _, err := Parse([]string{
		"--dir", "figscripts",
		"--out", "build/figures",
		"--metafile", "build/.meta",
		"--force",
		"--gitignore",
		"--verbose",
		"--log-format", "json",
	}, &out)
	require.NoError(t, err)
	require.Equal(t, "build/figures", cfg.OutDir)
	require.Equal(t, "build/.meta", cfg.Metafile)
	require.True(t, cfg.Force)
	require.True(t, cfg.Gitignore)
	require.True(t, cfg.Verbose)
	require.Equal(t, "json", cfg.LogFormat)
}

func TestParse_MissingSearchDirExitsOne(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	_, _, err := Parse([]string{"--force"}, &out)
	require.Error(t, err)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 1, exitErr.Code)
	require.Contains(t, exitErr.Message, "search directory")
}

func TestParse_InvalidLogFormatExitsOne(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	_, _, err := Parse([]string{"--dir", "x", "--log-format", "xml"}, &out)
	require.Error(t, err)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 1, exitErr.Code)
}

func TestParse_UnknownFlagExitsTwo(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	_, _, err := Parse([]string{"--bogus"}, &out)
	require.Error(t, err)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 2, exitErr.Code)
}

func TestParse_HelpRequestsCleanExit(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cfg, shouldExit, err := Parse([]string{"--help"}, &out)
	require.NoError(t, err)
	require.True(t, shouldExit)
	require.Nil(t, cfg)
	require.Contains(t, out.String(), "figaro")
}
