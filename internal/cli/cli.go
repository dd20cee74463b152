package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/agobeyn/figaro/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// dirList collects the repeatable -d/--dir flag values.
type dirList []string

func (d *dirList) String() string {
	return strings.Join(*d, ", ")
}

func (d *dirList) Set(value string) error {
	*d = append(*d, value)
	return nil
}

// Parse processes command-line arguments. It returns a populated
// app.Config, a boolean indicating the program should exit cleanly (help
// was requested), or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("figaro", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
figaro - incremental figure build tool for tagged generator scripts.

Scans the search directories for .hcl figure scripts, regenerates only the
figures whose scripts changed, and records fingerprints in a metadata file.

Usage:
  figaro [options]

Options:
`)
		flagSet.PrintDefaults()
	}

	var dirs dirList
	flagSet.Var(&dirs, "dir", "Search directory for figure scripts. May be repeated.")
	flagSet.Var(&dirs, "d", "Search directory for figure scripts (shorthand).")
	outFlag := flagSet.String("out", "./figures", "Directory to store generated figure files in.")
	oFlag := flagSet.String("o", "", "Directory to store generated figure files in (shorthand).")
	gitignoreFlag := flagSet.Bool("gitignore", false, "Add .gitignore to the out directory to ignore all files inside.")
	forceFlag := flagSet.Bool("force", false, "Force figure update even if the checksum is the same.")
	metafileFlag := flagSet.String("metafile", "./.figaro.meta", "Path to the metadata file used to decide whether a figure must be rebuilt.")
	verboseFlag := flagSet.Bool("verbose", false, "Enable verbose output.")
	vFlag := flagSet.Bool("v", false, "Enable verbose output (shorthand).")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if len(dirs) == 0 {
		return nil, false, &ExitError{Code: 1, Message: "-d/--dir: at least one search directory must be provided"}
	}

	out := *outFlag
	if *oFlag != "" {
		out = *oFlag
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 1, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	config, err := app.NewConfig(app.Config{
		SearchDirs: dirs,
		OutDir:     out,
		Metafile:   *metafileFlag,
		Force:      *forceFlag,
		Gitignore:  *gitignoreFlag,
		Verbose:    *verboseFlag || *vFlag,
		LogFormat:  logFormat,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 1, Message: err.Error()}
	}

	return config, false, nil
}
