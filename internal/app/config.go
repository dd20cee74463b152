package app

import "errors"

// Config holds everything an App instance needs for one run.
type Config struct {
	// SearchDirs are the roots scanned for figure scripts. At least one is
	// required.
	SearchDirs []string

	// OutDir is where generated artifacts land.
	OutDir string

	// Metafile is the fingerprint store path.
	Metafile string

	// Force bypasses the checksum-equality skip and regenerates everything.
	Force bool

	// Gitignore writes an ignore marker into a non-empty output directory.
	Gitignore bool

	// Verbose enables progress output on standard output.
	Verbose bool

	// LogFormat selects the log handler, "text" or "json".
	LogFormat string
}

// NewConfig validates a Config and fills in the defaults.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.SearchDirs) == 0 {
		return nil, errors.New("at least one search directory must be provided")
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "./figures"
	}
	if cfg.Metafile == "" {
		cfg.Metafile = "./.figaro.meta"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}

	return &cfg, nil
}
