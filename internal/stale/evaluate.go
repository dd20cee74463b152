// Package stale decides whether a figure needs regenerating.
package stale

import (
	"context"
	"os"

	"github.com/agobeyn/figaro/internal/ctxlog"
	"github.com/agobeyn/figaro/internal/meta"
)

// Decision is the outcome of a staleness evaluation.
type Decision int

const (
	// Skip means the script is unchanged and the artifact is in place.
	Skip Decision = iota
	// Run means the figure must be regenerated.
	Run
)

// String implements fmt.Stringer.
func (d Decision) String() string {
	if d == Run {
		return "run"
	}
	return "skip"
}

// Evaluate decides run or skip for one figure and updates the store record
// accordingly. digest is the current content hash of the script at
// scriptPath; artifactPath is the figure's resolved output path.
//
// A matching checksum alone is not enough to skip: the artifact must also
// still exist, so a manually deleted output is regenerated. Every Run
// outcome adds artifactPath to the record's dependents.
func Evaluate(ctx context.Context, store *meta.Store, scriptPath, digest, artifactPath string, force bool) (Decision, error) {
	logger := ctxlog.FromContext(ctx)

	rec, ok, err := store.Lookup(scriptPath)
	if err != nil {
		return Skip, err
	}

	if !ok {
		rec = &meta.Record{Checksum: digest}
		store.Insert(scriptPath, rec)
		rec.AddDependent(artifactPath)
		logger.Debug("No fingerprint on record, scheduling run.", "script", scriptPath)
		return Run, nil
	}

	if rec.Checksum == digest && !force {
		if info, err := os.Stat(artifactPath); err == nil && info.Mode().IsRegular() {
			return Skip, nil
		}
		logger.Debug("Checksum unchanged but artifact is missing, scheduling run.", "artifact", artifactPath)
	} else {
		if rec.Checksum != digest {
			logger.Debug("Changed checksum detected.", "script", scriptPath)
		}
		rec.Checksum = digest
	}

	rec.AddDependent(artifactPath)
	return Run, nil
}
