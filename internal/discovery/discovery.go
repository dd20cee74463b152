// Package discovery finds tagged figure routines without loading anything.
//
// It walks the configured search roots for .hcl scripts and inspects each
// file's syntax tree for top-level `figure` blocks. No attribute expression
// is evaluated here: discovery promises only that a block with that label
// exists, and the loader holds it to that promise later. A script that does
// not parse aborts the whole phase, because a corrupt script cannot be
// trusted to declare correct dependents either.
package discovery

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/agobeyn/figaro/internal/ctxlog"
	"github.com/agobeyn/figaro/internal/fsutil"
)

// ScriptExt is the file extension of figure scripts.
const ScriptExt = ".hcl"

// figureBlockSchema matches only the block headers; bodies stay untouched.
var figureBlockSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "figure", LabelNames: []string{"name"}},
	},
}

// Scan enumerates figure scripts under the given search roots and returns a
// mapping from absolute script path to the figure labels declared in it, in
// declaration order. Scripts with no figure blocks are omitted.
func Scan(ctx context.Context, roots []string) (map[string][]string, error) {
	logger := ctxlog.FromContext(ctx)

	var files []string
	for _, root := range roots {
		found, err := fsutil.FindFilesByExtension(root, ScriptExt)
		if err != nil {
			return nil, fmt.Errorf("failed to walk search directory %s: %w", root, err)
		}
		files = append(files, found...)
	}
	logger.Debug("Extracted scripts from search directories.", "count", len(files))

	parser := hclparse.NewParser()
	found := make(map[string][]string)

	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve script path %s: %w", file, err)
		}

		figures, err := scanFile(parser, abs)
		if err != nil {
			return nil, err
		}
		if len(figures) == 0 {
			logger.Debug("No tagged figures in script.", "script", abs)
			continue
		}
		logger.Debug("Found tagged figures in script.", "script", abs, "figures", figures)
		found[abs] = figures
	}

	return found, nil
}

// scanFile statically parses one script and lists its figure block labels.
func scanFile(parser *hclparse.Parser, path string) ([]string, error) {
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse figure script %s: %w", path, diags)
	}

	content, _, diags := hclFile.Body.PartialContent(figureBlockSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to inspect figure script %s: %w", path, diags)
	}

	var figures []string
	for _, block := range content.Blocks {
		label := block.Labels[0]
		if slices.Contains(figures, label) {
			return nil, fmt.Errorf("duplicate figure %q in script %s", label, path)
		}
		figures = append(figures, label)
	}

	return figures, nil
}
