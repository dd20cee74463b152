package model

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/agobeyn/figaro/internal/ctxlog"
)

// Unit is a fully loaded figure script: the executable counterpart of a
// file that discovery only inspected statically.
type Unit struct {
	// Name is synthesized from the script's parent directory and file stem,
	// e.g. figscripts/waves.hcl loads as "figscripts.waves". Two scripts
	// under different search roots with the same parent and stem collide;
	// that is a documented limitation, not something the loader resolves.
	Name string

	// Path is the script's absolute path, the unit's identity everywhere
	// else in the engine.
	Path string

	Figures       []*Figure
	FSInformation *FSInfo
}

// Figure returns the figure with the given block label, or nil if the unit
// has none.
func (u *Unit) Figure(name string) *Figure {
	for _, fig := range u.Figures {
		if fig.Name == name {
			return fig
		}
	}
	return nil
}

// UnitName derives the synthetic unit name for a script path.
func UnitName(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return filepath.Base(filepath.Dir(path)) + "." + stem
}

// hclScriptFile represents the top-level structure of a figure script for
// decoding. Remain tolerates top-level blocks other than 'figure', which
// discovery ignores rather than rejects.
type hclScriptFile struct {
	Figures []*hclFigure `hcl:"figure,block"`
	Remain  hcl.Body     `hcl:",remain"`
}

// hclFigure represents a single 'figure' block for initial decoding.
type hclFigure struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// figureBodySchema defines the attributes a 'figure' block may carry.
var figureBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "generator", Required: true},
		{Name: "name"},
		{Name: "ext"},
	},
}

// LoadUnit parses and decodes the script at path into an executable Unit.
// Unlike discovery's shallow scan, this evaluates the figure blocks'
// attributes, so a script that parsed fine can still fail to load.
func LoadUnit(ctx context.Context, path string) (*Unit, error) {
	logger := ctxlog.FromContext(ctx)

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve script path %s: %w", path, err)
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(abs)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse figure script %s: %w", abs, diags)
	}

	var parsedFile hclScriptFile
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &parsedFile); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode figure script %s: %w", abs, diags)
	}

	unit := &Unit{
		Name:          UnitName(abs),
		Path:          abs,
		FSInformation: NewFSInfo(abs),
	}

	for _, parsed := range parsedFile.Figures {
		if unit.Figure(parsed.Name) != nil {
			return nil, fmt.Errorf("duplicate figure %q in script %s", parsed.Name, abs)
		}
		fig, err := newFigureFromHCL(parsed, abs)
		if err != nil {
			return nil, err
		}
		unit.Figures = append(unit.Figures, fig)
	}

	logger.Debug("Loaded unit.", "unit", unit.Name, "figures", len(unit.Figures))
	return unit, nil
}

// newFigureFromHCL evaluates a figure block's attributes and applies the
// descriptor defaults.
func newFigureFromHCL(parsed *hclFigure, scriptPath string) (*Figure, error) {
	bodyContent, diags := parsed.Body.Content(figureBodySchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid figure %q in script %s: %w", parsed.Name, scriptPath, diags)
	}

	fig := &Figure{
		Name:          parsed.Name,
		OutName:       parsed.Name,
		Ext:           DefaultExt,
		FSInformation: NewFSInfo(scriptPath),
	}

	for name, target := range map[string]*string{
		"generator": &fig.Generator,
		"name":      &fig.OutName,
		"ext":       &fig.Ext,
	} {
		attr, exists := bodyContent.Attributes[name]
		if !exists {
			continue
		}
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid %s for figure %q in %s: %w", name, parsed.Name, scriptPath, diags)
		}
		if val.Type() != cty.String {
			return nil, fmt.Errorf("attribute %s of figure %q in %s must be a string, got %s",
				name, parsed.Name, scriptPath, val.Type().FriendlyName())
		}
		*target = val.AsString()
	}

	return fig, nil
}
