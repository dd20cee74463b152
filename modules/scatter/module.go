// Package scatter renders a scatter plot of a deterministic point set as an
// SVG artifact.
package scatter

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/agobeyn/figaro/internal/ctxlog"
	"github.com/agobeyn/figaro/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

const (
	width  = 640
	height = 360
	points = 80

	// seed is fixed so repeated runs produce byte-identical artifacts.
	seed = 1337
)

// OnRenderScatter is the handler for the 'scatter' generator.
func OnRenderScatter(ctx context.Context, dest registry.ArtifactPath) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Rendering scatter plot.", "dest", dest)

	rng := rand.New(rand.NewSource(seed))

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`+"\n", width, height)
	fmt.Fprintf(&b, `  <rect width="%d" height="%d" fill="white"/>`+"\n", width, height)
	for i := 0; i < points; i++ {
		px := rng.Float64() * width
		py := rng.Float64() * height
		fmt.Fprintf(&b, `  <circle cx="%.1f" cy="%.1f" r="3" fill="crimson"/>`+"\n", px, py)
	}
	b.WriteString("</svg>\n")

	if err := os.WriteFile(dest.String(), []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write scatter figure to %s: %w", dest, err)
	}
	return nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterGenerator("scatter", &registry.RegisteredGenerator{
		Fn: OnRenderScatter,
	})
}
