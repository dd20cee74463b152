// Package sine renders a sine curve as an SVG artifact. It exists mainly as
// a built-in exemplar of the generator contract: one destination path in, a
// file on disk out.
package sine

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/agobeyn/figaro/internal/ctxlog"
	"github.com/agobeyn/figaro/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

const (
	width   = 640
	height  = 360
	samples = 200
)

// OnRenderSine is the handler for the 'sine' generator.
func OnRenderSine(ctx context.Context, dest registry.ArtifactPath) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Rendering sine curve.", "dest", dest)

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`+"\n", width, height)
	fmt.Fprintf(&b, `  <rect width="%d" height="%d" fill="white"/>`+"\n", width, height)
	fmt.Fprintf(&b, `  <line x1="0" y1="%d" x2="%d" y2="%d" stroke="black" stroke-width="1"/>`+"\n",
		height/2, width, height/2)

	b.WriteString(`  <polyline fill="none" stroke="blue" stroke-width="2" points="`)
	for i := 0; i <= samples; i++ {
		x := float64(i) / samples
		y := math.Sin(2 * math.Pi * x)
		px := x * width
		py := float64(height)/2 - y*float64(height)*0.4
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%.1f,%.1f", px, py)
	}
	b.WriteString("\"/>\n</svg>\n")

	if err := os.WriteFile(dest.String(), []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write sine figure to %s: %w", dest, err)
	}
	return nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterGenerator("sine", &registry.RegisteredGenerator{
		Fn: OnRenderSine,
	})
}
