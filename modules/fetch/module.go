// Package fetch downloads a pre-rendered artifact over HTTP and stores it
// at the destination path, for figures produced by an external renderer.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/agobeyn/figaro/internal/ctxlog"
	"github.com/agobeyn/figaro/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// EnvURL names the environment variable holding the artifact URL. The
// generator contract allows exactly one destination parameter, so the
// source location comes from the environment.
const EnvURL = "FIGARO_FETCH_URL"

// httpClient is shared across invocations to reuse TCP connections.
var httpClient = &http.Client{}

// OnRenderFetch is the handler for the 'fetch' generator.
func OnRenderFetch(ctx context.Context, dest registry.ArtifactPath) error {
	logger := ctxlog.FromContext(ctx)

	url := os.Getenv(EnvURL)
	if url == "" {
		return fmt.Errorf("fetch generator requires %s to be set", EnvURL)
	}
	logger.Debug("Fetching remote artifact.", "url", url, "dest", dest)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create fetch request for %s: %w", url, err)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch of %s returned status %s", url, resp.Status)
	}

	out, err := os.Create(dest.String())
	if err != nil {
		return fmt.Errorf("failed to create artifact file %s: %w", dest, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("failed to write artifact file %s: %w", dest, err)
	}
	return out.Close()
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterGenerator("fetch", &registry.RegisteredGenerator{
		Fn: OnRenderFetch,
	})
}
