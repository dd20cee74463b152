package testutil

import (
	"context"
	"os"
	"slices"
	"sync"

	"github.com/agobeyn/figaro/internal/registry"
)

// RecordingGenerator is a test double for a figure generator. It writes a
// small placeholder artifact at the destination and remembers every path it
// was invoked with.
type RecordingGenerator struct {
	// Err, when set, is returned from every invocation instead of writing
	// the artifact.
	Err error

	mu    sync.Mutex
	calls []string
}

// Fn satisfies the generator calling contract.
func (g *RecordingGenerator) Fn(ctx context.Context, dest registry.ArtifactPath) error {
	g.mu.Lock()
	g.calls = append(g.calls, dest.String())
	g.mu.Unlock()

	if g.Err != nil {
		return g.Err
	}
	return os.WriteFile(dest.String(), []byte("artifact\n"), 0o644)
}

// Calls returns a copy of the destination paths the generator was invoked
// with, in order.
func (g *RecordingGenerator) Calls() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return slices.Clone(g.calls)
}

// RecordingModule registers a RecordingGenerator under Name.
type RecordingModule struct {
	Name string
	Gen  *RecordingGenerator
}

// NewRecordingModule creates a module whose generator answers to name.
func NewRecordingModule(name string) *RecordingModule {
	return &RecordingModule{
		Name: name,
		Gen:  &RecordingGenerator{},
	}
}

// Register implements registry.Module.
func (m *RecordingModule) Register(r *registry.Registry) {
	r.RegisterGenerator(m.Name, &registry.RegisteredGenerator{
		Fn: m.Gen.Fn,
	})
}
