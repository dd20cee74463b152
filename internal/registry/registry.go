package registry

import (
	"fmt"
	"log/slog"
)

// ArtifactPath is the destination a generator must create its output file
// at. Generators receive exactly one of these and nothing else.
type ArtifactPath string

// String implements fmt.Stringer.
func (p ArtifactPath) String() string {
	return string(p)
}

// Module is the interface a generator package implements to be registered.
type Module interface {
	Register(r *Registry)
}

// RegisteredGenerator holds the compiled Go side of a figure generator. Fn
// is kept untyped on purpose: the calling contract is enforced at run time
// by Validate, so a generator registered with the wrong shape is reported
// per figure instead of failing the whole process.
type RegisteredGenerator struct {
	Fn any
}

// Registry maps generator names, as referenced by `generator` attributes in
// figure scripts, to their registered Go implementations.
type Registry struct {
	generators map[string]*RegisteredGenerator
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		generators: make(map[string]*RegisteredGenerator),
	}
}

// RegisterGenerator registers a generator under the given name. Registering
// the same name twice is a programmer error and panics.
func (r *Registry) RegisterGenerator(name string, gen *RegisteredGenerator) {
	if _, exists := r.generators[name]; exists {
		panic(fmt.Sprintf("generator with name '%s' already registered", name))
	}
	slog.Debug("Registering generator.", "name", name)
	r.generators[name] = gen
}

// Generator looks up a registered generator by name.
func (r *Registry) Generator(name string) (*RegisteredGenerator, bool) {
	gen, ok := r.generators[name]
	return gen, ok
}

// Len returns the number of registered generators.
func (r *Registry) Len() int {
	return len(r.generators)
}

// Names returns the registered generator names in no particular order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.generators))
	for name := range r.generators {
		names = append(names, name)
	}
	return names
}
