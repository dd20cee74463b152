package registry

import (
	"context"
	"fmt"
	"reflect"
)

// GeneratorFunc is the required calling contract for a generator: one
// destination parameter (the context is ambient), no meaningful return
// beyond the error.
type GeneratorFunc = func(ctx context.Context, dest ArtifactPath) error

var (
	ctxType  = reflect.TypeOf((*context.Context)(nil)).Elem()
	destType = reflect.TypeOf(ArtifactPath(""))
	errType  = reflect.TypeOf((*error)(nil)).Elem()
)

// Validate checks that the registered Fn satisfies the generator calling
// contract, reporting the first deviation it finds.
func (g *RegisteredGenerator) Validate() error {
	if g == nil || g.Fn == nil {
		return fmt.Errorf("generator has no function registered")
	}

	t := reflect.TypeOf(g.Fn)
	if t.Kind() != reflect.Func {
		return fmt.Errorf("generator must be a function, got %s", t.Kind())
	}
	if t.NumIn() != 2 || t.In(0) != ctxType {
		return fmt.Errorf("generator must accept (context.Context, registry.ArtifactPath), got %s", t)
	}
	if t.In(1) != destType {
		return fmt.Errorf("generator destination parameter must be registry.ArtifactPath, got %s", t.In(1))
	}
	if t.NumOut() != 1 || t.Out(0) != errType {
		return fmt.Errorf("generator must return exactly one error value, got %s", t)
	}

	return nil
}

// Invoke calls the generator with the resolved destination path. Callers
// must run Validate first; Invoke panics on a function of the wrong shape.
func (g *RegisteredGenerator) Invoke(ctx context.Context, dest ArtifactPath) error {
	fn, ok := g.Fn.(GeneratorFunc)
	if !ok {
		panic(fmt.Sprintf("Invoke called on unvalidated generator of type %T", g.Fn))
	}
	return fn(ctx, dest)
}
