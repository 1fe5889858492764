package container

import (
	"fmt"
	"reflect"
)

// ContextualBuilder implements the fluent contextual binding API.
//
// Values given here are offered to the concrete type's constructor ahead of
// the container's own bindings when it is built through Build.
//
//	// Laravel: $app->when(PhotoController::class)->needs(Filesystem::class)->give(...)
//	c.When(reflect.TypeFor[*PhotoController]()).
//	    Needs(reflect.TypeFor[Filesystem]()).
//	    Give(func(c *container.Container) any { return filesystem.NewS3(...) })
type ContextualBuilder struct {
	container *Container
	concrete  reflect.Type
	needs     reflect.Type
}

// When starts a contextual binding for concrete.
func (c *Container) When(concrete reflect.Type) *ContextualBuilder {
	return &ContextualBuilder{container: c, concrete: concrete}
}

// Needs specifies which abstract the concrete type depends on. Without it
// a given value is offered for any parameter it is assignable to.
func (b *ContextualBuilder) Needs(abstract reflect.Type) *ContextualBuilder {
	b.needs = abstract
	return b
}

// Give provides the factory used when the concrete type is built.
func (b *ContextualBuilder) Give(factory Factory) {
	b.container.mu.Lock()
	defer b.container.mu.Unlock()
	b.container.contextual[b.concrete] = append(b.container.contextual[b.concrete],
		contextual{needs: b.needs, factory: factory})
}

// GiveValue is a shorthand for Give when the value is pre-built. It panics
// when value does not satisfy the type named by Needs.
//
//	// Laravel: ->give('/tmp/photos')
//	c.When(reflect.TypeFor[*PhotoController]()).GiveValue(photos.Dir("/tmp/photos"))
func (b *ContextualBuilder) GiveValue(value any) {
	if b.needs != nil && value != nil && !reflect.TypeOf(value).AssignableTo(b.needs) {
		panic(fmt.Sprintf("container: %T does not satisfy [%s] for [%s]", value, b.needs, b.concrete))
	}
	b.Give(func(_ *Container) any { return value })
}

// CandidatesFor builds the contextual values registered for concrete, in
// the order they were given.
func (c *Container) CandidatesFor(concrete reflect.Type) []any {
	c.mu.RLock()
	entries := c.contextual[concrete]
	c.mu.RUnlock()

	out := make([]any, 0, len(entries))
	for _, e := range entries {
		v := e.factory(c)
		if e.needs != nil && v != nil && !reflect.TypeOf(v).AssignableTo(e.needs) {
			panic(fmt.Sprintf("container: %T does not satisfy [%s] for [%s]", v, e.needs, concrete))
		}
		out = append(out, v)
	}
	return out
}
