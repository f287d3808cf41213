package effect

import "fmt"

// Descriptor is the type-level definition of what an effect does:
// activation/deactivation logic, event handlers, attribute modifiers and
// display metadata. Resolved from a Registry exactly once per effect
// instance, at construction, and owned by that instance afterwards.
type Descriptor struct {
	Name string
	Desc string
	Aura string

	// Activate runs synchronously during effect construction.
	Activate func(opts *Options, target Target)
	// Deactivate runs during teardown and on target quit. It takes no
	// arguments: builders close over target and options at resolution time.
	Deactivate func()

	// Events maps event name → handler to register on the target.
	Events map[string]Handler
	// Modifiers maps attribute name → modifier to install on the target.
	Modifiers map[string]ModifierFunc
}

// Registry resolves an effect type to its behavior descriptor. Injected
// into effect construction so tests can supply doubles.
type Registry interface {
	Get(target Target, typ string, opts *Options) (*Descriptor, error)
}

// Builder constructs a behavior descriptor for one effect instance.
type Builder func(target Target, opts *Options) *Descriptor

// MapRegistry is a name → builder table.
type MapRegistry struct {
	builders map[string]Builder
}

// NewMapRegistry returns an empty registry.
func NewMapRegistry() *MapRegistry {
	return &MapRegistry{builders: make(map[string]Builder)}
}

// Register registers a builder under a type name, replacing any previous one.
func (r *MapRegistry) Register(typ string, b Builder) {
	r.builders[typ] = b
}

// Get resolves a descriptor. Returns ErrUnknownType for unregistered names.
func (r *MapRegistry) Get(target Target, typ string, opts *Options) (*Descriptor, error) {
	b, ok := r.builders[typ]
	if !ok {
		return nil, fmt.Errorf("%q: %w", typ, ErrUnknownType)
	}
	return b(target, opts), nil
}

// NewDefaultRegistry returns a registry preloaded with the built-in behaviors.
func NewDefaultRegistry() *MapRegistry {
	r := NewMapRegistry()
	r.Register("poison", NewPoisonBehavior)
	r.Register("regeneration", NewRegenerationBehavior)
	r.Register("might", NewMightBehavior)
	r.Register("haste", NewHasteBehavior)
	r.Register("barrier", NewBarrierBehavior)
	return r
}
