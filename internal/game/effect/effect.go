package effect

import (
	"errors"
	"fmt"
	"time"
)

// timeNow is swapped in tests to drive the clock.
var timeNow = time.Now

// State is the effect lifecycle position. Transitions are guarded so an
// effect cannot be double-wired or torn down twice.
type State int8

const (
	StateConstructed State = iota // validated and activated, not yet wired
	StateWired                    // listeners/modifiers installed, clock anchored
	StateDeactivated              // torn down; the instance must not be reused
)

// Effect is one applied instance of a timed or permanent status modification
// on an entity. It owns identity, timing state and the resolved behavior
// descriptor, and orchestrates wiring and teardown against its target.
//
// The effect id is unique per target, not globally: the owning entity uses
// it to prevent stacking the same effect twice.
//
// Methods are not self-synchronized: the owning game loop serializes all
// calls for a given instance.
type Effect struct {
	id       string
	typ      string
	target   Target
	opts     *Options
	behavior *Descriptor

	state   State
	started time.Time
	elapsed time.Duration

	// Listener tokens and installed modifier attributes registered by
	// Init, removed by Deactivate.
	listeners map[string]ListenerID
	installed []string
	quitID    ListenerID
	quitWired bool
}

// New validates, resolves the behavior descriptor from the registry and runs
// the one-time activation pass. Validation stops at the first failure and
// never partially constructs an instance.
//
// Activation (the descriptor's activate, then the options' activate) runs
// synchronously before New returns; side effects already executed by the
// activators are the registry's responsibility and are not rolled back.
func New(id string, opts *Options, typ string, target Target, registry Registry) (*Effect, error) {
	switch {
	case id == "":
		return nil, ErrMissingID
	case opts == nil || opts.isEmpty():
		return nil, ErrMissingOptions
	case typ == "":
		return nil, ErrMissingType
	case target == nil:
		return nil, ErrMissingTarget
	}
	if _, ok := target.(Receiver); !ok {
		return nil, fmt.Errorf("%T: %w", target, ErrUnsupportedTarget)
	}
	if registry == nil {
		return nil, errors.New("effect: registry is required")
	}

	behavior, err := registry.Get(target, typ, opts)
	if err != nil {
		return nil, fmt.Errorf("resolving behavior for %q: %w", typ, err)
	}

	e := &Effect{
		id:        id,
		typ:       typ,
		target:    target,
		opts:      opts,
		behavior:  behavior,
		listeners: make(map[string]ListenerID),
	}

	if behavior.Activate != nil {
		behavior.Activate(opts, target)
	}
	if opts.Activate != nil {
		opts.Activate(target)
	}
	return e, nil
}

// Init wires the effect once it is logically attached to a live target,
// including after deserializing a saved effect onto a reconnecting entity:
// anchors the clock for temporary effects, registers the quit handler and
// every declared event handler, and installs every declared modifier.
//
// Init performs no activation logic. Calling it again rewires against the
// target without re-running activation and without accumulating stale
// listeners from the previous attachment.
func (e *Effect) Init() error {
	if e.state == StateDeactivated {
		return errors.New("effect: init after deactivate")
	}

	// Reject a malformed descriptor before touching the target at all.
	for name, h := range e.behavior.Events {
		if h == nil {
			return fmt.Errorf("event %q: %w", name, ErrMissingEventHandler)
		}
	}
	for attr, fn := range e.behavior.Modifiers {
		if fn == nil {
			return fmt.Errorf("modifier %q: %w", attr, ErrMissingModifierCallback)
		}
	}

	if e.opts.Duration > 0 {
		if e.opts.Started.IsZero() {
			// Fresh clock; write the anchor back so the persisted
			// options bag restores it faithfully.
			e.opts.Started = timeNow()
		}
		e.started = e.opts.Started
		e.elapsed = e.opts.Elapsed
	}

	if e.state == StateWired {
		e.unwire()
	}

	// Quitting detaches the entity rather than removing the effect: only
	// snapshot the clock and run the behavior's own deactivate. Listener
	// removal stays on the explicit Deactivate path.
	e.quitID = e.target.On(EventQuit, func(...any) {
		e.SetElapsed()
		if e.behavior.Deactivate != nil {
			e.behavior.Deactivate()
		}
	})
	e.quitWired = true

	for name, h := range e.behavior.Events {
		e.listeners[name] = e.target.On(name, h)
	}
	for attr, fn := range e.behavior.Modifiers {
		e.target.SetModifier(attr, fn)
		e.installed = append(e.installed, attr)
	}

	e.state = StateWired
	return nil
}

// Deactivate tears the effect down: behavior deactivate, then the options'
// deactivate, then removal of every listener Init registered. Safe to call
// before Init and idempotent afterwards.
func (e *Effect) Deactivate() {
	if e.state == StateDeactivated {
		return
	}
	if e.behavior.Deactivate != nil {
		e.behavior.Deactivate()
	}
	if e.opts.Deactivate != nil {
		e.opts.Deactivate()
	}
	e.unwire()
	e.state = StateDeactivated
}

// unwire removes every listener and modifier this effect registered on its
// target. No-op over empty bookkeeping, so it is safe when Init never ran.
func (e *Effect) unwire() {
	if e.quitWired {
		e.target.RemoveListener(EventQuit, e.quitID)
		e.quitWired = false
	}
	for name, id := range e.listeners {
		e.target.RemoveListener(name, id)
	}
	clear(e.listeners)

	for _, attr := range e.installed {
		e.target.ClearModifier(attr)
	}
	e.installed = e.installed[:0]
}

// Duration returns the configured lifetime; zero means permanent.
func (e *Effect) Duration() time.Duration {
	if e.opts.Duration <= 0 {
		return 0
	}
	return e.opts.Duration
}

// IsTemporary reports whether the effect has a finite duration.
func (e *Effect) IsTemporary() bool {
	return e.opts.Duration > 0
}

// Elapsed returns live elapsed time since the timing anchor. The second
// return is false when no anchor was ever established: permanent effects
// have no elapsed concept.
func (e *Effect) Elapsed() (time.Duration, bool) {
	if e.started.IsZero() {
		return 0, false
	}
	return timeNow().Sub(e.started), true
}

// SetElapsed snapshots live elapsed time into the stored field and the
// options bag, so a serialization that follows carries the true elapsed
// value rather than just the anchor timestamp.
func (e *Effect) SetElapsed() {
	if live, ok := e.Elapsed(); ok {
		e.elapsed = live
		e.opts.Elapsed = live
	}
}

// IsCurrent reports whether the effect is within its lifetime. Permanent
// effects are always current. The check recomputes elapsed time each call;
// it never trusts the cached snapshot.
func (e *Effect) IsCurrent() bool {
	if !e.IsTemporary() {
		return true
	}
	live, ok := e.Elapsed()
	if !ok {
		// Temporary but not yet wired; the clock starts at Init.
		return true
	}
	return live < e.opts.Duration
}

// CheckPredicate evaluates the optional validity predicate; absent means pass.
func (e *Effect) CheckPredicate() bool {
	return e.opts.Predicate == nil || e.opts.Predicate()
}

// IsValid is the single poll the owning game loop should use to decide
// whether to keep the effect active.
func (e *Effect) IsValid() bool {
	return e.IsCurrent() && e.CheckPredicate()
}

// ID returns the per-target effect identifier.
func (e *Effect) ID() string { return e.id }

// Type returns the behavior registry key.
func (e *Effect) Type() string { return e.typ }

// Target returns the entity this effect is attached to.
func (e *Effect) Target() Target { return e.target }

// Options returns the instance configuration bag.
func (e *Effect) Options() *Options { return e.opts }

// State returns the lifecycle position.
func (e *Effect) State() State { return e.state }

// Name returns the behavior's display name.
func (e *Effect) Name() string { return e.behavior.Name }

// Desc returns the behavior's description text.
func (e *Effect) Desc() string { return e.behavior.Desc }

// Aura returns the behavior's aura identifier.
func (e *Effect) Aura() string { return e.behavior.Aura }

// Modifiers returns the behavior's modifier mapping, never nil.
func (e *Effect) Modifiers() map[string]ModifierFunc {
	if e.behavior.Modifiers == nil {
		return map[string]ModifierFunc{}
	}
	return e.behavior.Modifiers
}
