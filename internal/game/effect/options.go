package effect

import "time"

// Options is the per-instance configuration bag for an effect.
//
// Duration, Started and Elapsed exist so a persisted effect can resume its
// clock after logout/login instead of restarting it: the save system
// round-trips this struct and Init picks the anchor back up.
type Options struct {
	// Duration is the total permitted lifetime. Zero or negative means
	// the effect is permanent and carries no timing anchor.
	Duration time.Duration

	// Started is the wall-clock anchor. Zero value means "anchor at Init
	// time"; a restored effect carries the original anchor instead.
	Started time.Time

	// Elapsed is the last recorded elapsed time, written by SetElapsed
	// immediately before serialization.
	Elapsed time.Duration

	// Activate runs after the behavior's own activate during construction.
	Activate func(target Target)

	// Deactivate runs after the behavior's own deactivate during teardown.
	Deactivate func()

	// Predicate gates validity beyond pure timing. Nil means timing alone
	// decides. May be arbitrary external logic; the core treats it as opaque.
	Predicate func() bool

	// Params is opaque configuration passed through to the behavior registry.
	Params map[string]string
}

// isEmpty reports whether no field of the bag is set. Empty options are
// rejected at construction the same as absent ones.
func (o *Options) isEmpty() bool {
	return o.Duration == 0 &&
		o.Started.IsZero() &&
		o.Elapsed == 0 &&
		o.Activate == nil &&
		o.Deactivate == nil &&
		o.Predicate == nil &&
		len(o.Params) == 0
}
