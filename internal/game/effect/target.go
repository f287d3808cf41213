package effect

// Event names the effect core reacts to or that built-in behaviors listen on.
const (
	// EventQuit fires when a target detaches from the world (logout).
	EventQuit = "quit"
	// EventTick fires once per world tick for periodic behaviors (DOT/HOT).
	EventTick = "tick"
	// EventHit fires when the target takes a direct hit.
	EventHit = "hit"
)

// ListenerID identifies a single registered listener on a target.
// Go functions are not comparable, so removal goes by token instead of
// by handler value.
type ListenerID uint64

// Handler is an event callback registered on a target's event stream.
type Handler func(args ...any)

// ModifierFunc transforms an attribute's base value while the owning
// effect is active.
type ModifierFunc func(base float64) float64

// Target is the capability surface an effect needs from the entity it is
// attached to. Any entity kind (player, monster, future kinds) qualifies
// by implementing it; no type hierarchy is required.
type Target interface {
	// On registers a listener and returns a token for later removal.
	On(event string, h Handler) ListenerID
	// RemoveListener removes a single listener by token.
	RemoveListener(event string, id ListenerID)
	// SetModifier installs an attribute modifier, keyed by attribute name.
	SetModifier(attr string, fn ModifierFunc)
	// ClearModifier uninstalls the modifier on an attribute. A modifier
	// lives only while its owning effect is active.
	ClearModifier(attr string)
}

// Receiver is the add-effect capability probed at construction time.
// The core never calls AddEffect itself; the applying code path does the
// actual attach.
type Receiver interface {
	Target
	AddEffect(e *Effect) bool
}
