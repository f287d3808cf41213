package effect

import "errors"

// Construction-time contract violations. All fatal: no instance is produced.
var (
	ErrMissingID         = errors.New("effect: missing id")
	ErrMissingOptions    = errors.New("effect: missing or empty options")
	ErrMissingType       = errors.New("effect: missing type")
	ErrMissingTarget     = errors.New("effect: missing target")
	ErrUnsupportedTarget = errors.New("effect: target cannot receive effects")
)

// Wiring-time contract violations. A malformed behavior descriptor is a
// programming error in the registry, not a runtime condition to recover from.
var (
	ErrMissingEventHandler     = errors.New("effect: declared event has no handler")
	ErrMissingModifierCallback = errors.New("effect: declared modifier has no callback")
)

// ErrUnknownType is returned by MapRegistry.Get for an unregistered type.
var ErrUnknownType = errors.New("effect: unknown effect type")
