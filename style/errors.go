package style

import "errors"

// Errors returned by the style package. All of them signal a programming
// error in the caller; none are retried and none leave partial state behind.
var (
	// ErrTypeMismatch is returned when a value's kind disagrees with the
	// kind declared for the property it is assigned to or read from.
	ErrTypeMismatch = errors.New("style: type mismatch")

	// ErrUnknownProperty is returned for property identifiers outside the schema.
	ErrUnknownProperty = errors.New("style: unknown property")

	// ErrUnsupportedKind is returned for values outside the closed value union.
	ErrUnsupportedKind = errors.New("style: unsupported value kind")

	// ErrStyleNotFound is returned when a template references an undefined parent.
	ErrStyleNotFound = errors.New("style: template not found")

	// ErrInvalidDuration is returned for negative transition durations.
	ErrInvalidDuration = errors.New("style: invalid transition duration")

	// ErrParentCycle is returned when a parent link would make the chain cyclic.
	ErrParentCycle = errors.New("style: parent cycle")

	// ErrForeignParent is returned when linking stores owned by different pools.
	ErrForeignParent = errors.New("style: parent belongs to another pool")
)
