package widgetstore

import "errors"

var (
	// ErrIdentifierCollision means the ID generator returned an identifier
	// that is already stored. It points at a broken generator, not a
	// transient condition.
	ErrIdentifierCollision = errors.New("ID collision, please provide better ID generator")
	// ErrUnknownIdentifier is returned when updating a widget that does not exist.
	ErrUnknownIdentifier = errors.New("unknown widget id")
	// ErrInvalidDimensions is returned by NewDimensions for non-positive extents.
	ErrInvalidDimensions = errors.New("invalid dimensions")
	// ErrInvalidOptions is returned when store options fail validation.
	ErrInvalidOptions = errors.New("invalid options")
)
