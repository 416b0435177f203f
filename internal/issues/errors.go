package issues

import "errors"

// Issue workflow errors.
var (
	ErrContextExpired    = errors.New("context expired or missing")
	ErrUnknownKind       = errors.New("unknown issue kind")
	ErrUnknownRepository = errors.New("unknown repository")
	ErrMalformedCustomID = errors.New("malformed custom id")
)
