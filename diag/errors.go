package diag

import "github.com/cockroachdb/errors"

// Recoverable failure categories; they are reported through Logs and never abort a whole call.
var (
	ErrTypeResolution      = errors.New("type resolution failed")
	ErrConverterNotFound   = errors.New("converter not found")
	ErrShapeMismatch       = errors.New("shape mismatch")
	ErrMemberNotFound      = errors.New("member not found")
	ErrTypeMismatch        = errors.New("type mismatch")
	ErrUnresolvedReference = errors.New("unresolved reference")
	ErrMaxDepth            = errors.New("max depth exceeded")
	ErrInvalidTarget       = errors.New("invalid target")
)

// ErrStackUnderflow signals a broken context invariant; it is returned to the caller as a hard failure.
var ErrStackUnderflow = errors.New("context stack underflow")
