package errs

import "errors"

var (
	ErrRecordNotFound      = errors.New("record not found")
	ErrVariantUnavailable  = errors.New("variant unavailable")
	ErrForbidden           = errors.New("forbidden")
	ErrConflict            = errors.New("status already transitioned")
	ErrInvalidSignature    = errors.New("invalid callback signature")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
