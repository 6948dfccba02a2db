package binder

import "errors"

var (
	ErrBinderNotApplicable  = errors.New("binder: not applicable to request")
	ErrUnsupportedMediaType = errors.New("binder: unsupported media type")
	ErrMissingContentType   = errors.New("binder: missing content type")
	ErrInvalidJSON          = errors.New("binder: invalid JSON body")
	ErrInvalidForm          = errors.New("binder: invalid form data")
	ErrInvalidSignals       = errors.New("binder: invalid datastar signals")
	ErrBodyTooLarge         = errors.New("binder: request body too large")
)
