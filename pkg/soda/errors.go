package soda

import "errors"

var (
	// ErrEngineUnavailable is returned by Build when the binary was compiled
	// without the "soda" build tag and no native engine is linked in.
	ErrEngineUnavailable = errors.New("soda: native engine not available in this build")

	// ErrCreateFailed is returned when the engine's create call yields no
	// instance handle. There is no further diagnostic; the engine is opaque.
	ErrCreateFailed = errors.New("soda: engine returned no instance handle")

	// ErrConfigEncode is returned when the configuration cannot be encoded
	// for transmission to the engine.
	ErrConfigEncode = errors.New("soda: config could not be encoded")

	// ErrNilCallback is returned by Build when no callback was supplied.
	ErrNilCallback = errors.New("soda: callback must not be nil")
)
