package soda

// engineBinding abstracts the native entry points so the rest of the package
// has a single choke point for every foreign call. The real implementation
// lives in native_cgo.go behind the "soda" build tag; without the tag a stub
// that fails creation is used instead, which keeps the package buildable and
// testable on machines without the native library.
//
// Handles are the engine's opaque instance pointers, carried as uintptr so
// no Go code ever dereferences them. The id passed to the create calls is
// the callback registration key (see callbacks.go); the binding hands it to
// the engine as the opaque user-data pointer and the trampolines hand it
// back on every event.
type engineBinding interface {
	available() bool

	// create builds a legacy instance from the flat config struct.
	create(cfg *Config, id uintptr) (uintptr, error)
	addAudio(handle uintptr, chunk []byte)
	destroy(handle uintptr)

	// createExtended builds an extended instance from the serialized config.
	createExtended(serializedConfig []byte, id uintptr) (uintptr, error)
	start(handle uintptr)
	addAudioExtended(handle uintptr, chunk []byte)
	destroyExtended(handle uintptr)
}
