// Package soda is a Go client for the SODA speech recognition library
// (the on-device engine shipped with Chrome's Live Caption). The engine is
// an opaque native library reached through four C entry points: create,
// start, add-audio and delete. This package wraps that boundary so that
// callers never touch a raw handle or a foreign pointer.
//
// Two clients are provided. Client talks to the legacy interface, where the
// engine reports plain text plus a finality flag. ExtendedClient talks to
// the extended interface, where configuration and results travel as
// serialized protobuf messages and the engine must be started explicitly
// before audio is pushed.
//
// Both are built from a Builder:
//
//	client, err := soda.NewBuilder().
//		SampleRate(16000).
//		LanguagePackDirectory("./SODAModels").
//		Build(func(text string, final bool) {
//			fmt.Println(text, final)
//		})
//	if err != nil {
//		// handle
//	}
//	defer client.Close()
//
//	client.AddSimulatedAudio(wavBody)
//
// The engine invokes callbacks from its own internal threads at any time
// between creation and Close. Callbacks must therefore be safe for
// concurrent use. Close destroys the native instance exactly once and only
// then releases the callback, relying on the engine's contract that delete
// returns after all in-flight callbacks have quiesced.
//
// Binaries that link the native library must be built with the "soda" build
// tag. Without it the package compiles everywhere and Build fails with
// ErrEngineUnavailable.
package soda
