//go:build soda

package soda

/*
#cgo LDFLAGS: -lsoda
#include <stdlib.h>
#include "soda_api.h"
*/
import "C"

import (
	"strings"
	"unsafe"
)

// nativeEngine is the real binding, compiled only with the "soda" tag.
type nativeEngine struct{}

var defaultBinding engineBinding = nativeEngine{}

func (nativeEngine) available() bool { return true }

func (nativeEngine) create(cfg *Config, id uintptr) (uintptr, error) {
	dir := C.CString(cfg.LanguagePackDirectory)
	defer C.free(unsafe.Pointer(dir))
	key := C.CString(cfg.APIKey)
	defer C.free(unsafe.Pointer(key))

	h := C.sodaGoCreate(
		C.int(cfg.ChannelCount),
		C.int(cfg.SampleRate),
		dir,
		key,
		unsafe.Pointer(id), // registry key in pointer clothing, never dereferenced
	)
	if h == nil {
		return 0, ErrCreateFailed
	}
	return uintptr(h), nil
}

func (nativeEngine) addAudio(handle uintptr, chunk []byte) {
	if len(chunk) == 0 {
		return
	}
	// The engine copies the buffer during the call; it only has to stay
	// valid until AddAudio returns.
	C.AddAudio(
		unsafe.Pointer(handle),
		(*C.char)(unsafe.Pointer(&chunk[0])),
		C.int(len(chunk)),
	)
}

func (nativeEngine) destroy(handle uintptr) {
	C.DeleteSodaAsync(unsafe.Pointer(handle))
}

func (nativeEngine) createExtended(serializedConfig []byte, id uintptr) (uintptr, error) {
	if len(serializedConfig) == 0 {
		return 0, ErrConfigEncode
	}
	buf := C.CBytes(serializedConfig)
	defer C.free(buf)

	h := C.sodaGoCreateExtended(
		(*C.char)(buf),
		C.int(len(serializedConfig)),
		unsafe.Pointer(id), // registry key in pointer clothing, never dereferenced
	)
	if h == nil {
		return 0, ErrCreateFailed
	}
	return uintptr(h), nil
}

func (nativeEngine) start(handle uintptr) {
	C.ExtendedSodaStart(unsafe.Pointer(handle))
}

func (nativeEngine) addAudioExtended(handle uintptr, chunk []byte) {
	if len(chunk) == 0 {
		return
	}
	C.ExtendedAddAudio(
		unsafe.Pointer(handle),
		(*C.char)(unsafe.Pointer(&chunk[0])),
		C.int(len(chunk)),
	)
}

func (nativeEngine) destroyExtended(handle uintptr) {
	C.DeleteExtendedSodaAsync(unsafe.Pointer(handle))
}

// sodaGoTextTrampoline receives legacy-interface events from the engine,
// on an engine-internal thread. It reconstitutes the callback registration
// from the opaque handle and never takes ownership of anything it is
// handed. Invalid UTF-8 in the text is replaced, never faulted on.
//
//export sodaGoTextTrampoline
func sodaGoTextTrampoline(text *C.char, isFinal C.bool, callbackHandle unsafe.Pointer) {
	var s string
	if text != nil {
		s = strings.ToValidUTF8(C.GoString(text), "�")
	}
	dispatchText(uintptr(callbackHandle), s, bool(isFinal))
}

// sodaGoSerializedTrampoline receives extended-interface events from the
// engine. The payload is copied out before the call returns; the engine
// may reuse its buffer immediately after.
//
//export sodaGoSerializedTrampoline
func sodaGoSerializedTrampoline(payload *C.char, length C.int, callbackHandle unsafe.Pointer) {
	var buf []byte
	if payload != nil && length > 0 {
		buf = C.GoBytes(unsafe.Pointer(payload), length)
	}
	dispatchSerialized(uintptr(callbackHandle), buf)
}
