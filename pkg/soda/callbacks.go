package soda

import (
	"sync"
	"sync/atomic"

	"github.com/yegors/soda-go/pkg/logger"
)

// registration binds one user callback to one live engine instance. Exactly
// one of text/response is set, matching the client variant.
//
// The live flag is the liveness check the trampolines consult before
// touching the callback. Close clears it after the engine's delete call has
// returned, so a contract-abiding engine never observes it false during a
// legitimate event; it exists to turn a contract violation (an event after
// delete) into a dropped event instead of a call into released state.
type registration struct {
	text     TextCallback
	response ResponseCallback

	live    atomic.Bool
	dropped atomic.Uint64 // malformed payloads discarded by dispatch

	log *logger.Logger
}

// The registry maps the opaque user-data value handed to the engine back to
// its registration. A plain pointer to the registration cannot cross the
// boundary: cgo forbids foreign code from retaining Go pointers, and a
// stale pointer handed back by a misbehaving engine would be
// undetectable. Small integer keys make a late event at worst a failed
// lookup.
var (
	regMu   sync.RWMutex
	regs    = make(map[uintptr]*registration)
	lastReg uintptr
)

// register stores r and returns the key to hand across the boundary.
func register(r *registration) uintptr {
	regMu.Lock()
	defer regMu.Unlock()
	lastReg++
	id := lastReg
	regs[id] = r
	return id
}

// unregister removes the registration. Called only from Close, after the
// engine's delete call has returned.
func unregister(id uintptr) {
	regMu.Lock()
	delete(regs, id)
	regMu.Unlock()
}

func lookup(id uintptr) *registration {
	regMu.RLock()
	defer regMu.RUnlock()
	return regs[id]
}

// dispatchText delivers one legacy-interface event. Called by the cgo
// trampoline on an engine-internal thread; text has already been decoded
// lossily from the raw C string.
func dispatchText(id uintptr, text string, final bool) {
	r := lookup(id)
	if r == nil || !r.live.Load() {
		return
	}
	r.text(text, final)
}

// dispatchSerialized delivers one extended-interface event. A payload that
// fails to decode is dropped and counted; it never reaches the callback and
// never interrupts the audio feed.
func dispatchSerialized(id uintptr, payload []byte) {
	r := lookup(id)
	if r == nil || !r.live.Load() {
		return
	}
	resp, err := decodeResponse(payload)
	if err != nil {
		r.dropped.Add(1)
		r.log.Debug("Dropped undecodable engine event",
			logger.Int("payload_bytes", len(payload)),
			logger.Error(err),
		)
		return
	}
	r.response(resp)
}
