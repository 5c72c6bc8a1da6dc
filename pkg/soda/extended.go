package soda

import (
	"io"
	"sync"

	"github.com/yegors/soda-go/pkg/logger"
)

// ExtendedClient is a live extended-interface engine instance. Results
// arrive as decoded Response values. Unlike the legacy Client, the engine
// accepts no audio until Start has been called.
type ExtendedClient struct {
	handle    uintptr
	regID     uintptr
	reg       *registration
	binding   engineBinding
	log       *logger.Logger
	startOnce sync.Once
	closeOnce sync.Once
}

// Start tells the engine to begin accepting audio. Must be called once,
// before any audio is pushed; further calls are no-ops. Events may arrive
// on engine-internal threads any time after Start.
func (c *ExtendedClient) Start() {
	c.startOnce.Do(func() {
		c.binding.start(c.handle)
		c.log.Debug("Started engine instance")
	})
}

// AddAudio streams src into the engine in fixed-size chunks with no pacing.
// See Client.AddAudio for the read-error behavior.
func (c *ExtendedClient) AddAudio(src io.Reader) {
	feed(src, NoPacing(), c.push)
}

// AddSimulatedAudio streams src paced at RealTimeChunkInterval per chunk,
// emulating live capture.
func (c *ExtendedClient) AddSimulatedAudio(src io.Reader) {
	feed(src, RealTimePacing(RealTimeChunkInterval), c.push)
}

// AddAudioPaced streams src with a caller-supplied pacing policy. A nil
// pace is treated as NoPacing.
func (c *ExtendedClient) AddAudioPaced(src io.Reader, pace Pacer) {
	feed(src, pace, c.push)
}

func (c *ExtendedClient) push(chunk []byte) {
	c.binding.addAudioExtended(c.handle, chunk)
}

// DroppedEvents reports how many engine events were discarded because their
// payload could not be decoded.
func (c *ExtendedClient) DroppedEvents() uint64 {
	return c.reg.dropped.Load()
}

// Close destroys the native instance and releases the callback, exactly
// once. See Client.Close.
func (c *ExtendedClient) Close() {
	c.closeOnce.Do(func() {
		c.binding.destroyExtended(c.handle)
		c.reg.live.Store(false)
		unregister(c.regID)
		c.log.Debug("Destroyed extended engine instance")
	})
}
