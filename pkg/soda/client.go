package soda

import (
	"io"
	"sync"
	"time"

	"github.com/yegors/soda-go/pkg/logger"
)

// ChunkSize is the number of bytes pushed to the engine per add-audio call.
const ChunkSize = 2048

// RealTimeChunkInterval is the delay AddSimulatedAudio inserts between
// chunks to emulate live capture. The engine's endpointer expects streaming
// arrival; bulk delivery of prerecorded audio suppresses events.
const RealTimeChunkInterval = 20 * time.Millisecond

// Pacer controls the delay between audio chunks during a feed. It is called
// once after every pushed chunk.
type Pacer func()

// NoPacing returns a pacer that never delays.
func NoPacing() Pacer {
	return func() {}
}

// RealTimePacing returns a pacer that sleeps for interval after each chunk.
func RealTimePacing(interval time.Duration) Pacer {
	return func() { time.Sleep(interval) }
}

// Client is a live legacy-interface engine instance. It exclusively owns
// the opaque native handle and the callback registration; both are released
// by Close, exactly once.
type Client struct {
	handle    uintptr
	regID     uintptr
	reg       *registration
	binding   engineBinding
	log       *logger.Logger
	closeOnce sync.Once
}

// AddAudio streams src into the engine in fixed-size chunks with no pacing
// between chunks. It blocks until src is exhausted.
//
// A read error ends the feed as if the stream had ended; it is not
// reported. This mirrors the engine's tolerance for truncated audio but
// does mean genuine I/O failures are indistinguishable from end of stream.
func (c *Client) AddAudio(src io.Reader) {
	feed(src, NoPacing(), c.push)
}

// AddSimulatedAudio streams src like AddAudio but paces delivery at
// RealTimeChunkInterval per chunk, emulating live capture. Required for
// deterministic endpointing when feeding prerecorded audio.
func (c *Client) AddSimulatedAudio(src io.Reader) {
	feed(src, RealTimePacing(RealTimeChunkInterval), c.push)
}

// AddAudioPaced streams src with a caller-supplied pacing policy. A nil
// pace is treated as NoPacing.
func (c *Client) AddAudioPaced(src io.Reader, pace Pacer) {
	feed(src, pace, c.push)
}

func (c *Client) push(chunk []byte) {
	c.binding.addAudio(c.handle, chunk)
}

// DroppedEvents reports how many engine events were discarded because they
// could not be decoded. Always zero for the legacy interface, which has no
// decode step; present for symmetry with ExtendedClient.
func (c *Client) DroppedEvents() uint64 {
	return c.reg.dropped.Load()
}

// Close destroys the native instance and releases the callback. Safe to
// call more than once; only the first call acts. The engine's delete call
// returns only after in-flight callbacks have quiesced, so the callback is
// never invoked after Close returns.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.binding.destroy(c.handle)
		// The engine has quiesced; anything arriving past this point is a
		// contract violation and gets dropped by dispatch.
		c.reg.live.Store(false)
		unregister(c.regID)
		c.log.Debug("Destroyed engine instance")
	})
}

// feed is the shared chunked-feed loop. A zero-length read or any read
// error ends the loop; short chunks are pushed at their actual length.
// A nil pacer means no pacing.
func feed(src io.Reader, pace Pacer, push func([]byte)) {
	if pace == nil {
		pace = NoPacing()
	}
	buf := make([]byte, ChunkSize)
	for {
		n, err := src.Read(buf)
		if n > 0 {
			push(buf[:n])
			pace()
		}
		if err != nil || n == 0 {
			return
		}
	}
}
