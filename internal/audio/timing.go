package audio

import "time"

// BytesPerMillisecond returns the PCM16 data rate for the given stream
// parameters.
func BytesPerMillisecond(sampleRate, channels int) int {
	// For PCM16, each sample is 2 bytes (16 bits)
	bytesPerSample := 2
	return (sampleRate * channels * bytesPerSample) / 1000
}

// ChunkDuration returns the wall-clock time one chunk of chunkBytes
// represents at the given stream parameters. Feeding chunks at this
// interval reproduces live arrival exactly.
func ChunkDuration(sampleRate, channels, chunkBytes int) time.Duration {
	perMs := BytesPerMillisecond(sampleRate, channels)
	if perMs <= 0 {
		return 0
	}
	return time.Duration(chunkBytes) * time.Millisecond / time.Duration(perMs)
}
