// Package audio contains WAV file handling and real-time pacing math for
// feeding prerecorded audio to the engine.
package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Format describes the PCM stream inside a WAV file.
type Format struct {
	AudioFormat   uint16 // 1 for PCM
	NumChannels   uint16 // 1 for mono, 2 for stereo
	SampleRate    uint32 // 8000, 44100, etc.
	ByteRate      uint32 // SampleRate * NumChannels * BitsPerSample/8
	BlockAlign    uint16 // NumChannels * BitsPerSample/8
	BitsPerSample uint16 // 8, 16, etc.
}

// ErrNotWAV is returned when the input does not start with a RIFF/WAVE
// header.
var ErrNotWAV = errors.New("audio: not a RIFF/WAVE stream")

// ReadWAVHeader consumes the RIFF header and all sub-chunks up to and
// including the "data" chunk header, leaving r positioned at the first PCM
// byte. It returns the stream format and the declared data length in bytes.
//
// Non-canonical files with extra chunks between "fmt " and "data" (LIST,
// fact, ...) are handled by skipping unknown chunks.
func ReadWAVHeader(r io.Reader) (Format, uint32, error) {
	var riff [12]byte
	if _, err := io.ReadFull(r, riff[:]); err != nil {
		return Format{}, 0, fmt.Errorf("failed to read RIFF descriptor: %w", err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return Format{}, 0, ErrNotWAV
	}

	var format Format
	seenFmt := false

	// Walk sub-chunks until "data"
	for {
		var chunkHeader [8]byte
		if _, err := io.ReadFull(r, chunkHeader[:]); err != nil {
			return Format{}, 0, fmt.Errorf("failed to read chunk header: %w", err)
		}
		chunkID := string(chunkHeader[0:4])
		chunkSize := binary.LittleEndian.Uint32(chunkHeader[4:8])

		switch chunkID {
		case "fmt ":
			if chunkSize < 16 {
				return Format{}, 0, fmt.Errorf("fmt chunk too short: %d bytes", chunkSize)
			}
			var fmtBody [16]byte
			if _, err := io.ReadFull(r, fmtBody[:]); err != nil {
				return Format{}, 0, fmt.Errorf("failed to read fmt chunk: %w", err)
			}
			format = Format{
				AudioFormat:   binary.LittleEndian.Uint16(fmtBody[0:2]),
				NumChannels:   binary.LittleEndian.Uint16(fmtBody[2:4]),
				SampleRate:    binary.LittleEndian.Uint32(fmtBody[4:8]),
				ByteRate:      binary.LittleEndian.Uint32(fmtBody[8:12]),
				BlockAlign:    binary.LittleEndian.Uint16(fmtBody[12:14]),
				BitsPerSample: binary.LittleEndian.Uint16(fmtBody[14:16]),
			}
			seenFmt = true
			// Skip any fmt extension bytes
			if chunkSize > 16 {
				if err := skip(r, int64(chunkSize-16)); err != nil {
					return Format{}, 0, err
				}
			}
		case "data":
			if !seenFmt {
				return Format{}, 0, errors.New("audio: data chunk before fmt chunk")
			}
			return format, chunkSize, nil
		default:
			// Chunks are word-aligned; odd sizes carry a pad byte
			size := int64(chunkSize)
			if chunkSize%2 == 1 {
				size++
			}
			if err := skip(r, size); err != nil {
				return Format{}, 0, err
			}
		}
	}
}

func skip(r io.Reader, n int64) error {
	if _, err := io.CopyN(io.Discard, r, n); err != nil {
		return fmt.Errorf("failed to skip chunk: %w", err)
	}
	return nil
}

// EncodeWAVHeader builds a canonical 44-byte PCM WAV header for the given
// parameters. Used to synthesize WAV streams, mainly in tests.
func EncodeWAVHeader(sampleRate, channels int, dataSize uint32) []byte {
	bitsPerSample := uint16(16) // 16-bit PCM

	byteRate := uint32(sampleRate * channels * int(bitsPerSample/8))
	blockAlign := uint16(channels * int(bitsPerSample/8))

	header := make([]byte, 44)

	// RIFF chunk descriptor
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 36+dataSize)
	copy(header[8:12], "WAVE")

	// "fmt " sub-chunk
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16) // 16 for PCM
	binary.LittleEndian.PutUint16(header[20:22], 1)  // 1 for PCM
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)

	// "data" sub-chunk
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	return header
}
