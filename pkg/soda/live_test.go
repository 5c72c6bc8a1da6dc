package soda

import (
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/yegors/soda-go/internal/audio"
)

// TestLiveTranscription runs the full pipeline against the real native
// engine: parse a WAV file, feed it paced as live audio, and expect a final
// hypothesis matching a known transcript.
//
// Requires a build with -tags soda plus three environment variables:
//
//	SODA_MODELS      language pack directory
//	SODA_TEST_WAV    16 kHz mono PCM WAV file
//	SODA_TEST_PHRASE expected transcript of that file
func TestLiveTranscription(t *testing.T) {
	if !defaultBinding.available() {
		t.Skip("native engine not linked; rebuild with -tags soda")
	}
	modelDir := os.Getenv("SODA_MODELS")
	wavPath := os.Getenv("SODA_TEST_WAV")
	expected := os.Getenv("SODA_TEST_PHRASE")
	if modelDir == "" || wavPath == "" || expected == "" {
		t.Skip("SODA_MODELS, SODA_TEST_WAV and SODA_TEST_PHRASE must be set")
	}

	f, err := os.Open(wavPath)
	if err != nil {
		t.Fatalf("open test audio: %v", err)
	}
	defer f.Close()

	format, _, err := audio.ReadWAVHeader(f)
	if err != nil {
		t.Fatalf("parse test audio: %v", err)
	}

	var (
		mu     sync.Mutex
		finals []string
	)
	client, err := NewBuilder().
		ChannelCount(int32(format.NumChannels)).
		SampleRate(int32(format.SampleRate)).
		LanguagePackDirectory(modelDir).
		RecognitionMode(ModeCaption).
		APIKey("00000000-0000-0000-0000-000000000000").
		BuildExtended(func(resp *Response) {
			rr := resp.RecognitionResult
			if rr == nil || !rr.Final() || len(rr.Hypotheses) == 0 {
				return
			}
			mu.Lock()
			finals = append(finals, rr.Hypotheses[0])
			mu.Unlock()
		})
	if err != nil {
		t.Fatalf("BuildExtended() error = %v", err)
	}
	defer client.Close()

	client.Start()
	client.AddSimulatedAudio(f)

	mu.Lock()
	defer mu.Unlock()
	if len(finals) == 0 {
		t.Fatal("no final results received")
	}
	for _, text := range finals {
		if strings.Contains(text, expected) {
			return
		}
	}
	t.Errorf("final hypotheses %q do not contain %q", finals, expected)
}
