package soda

import (
	"math"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"
)

// Test payload builders. These deliberately use protowire to assemble
// engine-style messages rather than the package's own encoder, which only
// knows the config schema.

func appendMessageField(b []byte, num protowire.Number, msg []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}

func recognitionPayload(resultType ResultType, hypotheses ...string) []byte {
	var rr []byte
	for _, h := range hypotheses {
		rr = appendStringField(rr, 1, h)
	}
	rr = appendVarintField(rr, 2, uint64(resultType))

	var resp []byte
	resp = appendVarintField(resp, 1, uint64(MessageRecognition))
	resp = appendMessageField(resp, 2, rr)
	return resp
}

func TestDecodeRecognition(t *testing.T) {
	payload := recognitionPayload(ResultFinal, "what's the weather like", "whats the weather like")

	resp, err := decodeResponse(payload)
	if err != nil {
		t.Fatalf("decodeResponse() error = %v", err)
	}

	if resp.Type == nil || *resp.Type != MessageRecognition {
		t.Errorf("Type = %v, want MessageRecognition", resp.Type)
	}
	rr := resp.RecognitionResult
	if rr == nil {
		t.Fatal("RecognitionResult missing")
	}
	if len(rr.Hypotheses) != 2 || rr.Hypotheses[0] != "what's the weather like" {
		t.Errorf("Hypotheses = %q", rr.Hypotheses)
	}
	if !rr.Final() {
		t.Error("Final() = false, want true")
	}
	if rr.Timing != nil {
		t.Error("Timing present, want absent")
	}
	if resp.EndpointEvent != nil || resp.AudioLevelInfo != nil || resp.LangIDEvent != nil {
		t.Error("unexpected event fields present")
	}
}

func TestDecodePartialIsNotFinal(t *testing.T) {
	resp, err := decodeResponse(recognitionPayload(ResultPartial, "what's the"))
	if err != nil {
		t.Fatalf("decodeResponse() error = %v", err)
	}
	if resp.RecognitionResult.Final() {
		t.Error("Final() = true for a partial result")
	}
}

func TestDecodeTimingMetrics(t *testing.T) {
	var ti []byte
	ti = appendVarintField(ti, 1, 1111)
	ti = appendVarintField(ti, 2, 2222)
	ti = appendVarintField(ti, 3, 3333)
	ti = appendVarintField(ti, 4, 4444)

	var rr []byte
	rr = appendStringField(rr, 1, "hello")
	rr = appendVarintField(rr, 2, uint64(ResultFinal))
	rr = appendMessageField(rr, 3, ti)

	var payload []byte
	payload = appendVarintField(payload, 1, uint64(MessageRecognition))
	payload = appendMessageField(payload, 2, rr)

	resp, err := decodeResponse(payload)
	if err != nil {
		t.Fatalf("decodeResponse() error = %v", err)
	}
	timing := resp.RecognitionResult.Timing
	if timing == nil {
		t.Fatal("Timing missing")
	}
	want := TimingInfo{
		AudioStartEpochUsec: 1111,
		AudioStartTimeUsec:  2222,
		ElapsedWallTimeUsec: 3333,
		EventEndTimeUsec:    4444,
	}
	if *timing != want {
		t.Errorf("Timing = %+v, want %+v", *timing, want)
	}
}

func TestDecodeEndpointEvent(t *testing.T) {
	var ep []byte
	ep = appendVarintField(ep, 1, uint64(EndpointEndOfUtterance))

	var payload []byte
	payload = appendVarintField(payload, 1, uint64(MessageEndpoint))
	payload = appendMessageField(payload, 3, ep)

	resp, err := decodeResponse(payload)
	if err != nil {
		t.Fatalf("decodeResponse() error = %v", err)
	}
	if resp.EndpointEvent == nil || resp.EndpointEvent.EndpointType == nil {
		t.Fatal("EndpointEvent missing")
	}
	if *resp.EndpointEvent.EndpointType != EndpointEndOfUtterance {
		t.Errorf("EndpointType = %v, want EndpointEndOfUtterance", *resp.EndpointEvent.EndpointType)
	}
}

func TestDecodeAudioLevel(t *testing.T) {
	var al []byte
	al = protowire.AppendTag(al, 1, protowire.Fixed32Type)
	al = protowire.AppendFixed32(al, math.Float32bits(0.25))
	al = protowire.AppendTag(al, 2, protowire.Fixed32Type)
	al = protowire.AppendFixed32(al, math.Float32bits(0.75))

	var payload []byte
	payload = appendVarintField(payload, 1, uint64(MessageAudioLevel))
	payload = appendMessageField(payload, 4, al)

	resp, err := decodeResponse(payload)
	if err != nil {
		t.Fatalf("decodeResponse() error = %v", err)
	}
	info := resp.AudioLevelInfo
	if info == nil || info.RMS == nil || info.AudioLevel == nil {
		t.Fatal("AudioLevelInfo incomplete")
	}
	if *info.RMS != 0.25 || *info.AudioLevel != 0.75 {
		t.Errorf("RMS = %v, AudioLevel = %v", *info.RMS, *info.AudioLevel)
	}
}

func TestDecodeLangID(t *testing.T) {
	var li []byte
	li = appendStringField(li, 1, "en-US")
	li = appendVarintField(li, 2, 3)

	var payload []byte
	payload = appendVarintField(payload, 1, uint64(MessageLangID))
	payload = appendMessageField(payload, 5, li)

	resp, err := decodeResponse(payload)
	if err != nil {
		t.Fatalf("decodeResponse() error = %v", err)
	}
	ev := resp.LangIDEvent
	if ev == nil || ev.Language == nil || ev.ConfidenceLevel == nil {
		t.Fatal("LangIDEvent incomplete")
	}
	if *ev.Language != "en-US" || *ev.ConfidenceLevel != 3 {
		t.Errorf("Language = %v, ConfidenceLevel = %v", *ev.Language, *ev.ConfidenceLevel)
	}
}

func TestDecodeSkipsUnknownFields(t *testing.T) {
	payload := recognitionPayload(ResultFinal, "hello")
	// A future engine field this decoder has never heard of
	payload = appendStringField(payload, 99, "ignore me")
	payload = appendVarintField(payload, 100, 42)

	resp, err := decodeResponse(payload)
	if err != nil {
		t.Fatalf("decodeResponse() error = %v", err)
	}
	if resp.RecognitionResult == nil || resp.RecognitionResult.Hypotheses[0] != "hello" {
		t.Error("known fields lost while skipping unknown ones")
	}
}

func TestDecodeEmptyPayload(t *testing.T) {
	resp, err := decodeResponse(nil)
	if err != nil {
		t.Fatalf("decodeResponse(nil) error = %v", err)
	}
	if resp.Type != nil || resp.RecognitionResult != nil {
		t.Error("empty payload produced non-empty response")
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
	}{
		{name: "truncated varint", payload: []byte{0x08}},
		{name: "truncated length prefix", payload: []byte{0x12, 0x10, 0x01}},
		{name: "bare continuation byte", payload: []byte{0x80}},
		{name: "truncated submessage", payload: appendMessageField(nil, 2, []byte{0x08})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := decodeResponse(tt.payload); err == nil {
				t.Error("decodeResponse() succeeded on malformed payload")
			}
		})
	}
}
