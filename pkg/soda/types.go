package soda

// RecognitionMode selects how the engine segments and finalizes results.
type RecognitionMode int32

const (
	// ModeUnknown is the zero value; the engine treats it as unset.
	ModeUnknown RecognitionMode = 0
	// ModeIME optimizes for interactive input (short utterances, fast finals).
	ModeIME RecognitionMode = 1
	// ModeCaption optimizes for long-form captioning.
	ModeCaption RecognitionMode = 2
)

// String returns the mode name as it appears in the engine schema.
func (m RecognitionMode) String() string {
	switch m {
	case ModeIME:
		return "IME"
	case ModeCaption:
		return "CAPTION"
	default:
		return "UNKNOWN"
	}
}

// MessageType tags a Response with the kind of event the engine emitted.
type MessageType int32

const (
	MessageUnknown     MessageType = 0
	MessageRecognition MessageType = 1
	MessageStop        MessageType = 2
	MessageShutdown    MessageType = 3
	MessageStart       MessageType = 4
	MessageEndpoint    MessageType = 5
	MessageAudioLevel  MessageType = 6
	MessageLangID      MessageType = 7
)

// ResultType distinguishes revisable hypotheses from fixed ones.
type ResultType int32

const (
	ResultUnknown ResultType = 0
	// ResultPartial hypotheses may still be revised by later audio.
	ResultPartial ResultType = 1
	// ResultFinal hypotheses will not change.
	ResultFinal ResultType = 2
	// ResultPrefetch results are speculative lookahead output.
	ResultPrefetch ResultType = 3
)

// EndpointType is the reason the engine reported an endpoint.
type EndpointType int32

const (
	EndpointStartOfSpeech  EndpointType = 0
	EndpointEndOfSpeech    EndpointType = 1
	EndpointEndOfAudio     EndpointType = 2
	EndpointEndOfUtterance EndpointType = 3
)

// TimingInfo carries the engine's timing metrics, all in microseconds.
type TimingInfo struct {
	AudioStartEpochUsec int64
	AudioStartTimeUsec  int64
	ElapsedWallTimeUsec int64
	EventEndTimeUsec    int64
}

// RecognitionResult is one recognition event: an ordered list of ranked
// hypotheses plus the result type. Optional fields are nil when the engine
// did not include them; absence is meaningful, not a default.
type RecognitionResult struct {
	// Hypotheses are ordered best-first. May be empty.
	Hypotheses []string
	ResultType *ResultType
	Timing     *TimingInfo
}

// Final reports whether this result carries a final hypothesis.
func (r *RecognitionResult) Final() bool {
	return r.ResultType != nil && *r.ResultType == ResultFinal
}

// EndpointEvent reports a segmentation boundary detected by the engine.
type EndpointEvent struct {
	EndpointType *EndpointType
	Timing       *TimingInfo
}

// AudioLevelInfo is periodic input-level telemetry.
type AudioLevelInfo struct {
	RMS        *float32
	AudioLevel *float32
}

// LangIDEvent reports the engine's language identification guess.
type LangIDEvent struct {
	Language        *string
	ConfidenceLevel *int32
}

// Response is one decoded event from the extended interface. Exactly the
// fields the engine sent are non-nil; callers must check presence before
// reading.
type Response struct {
	Type              *MessageType
	RecognitionResult *RecognitionResult
	EndpointEvent     *EndpointEvent
	AudioLevelInfo    *AudioLevelInfo
	LangIDEvent       *LangIDEvent
}

// TextCallback receives events from the legacy interface. The engine may
// invoke it concurrently from multiple internal threads.
type TextCallback func(text string, final bool)

// ResponseCallback receives decoded events from the extended interface. The
// engine may invoke it concurrently from multiple internal threads. The
// Response is owned by the callback and not reused.
type ResponseCallback func(resp *Response)
