package sqlite

import "time"

// TranscriptRecord represents one final recognition result persisted from a
// session
type TranscriptRecord struct {
	ID        int64     `json:"id"`
	Source    string    `json:"source"`             // audio source, e.g. the WAV path
	Text      string    `json:"text"`               // best (first-ranked) hypothesis
	Language  string    `json:"language,omitempty"` // from lang-id events, when enabled
	Timestamp time.Time `json:"timestamp"`
	CreatedAt time.Time `json:"created_at"`
}
