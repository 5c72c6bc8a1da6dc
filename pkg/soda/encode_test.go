package soda

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncodeExtendedConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want []byte
	}{
		{
			name: "defaults",
			cfg:  NewBuilder().cfg,
			want: concat(
				[]byte{0x08, 0x01},             // channel_count = 1
				[]byte{0x10, 0x80, 0x7d},       // sample_rate = 16000
				[]byte{0x18, 0x00},             // max_buffer_bytes = 0
				[]byte{0x20, 0x00},             // simulate_realtime_testonly = false
				[]byte{0x2a, 0x09}, []byte("dummy_key"),
				[]byte{0x32, 0x0c}, []byte("./SODAModels"),
				[]byte{0x38, 0x01}, // recognition_mode = IME
				[]byte{0x40, 0x01}, // reset_on_final_result = true
				[]byte{0x48, 0x01}, // include_timing_metrics = true
				[]byte{0x50, 0x00}, // enable_lang_id = false
			),
		},
		{
			name: "caption mode with lang-id",
			cfg: Config{
				ChannelCount:          2,
				SampleRate:            16000,
				LanguagePackDirectory: "m",
				APIKey:                "k",
				RecognitionMode:       ModeCaption,
				MaxBufferBytes:        1024,
				SimulateRealtime:      true,
				ResetOnFinalResult:    false,
				IncludeTimingMetrics:  false,
				EnableLangID:          true,
			},
			want: concat(
				[]byte{0x08, 0x02},
				[]byte{0x10, 0x80, 0x7d},
				[]byte{0x18, 0x80, 0x08}, // max_buffer_bytes = 1024
				[]byte{0x20, 0x01},
				[]byte{0x2a, 0x01, 'k'},
				[]byte{0x32, 0x01, 'm'},
				[]byte{0x38, 0x02}, // CAPTION
				[]byte{0x40, 0x00},
				[]byte{0x48, 0x00},
				[]byte{0x50, 0x01},
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := encodeExtendedConfig(&tt.cfg)
			if err != nil {
				t.Fatalf("encodeExtendedConfig() error = %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("encodeExtendedConfig() = %x, want %x", got, tt.want)
			}
		})
	}
}

func TestEncodeExtendedConfigInvalidUTF8(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "api key", cfg: Config{APIKey: "\xff", LanguagePackDirectory: "ok"}},
		{name: "language pack directory", cfg: Config{APIKey: "ok", LanguagePackDirectory: "\xc3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := encodeExtendedConfig(&tt.cfg); !errors.Is(err, ErrConfigEncode) {
				t.Errorf("encodeExtendedConfig() error = %v, want ErrConfigEncode", err)
			}
		})
	}
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
