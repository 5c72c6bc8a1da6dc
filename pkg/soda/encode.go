package soda

import (
	"fmt"
	"unicode/utf8"

	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of the engine's ExtendedSodaConfigMsg schema. The layout is
// owned by the engine; this package only reproduces it. New fields may be
// appended by the engine without breaking existing encoders, which is why
// the extended interface takes a serialized buffer instead of a C struct.
const (
	cfgFieldChannelCount     = 1
	cfgFieldSampleRate       = 2
	cfgFieldMaxBufferBytes   = 3
	cfgFieldSimulateRealtime = 4
	cfgFieldAPIKey           = 5
	cfgFieldLanguagePackDir  = 6
	cfgFieldRecognitionMode  = 7
	cfgFieldResetOnFinal     = 8
	cfgFieldTimingMetrics    = 9
	cfgFieldEnableLangID     = 10
)

// encodeExtendedConfig serializes cfg into the engine's wire format. All
// fields are emitted explicitly, including default values, so the engine
// sees exactly what the builder held. String fields must be valid UTF-8;
// anything else is an encoding failure, which is fatal to the build.
func encodeExtendedConfig(cfg *Config) ([]byte, error) {
	if !utf8.ValidString(cfg.APIKey) {
		return nil, fmt.Errorf("%w: api_key is not valid UTF-8", ErrConfigEncode)
	}
	if !utf8.ValidString(cfg.LanguagePackDirectory) {
		return nil, fmt.Errorf("%w: language_pack_directory is not valid UTF-8", ErrConfigEncode)
	}

	var b []byte
	b = appendVarintField(b, cfgFieldChannelCount, uint64(int64(cfg.ChannelCount)))
	b = appendVarintField(b, cfgFieldSampleRate, uint64(int64(cfg.SampleRate)))
	b = appendVarintField(b, cfgFieldMaxBufferBytes, uint64(int64(cfg.MaxBufferBytes)))
	b = appendVarintField(b, cfgFieldSimulateRealtime, protowire.EncodeBool(cfg.SimulateRealtime))
	b = appendStringField(b, cfgFieldAPIKey, cfg.APIKey)
	b = appendStringField(b, cfgFieldLanguagePackDir, cfg.LanguagePackDirectory)
	b = appendVarintField(b, cfgFieldRecognitionMode, uint64(int64(cfg.RecognitionMode)))
	b = appendVarintField(b, cfgFieldResetOnFinal, protowire.EncodeBool(cfg.ResetOnFinalResult))
	b = appendVarintField(b, cfgFieldTimingMetrics, protowire.EncodeBool(cfg.IncludeTimingMetrics))
	b = appendVarintField(b, cfgFieldEnableLangID, protowire.EncodeBool(cfg.EnableLangID))
	return b, nil
}

func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendStringField(b []byte, num protowire.Number, s string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}
