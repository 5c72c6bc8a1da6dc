package soda

import (
	"github.com/yegors/soda-go/pkg/logger"
)

// Config is an immutable snapshot of builder state, taken at build time.
// Channel count and sample rate are fixed for the lifetime of an engine
// instance; changing them requires building a new client.
type Config struct {
	ChannelCount          int32
	SampleRate            int32
	LanguagePackDirectory string
	APIKey                string

	// Extended-interface fields. The legacy interface ignores them.
	RecognitionMode      RecognitionMode
	MaxBufferBytes       int32
	SimulateRealtime     bool
	ResetOnFinalResult   bool
	IncludeTimingMetrics bool
	EnableLangID         bool
}

// Builder accumulates recognition parameters. Setters perform no range
// validation; out-of-range values are passed through and rejected (or not)
// by the engine. The builder is not safe for concurrent use.
type Builder struct {
	cfg     Config
	log     *logger.Logger
	binding engineBinding
}

// NewBuilder returns a builder with the engine defaults: one channel, 16 kHz,
// language packs under ./SODAModels, IME mode, reset-on-final and timing
// metrics enabled, language identification disabled, unlimited buffering.
func NewBuilder() *Builder {
	return &Builder{
		cfg: Config{
			ChannelCount:          1,
			SampleRate:            16000,
			LanguagePackDirectory: "./SODAModels",
			APIKey:                "dummy_key",
			RecognitionMode:       ModeIME,
			MaxBufferBytes:        0,
			SimulateRealtime:      false,
			ResetOnFinalResult:    true,
			IncludeTimingMetrics:  true,
			EnableLangID:          false,
		},
		log:     logger.Nop(),
		binding: defaultBinding,
	}
}

// ChannelCount sets the number of audio channels in the input stream.
func (b *Builder) ChannelCount(n int32) *Builder {
	b.cfg.ChannelCount = n
	return b
}

// SampleRate sets the input sample rate in Hz.
func (b *Builder) SampleRate(hz int32) *Builder {
	b.cfg.SampleRate = hz
	return b
}

// LanguagePackDirectory sets the path to the language pack the engine loads.
func (b *Builder) LanguagePackDirectory(dir string) *Builder {
	b.cfg.LanguagePackDirectory = dir
	return b
}

// APIKey sets the key the engine uses to verify its caller.
func (b *Builder) APIKey(key string) *Builder {
	b.cfg.APIKey = key
	return b
}

// RecognitionMode selects IME or caption mode (extended interface only).
func (b *Builder) RecognitionMode(mode RecognitionMode) *Builder {
	b.cfg.RecognitionMode = mode
	return b
}

// MaxBufferBytes caps the engine's internal audio buffer. Zero means
// unlimited.
func (b *Builder) MaxBufferBytes(n int32) *Builder {
	b.cfg.MaxBufferBytes = n
	return b
}

// SimulateRealtime asks the engine to pace its own processing as if audio
// arrived live. Intended for tests against prerecorded input.
func (b *Builder) SimulateRealtime(on bool) *Builder {
	b.cfg.SimulateRealtime = on
	return b
}

// ResetOnFinalResult controls whether the engine resets its decoder state
// after each final result.
func (b *Builder) ResetOnFinalResult(on bool) *Builder {
	b.cfg.ResetOnFinalResult = on
	return b
}

// IncludeTimingMetrics controls whether results carry timing information.
func (b *Builder) IncludeTimingMetrics(on bool) *Builder {
	b.cfg.IncludeTimingMetrics = on
	return b
}

// EnableLangID controls whether the engine emits language identification
// events.
func (b *Builder) EnableLangID(on bool) *Builder {
	b.cfg.EnableLangID = on
	return b
}

// Logger attaches a logger to clients built from this builder.
func (b *Builder) Logger(log *logger.Logger) *Builder {
	if log != nil {
		b.log = log
	}
	return b
}

// Build creates a legacy-interface client from the current builder state.
// The builder is not consumed: Build may be called again to create further
// independent instances with the same configuration, each with its own
// callback.
//
// cb may be invoked concurrently from engine-internal threads any time
// before Close returns.
func (b *Builder) Build(cb TextCallback) (*Client, error) {
	if cb == nil {
		return nil, ErrNilCallback
	}

	cfg := b.cfg
	log := b.log.Named("soda-client")

	reg := &registration{text: cb, log: log}
	reg.live.Store(true)
	id := register(reg)

	handle, err := b.binding.create(&cfg, id)
	if err != nil {
		unregister(id)
		return nil, err
	}

	log.Debug("Created engine instance",
		logger.Int32("channel_count", cfg.ChannelCount),
		logger.Int32("sample_rate", cfg.SampleRate),
		logger.String("language_pack_directory", cfg.LanguagePackDirectory),
	)

	return &Client{
		handle:  handle,
		regID:   id,
		reg:     reg,
		binding: b.binding,
		log:     log,
	}, nil
}

// BuildExtended creates an extended-interface client from the current
// builder state. The configuration is serialized with the engine's versioned
// schema; a serialization failure aborts the build. As with Build, the
// builder survives and may be reused.
//
// The returned client accepts no audio until Start is called.
func (b *Builder) BuildExtended(cb ResponseCallback) (*ExtendedClient, error) {
	if cb == nil {
		return nil, ErrNilCallback
	}

	cfg := b.cfg
	serialized, err := encodeExtendedConfig(&cfg)
	if err != nil {
		return nil, err
	}
	log := b.log.Named("soda-extended")

	reg := &registration{response: cb, log: log}
	reg.live.Store(true)
	id := register(reg)

	handle, err := b.binding.createExtended(serialized, id)
	if err != nil {
		unregister(id)
		return nil, err
	}

	log.Debug("Created extended engine instance",
		logger.Int32("channel_count", cfg.ChannelCount),
		logger.Int32("sample_rate", cfg.SampleRate),
		logger.String("recognition_mode", cfg.RecognitionMode.String()),
		logger.Int("config_bytes", len(serialized)),
	)

	return &ExtendedClient{
		handle:  handle,
		regID:   id,
		reg:     reg,
		binding: b.binding,
		log:     log,
	}, nil
}
