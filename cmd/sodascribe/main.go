// sodascribe feeds a prerecorded WAV file to the SODA engine as if it were
// live audio, prints recognition events, and optionally persists final
// transcripts to SQLite and serves them over a small HTTP API.
//
// Requires a binary built with the "soda" build tag and a language pack on
// disk; without the native library the tool reports the engine as
// unavailable and exits.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/yegors/soda-go/internal/api"
	"github.com/yegors/soda-go/internal/audio"
	"github.com/yegors/soda-go/internal/config"
	"github.com/yegors/soda-go/internal/storage/sqlite"
	"github.com/yegors/soda-go/pkg/logger"
	"github.com/yegors/soda-go/pkg/soda"
)

func main() {
	configPath := flag.String("config", "sodascribe.toml", "path to the TOML config file")
	wavPath := flag.String("wav", "", "WAV file to transcribe (16-bit PCM)")
	serve := flag.Bool("serve", false, "serve the transcript query API after transcribing")
	flag.Parse()

	cfg, err := config.LoadFromFile(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if *wavPath == "" && !*serve {
		fmt.Fprintln(os.Stderr, "usage: sodascribe -wav <file> [-serve] [-config <file>]")
		os.Exit(2)
	}

	// Transcript storage
	var storage *sqlite.TranscriptStorage
	if cfg.Storage.Enabled {
		db, err := sqlite.Open(cfg.Storage.Path)
		if err != nil {
			log.Fatal("Failed to open transcript database", logger.Error(err))
		}
		defer db.Close()

		storage, err = sqlite.NewTranscriptStorage(db, log)
		if err != nil {
			log.Fatal("Failed to initialize transcript storage", logger.Error(err))
		}
	}

	if *wavPath != "" {
		if err := transcribe(cfg, log, storage, *wavPath); err != nil {
			log.Fatal("Transcription failed", logger.Error(err))
		}
	}

	if *serve {
		if storage == nil {
			log.Fatal("Cannot serve transcripts with storage disabled")
		}
		serveAPI(cfg, log, storage)
	}
}

// transcribe streams one WAV file through the extended engine interface and
// records final results.
func transcribe(cfg *config.Config, log *logger.Logger, storage *sqlite.TranscriptStorage, wavPath string) error {
	f, err := os.Open(wavPath)
	if err != nil {
		return fmt.Errorf("failed to open audio file: %w", err)
	}
	defer f.Close()

	format, dataSize, err := audio.ReadWAVHeader(f)
	if err != nil {
		return fmt.Errorf("failed to parse WAV header: %w", err)
	}
	log.Info("Parsed WAV file",
		logger.String("path", wavPath),
		logger.Int("sample_rate", int(format.SampleRate)),
		logger.Int("channels", int(format.NumChannels)),
		logger.Uint64("data_bytes", uint64(dataSize)),
	)

	mode := soda.ModeCaption
	if cfg.Engine.RecognitionMode == "ime" {
		mode = soda.ModeIME
	}

	var (
		mu       sync.Mutex
		language string
		finals   int
	)

	client, err := soda.NewBuilder().
		ChannelCount(int32(format.NumChannels)).
		SampleRate(int32(format.SampleRate)).
		LanguagePackDirectory(cfg.Engine.LanguagePackDirectory).
		APIKey(cfg.Engine.APIKey).
		RecognitionMode(mode).
		MaxBufferBytes(cfg.Engine.MaxBufferBytes).
		EnableLangID(cfg.Engine.EnableLangID).
		Logger(log).
		BuildExtended(func(resp *soda.Response) {
			mu.Lock()
			defer mu.Unlock()

			if resp.LangIDEvent != nil && resp.LangIDEvent.Language != nil {
				language = *resp.LangIDEvent.Language
			}
			rr := resp.RecognitionResult
			if rr == nil || len(rr.Hypotheses) == 0 {
				return
			}
			if !rr.Final() {
				log.Debug("Partial hypothesis", logger.String("text", rr.Hypotheses[0]))
				return
			}

			finals++
			text := rr.Hypotheses[0]
			fmt.Println(text)

			if storage != nil {
				_, err := storage.StoreTranscript(&sqlite.TranscriptRecord{
					Source:    wavPath,
					Text:      text,
					Language:  language,
					Timestamp: time.Now().UTC(),
					CreatedAt: time.Now().UTC(),
				})
				if err != nil {
					log.Error("Failed to store transcript", logger.Error(err))
				}
			}
		})
	if err != nil {
		return err
	}
	defer client.Close()

	client.Start()

	// Pace delivery at the file's true data rate so the endpointer behaves
	// as it would with live capture.
	interval := audio.ChunkDuration(int(format.SampleRate), int(format.NumChannels), soda.ChunkSize)
	client.AddAudioPaced(f, soda.RealTimePacing(interval))

	// Give the engine a moment to flush trailing events before teardown
	time.Sleep(500 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	log.Info("Transcription complete",
		logger.Int("final_results", finals),
		logger.Uint64("dropped_events", client.DroppedEvents()),
	)
	return nil
}

// serveAPI blocks serving the transcript query API until interrupted.
func serveAPI(cfg *config.Config, log *logger.Logger, storage *sqlite.TranscriptStorage) {
	router := api.NewRouter(storage, log)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("Serving transcript API", logger.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", logger.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
