// Command readtextd serves text extraction over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mrjoshuak/readtext"
	"github.com/mrjoshuak/readtext/config"
	"github.com/mrjoshuak/readtext/internal/fetch"
	"github.com/mrjoshuak/readtext/internal/server"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		addr       string
		configPath string
		timeout    time.Duration
		robots     bool
		verbose    bool
	)
	flag.StringVar(&addr, "addr", ":8080", "Address to listen on")
	flag.StringVar(&configPath, "config", os.Getenv("READTEXT_CONFIG"), "Path to a YAML configuration file (default: built-in)")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "Deadline for one request, fetch included")
	flag.BoolVar(&robots, "robots", false, "Respect robots.txt when fetching by url")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			log.Fatal().Err(err).Msg("load config")
		}
	}

	client := &fetch.Client{
		UserAgent:         "readtextd/" + readtext.Version,
		MaxAttempts:       2,
		PerRequestTimeout: timeout,
		MaxBodySize:       readtext.DefaultMaxBufferSize,
		RespectRobots:     robots,
	}
	ext := readtext.New(readtext.WithConfig(cfg), readtext.WithLogger(log.Logger))
	srv := server.NewServer(ext, client, server.WithLogger(log.Logger), server.WithTimeout(timeout))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      timeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", addr).Msg("server starting")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
	log.Info().Msg("server stopped")
}
