// Command meritrankd is the reputation-scoring service entrypoint: it
// wires config -> engine -> dispatch -> transport and serves requests
// until a SIGINT/SIGTERM (spec §5: "process-wide termination is by
// signal, which calls a handler that exits immediately; in-flight work
// is abandoned, no persistence, so no recovery concern").
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/katalvlaran/meritrank/config"
	"github.com/katalvlaran/meritrank/dispatch"
	"github.com/katalvlaran/meritrank/engine"
	"github.com/katalvlaran/meritrank/transport"
)

// Version is the "ver" command's reply (spec §6), overridable at build
// time via -ldflags "-X main.Version=...".
var Version = "dev"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Load()
	log.Info().
		Str("version", Version).
		Str("url", cfg.ServiceURL).
		Int("threads", cfg.Threads).
		Int("num_walk", cfg.NumWalk).
		Msg("starting meritrankd")

	g := engine.New(cfg.NumWalk, cfg.ZeroNode, cfg.TopNodesLimit, log.Logger)
	d := dispatch.New(g, Version, log.Logger)
	srv := transport.New(cfg.ServiceURL, d.Handle, log.Logger)

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(cfg.Threads) }()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		os.Exit(0)
	case err := <-errc:
		if err != nil {
			log.Fatal().Err(err).Msg("transport server failed")
		}
	}
}
