package main

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/kballard/go-shellquote"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/agentsearch/config"
	"github.com/domino14/agentsearch/server"
	"github.com/domino14/agentsearch/session"
	"github.com/domino14/agentsearch/shell"
)

var (
	GitVersion string
)

//go:embed agentsearch.txt
var banner string

func main() {
	cfg := &config.Config{}
	args, err := cfg.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("%s", i)
	}
	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s:", i)
	}

	// The shell's "set debug" moves the global level, so the logger itself
	// stays unfiltered.
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	logger := zerolog.New(output).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	logger.Debug().Msg("Debug logging is on")
	log.Info().Msgf("Loaded config: %v", cfg.SanitizedSettings())

	if cfg.GetString(config.ConfigCPUProfile) != "" {
		f, err := os.Create(cfg.GetString(config.ConfigCPUProfile))
		if err != nil {
			panic("could not create CPU profile: " + err.Error())
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			panic("could not start CPU profile: " + err.Error())
		}
		defer pprof.StopCPUProfile()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	idleConnsClosed := make(chan struct{})
	sig := make(chan os.Signal, 1)
	go func() {
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		// We received an interrupt signal, shut down.
		log.Info().Msg("got quit signal...")
		cancel()
		close(idleConnsClosed)
	}()

	sessions := session.NewStore()
	serverDone := make(chan struct{})
	if addr := cfg.GetString(config.ConfigHTTPAddr); addr != "" {
		srv := server.New(cfg, sessions)
		go func() {
			defer close(serverDone)
			if err := srv.Run(ctx, addr); err != nil {
				log.Error().Err(err).Msg("http-server-failed")
			}
		}()
	} else {
		close(serverDone)
	}

	sc := shell.NewShellController(cfg, sessions)
	switch {
	case len(args) > 0:
		sc.Execute(sig, shellquote.Join(args...))
		sig <- syscall.SIGINT
	case cfg.GetString(config.ConfigHTTPAddr) != "" && !isatty.IsTerminal(os.Stdin.Fd()):
		// Serve only; wait for a signal.
	default:
		fmt.Println(banner)
		fmt.Println(GitVersion)
		go sc.Loop(sig)
		log.Info().Msg("started loop")
	}

	<-idleConnsClosed
	<-serverDone

	if cfg.GetString(config.ConfigMemProfile) != "" {
		f, err := os.Create(cfg.GetString(config.ConfigMemProfile))
		if err != nil {
			panic("could not create memory profile: " + err.Error())
		}
		defer f.Close()
		memstats := &runtime.MemStats{}
		runtime.ReadMemStats(memstats)
		log.Info().Interface("memstats", memstats).Msg("memory-stats")
		if err := pprof.WriteHeapProfile(f); err != nil {
			panic("could not write memory profile: " + err.Error())
		}
		log.Info().Msg("wrote memory profile")
	}
	log.Info().Msg("gracefully shutting down")
}
