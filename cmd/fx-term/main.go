package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"nocturne-fx/internal/app"
	"nocturne-fx/internal/audio"
	"nocturne-fx/internal/audio/speakersink"
	"nocturne-fx/internal/demo"
	"nocturne-fx/internal/engine"
	"nocturne-fx/internal/term"
)

func main() {
	cfg := app.NewConfig()
	cfg.TPS = 30
	cfg.Bind(flag.CommandLine)
	cellW := flag.Float64("cell-width", 8, "surface units per terminal column")
	cellH := flag.Float64("cell-height", 16, "surface units per terminal row")
	logPath := flag.String("log", "", "write engine logs to this file")
	flag.Parse()

	opts := cfg.EngineOptions()
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("open log: %v", err)
		}
		defer f.Close()
		opts.Logger = log.New(f, "fx ", log.LstdFlags)
	}
	if cfg.Audio {
		sink, err := speakersink.Open(audio.DefaultSampleRate)
		if err != nil {
			log.Printf("audio disabled: %v", err)
		} else {
			defer speakersink.Close()
			opts.OnBurst = audio.NewPlayer(audio.DefaultSampleRate, sink).OnBurst
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("screen init: %v", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.EnableFocus()
	screen.HideCursor()

	if err := run(screen, cfg, opts, *cellW, *cellH); err != nil && !errors.Is(err, context.Canceled) {
		screen.Fini()
		log.Fatal(err)
	}
}

func run(screen tcell.Screen, cfg *app.Config, opts engine.Options, cellW, cellH float64) error {
	canvas := term.NewCanvas(screen, cellW, cellH, app.Background)
	canvas.Resize(screen.Size())

	host := term.NewHost(screen, canvas, cfg.TPS)
	host.Engine = engine.Attach(host, canvas, cfg.Theme, opts)
	defer host.Engine.Detach()
	if cfg.Demo {
		host.Emitter = demo.NewEmitter(cfg.Seed)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return host.Run(ctx)
}
