//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"nocturne-fx/internal/app"
	"nocturne-fx/internal/audio"
	"nocturne-fx/internal/audio/speakersink"
	"nocturne-fx/internal/theme"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	opts := cfg.EngineOptions()
	opts.Logger = log.Default()
	if cfg.Audio {
		sink, err := speakersink.Open(audio.DefaultSampleRate)
		if err != nil {
			log.Printf("audio disabled: %v", err)
		} else {
			defer speakersink.Close()
			opts.OnBurst = audio.NewPlayer(audio.DefaultSampleRate, sink).OnBurst
		}
	}

	game := app.New(cfg, opts)

	ebiten.SetWindowTitle("nocturne-fx - " + theme.Resolve(cfg.Theme).Name)
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
