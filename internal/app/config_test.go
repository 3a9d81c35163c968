package app

import (
	"flag"
	"testing"

	"nocturne-fx/internal/governor"
)

func TestConfigBindAndOptions(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("fx", flag.ContinueOnError)
	cfg.Bind(fs)
	err := fs.Parse([]string{
		"-theme", "ember",
		"-seed", "9",
		"-set", "intensity=ultra",
		"-set", "mode=low",
		"-set", "cap=150",
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Theme != "ember" || cfg.Seed != 9 {
		t.Fatalf("flags not bound: %+v", cfg)
	}
	opts := cfg.EngineOptions()
	if opts.Intensity != governor.IntensityUltra || opts.Mode != governor.ModeLow || opts.Cap != 150 || opts.Seed != 9 {
		t.Fatalf("overrides not applied: %+v", opts)
	}
}

func TestKVListRejectsBarePairs(t *testing.T) {
	var l KVList
	if err := l.Set("novalue"); err == nil {
		t.Fatal("expected an error for a pair without '='")
	}
	l.Set("a=1")
	l.Set("a=2")
	if l.Map()["a"] != "2" {
		t.Fatal("later pairs should win")
	}
}

func TestSeedOverrideWins(t *testing.T) {
	cfg := NewConfig()
	cfg.Overrides = KVList{"seed=77"}
	if cfg.EngineOptions().Seed != 77 {
		t.Fatal("explicit seed override should win over the flag")
	}
}
