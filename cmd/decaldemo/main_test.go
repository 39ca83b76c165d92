package main

import (
	"bytes"
	"flag"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("decaldemo", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Width != 512 || cfg.Height != 512 || cfg.Output != "decal.png" || cfg.FOV != 40 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestParseConfigEnvAndFlags(t *testing.T) {
	t.Setenv("DECAL_WIDTH", "128")
	t.Setenv("DECAL_OUTPUT", "env.png")
	t.Setenv("DECAL_FIRST_CLAIM", "true")

	fs := flag.NewFlagSet("decaldemo", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-output", "flag.png"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Width != 128 {
		t.Fatalf("expected width from env, got %d", cfg.Width)
	}
	if cfg.Output != "flag.png" {
		t.Fatalf("expected flag to override env, got %q", cfg.Output)
	}
	if !cfg.First {
		t.Fatal("expected first-claim from env")
	}
}

func TestParseConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"zero width", []string{"-width", "0"}},
		{"empty output", []string{"-output", ""}},
		{"unknown flag", []string{"-nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := flag.NewFlagSet("decaldemo", flag.ContinueOnError)
			fs.SetOutput(&bytes.Buffer{})
			if _, err := ParseConfig(fs, tt.args); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestRun(t *testing.T) {
	out := filepath.Join(t.TempDir(), "coverage.png")
	cfg := Config{
		Width:     64,
		Height:    32,
		Output:    out,
		Segments:  8,
		FOV:       40,
		Elevation: 2,
		Workers:   2,
		Lang:      "en",
	}

	var buf bytes.Buffer
	if err := Run(cfg, &buf); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(buf.String(), "claimed by 2 projectors") {
		t.Fatalf("unexpected summary: %q", buf.String())
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 32 {
		t.Fatalf("unexpected size %v", b)
	}
}
