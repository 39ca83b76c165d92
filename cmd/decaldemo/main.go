// Command decaldemo projects two decals onto a ground plane and writes the
// resulting UV coverage as a PNG.
//
// Two projectors hang above the plane side by side. The left one writes
// into the left half of the decal atlas and the right one into the right
// half, so the coverage image shows how the atlas is laid out on the mesh.
//
// Every flag has an environment variable counterpart (DECAL_WIDTH,
// DECAL_OUTPUT, ...); flags win over the environment.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"image/png"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/decal"
)

// Config holds decaldemo configuration.
type Config struct {
	Width     int     `env:"DECAL_WIDTH" envDefault:"512"`
	Height    int     `env:"DECAL_HEIGHT" envDefault:"512"`
	Output    string  `env:"DECAL_OUTPUT" envDefault:"decal.png"`
	Segments  int     `env:"DECAL_SEGMENTS" envDefault:"32"`
	FOV       float64 `env:"DECAL_FOV" envDefault:"40"`
	Elevation float64 `env:"DECAL_PROJECTOR_HEIGHT" envDefault:"2"`
	Workers   int     `env:"DECAL_WORKERS" envDefault:"1"`
	First     bool    `env:"DECAL_FIRST_CLAIM"`
	FlipX     bool    `env:"DECAL_FLIP_X"`
	Lang      string  `env:"DECAL_LANG" envDefault:"en"`
	Verbose   bool    `env:"DECAL_VERBOSE"`
}

// ParseConfig loads defaults from the environment and then parses flags.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.IntVar(&cfg.Width, "width", cfg.Width, "image width")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "image height")
	fs.StringVar(&cfg.Output, "output", cfg.Output, "output file")
	fs.IntVar(&cfg.Segments, "segments", cfg.Segments, "plane segments per side")
	fs.Float64Var(&cfg.FOV, "fov", cfg.FOV, "projector field of view in degrees")
	fs.Float64Var(&cfg.Elevation, "projector-height", cfg.Elevation, "projector distance above the plane")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "goroutines used for projection")
	fs.BoolVar(&cfg.First, "first-claim", cfg.First, "keep the first projector's claim on overlap")
	fs.BoolVar(&cfg.FlipX, "flip-x", cfg.FlipX, "mirror both projectors horizontally")
	fs.StringVar(&cfg.Lang, "lang", cfg.Lang, "language used for the summary")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "debug logging")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Config{}, fmt.Errorf("invalid image size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Output == "" {
		return Config{}, errors.New("output file is required")
	}
	return cfg, nil
}

// Run builds the scene, projects it and writes the coverage image.
func Run(cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	decal.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	defer decal.SetLogger(nil)

	policy := decal.LastClaimWins
	if cfg.First {
		policy = decal.FirstClaimWins
	}

	scene := &decal.Group{}
	reg := decal.NewRegistry(scene,
		decal.WithConflictPolicy(policy),
		decal.WithWorkers(cfg.Workers),
	)
	defer reg.Close()

	plane := decal.NewPlane("ground", 2, 2, cfg.Segments, cfg.Segments)
	if err := reg.AddMesh(plane); err != nil {
		return err
	}

	halves := []struct {
		name string
		x    float64
		opt  decal.ProjectorOption
	}{
		{"left", -0.5, decal.WithRight(0.5)},
		{"right", 0.5, decal.WithLeft(0.5)},
	}
	for _, h := range halves {
		p, err := reg.CreateProjector(
			decal.WithName(h.name),
			decal.WithFOV(cfg.FOV),
			decal.WithFlipX(cfg.FlipX),
			decal.WithDebug(cfg.Verbose),
			h.opt,
		)
		if err != nil {
			return fmt.Errorf("projector %s: %w", h.name, err)
		}
		p.Node().SetPosition(h.x, cfg.Elevation, 0)
		p.Node().LookAt(decal.V3(h.x, 0, 0))
	}

	stats, err := reg.Update(false)
	if err != nil {
		return err
	}

	img, err := decal.RenderCoverage(plane, cfg.Width, cfg.Height, color.RGBA{R: 0xe0, G: 0x40, B: 0x30, A: 0xff})
	if err != nil {
		return err
	}

	f, err := os.Create(cfg.Output)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", cfg.Output, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	tag, err := language.Parse(cfg.Lang)
	if err != nil {
		tag = language.English
	}
	p := message.NewPrinter(tag)
	p.Fprintf(out, "%d vertices, %d claimed by %d projectors (%d passes)\n",
		plane.VertexCount(), claimedVertices(plane), stats.Projectors, stats.Passes)
	p.Fprintf(out, "coverage written to %s (%dx%d) in %v\n",
		cfg.Output, cfg.Width, cfg.Height, stats.Duration)
	return nil
}

func claimedVertices(m *decal.Mesh) int {
	n := 0
	for _, v := range m.Mask {
		if v != 0 {
			n++
		}
	}
	return n
}

func main() {
	fs := flag.NewFlagSet("decaldemo", flag.ExitOnError)
	cfg, err := ParseConfig(fs, os.Args[1:])
	if err != nil {
		log.Fatalf("decaldemo: %v", err)
	}
	if err := Run(cfg, os.Stdout); err != nil {
		log.Fatalf("decaldemo: %v", err)
	}
}
