// trackmesh is a CLI utility for inspecting track files and exporting the
// generated ribbon mesh.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/trackribbon/internal/export"
	"github.com/Faultbox/trackribbon/internal/logger"
	"github.com/Faultbox/trackribbon/internal/ribbon"
	"github.com/Faultbox/trackribbon/internal/track"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "export", "obj":
		cmdExport(args)
	case "points", "dump":
		cmdPoints(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`trackmesh - track ribbon mesh utility

Usage:
  trackmesh <command> [options] [track.yaml]

Without a track file the built-in test loop is used.

Commands:
  info   [-samples N] [track.yaml]                  Show track and mesh statistics
  export [-samples N] [-o out.obj] [-lines] [track.yaml]
                                                    Write the ribbon as Wavefront OBJ
  points [track.yaml]                               Print the track as YAML

Common options:
  -width W        Ribbon half width
  -skip           Skip degenerate segments instead of failing
  -v              Verbose logging

Examples:
  trackmesh info
  trackmesh export -samples 64 -o loop.obj
  trackmesh points > loop.yaml`)
}

type options struct {
	samples   *int
	halfWidth *float64
	skip      *bool
	verbose   *bool
}

func commonFlags(fs *flag.FlagSet) options {
	return options{
		samples:   fs.Int("samples", ribbon.DefaultSamples, "Curve samples per segment"),
		halfWidth: fs.Float64("width", ribbon.DefaultHalfWidth, "Ribbon half width"),
		skip:      fs.Bool("skip", false, "Skip degenerate segments"),
		verbose:   fs.Bool("v", false, "Verbose logging"),
	}
}

func (o options) initLogger() {
	level := "warn"
	if *o.verbose {
		level = "debug"
	}
	if err := logger.InitWithFileConfig(level, logger.FileConfig{}, true); err != nil {
		fatalf("Logger error: %v", err)
	}
}

func (o options) builder() *ribbon.Builder {
	b := ribbon.New()
	b.Samples = *o.samples
	b.HalfWidth = float32(*o.halfWidth)
	b.SkipDegenerate = *o.skip
	b.Logger = logger.Named("ribbon")
	return b
}

func loadTrack(fs *flag.FlagSet) track.Track {
	if fs.NArg() < 1 {
		return track.TestTrack()
	}
	t, err := track.Load(fs.Arg(0))
	if err != nil {
		fatalf("Error: %v", err)
	}
	if t.Name == "" {
		t.Name = strings.TrimSuffix(filepath.Base(fs.Arg(0)), filepath.Ext(fs.Arg(0)))
	}
	return t
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	opts := commonFlags(fs)
	fs.Parse(args)
	opts.initLogger()
	defer logger.Sync()

	t := loadTrack(fs)
	res, err := opts.builder().Build(t)
	if err != nil {
		fatalf("Error: %v", err)
	}

	vertices := 0
	for _, s := range res.Segments {
		vertices += s.Ribbon.VertexCount()
	}
	b := res.Bounds()

	fmt.Printf("Track:     %s\n", t.Name)
	fmt.Printf("Points:    %d\n", t.Len())
	fmt.Printf("Segments:  %d\n", len(res.Segments))
	if len(res.Skipped) > 0 {
		fmt.Printf("Skipped:   %v\n", res.Skipped)
	}
	fmt.Printf("Samples:   %d per segment\n", *opts.samples)
	fmt.Printf("Vertices:  %d\n", vertices)
	fmt.Printf("Triangles: %d\n", res.Triangles())
	fmt.Printf("Bounds:    (%.2f, %.2f, %.2f) - (%.2f, %.2f, %.2f)\n",
		b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
}

func cmdExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	opts := commonFlags(fs)
	output := fs.String("o", "track.obj", "Output OBJ file")
	lines := fs.Bool("lines", false, "Include curve polylines")
	fs.Parse(args)
	opts.initLogger()
	defer logger.Sync()

	t := loadTrack(fs)
	res, err := opts.builder().Build(t)
	if err != nil {
		fatalf("Error: %v", err)
	}

	objects := make([]export.Object, 0, len(res.Segments)*4)
	for _, s := range res.Segments {
		objects = append(objects, export.Object{
			Name: fmt.Sprintf("segment_%d", s.Index),
			Mesh: s.Ribbon,
		})
		if !*lines {
			continue
		}
		edges, err := s.Lines(false)
		if err != nil {
			fatalf("Error: %v", err)
		}
		for i, m := range edges {
			side := [...]string{"left", "center", "right"}[i]
			objects = append(objects, export.Object{
				Name: fmt.Sprintf("segment_%d_%s", s.Index, side),
				Mesh: m,
			})
		}
	}

	header := fmt.Sprintf("%s: %d segments, %d samples", t.Name, len(res.Segments), *opts.samples)
	if err := export.SaveOBJ(*output, header, objects); err != nil {
		fatalf("Error writing %s: %v", *output, err)
	}

	logger.Info("exported",
		zap.String("path", *output),
		zap.Int("objects", len(objects)),
		zap.Int("triangles", res.Triangles()),
	)
	fmt.Printf("Wrote %s (%d objects, %d triangles)\n", *output, len(objects), res.Triangles())
}

func cmdPoints(args []string) {
	fs := flag.NewFlagSet("points", flag.ExitOnError)
	fs.Parse(args)

	t := loadTrack(fs)
	data, err := t.Marshal()
	if err != nil {
		fatalf("Error: %v", err)
	}
	os.Stdout.Write(data)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
