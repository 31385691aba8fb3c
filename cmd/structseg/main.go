package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/chemvision/structseg/internal/pipeline"
	"github.com/chemvision/structseg/internal/render"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	var (
		outDir      = flag.String("outdir", ".", "directory for output masks")
		configPath  = flag.String("config", "", "YAML options file (defaults when empty)")
		withOverlay = flag.Bool("overlay", false, "also write a tinted overlay image per input")
		showVersion = flag.Bool("version", false, "print version information")
	)
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "structseg - separate chemical structure depictions from noise line-art")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Usage: structseg [options] image...")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Writes <name>_structure.png and <name>_exclusion.png per input image.")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("structseg %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	}

	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime)

	paths := flag.Args()
	if len(paths) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	opts := pipeline.DefaultOptions()
	if *configPath != "" {
		var err error
		opts, err = pipeline.LoadOptions(*configPath)
		if err != nil {
			log.Fatalf("options: %v", err)
		}
	}

	imgs := make([]image.Image, len(paths))
	for i, path := range paths {
		img, err := imaging.Open(path)
		if err != nil {
			log.Fatalf("open %s: %v", path, err)
		}
		imgs[i] = img
	}

	results, err := pipeline.DetectAll(context.Background(), imgs, opts)
	if err != nil {
		log.Fatalf("detect: %v", err)
	}

	for i, result := range results {
		base := strings.TrimSuffix(filepath.Base(paths[i]), filepath.Ext(paths[i]))

		structPath := filepath.Join(*outDir, base+"_structure.png")
		if err := imaging.Save(render.MaskImage(result.Structure), structPath); err != nil {
			log.Fatalf("save %s: %v", structPath, err)
		}
		exclPath := filepath.Join(*outDir, base+"_exclusion.png")
		if err := imaging.Save(render.MaskImage(result.Exclusion), exclPath); err != nil {
			log.Fatalf("save %s: %v", exclPath, err)
		}

		if *withOverlay {
			overlay, err := render.Overlay(imgs[i], result.Structure, result.Exclusion)
			if err != nil {
				log.Fatalf("overlay %s: %v", paths[i], err)
			}
			overlayPath := filepath.Join(*outDir, base+"_overlay.png")
			if err := imaging.Save(overlay, overlayPath); err != nil {
				log.Fatalf("save %s: %v", overlayPath, err)
			}
		}

		log.Printf("%s: structure=%d px, exclusion=%d px",
			paths[i], result.Structure.Count(), result.Exclusion.Count())
	}
}
