package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"regexp"
	"strconv"
	"time"

	"graphcut/pkg/canvasimg"
	"graphcut/pkg/config"
	"graphcut/pkg/placer"
	"graphcut/pkg/rng"
)

var dimensionPattern = regexp.MustCompile(`^(\d+)x(\d+)$`)

func main() {
	configPath := flag.String("config", "", "Optional YAML config file (see pkg/config for defaults)")
	seed := flag.Int64("seed", 0, "Deterministic RNG seed; if unset, the run is entropy-seeded")
	deterministic := flag.Bool("deterministic", false, "Force deterministic RNG even with -seed 0")
	times := flag.Int("times", 0, "Override the default iteration count for matching (0 keeps the config default)")
	flag.Usage = func() {
		fmt.Fprintln(os.Stdout, "usage: graphcut <input_path> <output_path> <WxH> [-config path.yaml] [-seed N] [-times N]")
	}
	flag.Parse()

	args := flag.Args()
	if len(args) != 3 {
		flag.Usage()
		os.Exit(0)
	}
	inputPath, outputPath, dims := args[0], args[1], args[2]

	match := dimensionPattern.FindStringSubmatch(dims)
	if match == nil {
		fmt.Fprintf(os.Stderr, "graphcut: %q is not a valid WxH dimension (expected e.g. 512x512)\n", dims)
		os.Exit(1)
	}
	width, _ := strconv.Atoi(match[1])
	height, _ := strconv.Atoi(match[2])

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("graphcut: loading config: %v", err)
	}
	seedWasSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			seedWasSet = true
		}
	})
	if seedWasSet || *deterministic {
		cfg.RNG.Deterministic = true
		cfg.RNG.Seed = *seed
	}
	if *times > 0 {
		cfg.Synthesis.EntireMatchingTimes = *times
		cfg.Synthesis.SubPatchMatchingTimes = *times
	}

	var rngSource *rng.Source
	if cfg.RNG.Deterministic {
		rngSource = rng.NewDeterministic(cfg.RNG.Seed)
	} else {
		rngSource, err = rng.NewEntropy()
		if err != nil {
			log.Fatalf("graphcut: seeding RNG: %v", err)
		}
	}

	fmt.Println("================================")
	fmt.Println("GRAPH-CUT TEXTURE SYNTHESIS")
	fmt.Println("================================")

	texture, err := canvasimg.LoadImage(inputPath)
	if err != nil {
		log.Fatalf("graphcut: loading texture: %v", err)
	}
	canvas := canvasimg.NewCanvas(width, height)

	fmt.Printf("Tiling a %dx%d canvas from a %dx%d texture...\n", width, height, texture.W, texture.H)
	startTime := time.Now()
	if err := placer.Init(canvas, texture, rngSource, cfg.Synthesis.InitTileFractionLow, cfg.Synthesis.InitTileFractionHigh); err != nil {
		log.Fatalf("graphcut: initial tiling: %v", err)
	}

	for i := 0; i < cfg.Synthesis.RefinementPasses; i++ {
		iterStart := time.Now()
		if err := placer.EntireMatching(canvas, texture, rngSource, false, cfg.Synthesis.EntireMatchingTimes, cfg.Synthesis.PossibilityK); err != nil {
			log.Fatalf("graphcut: entire-matching pass %d: %v", i+1, err)
		}
		if err := placer.SubPatchMatching(canvas, texture, rngSource, cfg.Synthesis.SubPatchMatchingTimes); err != nil {
			log.Fatalf("graphcut: sub-patch-matching pass %d: %v", i+1, err)
		}
		fmt.Printf("refinement pass %d/%d done in %.2fs\n", i+1, cfg.Synthesis.RefinementPasses, time.Since(iterStart).Seconds())
	}

	if err := canvas.Save(outputPath); err != nil {
		log.Fatalf("graphcut: saving output: %v", err)
	}

	fmt.Printf("\nSynthesis completed in %.2f seconds!\n", time.Since(startTime).Seconds())
	fmt.Printf("Output image saved to: %s\n", outputPath)
}
