package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"nifti2mips/pkg/config"
	"nifti2mips/pkg/pipeline"
)

func main() {
	// Parse command line arguments
	outputDir := flag.String("output-dir", "", "Path to store output files")
	inFile := flag.String("in-file", "", "Input file path (.nii or .nii.gz)")
	configPath := flag.String("config", "", "Optional YAML configuration file")
	flag.Parse()

	// Validate inputs
	if *outputDir == "" || *inFile == "" {
		flag.Usage()
		os.Exit(1)
	}

	// Load configuration (defaults: percentile 98.5, inverted output)
	cfg := config.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	// Initialize conversion parameters
	params := &pipeline.Params{
		InputFile:           *inFile,
		OutputDir:           *outputDir,
		ThresholdPercentile: cfg.Threshold.Percentile,
		InvertImage:         cfg.Output.InvertImage,
		Verbose:             cfg.Output.Verbose,
	}

	// Run the conversion pipeline
	pipe := pipeline.New(params)
	if err := pipe.Process(); err != nil {
		log.Fatalf("MIP conversion failed: %v", err)
	}

	fmt.Printf("MIP images saved to: %s\n", *outputDir)
}
