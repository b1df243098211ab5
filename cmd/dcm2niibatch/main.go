// Command dcm2niibatch converts a directory of DICOM slices into a
// compressed NIfTI volume by invoking the external dcm2niix binary.
package main

import (
	"flag"
	"log"
	"os"
	"os/exec"
)

// gzip compression level passed to dcm2niix
const compressionLevel = "-5"

func main() {
	// Parse command line arguments
	inputDir := flag.String("input-dir", "", "Path to the DICOM directory")
	outputDir := flag.String("output-dir", "", "Path to store the output of dcm2niix")
	flag.Parse()

	// Validate inputs
	if *inputDir == "" || *outputDir == "" {
		flag.Usage()
		os.Exit(1)
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	cmd := exec.Command("dcm2niix", compressionLevel, "-z", "y", "-o", *outputDir, *inputDir)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		log.Fatalf("dcm2niix failed: %v", err)
	}
}
