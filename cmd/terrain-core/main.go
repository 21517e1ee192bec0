package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/banshee-data/terrain.core/internal/version"
)

func main() {
	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}

	command := flag.Arg(0)
	args := flag.Args()[1:]

	var err error
	switch command {
	case "dispatch":
		err = runDispatch(args, os.Stdout)
	case "metrics":
		err = runMetrics(args, os.Stdout)
	case "normalize":
		err = runNormalize(args, os.Stdout)
	case "version":
		fmt.Println(version.String())
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("%s: %v", command, err)
	}
}

func printUsage() {
	fmt.Println(`terrain-core - dispatch planning and heightmap analysis for the terrain pipeline

Usage: terrain-core <command> [options]

Commands:
  dispatch   Plan work-group counts for a coverage fraction and pass count
  metrics    Analyze a heightmap file and print its metrics record
  normalize  Map raw slider positions to shader parameters
  version    Show terrain-core version
  help       Show this help message

Common Flags:
  --config <file>      Pipeline configuration (.json, .yaml or .yml)
                       Flags given on the command line override it

Examples:
  # Work-group sequence for a three-pass run over 30% of the grid
  terrain-core dispatch --coverage 0.3 --passes 3

  # Metrics for a zstd-compressed half-precision heightmap, with a report
  terrain-core metrics --in world.f16.zst --report-dir out/

  # Normalized parameters from a slider snapshot
  terrain-core normalize --sliders sliders.yaml`)
}
