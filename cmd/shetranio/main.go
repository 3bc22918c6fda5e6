package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/nclwater/shetranio/internal/catalog"
	"github.com/nclwater/shetranio/internal/export"
	"github.com/nclwater/shetranio/internal/mvt"
	"github.com/nclwater/shetranio/internal/preview"
	"github.com/nclwater/shetranio/internal/series"
)

type command struct {
	name        string
	description string
	run         func(*flag.FlagSet)
}

var subCommands []command

func init() {
	subCommands = []command{
		{"elements", "List the elements and variables of a SHETRAN output file.", catalog.Run},
		{"series", "Extract the time series of a variable at one element as CSV.", series.Run},
		{"geojson", "Write element polygons, optionally with variable values, as GeoJSON.", export.Run},
		{"mvt", "Build mapbox vector tiles of the element polygons.", mvt.Run},
		{"preview", "Build preview images of the catchment elevation map.", preview.Run},
		{"help", "Print this message.", func(s *flag.FlagSet) { printUsage() }},
	}
}

func printUsage() {
	fmt.Printf("USAGE:\n    %s [SUBCOMMAND] [SUBCOMMAND FLAGS]\n\n", os.Args[0])
	fmt.Print("SUBCOMMANDS: \n")

	for _, c := range subCommands {
		fmt.Printf("%12s    %s\n", c.name, c.description)
	}

	fmt.Printf("\nUse -h as SUBCOMMAND FLAG to print help for each subcommand.\n\n")
}

func main() {

	if len(os.Args) < 2 {
		fmt.Printf("\nERROR: No subcommand was provided.\n\n")
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]

	for _, c := range subCommands {
		if c.name == cmd {
			set := flag.NewFlagSet(cmd, flag.ExitOnError)
			c.run(set)
			return
		}
	}

	fmt.Printf("\nERROR: Subcommand '%s' was not found.\n\n", cmd)
	printUsage()
	os.Exit(1)
}
