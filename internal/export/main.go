package export

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/nclwater/shetranio/internal/crs"
	"github.com/nclwater/shetranio/internal/geometry"
	"github.com/nclwater/shetranio/internal/shetran"
	"github.com/nclwater/shetranio/internal/validate"
)

// Run is the program's entrypoint
func Run(flagSet *flag.FlagSet) {
	var timer time.Time
	start := time.Now()

	inputs := validate.AddFlags(flagSet)
	outputPtr := flagSet.String("out", "", "Path to output GeoJSON file")
	variablePtr := flagSet.String("variable", "", "Variable whose values are attached to the elements (optional)")
	timePtr := flagSet.Int("time", 0, "Index of the timestep")
	levelPtr := flagSet.Int("level", 0, "Soil layer of a layered variable")
	targetPtr := flagSet.String("target", crs.WGS84, "CRS of the output geometries")

	flagSet.Parse(os.Args[2:])

	if *outputPtr == "" {
		flagSet.PrintDefaults()
		os.Exit(1)
	}
	in, err := inputs.Resolve()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("✔️  Validated inputs")

	timer = time.Now()
	fmt.Println("▶️  Opening", in.H5)
	r, err := in.Open()
	if err != nil {
		log.Fatal(err)
	}
	defer r.Close()
	grid, err := in.Grid()
	if err != nil {
		log.Fatal(err)
	}
	var v *shetran.Variable
	if *variablePtr != "" {
		var ok bool
		if v, ok, err = r.Variable(*variablePtr); err != nil {
			log.Fatal(err)
		}
		if !ok {
			log.Fatal(fmt.Errorf("variable %q not found", *variablePtr))
		}
	}
	fmt.Println("✔️  Opened output file in", time.Now().Sub(timer).String())

	timer = time.Now()
	fmt.Println("▶️  Generating element geometries")
	gen, err := geometry.New(r, grid, geometry.WithSourceCRS(in.CRS), geometry.WithTargetCRS(*targetPtr))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("ℹ️  %d elements, numbering map %dx finer than the grid\n", gen.Len(), gen.Factor())
	geometries, err := geometry.All(gen)
	if err != nil {
		log.Fatal(err)
	}
	fc, err := Features(geometries, v, *timePtr, shetran.Level(*levelPtr))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("✔️  Generated element geometries in", time.Now().Sub(timer).String())

	timer = time.Now()
	fmt.Println("▶️  Writing", *outputPtr)
	if err := WriteFile(*outputPtr, fc); err != nil {
		log.Fatal(err)
	}
	fmt.Println("✔️  Wrote GeoJSON in", time.Now().Sub(timer).String())

	fmt.Printf("\n    🎉  Finished in %s\n", time.Now().Sub(start).String())
}
