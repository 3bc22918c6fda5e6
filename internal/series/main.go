package series

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"time"

	"github.com/nclwater/shetranio/internal/shetran"
	"github.com/nclwater/shetranio/internal/validate"
)

// Run is the program's entrypoint
func Run(flagSet *flag.FlagSet) {
	var timer time.Time
	start := time.Now()

	inputs := validate.AddFlags(flagSet)
	variablePtr := flagSet.String("variable", "", "Variable to extract, e.g. ph_depth")
	elementPtr := flagSet.Int("element", 0, "Element number")
	xPtr := flagSet.Float64("x", math.NaN(), "X coordinate, used instead of -element")
	yPtr := flagSet.Float64("y", math.NaN(), "Y coordinate, used instead of -element")
	directionPtr := flagSet.String("direction", "n", "Side of the grid square of a channel link (n, e, s, w)")
	levelPtr := flagSet.Int("level", 0, "Soil layer of a layered variable")
	outputPtr := flagSet.String("out", "", "Path to output CSV file (defaults to stdout)")

	flagSet.Parse(os.Args[2:])

	if *variablePtr == "" {
		flagSet.PrintDefaults()
		os.Exit(1)
	}
	byCoordinate := !math.IsNaN(*xPtr) || !math.IsNaN(*yPtr)
	if byCoordinate && (math.IsNaN(*xPtr) || math.IsNaN(*yPtr)) {
		log.Fatal(errors.New("-x and -y must be given together"))
	}
	direction, err := shetran.ParseDirection(*directionPtr)
	if err != nil {
		log.Fatal(err)
	}
	in, err := inputs.Resolve()
	if err != nil {
		log.Fatal(err)
	}
	// progress goes to stderr when the CSV is written to stdout
	var progress io.Writer = os.Stdout
	if *outputPtr == "" {
		progress = os.Stderr
	}
	fmt.Fprintln(progress, "✔️  Validated inputs")

	timer = time.Now()
	fmt.Fprintln(progress, "▶️  Opening", in.H5)
	r, err := in.Open()
	if err != nil {
		log.Fatal(err)
	}
	defer r.Close()
	v, ok, err := r.Variable(*variablePtr)
	if err != nil {
		log.Fatal(err)
	}
	if !ok {
		log.Fatal(fmt.Errorf("variable %q not found", *variablePtr))
	}
	fmt.Fprintln(progress, "✔️  Opened output file in", time.Now().Sub(timer).String())

	n := *elementPtr
	if byCoordinate {
		grid, err := in.Grid()
		if err != nil {
			log.Fatal(err)
		}
		if n, err = ElementAt(r, grid, v, *xPtr, *yPtr, direction); err != nil {
			log.Fatal(err)
		}
		fmt.Fprintf(progress, "ℹ️  (%g, %g) is element %d\n", *xPtr, *yPtr, n)
	}

	timer = time.Now()
	fmt.Fprintf(progress, "▶️  Extracting %s of element %d\n", v.Name, n)
	s, err := Element(v, n, *levelPtr)
	if err != nil {
		log.Fatal(err)
	}
	if st, ok := s.Stats(); ok {
		fmt.Fprintf(progress, "ℹ️  %d values, min %g, max %g, mean %g %s\n", st.Count, st.Min, st.Max, st.Mean, v.Units)
	} else {
		fmt.Fprintln(progress, "ℹ️  Every value is missing")
	}

	if *outputPtr == "" {
		err = s.WriteCSV(os.Stdout)
	} else {
		err = writeFile(*outputPtr, s)
	}
	if err != nil {
		log.Fatal(err)
	}
	fmt.Fprintln(progress, "✔️  Extracted series in", time.Now().Sub(timer).String())

	fmt.Fprintf(progress, "\n    🎉  Finished in %s\n", time.Now().Sub(start).String())
}

func writeFile(path string, s *Series) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
