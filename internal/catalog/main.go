package catalog

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/nclwater/shetranio/internal/validate"
)

// Run is the program's entrypoint
func Run(flagSet *flag.FlagSet) {
	start := time.Now()

	inputs := validate.AddFlags(flagSet)
	jsonPtr := flagSet.Bool("json", false, "Print the catalog as JSON")

	flagSet.Parse(os.Args[2:])

	in, err := inputs.Resolve()
	if err != nil {
		flagSet.PrintDefaults()
		log.Fatal(err)
	}

	r, err := in.Open()
	if err != nil {
		log.Fatal(err)
	}
	defer r.Close()

	c, err := Describe(r)
	if err != nil {
		log.Fatal(err)
	}
	if *jsonPtr {
		if err := c.WriteJSON(os.Stdout); err != nil {
			log.Fatal(err)
		}
		return
	}

	fmt.Printf("ℹ️  %s\n\n", in.H5)
	if err := c.Write(os.Stdout); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("\n    🎉  Finished in %s\n", time.Now().Sub(start).String())
}
