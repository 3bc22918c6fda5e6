package mvt

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/nclwater/shetranio/internal/crs"
	"github.com/nclwater/shetranio/internal/export"
	"github.com/nclwater/shetranio/internal/geometry"
	"github.com/nclwater/shetranio/internal/mbtiles"
	"github.com/nclwater/shetranio/internal/shetran"
	"github.com/nclwater/shetranio/internal/tilejson"
	"github.com/nclwater/shetranio/internal/utils"
	"github.com/nclwater/shetranio/internal/validate"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/maptile"
)

// Layer is the name of the vector tile layer holding the elements.
const Layer = "elements"

// minElementPx is the size in pixels the smallest element reaches at the
// derived max zoom.
const minElementPx = 4

// Run is the program's entrypoint
func Run(flagSet *flag.FlagSet) {
	var timer time.Time
	start := time.Now()

	inputs := validate.AddFlags(flagSet)
	outputPtr := flagSet.String("out", "", "Path to output directory")
	variablePtr := flagSet.String("variable", "", "Variable whose values are attached to the elements (optional)")
	timePtr := flagSet.Int("time", 0, "Index of the timestep")
	levelPtr := flagSet.Int("level", 0, "Soil layer of a layered variable")
	maxZoomPtr := flagSet.Uint("maxzoom", 0, "Max zoom level, derived from the element size if 0")
	mbtilesPtr := flagSet.Bool("mbtiles", false, "Write tiles.mbtiles instead of a z/x/y directory tree")

	flagSet.Parse(os.Args[2:])

	if *outputPtr == "" {
		flagSet.PrintDefaults()
		os.Exit(1)
	}
	if err := validate.OutputDirectory(*outputPtr); err != nil {
		log.Fatal(err)
	}
	in, err := inputs.Resolve()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("✔️  Validated inputs")

	// open output file
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
		v, ok, err = r.Variable(*variablePtr)
		if err != nil {
			log.Fatal(err)
		}
		if !ok {
			log.Fatal(fmt.Errorf("variable %q not found", *variablePtr))
		}
	}
	fmt.Println("✔️  Opened output file in", time.Now().Sub(timer).String())

	// element geometries
	timer = time.Now()
	fmt.Println("▶️  Generating element geometries")
	gen, err := geometry.New(r, grid, geometry.WithSourceCRS(in.CRS), geometry.WithTargetCRS(crs.WGS84))
	if err != nil {
		log.Fatal(err)
	}
	geometries, err := geometry.All(gen)
	if err != nil {
		log.Fatal(err)
	}
	fc, err := export.Features(geometries, v, *timePtr, shetran.Level(*levelPtr))
	if err != nil {
		log.Fatal(err)
	}
	if len(fc.Features) == 0 {
		log.Fatal(errors.New("the numbering map has no elements"))
	}
	fmt.Printf("✔️  Generated %d geometries in %s\n", len(fc.Features), time.Now().Sub(timer).String())

	maxZoom := maptile.Zoom(*maxZoomPtr)
	if maxZoom == 0 {
		maxZoom = maptile.Zoom(utils.MaxZoom(SmallestBound(fc), minElementPx))
	}
	fmt.Printf("ℹ️  Building tiles up to zoom level %d\n", maxZoom)

	// vector tiles
	timer = time.Now()
	fmt.Println("▶️  Building mapbox vector tiles")
	tj := tilejson.New(in.Name(), Layer, uint8(maxZoom), collectionBound(fc))
	if *mbtilesPtr {
		err = buildMBTiles(filepath.Join(*outputPtr, "tiles.mbtiles"), fc, tj, maxZoom)
	} else {
		var n int
		n, err = BuildVectorTiles(context.Background(), &DirWriter{Dir: *outputPtr}, Layer, fc, maxZoom)
		fmt.Printf("ℹ️  Wrote %d tiles\n", n)
	}
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("✔️  Built mapbox vector tiles in", time.Now().Sub(timer).String())

	if !*mbtilesPtr {
		timer = time.Now()
		fmt.Println("▶️  Writing tile.json")
		if err := tilejson.Write(*outputPtr, tj); err != nil {
			log.Fatal(err)
		}
		fmt.Println("✔️  Wrote tile.json in", time.Now().Sub(timer).String())
	}

	fmt.Printf("\n    🎉  Finished in %s\n", time.Now().Sub(start).String())
}

func buildMBTiles(path string, fc *geojson.FeatureCollection, tj tilejson.TileJSON, maxZoom maptile.Zoom) error {
	db, err := mbtiles.Open(path, tj.Name, tj.Format)
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := BuildVectorTiles(context.Background(), db, Layer, fc, maxZoom)
	if err != nil {
		return err
	}
	fmt.Printf("ℹ️  Wrote %d tiles\n", n)

	layers, err := tilejson.VectorLayersJSON(tj)
	if err != nil {
		return err
	}
	return db.InsertMeta(map[string]string{
		"description": tj.Description,
		"bounds":      formatFloats(tj.Bounds),
		"center":      formatFloats(tj.Center),
		"minzoom":     strconv.Itoa(int(tj.Minzoom)),
		"maxzoom":     strconv.Itoa(int(tj.Maxzoom)),
		"type":        "overlay",
		"json":        layers,
	})
}

func formatFloats(values []float64) string {
	s := ""
	for i, v := range values {
		if i > 0 {
			s += ","
		}
		s += strconv.FormatFloat(v, 'f', -1, 64)
	}
	return s
}
