package preview

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/nclwater/shetranio/internal/validate"
	"github.com/nfnt/resize"
)

var sizes = []uint{128, 256, 512, 1024}

// Run is the program's entrypoint
func Run(flagSet *flag.FlagSet) {

	var timer time.Time
	start := time.Now()

	inputs := validate.AddFlags(flagSet)
	outputPtr := flagSet.String("out", "", "Path to output directory")
	modePtr := flagSet.String("mode", string(Ramp), "Colouring: ramp or terrainrgb")

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

	timer = time.Now()
	fmt.Println("▶️  Loading elevation map")

	r, err := in.Open()
	if err != nil {
		log.Fatal(err)
	}
	defer r.Close()
	elevations, err := Elevations(r)
	if err != nil {
		log.Fatal(err)
	}
	previewImage, err := Render(elevations, Mode(*modePtr))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("✔️  Loaded elevation map in", time.Now().Sub(timer).String())

	timer = time.Now()
	fmt.Println("▶️  Writing original preview image to output")
	if err := saveImage(filepath.Join(*outputPtr, "preview.png"), previewImage); err != nil {
		log.Fatal(err)
	}

	fmt.Println("✔️  Wrote original preview image in", time.Now().Sub(timer).String())

	for _, size := range sizes {
		timer = time.Now()
		fmt.Printf("▶️  Building x%d image\n", size)

		if err := saveImage(filepath.Join(*outputPtr, fmt.Sprintf("preview_%d.png", size)), scale(previewImage, size, Mode(*modePtr))); err != nil {
			log.Fatal(err)
		}

		fmt.Printf("✔️  Built x%d in %s\n", size, time.Now().Sub(timer).String())
	}

	fmt.Printf("\n    🎉  Finished in %s\n", time.Now().Sub(start).String())
}

// scale resizes img to height size keeping its aspect ratio. Terrain-RGB
// images are resized with nearest neighbour, blended colours decode to
// wrong heights.
func scale(img image.Image, size uint, mode Mode) image.Image {
	factor := float64(size) / float64(img.Bounds().Dy())
	w := uint(float64(img.Bounds().Dx()) * factor)

	interp := resize.MitchellNetravali
	if mode == TerrainRGB {
		interp = resize.NearestNeighbor
	}
	return resize.Resize(w, size, img, interp)
}

func saveImage(path string, img image.Image) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(out, img); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
