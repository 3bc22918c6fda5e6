package preview

import (
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/nclwater/shetranio/internal/hdf"
	"github.com/nclwater/shetranio/internal/shetran"
	"github.com/nclwater/shetranio/internal/shetran/shetrantest"
)

func TestHeightRgbRoundTrip(t *testing.T) {
	for _, h := range []float64{-10000, -12.3, 0, 0.1, 54.7, 1344.5, 8848} {
		got := RgbToHeight(HeightToRgb(h))
		if math.Abs(got-h) > 0.11 {
			t.Errorf("round trip of %v gave %v", h, got)
		}
	}

	c := HeightToRgb(0)
	if c.R != 1 || c.G != 134 || c.B != 160 || c.A != 255 {
		t.Errorf("unexpected colour for 0 m: %+v", c)
	}
	if RgbToHeight(HeightToRgb(-20000)) != -10000 {
		t.Errorf("expected heights below the range to clamp")
	}
}

func TestElevations(t *testing.T) {
	r, err := shetran.New(shetrantest.Catchment())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer r.Close()

	a, err := Elevations(r)
	if err != nil {
		t.Fatalf("Elevations failed: %v", err)
	}
	if a.Shape[0] != 8 || a.Shape[1] != 8 {
		t.Fatalf("unexpected shape %v", a.Shape)
	}
	if !math.IsNaN(a.Data[0]) {
		t.Errorf("expected level 0 to be NaN, got %v", a.Data[0])
	}
	// land surface spans 50 to 58 m
	if want := 32.0/256*8 + 50; math.Abs(a.Data[32]-want) > 1e-9 {
		t.Errorf("expected %v, got %v", want, a.Data[32])
	}
}

func TestRender(t *testing.T) {
	a, err := hdf.NewArray([]int{2, 3}, []float64{math.NaN(), 10, 20, 30, 40, 50})
	if err != nil {
		t.Fatalf("NewArray failed: %v", err)
	}

	for _, mode := range []Mode{Ramp, TerrainRGB} {
		img, err := Render(a, mode)
		if err != nil {
			t.Fatalf("Render(%s) failed: %v", mode, err)
		}
		if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
			t.Fatalf("unexpected bounds %v", img.Bounds())
		}
		if img.NRGBAAt(0, 0).A != 0 {
			t.Errorf("%s: expected NaN cell to be transparent", mode)
		}
		if img.NRGBAAt(1, 0).A != 255 {
			t.Errorf("%s: expected opaque land cell", mode)
		}
	}

	img, _ := Render(a, TerrainRGB)
	if h := RgbToHeight(img.NRGBAAt(2, 1)); math.Abs(h-50) > 0.1 {
		t.Errorf("expected 50 m, got %v", h)
	}

	if _, err := Render(a, Mode("sepia")); err == nil {
		t.Errorf("expected an error for an unknown mode")
	}
}

func TestScaleAndSave(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 20, 10))

	scaled := scale(img, 128, Ramp)
	if scaled.Bounds().Dx() != 256 || scaled.Bounds().Dy() != 128 {
		t.Fatalf("unexpected bounds %v", scaled.Bounds())
	}

	p := filepath.Join(t.TempDir(), "preview.png")
	if err := saveImage(p, scaled); err != nil {
		t.Fatalf("saveImage failed: %v", err)
	}
	f, err := os.Open(p)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("DecodeConfig failed: %v", err)
	}
	if cfg.Width != 256 || cfg.Height != 128 {
		t.Errorf("unexpected size %dx%d", cfg.Width, cfg.Height)
	}
}
