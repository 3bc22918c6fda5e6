package mvt

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/mvt"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/maptile"
	"github.com/paulmach/orb/simplify"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// TileWriter stores encoded tiles. Implementations must be safe for
// concurrent use.
type TileWriter interface {
	WriteTile(z maptile.Zoom, x, y uint32, data []byte) error
}

// tileRange returns the north-west and south-east tiles covering bound at zoom z.
func tileRange(bound orb.Bound, z maptile.Zoom) (maptile.Tile, maptile.Tile) {
	nw := maptile.At(orb.Point{bound.Min[0], bound.Max[1]}, z)
	se := maptile.At(orb.Point{bound.Max[0], bound.Min[1]}, z)
	return nw, se
}

// BuildVectorTiles encodes fc as layer into gzipped Mapbox vector tiles
// for zoom 0 to maxZoom. Tiles without features are skipped. It returns
// the number of tiles written.
func BuildVectorTiles(ctx context.Context, w TileWriter, layer string, fc *geojson.FeatureCollection, maxZoom maptile.Zoom) (int, error) {
	if len(fc.Features) == 0 {
		return 0, nil
	}
	bound := collectionBound(fc)

	sem := semaphore.NewWeighted(int64(runtime.NumCPU()))
	var written atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
tiles:
	for z := maptile.Zoom(0); z <= maxZoom; z++ {
		nw, se := tileRange(bound, z)
		for x := nw.X; x <= se.X; x++ {
			for y := nw.Y; y <= se.Y; y++ {
				if err := sem.Acquire(gctx, 1); err != nil {
					break tiles
				}
				tile := maptile.New(x, y, z)
				g.Go(func() error {
					defer sem.Release(1)

					data, err := createTile(tile, layer, fc)
					if err != nil {
						return fmt.Errorf("tile %d/%d/%d: %w", tile.Z, tile.X, tile.Y, err)
					}
					if data == nil {
						return nil
					}
					if err := w.WriteTile(tile.Z, tile.X, tile.Y, data); err != nil {
						return fmt.Errorf("tile %d/%d/%d: %w", tile.Z, tile.X, tile.Y, err)
					}
					written.Add(1)
					return nil
				})
			}
		}
	}

	err := g.Wait()
	if err == nil {
		// a cancelled caller stops the loop early without failing a tile
		err = ctx.Err()
	}
	return int(written.Load()), err
}

// createTile returns the gzipped tile, or nil if no feature reaches into it.
func createTile(tile maptile.Tile, layer string, fc *geojson.FeatureCollection) ([]byte, error) {
	tileBound := tile.Bound()

	clipped := geojson.NewFeatureCollection()
	for _, f := range fc.Features {
		if f.Geometry == nil || !f.Geometry.Bound().Intersects(tileBound) {
			continue
		}
		clipped.Append(cloneFeature(f))
	}
	if len(clipped.Features) == 0 {
		return nil, nil
	}

	layers := mvt.NewLayers(map[string]*geojson.FeatureCollection{layer: clipped})
	for _, l := range layers {
		l.Version = 2
	}
	layers.ProjectToTile(tile)
	layers.Clip(mvt.MapboxGLDefaultExtentBound)
	layers.Simplify(simplify.DouglasPeucker(1.0))
	layers.RemoveEmpty(1.0, 1.0)

	empty := true
	for _, l := range layers {
		if len(l.Features) > 0 {
			empty = false
		}
	}
	if empty {
		return nil, nil
	}

	return mvt.MarshalGzipped(layers)
}

func collectionBound(fc *geojson.FeatureCollection) orb.Bound {
	var b orb.Bound
	first := true
	for _, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}
		if first {
			b, first = f.Geometry.Bound(), false
			continue
		}
		b = b.Union(f.Geometry.Bound())
	}
	return b
}

// SmallestBound returns the bound of the smallest feature of fc.
func SmallestBound(fc *geojson.FeatureCollection) orb.Bound {
	var smallest orb.Bound
	area := -1.0
	for _, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}
		b := f.Geometry.Bound()
		if a := (b.Max[0] - b.Min[0]) * (b.Max[1] - b.Min[1]); area < 0 || a < area {
			smallest, area = b, a
		}
	}
	return smallest
}
