// Package validate resolves and checks the inputs shared by all commands.
package validate

import (
	"errors"
	"flag"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/nclwater/shetranio/internal/crs"
	"github.com/nclwater/shetranio/internal/dem"
	"github.com/nclwater/shetranio/internal/library"
	"github.com/nclwater/shetranio/internal/shetran"
	"github.com/nclwater/shetranio/internal/utils"
)

// Flags are the input flags every command accepts.
type Flags struct {
	Library *string
	H5      *string
	DEM     *string
	CRS     *string
}

// AddFlags registers the input flags on flagSet.
func AddFlags(flagSet *flag.FlagSet) *Flags {
	return &Flags{
		Library: flagSet.String("lib", "", "Path to the SHETRAN library file (XML)"),
		H5:      flagSet.String("h5", "", "Path to the SHETRAN output file (defaults to the one next to the library file)"),
		DEM:     flagSet.String("dem", "", "Path to the DEM whose header describes the grid (defaults to DEMMeanFileName)"),
		CRS:     flagSet.String("crs", "", "CRS of the grid, e.g. EPSG:27700 (defaults to the library SRID)"),
	}
}

// Inputs are the resolved and checked inputs of a run.
type Inputs struct {
	Library  *library.Library
	H5       string
	DEM      string
	CRS      string
	Start    time.Time
	HasStart bool
}

// Resolve reads the library file, if given, and lets the explicit flags
// override what it says.
func (f *Flags) Resolve() (*Inputs, error) {
	return Resolve(*f.Library, *f.H5, *f.DEM, *f.CRS)
}

// Resolve checks the input paths and fills the gaps from the library file.
func Resolve(libPath, h5Path, demPath, crsDef string) (*Inputs, error) {
	in := &Inputs{H5: h5Path, DEM: demPath, CRS: crsDef}

	if libPath != "" {
		if !utils.IsFile(libPath) {
			return nil, fmt.Errorf("%s does not exist or is no file", libPath)
		}
		lib, err := library.Read(libPath)
		if err != nil {
			return nil, err
		}
		in.Library = lib
		in.Start, _ = lib.StartDate()
		in.HasStart = true
		if in.H5 == "" {
			in.H5 = lib.OutputPath()
		}
		if in.DEM == "" {
			in.DEM = lib.DEMPath()
		}
		if in.CRS == "" {
			in.CRS = lib.CRS()
		}
	}

	if in.CRS == "" {
		in.CRS = crs.BritishNationalGrid
	}
	if _, err := crs.Definition(in.CRS); err != nil {
		return nil, err
	}

	if in.H5 == "" {
		return nil, errors.New("either -lib or -h5 is required")
	}
	if !utils.IsFile(in.H5) {
		return nil, fmt.Errorf("%s does not exist or is no file", in.H5)
	}
	if in.DEM != "" && !utils.IsFile(in.DEM) {
		return nil, fmt.Errorf("%s does not exist or is no file", in.DEM)
	}

	return in, nil
}

// Open opens the output file.
func (in *Inputs) Open() (*shetran.Reader, error) {
	var opts []shetran.ReaderOption
	if in.HasStart {
		opts = append(opts, shetran.WithStartDate(in.Start))
	}
	return shetran.Open(in.H5, opts...)
}

// Grid reads the grid header of the DEM.
func (in *Inputs) Grid() (*dem.Grid, error) {
	if in.DEM == "" {
		return nil, errors.New("a DEM is required, pass -dem or -lib")
	}
	return dem.Read(in.DEM)
}

// Name returns the catchment name, or the output file name without its
// extension when no library file was given.
func (in *Inputs) Name() string {
	if in.Library != nil {
		return in.Library.CatchmentName
	}
	base := filepath.Base(in.H5)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// OutputDirectory checks that dir exists.
func OutputDirectory(dir string) error {
	if !utils.IsDirectory(dir) {
		return fmt.Errorf("output directory %s doesn't exist", dir)
	}
	return nil
}
