// Package library reads the XML library file a SHETRAN run is set up from.
package library

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/nclwater/shetranio/internal/crs"
)

// Library holds the entries of a library file that locate the run's
// inputs and outputs.
type Library struct {
	XMLName       xml.Name `xml:"ShetranInput"`
	ProjectFile   string   `xml:"ProjectFile"`
	CatchmentName string   `xml:"CatchmentName"`
	DEMMeanFile   string   `xml:"DEMMeanFileName"`
	DEMMinFile    string   `xml:"DEMminFileName"`
	MaskFile      string   `xml:"MaskFileName"`
	VegMap        string   `xml:"VegMap"`
	SoilMap       string   `xml:"SoilMap"`
	LakeMap       string   `xml:"LakeMap"`
	PrecipMap     string   `xml:"PrecipMap"`
	PeMap         string   `xml:"PeMap"`
	StartDay      int      `xml:"StartDay"`
	StartMonth    int      `xml:"StartMonth"`
	StartYear     int      `xml:"StartYear"`
	EndDay        int      `xml:"EndDay"`
	EndMonth      int      `xml:"EndMonth"`
	EndYear       int      `xml:"EndYear"`
	SRID          string   `xml:"SRID"`

	path string
}

// Read parses the library file at path.
func Read(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var lib Library
	if err := xml.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	lib.path = path

	for _, s := range []*string{&lib.CatchmentName, &lib.DEMMeanFile, &lib.DEMMinFile, &lib.MaskFile, &lib.SRID} {
		*s = strings.TrimSpace(*s)
	}
	if lib.CatchmentName == "" {
		return nil, fmt.Errorf("%s: CatchmentName is missing", path)
	}
	if _, err := lib.StartDate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &lib, nil
}

func date(year, month, day int, name string) (time.Time, error) {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, fmt.Errorf("invalid %s date %04d-%02d-%02d", name, year, month, day)
	}
	return t, nil
}

// StartDate returns the first day of the simulation.
func (l *Library) StartDate() (time.Time, error) {
	return date(l.StartYear, l.StartMonth, l.StartDay, "start")
}

// EndDate returns the last day of the simulation.
func (l *Library) EndDate() (time.Time, error) {
	return date(l.EndYear, l.EndMonth, l.EndDay, "end")
}

// Path resolves name relative to the directory of the library file.
func (l *Library) Path(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(filepath.Dir(l.path), name)
}

// DEMPath returns the mean DEM used as the grid header.
func (l *Library) DEMPath() string {
	return l.Path(l.DEMMeanFile)
}

// OutputPath returns the HDF5 output file SHETRAN writes next to the
// library file.
func (l *Library) OutputPath() string {
	return l.Path(fmt.Sprintf("output_%s_shegraph.h5", l.CatchmentName))
}

// CRS returns the coordinate reference system of the catchment grid.
func (l *Library) CRS() string {
	if l.SRID == "" {
		return crs.BritishNationalGrid
	}
	if _, err := strconv.Atoi(l.SRID); err == nil {
		return "EPSG:" + l.SRID
	}
	return l.SRID
}
