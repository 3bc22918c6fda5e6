// Package series extracts element time series and writes them as CSV.
package series

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/nclwater/shetranio/internal/dem"
	"github.com/nclwater/shetranio/internal/shetran"
)

// Series is the time series of one variable at one element.
type Series struct {
	Variable   string
	Units      string
	Element    int
	Level      int
	Times      []float64
	Timestamps []time.Time
	Values     []float64
}

// Element extracts the series of element n from v.
func Element(v *shetran.Variable, n, level int) (*Series, error) {
	values, err := v.Element(n, shetran.Level(level))
	if err != nil {
		return nil, err
	}
	s := &Series{
		Variable: v.Name,
		Units:    v.Units,
		Element:  n,
		Level:    level,
		Times:    v.Times,
		Values:   values,
	}
	if ts, ok := v.Timestamps(); ok {
		s.Timestamps = ts
	}
	return s, nil
}

// ElementAt resolves the element of v nearest to x, y. River variables
// use the channel link on side d of the grid square.
func ElementAt(r *shetran.Reader, g *dem.Grid, v *shetran.Variable, x, y float64, d shetran.Direction) (int, error) {
	switch {
	case !v.IsSpatial():
		return 0, nil
	case v.IsRiver():
		return r.ChannelLinkNumber(g, x, y, d)
	default:
		return r.ElementNumber(g, x, y)
	}
}

// Stats summarises the values that are not missing.
type Stats struct {
	Min, Max, Mean float64
	Count          int
}

// Stats returns the summary of s, or false when every value is missing.
func (s *Series) Stats() (Stats, bool) {
	var st Stats
	var ok bool
	if st.Min, ok = shetran.Min(s.Values); !ok {
		return st, false
	}
	st.Max, _ = shetran.Max(s.Values)
	st.Mean, _ = shetran.Mean(s.Values)
	for _, v := range s.Values {
		if !shetran.IsMissing(v) {
			st.Count++
		}
	}
	return st, true
}

// WriteCSV writes a header and one row per timestep. Missing values are
// left empty.
func (s *Series) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	column := s.Variable
	if s.Units != "" {
		column = fmt.Sprintf("%s (%s)", s.Variable, s.Units)
	}
	if err := cw.Write([]string{"time", column}); err != nil {
		return err
	}

	for i, v := range s.Values {
		var t string
		if s.Timestamps != nil {
			t = s.Timestamps[i].Format(time.RFC3339)
		} else {
			t = strconv.FormatFloat(s.Times[i], 'f', -1, 64)
		}
		value := ""
		if !shetran.IsMissing(v) {
			value = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write([]string{t, value}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
