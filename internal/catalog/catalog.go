// Package catalog summarises the contents of an output file.
package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/nclwater/shetranio/internal/shetran"
)

// Variable summarises one variable.
type Variable struct {
	Name     string  `json:"name"`
	LongName string  `json:"longName,omitempty"`
	Kind     string  `json:"kind"`
	Units    string  `json:"units,omitempty"`
	Levels   int     `json:"levels"`
	Steps    int     `json:"steps"`
	First    float64 `json:"first"`
	Last     float64 `json:"last"`
}

// Catalog lists the elements and variables of an output file.
type Catalog struct {
	LandElements  int        `json:"landElements"`
	RiverElements int        `json:"riverElements"`
	Rows          int        `json:"rows"`
	Columns       int        `json:"columns"`
	Variables     []Variable `json:"variables"`
}

// Describe loads every variable of r.
func Describe(r *shetran.Reader) (*Catalog, error) {
	c := &Catalog{
		LandElements:  len(r.LandElements()),
		RiverElements: len(r.RiverElements()),
		Rows:          r.Number.Square.Rows(),
		Columns:       r.Number.Square.Columns(),
	}
	for _, name := range r.Variables() {
		v, ok, err := r.Variable(name)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		info := Variable{
			Name:     v.Name,
			LongName: v.LongName,
			Kind:     v.Kind.String(),
			Units:    v.Units,
			Levels:   v.Levels(),
			Steps:    len(v.Times),
		}
		if len(v.Times) > 0 {
			info.First, info.Last = v.Times[0], v.Times[len(v.Times)-1]
		}
		c.Variables = append(c.Variables, info)
	}
	return c, nil
}

// Write prints c as a table.
func (c *Catalog) Write(w io.Writer) error {
	fmt.Fprintf(w, "grid %dx%d, %d land elements, %d river links\n\n", c.Rows, c.Columns, c.LandElements, c.RiverElements)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VARIABLE\tKIND\tUNITS\tLEVELS\tSTEPS\tTIME")
	for _, v := range c.Variables {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%g-%g\n", v.Name, v.Kind, v.Units, v.Levels, v.Steps, v.First, v.Last)
	}
	return tw.Flush()
}

// WriteJSON encodes c as indented JSON.
func (c *Catalog) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(c)
}
