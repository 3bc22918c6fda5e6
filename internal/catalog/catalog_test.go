package catalog

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/nclwater/shetranio/internal/shetran"
	"github.com/nclwater/shetranio/internal/shetran/shetrantest"
)

func describe(t *testing.T) *Catalog {
	t.Helper()
	r, err := shetran.New(shetrantest.Catchment())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { r.Close() })

	c, err := Describe(r)
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}
	return c
}

func TestDescribe(t *testing.T) {
	c := describe(t)

	if c.LandElements != 3 || c.RiverElements != 3 || c.Rows != 4 || c.Columns != 4 {
		t.Errorf("unexpected catalog %+v", c)
	}
	if len(c.Variables) != 6 {
		t.Fatalf("expected 6 variables, got %d", len(c.Variables))
	}

	byName := map[string]Variable{}
	for _, v := range c.Variables {
		byName[v.Name] = v
	}
	if v := byName["theta"]; v.Kind != "land-layered" || v.Levels != 2 || v.Steps != 3 {
		t.Errorf("unexpected theta %+v", v)
	}
	if v := byName["srf_dep"]; v.Kind != "river-depth" || v.First != 0 || v.Last != 1 || v.Units != "m" {
		t.Errorf("unexpected srf_dep %+v", v)
	}
	if v := byName["custom"]; v.Kind != "land" {
		t.Errorf("unexpected custom %+v", v)
	}
}

func TestWrite(t *testing.T) {
	c := describe(t)

	var buf bytes.Buffer
	if err := c.Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "grid 4x4, 3 land elements, 3 river links\n") {
		t.Errorf("unexpected header in %q", out)
	}
	if !strings.Contains(out, "ovr_flow") || !strings.Contains(out, "river-faces") {
		t.Errorf("expected ovr_flow row in %q", out)
	}

	buf.Reset()
	if err := c.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	var decoded Catalog
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.LandElements != 3 || len(decoded.Variables) != 6 {
		t.Errorf("unexpected decoded catalog %+v", decoded)
	}
}
