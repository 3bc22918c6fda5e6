package dem

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// header keywords in the order SHETRAN writes them
var headers = []string{"ncols", "nrows", "xllcorner", "yllcorner", "cellsize"}

// Parse reads the five header lines of an ESRI ASCII grid. Anything after
// the header is ignored.
func Parse(reader io.Reader) (*Grid, error) {
	values := make([]float64, 0, len(headers))

	scanner := bufio.NewScanner(reader)
	for len(values) < len(headers) && scanner.Scan() {
		lineNo := len(values) + 1
		v, err := parseHeaderLine(strings.Fields(scanner.Text()), headers[len(values)])
		if err != nil {
			return nil, &FormatError{Line: lineNo, Msg: err.Error()}
		}
		values = append(values, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(values) < len(headers) {
		return nil, &FormatError{Line: len(values) + 1, Msg: fmt.Sprintf("missing %s header", headers[len(values)])}
	}

	for i, name := range headers[:2] {
		if values[i] < 1 || values[i] > MaxDimension {
			return nil, &FormatError{Line: i + 1, Msg: fmt.Sprintf("%s must be between 1 and %d", name, MaxDimension)}
		}
		if values[i] != math.Trunc(values[i]) {
			return nil, &FormatError{Line: i + 1, Msg: name + " must be an integer"}
		}
	}

	return NewGrid(int(values[0]), int(values[1]), values[2], values[3], values[4])
}

func parseHeaderLine(fields []string, keyword string) (float64, error) {
	if len(fields) != 2 {
		return 0, fmt.Errorf("header line must have exactly two fields")
	}
	if !strings.EqualFold(fields[0], keyword) {
		return 0, fmt.Errorf("expected %s, got %s", keyword, fields[0])
	}
	f, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%s value %q is not numeric", keyword, fields[1])
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%s value %q is not finite", keyword, fields[1])
	}
	return f, nil
}

// Read parses the grid header at path. Files ending in .gz are
// decompressed on the fly.
func Read(path string) (*Grid, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var r io.Reader = file
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	g, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}
