package trace

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// traceJSON is the trace exchange format.
type traceJSON struct {
	Model     string               `json:"model"`
	Variables []string             `json:"variables"`
	Samples   map[string][]float64 `json:"samples"`
}

// WriteJSON writes the trace as a JSON document. A file name with the
// suffix ".gz" produces a gzip-compressed stream.
func (t *Trace) WriteJSON(fname string) error {
	file, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("cannot create trace file %v; %v", fname, err)
	}
	defer file.Close()

	var out io.Writer = file
	if strings.HasSuffix(fname, ".gz") {
		zout := gzip.NewWriter(file)
		defer zout.Close()
		out = zout
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "\t")
	if err := encoder.Encode(traceJSON{
		Model:     t.model,
		Variables: t.names,
		Samples:   t.samples,
	}); err != nil {
		return fmt.Errorf("cannot encode trace; %v", err)
	}
	return nil
}

// ReadJSON reads a trace from a JSON document written by WriteJSON.
func ReadJSON(fname string) (*Trace, error) {
	file, err := os.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("cannot open trace file %v; %v", fname, err)
	}
	defer file.Close()

	var in io.Reader = file
	if strings.HasSuffix(fname, ".gz") {
		zin, err := gzip.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("cannot open gzip stream; %v", err)
		}
		defer zin.Close()
		in = zin
	}

	var doc traceJSON
	if err := json.NewDecoder(in).Decode(&doc); err != nil {
		return nil, fmt.Errorf("cannot decode trace; %v", err)
	}
	return fromJSON(&doc)
}

// fromJSON validates the exchange document and builds a trace from it.
func fromJSON(doc *traceJSON) (*Trace, error) {
	t := New(doc.Model, doc.Variables)
	n := -1
	for _, name := range doc.Variables {
		xs, ok := doc.Samples[name]
		if !ok {
			return nil, fmt.Errorf("trace document misses samples of variable %v", name)
		}
		if n >= 0 && n != len(xs) {
			return nil, fmt.Errorf("trace document has ragged sample series for variable %v", name)
		}
		n = len(xs)
		t.samples[name] = append([]float64{}, xs...)
	}
	return t, nil
}
