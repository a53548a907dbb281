package trace

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/dsnet/compress/bzip2"
)

const fileBufferSize = 65536 * 16 // 1MiB

// WriteFile writes the trace as a bzip2-compressed binary trace file.
func (t *Trace) WriteFile(fname string) error {
	file, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("cannot create trace file %v; %v", fname, err)
	}
	zwriter, err := bzip2.NewWriter(file, &bzip2.WriterConfig{Level: 9})
	if err != nil {
		file.Close()
		return fmt.Errorf("cannot open bzip stream; %v", err)
	}
	writer := bufio.NewWriterSize(zwriter, fileBufferSize)

	if err := t.write(writer); err != nil {
		zwriter.Close()
		file.Close()
		return err
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("cannot flush trace file; %v", err)
	}
	if err := zwriter.Close(); err != nil {
		return fmt.Errorf("cannot close compressed stream; %v", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("cannot close trace file; %v", err)
	}
	return nil
}

// write serializes the trace header and the sample series.
func (t *Trace) write(w io.Writer) error {
	if err := writeString(w, t.model); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(t.names))); err != nil {
		return fmt.Errorf("cannot write variable count; %v", err)
	}
	for _, name := range t.names {
		if err := writeString(w, name); err != nil {
			return err
		}
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(t.Len())); err != nil {
		return fmt.Errorf("cannot write sample count; %v", err)
	}
	for _, name := range t.names {
		for _, x := range t.samples[name] {
			if err := binary.Write(w, binary.LittleEndian, math.Float64bits(x)); err != nil {
				return fmt.Errorf("cannot write samples of %v; %v", name, err)
			}
		}
	}
	return nil
}

// ReadFile reads a bzip2-compressed binary trace file.
func ReadFile(fname string) (*Trace, error) {
	file, err := os.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("cannot open trace file %v; %v", fname, err)
	}
	defer file.Close()
	zreader, err := bzip2.NewReader(file, &bzip2.ReaderConfig{})
	if err != nil {
		return nil, fmt.Errorf("cannot open bzip stream; %v", err)
	}
	defer zreader.Close()
	reader := bufio.NewReaderSize(zreader, fileBufferSize)

	model, err := readString(reader)
	if err != nil {
		return nil, err
	}
	var numVars uint32
	if err := binary.Read(reader, binary.LittleEndian, &numVars); err != nil {
		return nil, fmt.Errorf("cannot read variable count; %v", err)
	}
	names := make([]string, numVars)
	for i := range names {
		if names[i], err = readString(reader); err != nil {
			return nil, err
		}
	}
	var numSamples uint64
	if err := binary.Read(reader, binary.LittleEndian, &numSamples); err != nil {
		return nil, fmt.Errorf("cannot read sample count; %v", err)
	}

	t := New(model, names)
	for _, name := range names {
		xs := make([]float64, numSamples)
		for i := range xs {
			var bits uint64
			if err := binary.Read(reader, binary.LittleEndian, &bits); err != nil {
				return nil, fmt.Errorf("cannot read samples of %v; %v", name, err)
			}
			xs[i] = math.Float64frombits(bits)
		}
		t.samples[name] = xs
	}
	return t, nil
}

// writeString writes a length-prefixed string.
func writeString(w io.Writer, s string) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(s))); err != nil {
		return fmt.Errorf("cannot write string length; %v", err)
	}
	if _, err := w.Write([]byte(s)); err != nil {
		return fmt.Errorf("cannot write string; %v", err)
	}
	return nil
}

// readString reads a length-prefixed string.
func readString(r io.Reader) (string, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", fmt.Errorf("cannot read string length; %v", err)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("cannot read string; %v", err)
	}
	return string(buf), nil
}
