package trace

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/golang/snappy"
	"github.com/pierrec/lz4/v4"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Format is the encoding used when exporting a SimulationTrace.
type Format string

const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
)

// Compression is the stream compression wrapped around an encoded trace.
type Compression string

const (
	CompressionNone   Compression = "none"
	CompressionLZ4    Compression = "lz4"
	CompressionSnappy Compression = "snappy"
)

// ValidFormats is the set of recognized export formats.
var ValidFormats = map[Format]bool{FormatJSON: true, FormatYAML: true, FormatMsgpack: true}

// ValidCompressions is the set of recognized compression names.
// Empty string is treated as none.
var ValidCompressions = map[Compression]bool{"": true, CompressionNone: true, CompressionLZ4: true, CompressionSnappy: true}

// Export encodes st to w. Compressed streams are flushed and closed before
// Export returns; w itself is not closed.
func Export(w io.Writer, st *SimulationTrace, format Format, compression Compression) error {
	if !ValidFormats[format] {
		return fmt.Errorf("unknown trace format %q", format)
	}
	cw, err := compressWriter(w, compression)
	if err != nil {
		return err
	}
	if err := encode(cw, st, format); err != nil {
		return fmt.Errorf("encoding %s trace: %w", format, err)
	}
	if err := cw.Close(); err != nil {
		return fmt.Errorf("flushing %s stream: %w", compression, err)
	}
	return nil
}

// Import decodes a trace written by Export with the same format and compression.
func Import(r io.Reader, format Format, compression Compression) (*SimulationTrace, error) {
	if !ValidFormats[format] {
		return nil, fmt.Errorf("unknown trace format %q", format)
	}
	cr, err := compressReader(r, compression)
	if err != nil {
		return nil, err
	}
	var st SimulationTrace
	switch format {
	case FormatJSON:
		err = json.NewDecoder(cr).Decode(&st)
	case FormatYAML:
		err = yaml.NewDecoder(cr).Decode(&st)
	case FormatMsgpack:
		dec := msgpack.NewDecoder(cr)
		dec.SetCustomStructTag("json")
		err = dec.Decode(&st)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s trace: %w", format, err)
	}
	return &st, nil
}

func encode(w io.Writer, st *SimulationTrace, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(st); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := msgpack.NewEncoder(w)
		enc.SetCustomStructTag("json")
		return enc.Encode(st)
	}
}

// nopWriteCloser lets the uncompressed path share the Close-to-flush contract.
type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func compressWriter(w io.Writer, compression Compression) (io.WriteCloser, error) {
	switch compression {
	case "", CompressionNone:
		return nopWriteCloser{w}, nil
	case CompressionLZ4:
		return lz4.NewWriter(w), nil
	case CompressionSnappy:
		return snappy.NewBufferedWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported compression type: %q", compression)
	}
}

func compressReader(r io.Reader, compression Compression) (io.Reader, error) {
	switch compression {
	case "", CompressionNone:
		return r, nil
	case CompressionLZ4:
		return lz4.NewReader(r), nil
	case CompressionSnappy:
		return snappy.NewReader(r), nil
	default:
		return nil, fmt.Errorf("unsupported compression type: %q", compression)
	}
}
