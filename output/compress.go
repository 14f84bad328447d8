package output

import (
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// ErrUnsupportedCompression is returned for unknown codec names.
var ErrUnsupportedCompression = errors.New("unsupported compression")

// Compression names an output codec.
type Compression string

const (
	NoCompression Compression = "none"
	Gzip          Compression = "gzip"
	Zstd          Compression = "zstd"
)

// ParseCompression validates a codec name. The empty string means none.
func ParseCompression(s string) (Compression, error) {
	switch c := Compression(s); c {
	case "", NoCompression:
		return NoCompression, nil
	case Gzip, Zstd:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedCompression, s)
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// Compress wraps w so that everything written is encoded with c. Close must
// be called to flush the trailer; it does not close w.
func Compress(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case "", NoCompression:
		return nopWriteCloser{w}, nil
	case Gzip:
		return gzip.NewWriter(w), nil
	case Zstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd writer: %w", err)
		}
		return zw, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCompression, c)
	}
}
