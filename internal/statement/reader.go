package statement

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/piotrekio/mquery/internal/model"
)

// DefaultHeaderMarker starts the line right above the transaction table in mBank
// exports ("transaction date").
const DefaultHeaderMarker = "#Data operacji"

// Options configures how a statement is read.
type Options struct {
	Encoding     string
	HeaderMarker string
}

// DefaultOptions returns the options for an unmodified mBank export.
func DefaultOptions() Options {
	return Options{
		Encoding:     DefaultEncoding,
		HeaderMarker: DefaultHeaderMarker,
	}
}

// Reader parses mBank statement exports.
type Reader struct {
	codec  *Codec
	marker []byte
}

// NewReader resolves the encoding in opts and encodes the header marker with it.
func NewReader(opts Options) (*Reader, error) {
	codec, err := LookupCodec(opts.Encoding)
	if err != nil {
		return nil, err
	}
	marker, err := codec.Encode(opts.HeaderMarker)
	if err != nil {
		return nil, fmt.Errorf("encoding header marker: %w", err)
	}
	return &Reader{codec: codec, marker: marker}, nil
}

// Format returns the name of the statement layout.
func (r *Reader) Format() string { return "mbank" }

// Codec returns the codec used to decode text fields.
func (r *Reader) Codec() *Codec { return r.codec }

// Read skips everything up to and including the first line starting with the header
// marker and decodes every non-blank line after it. Without a header line the
// history is empty. The first line that fails to decode aborts the read.
func (r *Reader) Read(in io.Reader) ([]model.Entry, error) {
	br := bufio.NewReader(in)
	lineNo := 0

	found := false
	for !found {
		line, err := readLine(br)
		if line == nil && err == io.EOF {
			return nil, nil
		}
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("reading line %d: %w", lineNo+1, err)
		}
		lineNo++
		found = bytes.HasPrefix(line, r.marker)
		if !found && err == io.EOF {
			return nil, nil
		}
	}

	var entries []model.Entry
	for {
		line, err := readLine(br)
		if line == nil && err == io.EOF {
			break
		}
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("reading line %d: %w", lineNo+1, err)
		}
		lineNo++

		line = bytes.TrimSpace(line)
		if len(line) > 0 {
			entry, derr := DecodeLine(line, r.codec)
			if derr != nil {
				return nil, &LineError{Line: lineNo, Err: derr}
			}
			entries = append(entries, entry)
		}
		if err == io.EOF {
			break
		}
	}
	return entries, nil
}

// readLine returns the next line without its "\n". At the end of the input it
// returns the final unterminated line, if any, together with io.EOF; a nil line
// with io.EOF means there is nothing left.
func readLine(br *bufio.Reader) ([]byte, error) {
	line, err := br.ReadBytes('\n')
	if err == io.EOF && len(line) == 0 {
		return nil, io.EOF
	}
	return bytes.TrimSuffix(line, []byte{'\n'}), err
}

// openFile is replaced in tests to observe that the file gets closed.
var openFile = func(name string) (io.ReadCloser, error) {
	return os.Open(name)
}

// Load reads the statement at path. The file is closed before Load returns.
func Load(path string, opts Options) ([]model.Entry, error) {
	r, err := NewReader(opts)
	if err != nil {
		return nil, err
	}

	f, err := openFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s: %w", ErrFileNotFound, path, err)
	}
	if err != nil {
		return nil, fmt.Errorf("opening statement %s: %w", path, err)
	}
	defer f.Close()

	entries, err := r.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading statement %s: %w", path, err)
	}
	return entries, nil
}
