package statement

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// DefaultEncoding is the code page mBank uses for its exports.
const DefaultEncoding = "windows-1250"

// ErrUnknownEncoding is returned for an encoding label htmlindex does not know.
var ErrUnknownEncoding = errors.New("unknown encoding")

// replacement is U+FFFD, which decoders emit for bytes they cannot map.
var replacement = []byte(string(utf8.RuneError))

// Codec converts between statement bytes and Go strings for one named encoding.
type Codec struct {
	name string
	enc  encoding.Encoding
	utf8 bool
	// rep is U+FFFD in this encoding, nil when the encoding cannot represent it.
	rep []byte
}

// LookupCodec returns the Codec for an encoding label such as "windows-1250",
// "cp1250" or "utf-8".
func LookupCodec(name string) (*Codec, error) {
	enc, err := htmlindex.Get(strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	c := &Codec{name: name, enc: enc}
	if canonical, _ := htmlindex.Name(enc); canonical == "utf-8" {
		c.utf8 = true
	}
	if rep, err := enc.NewEncoder().Bytes(replacement); err == nil {
		c.rep = rep
	}
	return c, nil
}

// Name returns the label the codec was looked up with.
func (c *Codec) Name() string { return c.name }

// Decode converts b to a string. Bytes that are not valid in the encoding are an
// ErrEncoding instead of being silently replaced. A U+FFFD written in the input
// itself is kept.
func (c *Codec) Decode(b []byte) (string, error) {
	if c.utf8 && !utf8.Valid(b) {
		return "", fmt.Errorf("%w: %q is not valid %s", ErrEncoding, b, c.name)
	}
	out, err := c.enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	literal := 0
	if c.rep != nil {
		literal = bytes.Count(b, c.rep)
	}
	if bytes.Count(out, replacement) != literal {
		return "", fmt.Errorf("%w: %q is not valid %s", ErrEncoding, b, c.name)
	}
	return string(out), nil
}

// Encode converts s to bytes in the codec's encoding.
func (c *Codec) Encode(s string) ([]byte, error) {
	out, err := c.enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("%w: cannot encode %q as %s: %v", ErrEncoding, s, c.name, err)
	}
	return out, nil
}
