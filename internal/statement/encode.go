package statement

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/piotrekio/mquery/internal/model"
)

// exportColumns follows the header marker on the header line of an export.
const exportColumns = ";#Opis operacji;#Rachunek;#Kategoria;#Kwota;"

// EncodeLine renders an Entry in the statement layout so that DecodeLine gives back
// the same Entry. Description and category must not contain ';' or '"', and the
// description must not start or end with whitespace, which DecodeLine trims.
func EncodeLine(entry model.Entry, codec *Codec) ([]byte, error) {
	for _, s := range []string{entry.Description, entry.Category, entry.Currency} {
		if strings.ContainsAny(s, "\";\r\n") {
			return nil, fmt.Errorf("cannot encode %q: contains a separator or quote", s)
		}
	}
	if entry.Description != strings.TrimSpace(entry.Description) {
		return nil, fmt.Errorf("cannot encode %q: description has surrounding whitespace", entry.Description)
	}

	amount := entry.Amount.String()
	if exp := entry.Amount.Exponent(); exp < 0 {
		amount = entry.Amount.StringFixed(-exp)
	}
	amount = strings.Replace(amount, ".", ",", 1)

	text := fmt.Sprintf("%s;\"%s\";;\"%s\";%s %s;",
		entry.Date, entry.Description, entry.Category, amount, entry.Currency)
	return codec.Encode(text)
}

// WriteHistory writes a header line starting with opts.HeaderMarker followed by one
// line per entry, in opts.Encoding. The output can be read back with Reader.
func WriteHistory(w io.Writer, entries []model.Entry, opts Options) error {
	codec, err := LookupCodec(opts.Encoding)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	header, err := codec.Encode(opts.HeaderMarker + exportColumns)
	if err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	bw.Write(header)
	bw.WriteByte('\n')

	for i, e := range entries {
		line, err := EncodeLine(e, codec)
		if err != nil {
			return fmt.Errorf("writing entry %d: %w", i+1, err)
		}
		bw.Write(line)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
