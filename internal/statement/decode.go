package statement

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/piotrekio/mquery/internal/model"
)

const (
	separator   = ';'
	numFields   = 5
	colDate     = 0
	colDesc     = 1
	colCategory = 3
	colAmount   = 4
)

// DecodeLine converts one statement line, without its line terminator, into an
// Entry. Segments beyond the fifth are ignored.
func DecodeLine(line []byte, codec *Codec) (model.Entry, error) {
	rec := bytes.Split(line, []byte{separator})
	if len(rec) < numFields {
		return model.Entry{}, &FieldError{
			Field: "line",
			Value: string(line),
			Err:   fmt.Errorf("%w: expected at least %d fields, got %d", ErrMalformedLine, numFields, len(rec)),
		}
	}

	date, err := decodeDate(rec[colDate])
	if err != nil {
		return model.Entry{}, &FieldError{Field: "date", Value: string(rec[colDate]), Err: err}
	}

	desc, err := codec.Decode(bytes.TrimSpace(unquote(rec[colDesc])))
	if err != nil {
		return model.Entry{}, &FieldError{Field: "description", Value: string(rec[colDesc]), Err: err}
	}

	category, err := codec.Decode(bytes.Trim(rec[colCategory], `"`))
	if err != nil {
		return model.Entry{}, &FieldError{Field: "category", Value: string(rec[colCategory]), Err: err}
	}

	amount, currency, err := decodeAmount(rec[colAmount], codec)
	if err != nil {
		return model.Entry{}, &FieldError{Field: "amount", Value: string(rec[colAmount]), Err: err}
	}

	return model.Entry{
		Date:        date,
		Description: desc,
		Category:    category,
		Amount:      amount,
		Currency:    currency,
	}, nil
}

// unquote removes one leading and one trailing double quote, if present.
func unquote(b []byte) []byte {
	b = bytes.TrimPrefix(b, []byte{'"'})
	return bytes.TrimSuffix(b, []byte{'"'})
}

// decodeDate reads the first three hyphen-separated numbers. Anything after the
// day digits, such as a time of day, is ignored.
func decodeDate(b []byte) (model.Date, error) {
	parts := bytes.SplitN(bytes.TrimSpace(b), []byte{'-'}, 3)
	if len(parts) < 3 {
		return model.Date{}, fmt.Errorf("%w: expected YYYY-MM-DD", ErrMalformedDate)
	}
	day := parts[2]
	if i := bytes.IndexFunc(day, func(r rune) bool { return r < '0' || r > '9' }); i >= 0 {
		day = day[:i]
	}

	var nums [3]int
	for i, p := range [][]byte{parts[0], parts[1], day} {
		n, err := strconv.Atoi(string(p))
		if err != nil || p[0] == '+' {
			return model.Date{}, fmt.Errorf("%w: %q is not a number", ErrMalformedDate, p)
		}
		nums[i] = n
	}

	d, err := model.NewDate(nums[0], time.Month(nums[1]), nums[2])
	if err != nil {
		return model.Date{}, fmt.Errorf("%w: %v", ErrMalformedDate, err)
	}
	return d, nil
}

// decodeAmount splits "-1 234,50 PLN" into the amount and the currency code. The
// currency is the last whitespace-delimited token, the number is everything before
// it written with a decimal comma and optional thousands spaces.
func decodeAmount(b []byte, codec *Codec) (decimal.Decimal, string, error) {
	b = bytes.TrimSpace(b)
	i := bytes.LastIndexFunc(b, unicode.IsSpace)
	if i < 0 {
		return decimal.Decimal{}, "", fmt.Errorf("%w: expected \"<amount> <currency>\"", ErrMalformedAmount)
	}

	currency, err := codec.Decode(b[i+1:])
	if err != nil {
		return decimal.Decimal{}, "", err
	}

	num, err := codec.Decode(b[:i])
	if err != nil {
		return decimal.Decimal{}, "", err
	}
	num = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		if r == ',' {
			return '.'
		}
		return r
	}, num)

	amount, err := decimal.NewFromString(num)
	if err != nil {
		return decimal.Decimal{}, "", fmt.Errorf("%w: %v", ErrMalformedAmount, err)
	}
	return amount, currency, nil
}
