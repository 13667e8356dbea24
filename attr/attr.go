// Package attr parses the raw attribute string carried by a TTagOpen event.
//
// The tokenizer deliberately leaves attributes unparsed; this package is the
// collaborator that turns the raw region into name/value pairs. Supported
// forms are name="value", name='value', name=bare and bare flag names.
package attr

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/nodemark/xmlstream/debug"
)

var (
	ErrUnterminatedValue = errors.New("unterminated attribute value")
	ErrMissingName       = errors.New("attribute name missing")
)

// Attr is one parsed attribute. Name and Value alias the input.
type Attr struct {
	Name  []byte
	Value []byte

	// HasValue distinguishes name= forms from bare flags.
	HasValue bool

	// SingleQuote records 'value' quoting, for writers that round-trip.
	SingleQuote bool
}

// Parse parses a raw attribute region as emitted with a TTagOpen event.
// A nil or all-whitespace region yields no attributes.
func Parse(raw []byte) ([]Attr, error) {
	var attrs []Attr
	i, n := 0, len(raw)
	for {
		i = skipSpace(raw, i)
		if i >= n {
			break
		}
		start := i
		for i < n && raw[i] != '=' && !isSpaceAt(raw, i) {
			i += runeLen(raw, i)
		}
		name := raw[start:i]
		if len(name) == 0 {
			return nil, fmt.Errorf("%w before %q", ErrMissingName, raw[i:])
		}
		i = skipSpace(raw, i)
		if i >= n || raw[i] != '=' {
			attrs = append(attrs, Attr{Name: name})
			continue
		}
		i = skipSpace(raw, i+1)
		if i >= n {
			return nil, fmt.Errorf("%w: missing value for %q", ErrUnterminatedValue, name)
		}
		a := Attr{Name: name, HasValue: true}
		switch q := raw[i]; q {
		case '"', '\'':
			j := i + 1
			for j < n && raw[j] != q {
				j++
			}
			if j >= n {
				return nil, fmt.Errorf("%w: %q", ErrUnterminatedValue, name)
			}
			a.Value = raw[i+1 : j]
			a.SingleQuote = q == '\''
			i = j + 1
		default:
			j := i
			for j < n && !isSpaceAt(raw, j) {
				j += runeLen(raw, j)
			}
			a.Value = raw[i:j]
			i = j
		}
		attrs = append(attrs, a)
	}
	if debug.Attrs() {
		debug.Logf("parsed %d attrs from %q", len(attrs), raw)
	}
	return attrs, nil
}

func skipSpace(d []byte, i int) int {
	for i < len(d) && isSpaceAt(d, i) {
		i += runeLen(d, i)
	}
	return i
}

func isSpaceAt(d []byte, i int) bool {
	r, _ := utf8.DecodeRune(d[i:])
	return unicode.IsSpace(r)
}

func runeLen(d []byte, i int) int {
	_, sz := utf8.DecodeRune(d[i:])
	if sz == 0 {
		return 1
	}
	return sz
}
