// Package xmlstream tokenizes XML-like markup into a stream of node events.
//
// The core lives in the token package; this package provides small
// conveniences over it.
package xmlstream

import (
	"io"

	"github.com/nodemark/xmlstream/token"
)

// Collect reads r to the end and returns all node events. On error it
// returns the events collected so far along with the error.
func Collect(r io.Reader, opts ...token.TokenOpt) ([]token.Node, error) {
	tk := token.NewTokenizer(r, opts...)
	var nodes []token.Node
	for {
		nd, err := tk.Next()
		if err == io.EOF {
			return nodes, nil
		}
		if err != nil {
			return nodes, err
		}
		nodes = append(nodes, *nd)
	}
}

// CollectBytes tokenizes a complete in-memory document.
func CollectBytes(doc []byte, opts ...token.TokenOpt) ([]token.Node, error) {
	return token.Tokenize(nil, doc, opts...)
}

// Text returns the concatenated character content of r: text runs and CDATA
// sections, markup removed.
func Text(r io.Reader) ([]byte, error) {
	tk := token.NewTokenizer(r, token.Include(token.TText, token.TCData))
	var out []byte
	for {
		nd, err := tk.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, nd.Text...)
	}
}
