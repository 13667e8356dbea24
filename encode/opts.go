package encode

import "github.com/nodemark/xmlstream/format"

type EncodeOption func(*encState)

type encState struct {
	format format.Format
	colors *Colors
}

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *encState) { es.format = f }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *encState) { es.colors = c }
}

// FormatFromOpts extracts the format from encode options.
func FormatFromOpts(opts ...EncodeOption) format.Format {
	es := &encState{}
	for _, opt := range opts {
		opt(es)
	}
	return es.format
}
