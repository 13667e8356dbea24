// Package encode renders node event streams to an io.Writer as readable
// text lines, JSON lines, or a YAML document stream.
package encode

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/nodemark/xmlstream/token"
)

// Record is the serializable form of one node event.
type Record struct {
	Type        string `json:"type" yaml:"type"`
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Attr        string `json:"attr,omitempty" yaml:"attr,omitempty"`
	Text        string `json:"text,omitempty" yaml:"text,omitempty"`
	SelfClosing bool   `json:"selfClosing,omitempty" yaml:"selfClosing,omitempty"`
	Offset      int64  `json:"offset" yaml:"offset"`
	Line        int    `json:"line" yaml:"line"`
	Col         int    `json:"col" yaml:"col"`
}

// TypeName is the short event-type name used in rendered output and in
// xmlt grep expressions.
func TypeName(t token.NodeType) string {
	return map[token.NodeType]string{
		token.TText:     "text",
		token.TCData:    "cdata",
		token.TComment:  "comment",
		token.TProcInst: "pi",
		token.TTagOpen:  "open",
		token.TTagClose: "close",
	}[t]
}

func NewRecord(nd *token.Node) *Record {
	return &Record{
		Type:        TypeName(nd.Type),
		Name:        string(nd.Name),
		Attr:        string(nd.Attr),
		Text:        string(nd.Text),
		SelfClosing: nd.SelfClosing,
		Offset:      nd.Pos.Off,
		Line:        nd.Pos.Line,
		Col:         nd.Pos.Col,
	}
}

// Encoder writes node events one at a time.
type Encoder struct {
	w  io.Writer
	es *encState
}

func NewEncoder(w io.Writer, opts ...EncodeOption) *Encoder {
	es := &encState{}
	for _, opt := range opts {
		opt(es)
	}
	return &Encoder{w: w, es: es}
}

func (e *Encoder) Write(nd *token.Node) error {
	switch {
	case e.es.format.IsJSON():
		d, err := json.Marshal(NewRecord(nd))
		if err != nil {
			return err
		}
		d = append(d, '\n')
		_, err = e.w.Write(d)
		return err
	case e.es.format.IsYAML():
		d, err := yaml.Marshal(NewRecord(nd))
		if err != nil {
			return err
		}
		if _, err := io.WriteString(e.w, "---\n"); err != nil {
			return err
		}
		_, err = e.w.Write(d)
		return err
	default:
		return e.writeText(nd)
	}
}

func (e *Encoder) writeText(nd *token.Node) error {
	line := textLine(nd)
	if colors := e.es.colors; colors != nil {
		line = colors.sprintf(nd.Type)("%s", line)
	}
	_, err := io.WriteString(e.w, line+"\n")
	return err
}

func textLine(nd *token.Node) string {
	switch nd.Type {
	case token.TTagOpen:
		kind := "open "
		if nd.SelfClosing {
			kind = "selfc"
		}
		if len(nd.Attr) > 0 {
			return fmt.Sprintf("%s %s [%s]", kind, nd.Name, nd.Attr)
		}
		return fmt.Sprintf("%s %s", kind, nd.Name)
	case token.TTagClose:
		return fmt.Sprintf("close %s", nd.Name)
	default:
		return fmt.Sprintf("%-5s %q", TypeName(nd.Type), nd.Text)
	}
}

// Encode writes a complete event sequence.
func Encode(nodes []token.Node, w io.Writer, opts ...EncodeOption) error {
	enc := NewEncoder(w, opts...)
	for i := range nodes {
		if err := enc.Write(&nodes[i]); err != nil {
			return err
		}
	}
	return nil
}
