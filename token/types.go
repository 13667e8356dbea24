package token

import (
	"fmt"
)

type NodeType int

const (
	TText NodeType = iota
	TCData
	TComment
	TProcInst
	TTagOpen
	TTagClose

	// TDecl is a "<!" whose dispatch (CDATA or comment) is not yet
	// decidable at a chunk boundary. It occurs only as a pending kind and
	// is never emitted.
	TDecl

	numNodeTypes
)

func (t NodeType) String() string {
	return map[NodeType]string{
		TText:     "TText",
		TCData:    "TCData",
		TComment:  "TComment",
		TProcInst: "TProcInst",
		TTagOpen:  "TTagOpen",
		TTagClose: "TTagClose",
		TDecl:     "TDecl",
	}[t]
}

// Node is one classified unit of markup.
//
// Name, Attr and Text are slices into the tokenizer's buffer; they remain
// valid after the run but alias the input, so callers that mutate or retain
// large inputs should copy them.
type Node struct {
	Type NodeType
	Pos  Pos

	// Name is the tag name of a TTagOpen or TTagClose.
	Name []byte

	// Attr is the raw attribute region of a TTagOpen with surrounding
	// whitespace trimmed. It is otherwise unparsed; see the attr package.
	Attr []byte

	// Text is the content of a TText, TCData, TComment or TProcInst node.
	Text []byte

	// SelfClosing is set on a TTagOpen of the form <name .../>.
	SelfClosing bool
}

func (n *Node) Info() string {
	return fmt.Sprintf("%s at %s", n.Type, n.Pos)
}

func (n *Node) String() string {
	switch n.Type {
	case TTagOpen:
		if n.SelfClosing {
			return fmt.Sprintf("<%s/>", n.Name)
		}
		return fmt.Sprintf("<%s>", n.Name)
	case TTagClose:
		return fmt.Sprintf("</%s>", n.Name)
	case TCData:
		return fmt.Sprintf("<![CDATA[%s]]>", n.Text)
	case TComment:
		return fmt.Sprintf("<!--%s-->", n.Text)
	case TProcInst:
		return fmt.Sprintf("<?%s?>", n.Text)
	default:
		return string(n.Text)
	}
}
