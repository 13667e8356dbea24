package token

import (
	"bytes"
	"fmt"
	"io"
	"unicode"
)

var (
	cdataOpen  = []byte("CDATA[")
	cdataClose = []byte("]]>")
	commentEnd = []byte("--")
	piClose    = []byte("?>")
)

// scanOne classifies and consumes the construct at d[pos:]. It returns the
// events to emit (possibly none when filtering applies), the number of bytes
// consumed, and an error. io.EOF signals an incomplete construct: the caller
// must park d[pos:] in the pending slot, with the kind recorded by suspend,
// and retry once more input is available. pos must be the scan cursor; all
// bytes before it have been consumed and accounted for.
func (t *Tokenizer) scanOne(d []byte, pos int) ([]Node, int, error) {
	n := len(d)
	c := d[pos]

	if c != '<' {
		j := bytes.IndexByte(d[pos:], '<')
		if j < 0 {
			return t.suspend(TText)
		}
		return t.textEvents(d[pos:pos+j], pos), j, nil
	}

	if pos+1 >= n {
		return t.suspend(TTagOpen)
	}
	switch d[pos+1] {
	case '!':
		return t.scanDecl(d, pos)
	case '?':
		j := bytes.Index(d[pos+2:], piClose)
		if j < 0 {
			return t.suspend(TProcInst)
		}
		evs := t.emit(Node{Type: TProcInst, Pos: t.at(pos), Text: d[pos+2 : pos+2+j]})
		return evs, 2 + j + 2, nil
	case '/':
		return t.scanClose(d, pos)
	default:
		return t.scanOpen(d, pos)
	}
}

// scanDecl handles "<!": CDATA sections and comments. Anything else,
// DOCTYPE included, is an unrecognized markup declaration.
func (t *Tokenizer) scanDecl(d []byte, pos int) ([]Node, int, error) {
	n := len(d)
	if pos+2 >= n {
		return t.suspend(TDecl)
	}
	switch d[pos+2] {
	case '[':
		rest := d[pos+3:]
		m := min(len(rest), len(cdataOpen))
		if !bytes.Equal(rest[:m], cdataOpen[:m]) {
			return nil, 0, NewTokenizeErr(ErrUnknownMarkup, t.at(pos))
		}
		if m < len(cdataOpen) {
			return t.suspend(TCData)
		}
		body := pos + 3 + len(cdataOpen)
		j := bytes.Index(d[body:], cdataClose)
		if j < 0 {
			return t.suspend(TCData)
		}
		evs := t.emit(Node{Type: TCData, Pos: t.at(pos), Text: d[body : body+j]})
		return evs, body + j + len(cdataClose) - pos, nil

	case '-':
		if pos+3 >= n {
			return t.suspend(TComment)
		}
		if d[pos+3] != '-' {
			return nil, 0, NewTokenizeErr(ErrUnknownMarkup, t.at(pos))
		}
		body := pos + 4
		j := bytes.Index(d[body:], commentEnd)
		if j < 0 {
			return t.suspend(TComment)
		}
		gt := body + j + len(commentEnd)
		if gt >= n {
			// "--" at the end of available input may still be the start
			// of "-->" in the next chunk.
			return t.suspend(TComment)
		}
		if d[gt] != '>' {
			// a literal "--" inside comment content
			return nil, 0, NewTokenizeErr(ErrMalformedComment, t.at(pos))
		}
		evs := t.emit(Node{Type: TComment, Pos: t.at(pos), Text: d[body : body+j]})
		return evs, gt + 1 - pos, nil

	default:
		return nil, 0, NewTokenizeErr(ErrUnknownMarkup, t.at(pos))
	}
}

func (t *Tokenizer) scanClose(d []byte, pos int) ([]Node, int, error) {
	j := bytes.IndexByte(d[pos+2:], '>')
	if j < 0 {
		return t.suspend(TTagOpen)
	}
	gt := pos + 2 + j
	name := d[pos+2 : gt]
	want, ok := t.stack.pop()
	if !ok {
		t.stack.clear()
		return nil, 0, NewTokenizeErr(
			fmt.Errorf("%w: no open tag matches </%s>", ErrUnclosedTag, name), t.at(pos))
	}
	if !bytes.Equal(want, name) {
		t.stack.clear()
		return nil, 0, NewTokenizeErr(
			fmt.Errorf("%w: expected </%s>, got </%s>", ErrUnclosedTag, want, name), t.at(pos))
	}
	evs := t.emit(Node{Type: TTagClose, Pos: t.at(pos), Name: name})
	return evs, gt + 1 - pos, nil
}

func (t *Tokenizer) scanOpen(d []byte, pos int) ([]Node, int, error) {
	j := bytes.IndexByte(d[pos+1:], '>')
	if j < 0 {
		return t.suspend(TTagOpen)
	}
	gt := pos + 1 + j
	end := gt
	selfClosing := end > pos+1 && d[end-1] == '/'
	if selfClosing {
		end--
	}
	span := d[pos+1 : end]

	var name, rawAttr []byte
	switch ws := bytes.IndexFunc(span, unicode.IsSpace); {
	case ws < 0:
		name = span
	case ws == 0:
		return nil, 0, NewTokenizeErr(ErrTagName, t.at(pos))
	default:
		name = span[:ws]
		rawAttr = bytes.TrimSpace(span[ws:])
	}

	if !selfClosing {
		t.stack.push(name)
	}
	evs := t.emit(Node{
		Type:        TTagOpen,
		Pos:         t.at(pos),
		Name:        name,
		Attr:        rawAttr,
		SelfClosing: selfClosing,
	})
	if selfClosing && t.opt.alwaysTagClose && t.opt.include[TTagClose] {
		evs = append(evs, Node{Type: TTagClose, Pos: t.at(pos), Name: name})
	}
	return evs, gt + 1 - pos, nil
}

// suspend records the kind of the incomplete construct at the cursor and
// reports io.EOF to the scan loop.
func (t *Tokenizer) suspend(kind NodeType) ([]Node, int, error) {
	t.pendKind = kind
	return nil, 0, io.EOF
}

// emit applies the include filter to a single candidate event.
func (t *Tokenizer) emit(nd Node) []Node {
	if !t.opt.include[nd.Type] {
		return nil
	}
	return []Node{nd}
}

// textEvents applies the include filter and empty-text suppression to a text
// run starting at pos.
func (t *Tokenizer) textEvents(content []byte, pos int) []Node {
	if !t.opt.include[TText] {
		return nil
	}
	if t.opt.noEmptyText && len(bytes.TrimSpace(content)) == 0 {
		return nil
	}
	return []Node{{Type: TText, Pos: t.at(pos), Text: content}}
}
