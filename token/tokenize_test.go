package token

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// flatNode is a Node reduced to comparable fields for test tables.
type flatNode struct {
	Type string
	Name string
	Attr string
	Text string
	Self bool
}

func flatten(nodes []Node) []flatNode {
	if len(nodes) == 0 {
		return nil
	}
	res := make([]flatNode, len(nodes))
	for i := range nodes {
		nd := &nodes[i]
		res[i] = flatNode{
			Type: nd.Type.String(),
			Name: string(nd.Name),
			Attr: string(nd.Attr),
			Text: string(nd.Text),
			Self: nd.SelfClosing,
		}
	}
	return res
}

func open(name, attr string) flatNode  { return flatNode{Type: "TTagOpen", Name: name, Attr: attr} }
func selfc(name, attr string) flatNode { return flatNode{Type: "TTagOpen", Name: name, Attr: attr, Self: true} }
func closed(name string) flatNode      { return flatNode{Type: "TTagClose", Name: name} }
func text(s string) flatNode           { return flatNode{Type: "TText", Text: s} }
func cdata(s string) flatNode          { return flatNode{Type: "TCData", Text: s} }
func comment(s string) flatNode        { return flatNode{Type: "TComment", Text: s} }
func procInst(s string) flatNode       { return flatNode{Type: "TProcInst", Text: s} }

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		opts []TokenOpt
		want []flatNode
		err  error
	}{
		{
			name: "simple element",
			in:   "<a>hi</a>",
			want: []flatNode{open("a", ""), text("hi"), closed("a")},
		},
		{
			name: "nested elements",
			in:   "<a><b>x</b></a>",
			want: []flatNode{open("a", ""), open("b", ""), text("x"), closed("b"), closed("a")},
		},
		{
			name: "self closing",
			in:   "<b/>",
			want: []flatNode{selfc("b", "")},
		},
		{
			name: "self closing with synthetic close",
			in:   "<b/>",
			opts: []TokenOpt{AlwaysTagClose()},
			want: []flatNode{selfc("b", ""), closed("b")},
		},
		{
			name: "synthetic close dropped when excluded",
			in:   "<b/>",
			opts: []TokenOpt{AlwaysTagClose(), Include(TTagOpen)},
			want: []flatNode{selfc("b", "")},
		},
		{
			name: "raw attributes",
			in:   `<a href="x" id='1'>t</a>`,
			want: []flatNode{open("a", `href="x" id='1'`), text("t"), closed("a")},
		},
		{
			name: "attributes trimmed",
			in:   "<a \t href=x  >t</a>",
			want: []flatNode{open("a", "href=x"), text("t"), closed("a")},
		},
		{
			name: "self closing with attributes",
			in:   `<img src="x" />`,
			want: []flatNode{selfc("img", `src="x"`)},
		},
		{
			name: "cdata",
			in:   "<![CDATA[x<y&z]]>",
			want: []flatNode{cdata("x<y&z")},
		},
		{
			name: "empty cdata",
			in:   "<![CDATA[]]>",
			want: []flatNode{cdata("")},
		},
		{
			name: "comment",
			in:   "<!--note-->",
			want: []flatNode{comment("note")},
		},
		{
			name: "empty comment",
			in:   "<!---->",
			want: []flatNode{comment("")},
		},
		{
			name: "comment single dashes",
			in:   "<!--a-b-c-->",
			want: []flatNode{comment("a-b-c")},
		},
		{
			name: "processing instruction",
			in:   `<?xml version="1.0"?>`,
			want: []flatNode{procInst(`xml version="1.0"`)},
		},
		{
			name: "text only document",
			in:   "hello",
			want: []flatNode{text("hello")},
		},
		{
			name: "trailing text",
			in:   "<a></a>tail",
			want: []flatNode{open("a", ""), closed("a"), text("tail")},
		},
		{
			name: "whitespace text kept by default",
			in:   "<a> </a>",
			want: []flatNode{open("a", ""), text(" "), closed("a")},
		},
		{
			name: "whitespace text suppressed",
			in:   "<a> \n\t</a>",
			opts: []TokenOpt{NoEmptyText()},
			want: []flatNode{open("a", ""), closed("a")},
		},
		{
			name: "include text only",
			in:   "<a>hi</a>",
			opts: []TokenOpt{Include(TText)},
			want: []flatNode{text("hi")},
		},
		{
			name: "include tags only",
			in:   "<a>hi<b/></a>",
			opts: []TokenOpt{Include(TTagOpen, TTagClose)},
			want: []flatNode{open("a", ""), selfc("b", ""), closed("a")},
		},
		{
			name: "mixed document",
			in:   `<a x=1>t<![CDATA[c]]><!--m--><b/></a>`,
			want: []flatNode{
				open("a", "x=1"), text("t"), cdata("c"), comment("m"), selfc("b", ""), closed("a"),
			},
		},
		{
			name: "empty tag name",
			in:   "<></>",
			want: []flatNode{open("", ""), closed("")},
		},

		{name: "malformed comment", in: "<!--a--b-->", err: ErrMalformedComment},
		{name: "doctype rejected", in: "<!DOCTYPE html><a></a>", err: ErrUnknownMarkup},
		{name: "bad declaration", in: "<!x>", err: ErrUnknownMarkup},
		{name: "cdata opener mismatch", in: "<![CDAXA[x]]>", err: ErrUnknownMarkup},
		{name: "half comment opener", in: "<!-x-->", err: ErrUnknownMarkup},
		{name: "tag name starts with whitespace", in: "< a>", err: ErrTagName},
		{name: "mismatched closing tag", in: "<a><b></a>", err: ErrUnclosedTag},
		{name: "closing tag without open", in: "</a>", err: ErrUnclosedTag},
		{name: "unclosed tag at eof", in: "<a>", err: ErrUnclosedTags},
		{name: "unclosed comment at eof", in: "<!--x", err: ErrUnclosed},
		{name: "unclosed cdata at eof", in: "<![CDATA[x", err: ErrUnclosed},
		{name: "unclosed cdata opener at eof", in: "<![CD", err: ErrUnclosed},
		{name: "unclosed pi at eof", in: "<?x", err: ErrUnclosed},
		{name: "unclosed open tag at eof", in: "<a", err: ErrUnclosed},
		{name: "unclosed close tag at eof", in: "</a", err: ErrUnclosed},
		{name: "unclosed declaration at eof", in: "<!", err: ErrUnclosed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Tokenize(nil, []byte(tc.in), tc.opts...)
			if tc.err != nil {
				if !errors.Is(err, tc.err) {
					t.Fatalf("got error %v, want %v", err, tc.err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Tokenize error: %v", err)
			}
			if d := cmp.Diff(tc.want, flatten(got)); d != "" {
				t.Errorf("events mismatch (-want +got):\n%s", d)
			}
		})
	}
}

func TestUnclosedTagsListsNames(t *testing.T) {
	_, err := Tokenize(nil, []byte("<a><b>"))
	if !errors.Is(err, ErrUnclosedTags) {
		t.Fatalf("got error %v, want ErrUnclosedTags", err)
	}
	if !strings.Contains(err.Error(), "a, b") {
		t.Errorf("error %q does not list open tags innermost last", err)
	}
}

func TestMismatchNamesExpectedTag(t *testing.T) {
	_, err := Tokenize(nil, []byte("<a><b></a>"))
	if !errors.Is(err, ErrUnclosedTag) {
		t.Fatalf("got error %v, want ErrUnclosedTag", err)
	}
	if !strings.Contains(err.Error(), "</b>") {
		t.Errorf("error %q does not name the expected tag", err)
	}
}

// Events already produced remain valid when a later event errors.
func TestPartialOutputBeforeError(t *testing.T) {
	tk := NewTokenizerFromBytes([]byte("<a><b></a>"))
	var got []Node
	var err error
	for {
		var nd *Node
		nd, err = tk.Next()
		if err != nil {
			break
		}
		got = append(got, *nd)
	}
	if !errors.Is(err, ErrUnclosedTag) {
		t.Fatalf("got error %v, want ErrUnclosedTag", err)
	}
	want := []flatNode{open("a", ""), open("b", "")}
	if d := cmp.Diff(want, flatten(got)); d != "" {
		t.Errorf("events before error (-want +got):\n%s", d)
	}
	// the error is sticky
	if _, err2 := tk.Next(); !errors.Is(err2, ErrUnclosedTag) {
		t.Errorf("second Next after error = %v, want same error", err2)
	}
}

// Tokenize keeps the events appended before the error.
func TestTokenizePartialOutputBeforeError(t *testing.T) {
	got, err := Tokenize(nil, []byte("<a><b></a>"))
	if !errors.Is(err, ErrUnclosedTag) {
		t.Fatalf("got error %v, want ErrUnclosedTag", err)
	}
	want := []flatNode{open("a", ""), open("b", "")}
	if d := cmp.Diff(want, flatten(got)); d != "" {
		t.Errorf("events before error (-want +got):\n%s", d)
	}
}

// A trailing text run is emitted before the unclosed-tags error surfaces.
func TestTrailingTextBeforeUnclosedTags(t *testing.T) {
	tk := NewTokenizerFromBytes([]byte("<a>partial"))
	var got []Node
	var err error
	for {
		var nd *Node
		nd, err = tk.Next()
		if err != nil {
			break
		}
		got = append(got, *nd)
	}
	want := []flatNode{open("a", ""), text("partial")}
	if d := cmp.Diff(want, flatten(got)); d != "" {
		t.Errorf("events before error (-want +got):\n%s", d)
	}
	if !errors.Is(err, ErrUnclosedTags) {
		t.Errorf("final error = %v, want ErrUnclosedTags", err)
	}
}

func TestPositions(t *testing.T) {
	nodes, err := Tokenize(nil, []byte("<a>\nhi\n</a>"))
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	type pos struct {
		Off       int64
		Line, Col int
	}
	var got []pos
	for i := range nodes {
		got = append(got, pos{nodes[i].Pos.Off, nodes[i].Pos.Line, nodes[i].Pos.Col})
	}
	want := []pos{
		{0, 0, 0}, // <a>
		{3, 0, 3}, // "\nhi\n"
		{7, 2, 0}, // </a>
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("positions (-want +got):\n%s", d)
	}
}

func TestTagBalance(t *testing.T) {
	in := `<a><b>x</b><b><c/>y</b></a>`
	nodes, err := Tokenize(nil, []byte(in))
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	opens, closes := 0, 0
	for i := range nodes {
		switch {
		case nodes[i].Type == TTagOpen && !nodes[i].SelfClosing:
			opens++
		case nodes[i].Type == TTagClose:
			closes++
		}
	}
	if opens != closes {
		t.Errorf("tag balance: %d opens, %d closes", opens, closes)
	}
}

// Filtering with include = S yields the subsequence of the full event stream
// whose kinds are in S, for every S.
func TestIncludeIsProjection(t *testing.T) {
	in := `<?pi?><a x=1>t<![CDATA[c]]><!--m--><b/></a>tail`
	full, err := Tokenize(nil, []byte(in))
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	kinds := []NodeType{TText, TCData, TComment, TProcInst, TTagOpen, TTagClose}
	for mask := 0; mask < 1<<len(kinds); mask++ {
		var set []NodeType
		inSet := map[NodeType]bool{}
		for i, k := range kinds {
			if mask&(1<<i) != 0 {
				set = append(set, k)
				inSet[k] = true
			}
		}
		got, err := Tokenize(nil, []byte(in), Include(set...))
		if err != nil {
			t.Fatalf("mask %b: Tokenize error: %v", mask, err)
		}
		var want []Node
		for i := range full {
			if inSet[full[i].Type] {
				want = append(want, full[i])
			}
		}
		if d := cmp.Diff(flatten(want), flatten(got)); d != "" {
			t.Errorf("mask %b: projection mismatch (-want +got):\n%s", mask, d)
		}
	}
}

func TestNoEmptyTextNeverEmitsBlank(t *testing.T) {
	in := "  <a>\n\t</a>  <b> x </b>\n"
	nodes, err := Tokenize(nil, []byte(in), NoEmptyText())
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	for i := range nodes {
		if nodes[i].Type != TText {
			continue
		}
		if strings.TrimSpace(string(nodes[i].Text)) == "" {
			t.Errorf("blank text event %q emitted with NoEmptyText", nodes[i].Text)
		}
	}
}

func TestSelfClosingSynthesis(t *testing.T) {
	in := `<a><b/><c x="1"/></a>`
	nodes, err := Tokenize(nil, []byte(in), AlwaysTagClose())
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	for i := range nodes {
		if nodes[i].Type != TTagOpen || !nodes[i].SelfClosing {
			continue
		}
		if i+1 >= len(nodes) || nodes[i+1].Type != TTagClose ||
			string(nodes[i+1].Name) != string(nodes[i].Name) {
			t.Errorf("self-closing <%s/> not followed by its synthetic close", nodes[i].Name)
		}
	}
	// and without the option, no synthetic close appears
	nodes, err = Tokenize(nil, []byte(in))
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	want := []flatNode{open("a", ""), selfc("b", ""), selfc("c", `x="1"`), closed("a")}
	if d := cmp.Diff(want, flatten(nodes)); d != "" {
		t.Errorf("events (-want +got):\n%s", d)
	}
}

func TestNextAfterEOF(t *testing.T) {
	tk := NewTokenizerFromBytes([]byte("<a></a>"))
	for {
		_, err := tk.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next error: %v", err)
		}
	}
	if _, err := tk.Next(); err != io.EOF {
		t.Errorf("Next after EOF = %v, want io.EOF", err)
	}
}
