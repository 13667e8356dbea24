package token

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/nodemark/xmlstream/debug"
)

const defaultReadSize = 4096

// pending is the one-slot resumption buffer: at most one partial construct
// is carried across chunk boundaries.
type pending struct {
	kind NodeType
	data []byte
	live bool
}

func (p *pending) wait(kind NodeType, data []byte) {
	// full slice expression so a later append to the rebuilt buffer cannot
	// share this backing array
	p.kind, p.data, p.live = kind, data[:len(data):len(data)], true
}

// unwait returns the stored partial data, nil if none, and clears the slot.
func (p *pending) unwait() []byte {
	d := p.data
	p.kind, p.data, p.live = 0, nil, false
	return d
}

// Tokenizer produces markup node events one at a time from a chunked input
// source. Each call to the underlying io.Reader delivers one chunk; chunk
// boundaries never affect the event stream. A Tokenizer is single-use and
// not safe for concurrent use; two concurrent runs need two Tokenizers.
type Tokenizer struct {
	reader io.Reader
	opt    *tokenOpts

	buf []byte // pending partial data followed by unscanned input
	cur int    // scan cursor within buf
	off int64  // absolute offset of buf[0]

	// line/col tracking for Pos; valid at the cursor
	line    int
	lineOff int64 // absolute offset of the current line start

	pend     pending
	pendKind NodeType // kind recorded by the most recent suspend
	stack    tagStack

	queue []Node // scanned but not yet returned (a tag open may queue two)

	eof     bool  // input source exhausted
	done    bool  // finalizer has run
	readErr error // reader error delivered alongside data, not yet surfaced
	err     error
}

// NewTokenizer creates a Tokenizer reading chunks from r.
func NewTokenizer(r io.Reader, opts ...TokenOpt) *Tokenizer {
	return &Tokenizer{
		reader: r,
		opt:    newTokenOpts(opts),
	}
}

// NewTokenizerFromBytes creates a Tokenizer over a complete document,
// treated as a single chunk.
func NewTokenizerFromBytes(doc []byte, opts ...TokenOpt) *Tokenizer {
	return &Tokenizer{
		buf: doc,
		eof: true,
		opt: newTokenOpts(opts),
	}
}

// Tokenize appends the node events of src to dst, treating src as a single
// chunk. On error it returns the events produced so far along with the
// error.
func Tokenize(dst []Node, src []byte, opts ...TokenOpt) ([]Node, error) {
	tk := NewTokenizerFromBytes(src, opts...)
	for {
		nd, err := tk.Next()
		if err == io.EOF {
			return dst, nil
		}
		if err != nil {
			return dst, err
		}
		dst = append(dst, *nd)
	}
}

// Next returns the next node event. It returns io.EOF after the last event
// of a well-formed input. Any other error is terminal: the same error is
// returned on every subsequent call. Events returned before an error remain
// valid.
func (t *Tokenizer) Next() (*Node, error) {
	for {
		if len(t.queue) > 0 {
			nd := t.queue[0]
			t.queue = t.queue[1:]
			if debug.Events() {
				debug.Logf("event %s", nd.Info())
			}
			return &nd, nil
		}
		if t.err != nil {
			return nil, t.err
		}
		if t.done {
			return nil, io.EOF
		}
		t.pump()
	}
}

// pump scans until at least one event is queued, the input is exhausted, or
// an error occurs.
func (t *Tokenizer) pump() {
	for len(t.queue) == 0 && t.err == nil && !t.done {
		if t.cur >= len(t.buf) {
			// buffer exhausted with no construct in progress
			t.off += int64(t.cur)
			t.buf, t.cur = nil, 0
			if !t.fill() && t.err == nil {
				t.finalize()
			}
			continue
		}
		evs, consumed, err := t.scanOne(t.buf, t.cur)
		if err == io.EOF {
			// incomplete construct: park it and wait for the next chunk
			if debug.Scan() {
				debug.Logf("suspend %s at offset %d", t.pendKind, t.off+int64(t.cur))
			}
			t.pend.wait(t.pendKind, t.buf[t.cur:])
			t.off += int64(t.cur)
			t.buf, t.cur = nil, 0
			if !t.fill() && t.err == nil {
				t.finalize()
			}
			continue
		}
		if err != nil {
			t.err = err
			return
		}
		t.advance(consumed)
		t.queue = append(t.queue, evs...)
	}
}

// fill pulls exactly one chunk from the source and prefixes it with any
// pending partial data, re-anchoring the buffer at the pending construct's
// start. It reports false when the source is exhausted.
func (t *Tokenizer) fill() bool {
	if t.readErr != nil {
		t.err = t.readErr
		return false
	}
	if t.eof || t.reader == nil {
		t.eof = true
		return false
	}
	rb := make([]byte, t.opt.readSize)
	for {
		n, err := t.reader.Read(rb)
		if n > 0 {
			t.buf = append(t.pend.unwait(), rb[:n]...)
			t.cur = 0
			switch err {
			case nil:
			case io.EOF:
				t.eof = true
			default:
				// a Read may deliver data and an error together; the
				// error surfaces once these bytes are consumed
				t.readErr = err
			}
			return true
		}
		switch err {
		case nil:
			// Read is allowed to return 0, nil; try again
		case io.EOF:
			t.eof = true
			return false
		default:
			t.err = err
			return false
		}
	}
}

// finalize runs once the chunk sequence is exhausted. A trailing text run is
// implicitly closed; any other pending construct, and any still-open tags,
// are errors.
func (t *Tokenizer) finalize() {
	t.done = true
	if t.pend.live {
		kind := t.pend.kind
		data := t.pend.unwait()
		if kind != TText {
			t.err = NewTokenizeErr(unclosedErr(kind), t.at(0))
			return
		}
		t.buf = data
		t.queue = append(t.queue, t.textEvents(data, 0)...)
		t.advance(len(data))
	}
	if !t.stack.empty() {
		t.err = NewTokenizeErr(
			fmt.Errorf("%w: %s", ErrUnclosedTags, strings.Join(t.stack.list(), ", ")), t.at(t.cur))
		t.stack.clear()
	}
}

// at returns the position of the byte at pos. It is only meaningful at the
// scan cursor, where the line accounting is current.
func (t *Tokenizer) at(pos int) Pos {
	off := t.off + int64(pos)
	return Pos{Off: off, Line: t.line, Col: int(off - t.lineOff)}
}

// advance moves the cursor past consumed bytes, updating line accounting.
func (t *Tokenizer) advance(consumed int) {
	base := t.off + int64(t.cur)
	seg := t.buf[t.cur : t.cur+consumed]
	for {
		i := bytes.IndexByte(seg, '\n')
		if i < 0 {
			break
		}
		t.line++
		t.lineOff = base + int64(i) + 1
		base += int64(i) + 1
		seg = seg[i+1:]
	}
	t.cur += consumed
}
